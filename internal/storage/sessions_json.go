package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"taskonaut/internal/core/model"
)

// SessionsFileName is the session database file inside the data directory.
const SessionsFileName = "sessions.json"

// ErrSessionActive indicates a session is already running.
var ErrSessionActive = errors.New("a session is already active")

// ErrSessionNotFound indicates no session matches the given identifier.
var ErrSessionNotFound = errors.New("session not found")

// TargetSource provides configured target hours per weekday.
type TargetSource interface {
	TargetHours(weekday time.Weekday) float64
}

// SessionStore owns the session list and its JSON file. The tracker's
// ticker goroutine reads while UI callbacks mutate, so access is
// mutex-guarded.
type SessionStore struct {
	mu       sync.Mutex
	path     string
	clock    clockwork.Clock
	targets  TargetSource
	logger   *slog.Logger
	sessions []model.Session
}

// NewSessionStore creates a store backed by sessions.json in dir.
func NewSessionStore(dir string, targets TargetSource, clock clockwork.Clock, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		path:    filepath.Join(dir, SessionsFileName),
		clock:   clock,
		targets: targets,
		logger:  logger,
	}
}

// Load reads the session file. A missing file starts an empty list; a
// malformed file is replaced with an empty list and persisted.
func (store *SessionStore) Load() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			store.sessions = nil
			return nil
		}
		return fmt.Errorf("read sessions file: %w", err)
	}

	var sessions []model.Session
	if err := json.Unmarshal(rawData, &sessions); err != nil {
		store.logger.Warn("sessions file malformed, starting fresh", "path", store.path, "error", err)
		store.sessions = nil
		return store.saveLocked()
	}

	store.sessions = sessions
	store.logger.Info("sessions loaded", "count", len(sessions))
	return nil
}

// Save rewrites the session file wholesale with indentation.
func (store *SessionStore) Save() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.saveLocked()
}

func (store *SessionStore) saveLocked() error {
	serialized := []byte("[]")
	if len(store.sessions) > 0 {
		var err error
		serialized, err = json.MarshalIndent(store.sessions, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal sessions: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write sessions file: %w", err)
	}
	return nil
}

// CreateSession opens a new active session. It fails with
// ErrSessionActive while another session is running.
func (store *SessionStore) CreateSession(project, task string, sessionType model.SessionType) (model.Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.activeLocked() != nil {
		return model.Session{}, ErrSessionActive
	}

	session := model.Session{
		ID:        uuid.NewString(),
		StartTime: store.clock.Now(),
		Project:   project,
		Task:      task,
		IsActive:  true,
		Type:      sessionType,
	}
	store.sessions = append(store.sessions, session)
	store.logger.Info("session started", "type", sessionType, "project", project, "task", task)
	return session, nil
}

// ActiveSession returns the currently active session, or nil.
func (store *SessionStore) ActiveSession() *model.Session {
	store.mu.Lock()
	defer store.mu.Unlock()

	if active := store.activeLocked(); active != nil {
		copied := *active
		return &copied
	}
	return nil
}

func (store *SessionStore) activeLocked() *model.Session {
	for i := range store.sessions {
		if store.sessions[i].IsActive {
			return &store.sessions[i]
		}
	}
	return nil
}

// StopActiveSession closes the active session and returns it. It
// returns nil when no session is running.
func (store *SessionStore) StopActiveSession() *model.Session {
	store.mu.Lock()
	defer store.mu.Unlock()

	active := store.activeLocked()
	if active == nil {
		return nil
	}

	end := store.clock.Now()
	active.EndTime = &end
	active.IsActive = false
	active.DurationSeconds = int(end.Sub(active.StartTime).Seconds())
	store.logger.Info("session stopped",
		"project", active.Project, "task", active.Task, "duration_seconds", active.DurationSeconds)

	copied := *active
	return &copied
}

// UpdateActiveProjectTask retags the running session in place without
// closing it. Used for quick switches below the auto-split threshold.
func (store *SessionStore) UpdateActiveProjectTask(project, task string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	active := store.activeLocked()
	if active == nil {
		return false
	}
	active.Project = project
	active.Task = task
	return true
}

// TodaySessions returns today's sessions in start-time order. An empty
// sessionType returns all types.
func (store *SessionStore) TodaySessions(sessionType model.SessionType) []model.Session {
	store.mu.Lock()
	defer store.mu.Unlock()

	today := store.clock.Now()
	var result []model.Session
	for _, session := range store.sessions {
		if !sameDay(session.StartTime, today) {
			continue
		}
		if sessionType != "" && session.Type != sessionType {
			continue
		}
		result = append(result, session)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result
}

// TodayWorkSeconds sums today's work time, counting live elapsed time
// for an active session.
func (store *SessionStore) TodayWorkSeconds() int {
	return store.todaySeconds(false)
}

// TodayBreakSeconds sums today's break time per the dual-tag rule
// (break type or the legacy BREAK project).
func (store *SessionStore) TodayBreakSeconds() int {
	return store.todaySeconds(true)
}

func (store *SessionStore) todaySeconds(wantBreak bool) int {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.clock.Now()
	total := 0
	for _, session := range store.sessions {
		if !sameDay(session.StartTime, now) || session.IsBreak() != wantBreak {
			continue
		}
		total += session.ElapsedSeconds(now)
	}
	return total
}

// TodayRequiredWorkSeconds converts today's configured target hours to
// seconds.
func (store *SessionStore) TodayRequiredWorkSeconds() int {
	weekday := store.clock.Now().Weekday()
	if store.targets == nil {
		return int(model.DefaultTargetHours * 3600)
	}
	return int(store.targets.TargetHours(weekday) * 3600)
}

// AddSession inserts a manually created session. A nil end time makes
// the session active; the caller is expected to have no other active
// session in that case.
func (store *SessionStore) AddSession(start time.Time, end *time.Time, project, task string, sessionType model.SessionType, note string) model.Session {
	store.mu.Lock()
	defer store.mu.Unlock()

	session := model.Session{
		ID:        uuid.NewString(),
		StartTime: start,
		EndTime:   end,
		Project:   project,
		Task:      task,
		Type:      sessionType,
		Note:      note,
	}
	if end != nil {
		session.DurationSeconds = int(end.Sub(start).Seconds())
	} else {
		session.IsActive = true
	}
	store.sessions = append(store.sessions, session)
	return session
}

// UpdateSession replaces the stored session with the same ID.
func (store *SessionStore) UpdateSession(session model.Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for i := range store.sessions {
		if store.sessions[i].ID != session.ID {
			continue
		}
		if session.EndTime != nil {
			session.DurationSeconds = int(session.EndTime.Sub(session.StartTime).Seconds())
			session.IsActive = false
		}
		store.sessions[i] = session
		return nil
	}
	return ErrSessionNotFound
}

// RemoveSession deletes a session by ID.
func (store *SessionStore) RemoveSession(id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for i := range store.sessions {
		if store.sessions[i].ID == id {
			store.sessions = append(store.sessions[:i], store.sessions[i+1:]...)
			return nil
		}
	}
	return ErrSessionNotFound
}

// CleanupOldData drops sessions older than daysToKeep and returns the
// number removed.
func (store *SessionStore) CleanupOldData(daysToKeep int) int {
	store.mu.Lock()
	defer store.mu.Unlock()

	cutoff := store.clock.Now().AddDate(0, 0, -daysToKeep)
	kept := store.sessions[:0]
	removed := 0
	for _, session := range store.sessions {
		if session.StartTime.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, session)
	}
	store.sessions = kept
	if removed > 0 {
		store.logger.Info("old sessions removed", "count", removed, "days_kept", daysToKeep)
	}
	return removed
}

// Sessions returns a copy of the full session list.
func (store *SessionStore) Sessions() []model.Session {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]model.Session(nil), store.sessions...)
}

func sameDay(a, b time.Time) bool {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()
	return aYear == bYear && aMonth == bMonth && aDay == bDay
}
