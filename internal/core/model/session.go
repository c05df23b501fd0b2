package model

import "time"

// SessionType distinguishes work sessions from break sessions.
type SessionType string

const (
	SessionWork  SessionType = "work"
	SessionBreak SessionType = "break"
)

// BreakProject is the legacy sentinel project name for break sessions.
// Older session files tag breaks by project instead of type; readers must
// honor both.
const BreakProject = "BREAK"

// Session is one contiguous block of tracked time.
type Session struct {
	ID              string      `json:"id"`
	StartTime       time.Time   `json:"start_time"`
	EndTime         *time.Time  `json:"end_time"`
	Project         string      `json:"project"`
	Task            string      `json:"task"`
	DurationSeconds int         `json:"duration_seconds"`
	IsActive        bool        `json:"is_active"`
	Type            SessionType `json:"session_type"`
	Note            string      `json:"note"`
}

// IsBreak reports whether the session counts as break time.
func (session Session) IsBreak() bool {
	return session.Type == SessionBreak || session.Project == BreakProject
}

// Closed reports whether the session has an end time.
func (session Session) Closed() bool {
	return session.EndTime != nil
}

// ElapsedSeconds returns the closed duration, or the live elapsed time
// against now while the session is active.
func (session Session) ElapsedSeconds(now time.Time) int {
	if session.EndTime != nil {
		return session.DurationSeconds
	}
	if session.IsActive {
		return int(now.Sub(session.StartTime).Seconds())
	}
	return 0
}

// Hours returns the closed session length in hours. Active sessions
// report zero.
func (session Session) Hours() float64 {
	if session.EndTime == nil {
		return 0
	}
	return session.EndTime.Sub(session.StartTime).Hours()
}

// Date returns the calendar date the session started on, in the
// session's own location.
func (session Session) Date() time.Time {
	year, month, day := session.StartTime.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, session.StartTime.Location())
}
