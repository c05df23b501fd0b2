package tracker

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"taskonaut/internal/core/model"
	"taskonaut/internal/core/report"
	"taskonaut/internal/storage"
)

// Options contains runtime options for the Tracker.
type Options struct {
	TickInterval time.Duration
}

// Tracker is the state machine behind the overlay. It drives the
// session store from user input and refreshes observers once per tick;
// the tick path only reads, it never mutates session state.
type Tracker struct {
	mu       sync.Mutex
	sessions *storage.SessionStore
	config   *storage.ConfigStore
	exporter *report.Exporter
	clock    clockwork.Clock
	logger   *slog.Logger
	options  Options

	state   State
	project string
	task    string

	events  []chan Event
	stopCh  chan struct{}
	running bool
}

// New creates a Tracker over the given stores. An active session left
// behind by a previous run is adopted as the current state.
func New(sessions *storage.SessionStore, config *storage.ConfigStore, exporter *report.Exporter, clock clockwork.Clock, logger *slog.Logger, options Options) *Tracker {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	project, task := config.ActiveProjectTask()
	machine := &Tracker{
		sessions: sessions,
		config:   config,
		exporter: exporter,
		clock:    clock,
		logger:   logger,
		options:  options,
		state:    StateIdle,
		project:  project,
		task:     task,
		stopCh:   make(chan struct{}),
	}

	if active := sessions.ActiveSession(); active != nil {
		machine.project = active.Project
		machine.task = active.Task
		if active.IsBreak() {
			machine.state = StateOnBreak
		} else {
			machine.state = StateWorking
		}
		logger.Info("recovered running session",
			"project", active.Project, "task", active.Task, "started", active.StartTime)
	}

	return machine
}

// Subscribe registers a new observer channel.
func (machine *Tracker) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	machine.mu.Lock()
	machine.events = append(machine.events, ch)
	machine.mu.Unlock()
	return ch
}

// Start launches the ticking loop.
func (machine *Tracker) Start() {
	machine.mu.Lock()
	if machine.running {
		machine.mu.Unlock()
		return
	}
	machine.running = true
	state := machine.state
	machine.mu.Unlock()

	machine.emit(machine.stateEvent(state))
	go machine.run()
}

// State returns the current tracking state.
func (machine *Tracker) State() State {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.state
}

// ActiveProjectTask returns the project/task the tracker is pointed at.
func (machine *Tracker) ActiveProjectTask() (string, string) {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.project, machine.task
}

// StartWork opens a work session for the current project/task, closing
// any running session first.
func (machine *Tracker) StartWork() error {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.startSessionLocked(model.SessionWork)
}

// StartBreak opens a break session, closing any running session first.
func (machine *Tracker) StartBreak() error {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.startSessionLocked(model.SessionBreak)
}

func (machine *Tracker) startSessionLocked(sessionType model.SessionType) error {
	machine.sessions.StopActiveSession()

	project, task := machine.project, machine.task
	if _, err := machine.sessions.CreateSession(project, task, sessionType); err != nil {
		return err
	}
	if err := machine.config.UpdateRecentCombination(project, task); err != nil {
		machine.logger.Warn("updating recent combinations failed", "error", err)
	}

	if sessionType == model.SessionBreak {
		machine.state = StateOnBreak
	} else {
		machine.state = StateWorking
	}
	machine.persistLocked()
	machine.emitLocked(machine.stateEvent(machine.state))
	return nil
}

// StopSession closes the running session and returns to idle. It is a
// no-op when nothing is running.
func (machine *Tracker) StopSession() {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.sessions.StopActiveSession() == nil {
		return
	}
	machine.state = StateIdle
	machine.persistLocked()
	machine.emitLocked(machine.stateEvent(StateIdle))

	if machine.config.Config().Export.AutoExportDaily {
		machine.exportLocked()
	}
}

// SwitchProject changes the tracked project/task. A session running at
// least the auto-split threshold is closed and a new one opened; below
// the threshold the running session is retagged in place.
func (machine *Tracker) SwitchProject(project, task string) error {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	machine.project = project
	machine.task = task
	if err := machine.config.SetActiveProjectTask(project, task); err != nil {
		machine.logger.Warn("persisting active project failed", "error", err)
	}

	active := machine.sessions.ActiveSession()
	if active == nil {
		machine.emitLocked(machine.stateEvent(machine.state))
		return nil
	}

	elapsed := machine.clock.Now().Sub(active.StartTime)
	if elapsed >= machine.config.Config().AutoSplitThreshold() {
		machine.sessions.StopActiveSession()
		if _, err := machine.sessions.CreateSession(project, task, active.Type); err != nil {
			machine.state = StateIdle
			machine.emitLocked(machine.stateEvent(StateIdle))
			return err
		}
		machine.logger.Info("session auto-split", "project", project, "task", task)
	} else {
		machine.sessions.UpdateActiveProjectTask(project, task)
	}

	machine.persistLocked()
	machine.emitLocked(machine.stateEvent(machine.state))
	return nil
}

// ExportReport writes the spreadsheet report for the full session list.
func (machine *Tracker) ExportReport() error {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.exportWorkbookLocked()
}

// Shutdown force-closes any running session, persists everything,
// attempts a final export and terminates the ticking loop. Failures
// are logged, not fatal.
func (machine *Tracker) Shutdown() {
	machine.mu.Lock()
	if machine.sessions.StopActiveSession() != nil {
		machine.state = StateIdle
	}
	machine.persistLocked()
	if err := machine.config.Save(); err != nil {
		machine.logger.Warn("saving config on shutdown failed", "error", err)
	}
	machine.exportLocked()

	if !machine.running {
		machine.mu.Unlock()
		return
	}
	close(machine.stopCh)
	machine.running = false
	events := machine.events
	machine.events = nil
	machine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (machine *Tracker) run() {
	ticker := machine.clock.NewTicker(machine.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-machine.stopCh:
			return
		case tickTime := <-ticker.Chan():
			machine.tick(tickTime)
		}
	}
}

func (machine *Tracker) tick(tickTime time.Time) {
	machine.mu.Lock()
	if !machine.running {
		machine.mu.Unlock()
		return
	}
	event := machine.progressEventLocked(tickTime)
	machine.emitLocked(event)
	machine.mu.Unlock()
}

func (machine *Tracker) progressEventLocked(now time.Time) Event {
	worked := machine.sessions.TodayWorkSeconds()
	breaks := machine.sessions.TodayBreakSeconds()
	required := machine.sessions.TodayRequiredWorkSeconds()

	elapsed := 0
	if active := machine.sessions.ActiveSession(); active != nil {
		elapsed = active.ElapsedSeconds(now)
	}

	return Event{
		Type:             EventProgress,
		State:            machine.state,
		Project:          machine.project,
		Task:             machine.task,
		ElapsedSeconds:   elapsed,
		WorkedSeconds:    worked,
		BreakSeconds:     breaks,
		RequiredSeconds:  required,
		RemainingSeconds: required - worked,
		At:               now,
	}
}

func (machine *Tracker) stateEvent(state State) Event {
	return Event{
		Type:    EventStateChange,
		State:   state,
		Project: machine.project,
		Task:    machine.task,
		At:      machine.clock.Now(),
	}
}

func (machine *Tracker) persistLocked() {
	if err := machine.sessions.Save(); err != nil {
		machine.logger.Error("saving sessions failed", "error", err)
		machine.emitLocked(Event{
			Type:    EventError,
			State:   machine.state,
			Message: err.Error(),
			At:      machine.clock.Now(),
		})
	}
}

func (machine *Tracker) exportLocked() {
	if err := machine.exportWorkbookLocked(); err != nil {
		machine.logger.Warn("report export failed", "error", err)
		machine.emitLocked(Event{
			Type:    EventError,
			State:   machine.state,
			Message: err.Error(),
			At:      machine.clock.Now(),
		})
	}
}

func (machine *Tracker) exportWorkbookLocked() error {
	if machine.exporter == nil {
		return nil
	}
	return machine.exporter.Export(machine.sessions.Sessions(), machine.config.Config().WorkHours)
}

func (machine *Tracker) emit(event Event) {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	machine.emitLocked(event)
}

func (machine *Tracker) emitLocked(event Event) {
	events := append([]chan Event(nil), machine.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
