package tracker

import "time"

// State represents the current tracking mode.
type State string

const (
	StateIdle    State = "idle"
	StateWorking State = "working"
	StateOnBreak State = "on_break"
)

// EventType defines the type of tracker event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventError       EventType = "error"
)

// Event represents a tracker update for observers.
type Event struct {
	Type             EventType
	State            State
	Project          string
	Task             string
	ElapsedSeconds   int
	WorkedSeconds    int
	BreakSeconds     int
	RequiredSeconds  int
	RemainingSeconds int
	Message          string
	At               time.Time
}
