package screentimer

import "time"

// State is the lifecycle state of a Timer.
type State string

const (
	StateStopped   State = "stopped"
	StateRunning   State = "running"
	StateDestroyed State = "destroyed"
)

// EventType defines the type of Timer event.
type EventType string

const (
	EventStarted     EventType = "started"
	EventStopped     EventType = "stopped"
	EventReport      EventType = "report"
	EventReset       EventType = "reset"
	EventPageHidden  EventType = "page_hidden"
	EventPageVisible EventType = "page_visible"
	EventDestroyed   EventType = "destroyed"
)

// Report is the payload delivered on every non-empty report tick.
type Report struct {
	// Count is the number of look ticks that found the element visible.
	Count int
	// Seconds is Count multiplied by the look interval in seconds.
	Seconds float64
	// Elapsed is the same quantity as a duration.
	Elapsed time.Duration
}

// Event represents a Timer update for observers.
type Event struct {
	Type   EventType
	State  State
	Report Report
	At     time.Time
}
