package schedule

import "time"

// Handle cancels a periodic schedule. Cancel must be safe to call repeatedly.
type Handle interface {
	Cancel()
}

// Scheduler registers repeating callbacks.
type Scheduler interface {
	// Every calls tick once per interval until the returned handle is cancelled.
	// An error returned by tick is surfaced by the scheduler; it never stops the schedule.
	Every(interval time.Duration, tick func() error) Handle
}

// HandleFunc adapts a function to Handle.
type HandleFunc func()

func (fn HandleFunc) Cancel() {
	if fn != nil {
		fn()
	}
}
