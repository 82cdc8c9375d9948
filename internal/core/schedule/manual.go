package schedule

import (
	"errors"
	"sync"
	"time"
)

// Manual is a virtual-clock scheduler. Nothing fires until Advance is called; ticks
// then run on the caller's goroutine in time order, earliest registration first on ties.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	nextSeq int
	entries []*manualEntry
}

type manualEntry struct {
	owner    *Manual
	seq      int
	interval time.Duration
	next     time.Duration
	tick     func() error
	active   bool
}

// NewManual creates a scheduler whose clock starts at zero.
func NewManual() *Manual {
	return &Manual{}
}

// Every registers tick; the first call happens one interval after the current virtual time.
func (scheduler *Manual) Every(interval time.Duration, tick func() error) Handle {
	if interval <= 0 {
		interval = time.Second
	}
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	entry := &manualEntry{
		owner:    scheduler,
		seq:      scheduler.nextSeq,
		interval: interval,
		next:     scheduler.now + interval,
		tick:     tick,
		active:   true,
	}
	scheduler.nextSeq++
	scheduler.entries = append(scheduler.entries, entry)
	return entry
}

// Now returns the virtual time elapsed since creation.
func (scheduler *Manual) Now() time.Duration {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.now
}

// Active returns the number of live schedules.
func (scheduler *Manual) Active() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.entries)
}

// Advance moves the clock forward by delta, firing every tick that falls due.
// Errors returned by ticks are collected and returned joined; they do not stop the clock.
func (scheduler *Manual) Advance(delta time.Duration) error {
	scheduler.mu.Lock()
	target := scheduler.now + delta
	scheduler.mu.Unlock()

	var errs []error
	for {
		scheduler.mu.Lock()
		entry := scheduler.dueLocked(target)
		if entry == nil {
			scheduler.now = target
			scheduler.mu.Unlock()
			return errors.Join(errs...)
		}
		scheduler.now = entry.next
		entry.next += entry.interval
		tick := entry.tick
		scheduler.mu.Unlock()

		if err := tick(); err != nil {
			errs = append(errs, err)
		}
	}
}

func (scheduler *Manual) dueLocked(target time.Duration) *manualEntry {
	var due *manualEntry
	for _, entry := range scheduler.entries {
		if entry.next > target {
			continue
		}
		if due == nil || entry.next < due.next || (entry.next == due.next && entry.seq < due.seq) {
			due = entry
		}
	}
	return due
}

func (entry *manualEntry) Cancel() {
	scheduler := entry.owner
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if !entry.active {
		return
	}
	entry.active = false
	for index, candidate := range scheduler.entries {
		if candidate == entry {
			scheduler.entries = append(scheduler.entries[:index], scheduler.entries[index+1:]...)
			break
		}
	}
}
