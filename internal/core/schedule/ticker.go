package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Ticker runs every schedule on its own goroutine driven by a time.Ticker.
type Ticker struct {
	onError func(error)
	ticks   atomic.Int64
}

// NewTicker creates a wall-clock scheduler. onError receives tick failures and may be nil.
func NewTicker(onError func(error)) *Ticker {
	return &Ticker{onError: onError}
}

// Every starts a ticking goroutine. Non-positive intervals fall back to one second.
func (scheduler *Ticker) Every(interval time.Duration, tick func() error) Handle {
	if interval <= 0 {
		interval = time.Second
	}
	handle := &tickerHandle{stopCh: make(chan struct{})}
	go scheduler.run(interval, tick, handle.stopCh)
	return handle
}

// Ticks returns how many ticks have been delivered across all schedules.
func (scheduler *Ticker) Ticks() int64 {
	return scheduler.ticks.Load()
}

func (scheduler *Ticker) run(interval time.Duration, tick func() error, stopCh chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// A cancel racing with the tick wins.
			select {
			case <-stopCh:
				return
			default:
			}
			scheduler.ticks.Add(1)
			if err := tick(); err != nil && scheduler.onError != nil {
				scheduler.onError(err)
			}
		}
	}
}

type tickerHandle struct {
	once   sync.Once
	stopCh chan struct{}
}

// Cancel signals the goroutine without waiting for it, so it is safe to call from
// inside a tick.
func (handle *tickerHandle) Cancel() {
	handle.once.Do(func() {
		close(handle.stopCh)
	})
}
