package fynehost

import (
	"time"

	"fyne.io/fyne/v2"

	"screentimer/internal/core/schedule"
)

// Scheduler runs every tick of the wrapped scheduler on the fyne UI goroutine, so
// ticks never interleave with each other or with widget updates.
type Scheduler struct {
	base schedule.Scheduler
	run  func(func())
}

// NewScheduler wraps base with fyne.DoAndWait.
func NewScheduler(base schedule.Scheduler) *Scheduler {
	return &Scheduler{base: base, run: fyne.DoAndWait}
}

func (scheduler *Scheduler) Every(interval time.Duration, tick func() error) schedule.Handle {
	return scheduler.base.Every(interval, func() error {
		var err error
		scheduler.run(func() {
			err = tick()
		})
		return err
	})
}
