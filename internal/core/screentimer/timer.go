package screentimer

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"screentimer/internal/core/model"
	"screentimer/internal/core/schedule"
	"screentimer/internal/core/visibility"
)

// Callback receives every non-empty report. A returned error is handed to the
// scheduler that ran the report tick.
type Callback func(Report) error

// Environment carries the host collaborators a Timer needs.
type Environment struct {
	Scheduler schedule.Scheduler
	Viewport  visibility.ViewportSource
	// Notifier is optional; without it the timer never pauses on its own.
	Notifier Notifier
	// Strategy is optional and defaults to visibility.Overlap with the configured policy.
	Strategy visibility.IntersectionStrategy
	Logger   *slog.Logger
}

type schedules struct {
	look   schedule.Handle
	report schedule.Handle
}

// Timer accumulates how long an element stays visible, sampling on a look interval
// and reporting on an independent report interval.
type Timer struct {
	mu          sync.Mutex
	config      model.TimerConfig
	probe       *visibility.Probe
	callback    Callback
	scheduler   schedule.Scheduler
	logger      *slog.Logger
	handles     schedules
	generation  uint64
	counter     int
	started     bool
	destroyed   bool
	unsubscribe func()
	events      []chan Event
}

// New validates its inputs, starts both schedules and subscribes to page visibility.
func New(ref visibility.ElementRef, callback Callback, options model.TimerOptions, env Environment) (*Timer, error) {
	if !ref.Valid() {
		return nil, &ConfigurationError{Field: "element", Reason: "element reference is missing"}
	}
	config, err := options.Resolve()
	if err != nil {
		field := "options"
		var invalid *model.InvalidOptionError
		if errors.As(err, &invalid) {
			field = invalid.Field
		}
		return nil, &ConfigurationError{Field: field, Err: err}
	}
	if env.Scheduler == nil {
		return nil, &ConfigurationError{Field: "scheduler", Reason: "scheduler is required"}
	}
	if env.Viewport == nil {
		return nil, &ConfigurationError{Field: "viewport", Reason: "viewport source is required"}
	}

	strategy := env.Strategy
	if strategy == nil {
		strategy = visibility.StrategyFor(config)
	}
	logger := env.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if callback == nil {
		callback = func(Report) error { return nil }
	}

	timer := &Timer{
		config:    config,
		probe:     visibility.NewProbe(ref, env.Viewport, strategy, config.Threshold),
		callback:  callback,
		scheduler: env.Scheduler,
		logger:    logger,
	}
	timer.Start(false)
	if env.Notifier != nil {
		timer.unsubscribe = env.Notifier.Subscribe(timer.handlePageVisibility)
	}
	return timer, nil
}

// Config returns the resolved configuration.
func (timer *Timer) Config() model.TimerConfig {
	return timer.config
}

// OnScreen reports whether the element is sufficiently visible right now.
func (timer *Timer) OnScreen() bool {
	return timer.probe.OnScreen()
}

// Running reports whether both schedules are live.
func (timer *Timer) Running() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.started
}

// State returns the lifecycle state.
func (timer *Timer) State() State {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.stateLocked()
}

// Pending returns the visible look ticks accumulated since the last report.
func (timer *Timer) Pending() int {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.counter
}

// Subscribe registers a new observer channel. Sends never block; slow observers miss events.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.destroyed {
		close(ch)
		return ch
	}
	timer.events = append(timer.events, ch)
	return ch
}

// Start creates both schedules. When already running it does nothing unless force
// is set, in which case the schedules are torn down and recreated in phase.
func (timer *Timer) Start(force bool) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.destroyed || (timer.started && !force) {
		return
	}
	timer.startLocked()
	timer.logger.Debug("screentimer started", "look", timer.config.LookInterval, "report", timer.config.ReportInterval, "forced", force)
	timer.emitLocked(Event{Type: EventStarted, State: StateRunning, At: time.Now()})
}

// Stop cancels both schedules. When already stopped it does nothing unless force is set.
func (timer *Timer) Stop(force bool) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.destroyed || (!timer.started && !force) {
		return
	}
	timer.stopLocked()
	timer.logger.Debug("screentimer stopped", "pending", timer.counter, "forced", force)
	timer.emitLocked(Event{Type: EventStopped, State: StateStopped, At: time.Now()})
}

// Reset restarts both schedules in phase with an empty counter. The timer is
// running afterwards whatever its previous state.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.destroyed {
		return
	}
	timer.stopLocked()
	timer.counter = 0
	timer.startLocked()
	timer.logger.Debug("screentimer reset")
	timer.emitLocked(Event{Type: EventReset, State: StateRunning, At: time.Now()})
}

// Destroy stops the timer, drops the visibility subscription and closes observer
// channels. It is terminal: every later call is a no-op. A timer that is never
// destroyed keeps its notifier subscription for the notifier's lifetime.
func (timer *Timer) Destroy() {
	timer.mu.Lock()
	if timer.destroyed {
		timer.mu.Unlock()
		return
	}
	if timer.started {
		timer.stopLocked()
	}
	timer.emitLocked(Event{Type: EventDestroyed, State: StateDestroyed, At: time.Now()})
	timer.destroyed = true
	unsubscribe := timer.unsubscribe
	timer.unsubscribe = nil
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	for _, ch := range events {
		close(ch)
	}
	timer.logger.Debug("screentimer destroyed")
}

func (timer *Timer) handlePageVisibility(hidden bool) {
	if hidden {
		timer.Stop(true)
		timer.emit(Event{Type: EventPageHidden, State: timer.State(), At: time.Now()})
		return
	}
	timer.emit(Event{Type: EventPageVisible, State: timer.State(), At: time.Now()})
	timer.Start(false)
}

func (timer *Timer) startLocked() {
	timer.cancelLocked()
	generation := timer.generation
	timer.handles = schedules{
		look: timer.scheduler.Every(timer.config.LookInterval, func() error {
			timer.look(generation)
			return nil
		}),
		report: timer.scheduler.Every(timer.config.ReportInterval, func() error {
			return timer.report(generation)
		}),
	}
	timer.started = true
}

func (timer *Timer) stopLocked() {
	timer.cancelLocked()
	timer.started = false
}

// cancelLocked drops both handles and invalidates ticks already in flight.
func (timer *Timer) cancelLocked() {
	if timer.handles.look != nil {
		timer.handles.look.Cancel()
	}
	if timer.handles.report != nil {
		timer.handles.report.Cancel()
	}
	timer.handles = schedules{}
	timer.generation++
}

func (timer *Timer) look(generation uint64) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.started || generation != timer.generation {
		return
	}
	if timer.probe.OnScreen() {
		timer.counter++
	}
}

func (timer *Timer) report(generation uint64) error {
	timer.mu.Lock()
	if !timer.started || generation != timer.generation || timer.counter == 0 {
		timer.mu.Unlock()
		return nil
	}
	count := timer.counter
	timer.counter = 0
	report := Report{
		Count:   count,
		Seconds: float64(count) * timer.config.LookInterval.Seconds(),
		Elapsed: time.Duration(count) * timer.config.LookInterval,
	}
	timer.emitLocked(Event{Type: EventReport, State: StateRunning, Report: report, At: time.Now()})
	callback := timer.callback
	timer.mu.Unlock()

	if err := callback(report); err != nil {
		return &CallbackError{Report: report, Err: err}
	}
	return nil
}

func (timer *Timer) stateLocked() State {
	switch {
	case timer.destroyed:
		return StateDestroyed
	case timer.started:
		return StateRunning
	default:
		return StateStopped
	}
}

func (timer *Timer) emit(event Event) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.emitLocked(event)
}

func (timer *Timer) emitLocked(event Event) {
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}
