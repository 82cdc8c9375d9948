package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"screentimer/internal/core/schedule"
	"screentimer/internal/core/screentimer"
	"screentimer/internal/core/visibility"
	"screentimer/internal/log"
	"screentimer/internal/platform"
	"screentimer/internal/ui/preferences"
)

// Deps carries the host pieces every timer of a session is built from.
type Deps struct {
	Scheduler schedule.Scheduler
	Viewport  visibility.ViewportSource
	Element   visibility.ElementRef
	// Foreground is optional and usually the window lifecycle.
	Foreground screentimer.Notifier
	// IdleProvider is optional; without it idle pause is unavailable.
	IdleProvider platform.IdleProvider
	// OnTimerReport is optional and sees every report as the timer delivers it.
	OnTimerReport func(screentimer.Report)
	Logger        *slog.Logger
}

// Totals is the visible time accumulated across every report of the session.
type Totals struct {
	Visible time.Duration
	Reports int
}

// Session owns the current timer and rebuilds it whenever settings change,
// since a timer's configuration is fixed at construction.
type Session struct {
	mu       sync.Mutex
	deps     Deps
	logger   *slog.Logger
	settings preferences.Settings
	pause    *screentimer.Broadcast
	onReport func(Totals)
	onHidden func(bool)
	totals   Totals
	timer    *screentimer.Timer
	idle     *platform.IdleNotifier
	notifier *screentimer.Merged
	closed   bool
}

// New builds the first timer from settings. onReport may be nil.
func New(deps Deps, settings preferences.Settings, onReport func(Totals)) (*Session, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	session := &Session{
		deps:     deps,
		logger:   logger,
		pause:    screentimer.NewBroadcast(),
		onReport: onReport,
	}
	if err := session.Apply(settings); err != nil {
		return nil, err
	}
	return session, nil
}

// Apply validates settings and replaces the running timer with one built from
// them. Invalid settings leave the current timer untouched. Totals survive and
// the ticks the old timer had not yet reported are added to them.
func (session *Session) Apply(settings preferences.Settings) error {
	if _, err := settings.TimerOptions().Resolve(); err != nil {
		return fmt.Errorf("apply settings: %w", err)
	}

	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return nil
	}
	old := session.detachLocked()
	session.mu.Unlock()
	old.teardown()
	session.flush(old.timer)

	sources := []screentimer.Notifier{session.pause}
	if session.deps.Foreground != nil {
		sources = append(sources, session.deps.Foreground)
	}
	var idle *platform.IdleNotifier
	if settings.IdlePauseEnabled && session.deps.IdleProvider != nil {
		idle = platform.NewIdleNotifier(session.deps.IdleProvider, settings.IdleConfig(), log.Component(session.logger, "idle"))
		sources = append(sources, idle)
	}
	notifier := screentimer.Merge(sources...)
	notifier.Subscribe(session.handleHidden)

	timer, err := screentimer.New(session.deps.Element, session.handleReport, settings.TimerOptions(), screentimer.Environment{
		Scheduler: session.deps.Scheduler,
		Viewport:  session.deps.Viewport,
		Notifier:  notifier,
		Logger:    log.Component(session.logger, "timer"),
	})
	if err != nil {
		notifier.Close()
		return err
	}
	if notifier.Hidden() {
		timer.Stop(false)
	}
	if idle != nil {
		idle.Start()
	}

	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		parts{timer: timer, idle: idle, notifier: notifier}.teardown()
		return nil
	}
	session.settings = settings
	session.timer = timer
	session.idle = idle
	session.notifier = notifier
	onHidden := session.onHidden
	session.mu.Unlock()

	if onHidden != nil {
		onHidden(notifier.Hidden())
	}

	session.logger.Info("timer configured",
		"look", settings.LookInterval,
		"report", settings.ReportInterval,
		"threshold", settings.Threshold,
		"oversize", settings.Oversize,
		"strategy", timer.Config().Strategy,
		"idle", idle != nil,
	)
	return nil
}

// Settings returns the settings of the current timer.
func (session *Session) Settings() preferences.Settings {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.settings
}

// Timer returns the current timer. It changes on every Apply.
func (session *Session) Timer() *screentimer.Timer {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.timer
}

// Totals returns the accumulated visible time.
func (session *Session) Totals() Totals {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.totals
}

// Hidden reports whether sampling is held by the user pause, the window being in
// the background or the user being idle.
func (session *Session) Hidden() bool {
	session.mu.Lock()
	notifier := session.notifier
	session.mu.Unlock()
	return notifier != nil && notifier.Hidden()
}

// SetOnHidden registers handler for hidden transitions of the current timer and
// calls it once with the present state. It replaces any earlier handler.
func (session *Session) SetOnHidden(handler func(hidden bool)) {
	session.mu.Lock()
	session.onHidden = handler
	session.mu.Unlock()
	if handler != nil {
		handler(session.Hidden())
	}
}

// SetPaused pauses or resumes sampling. A paused session stays paused across
// Apply and ignores the window coming back to the foreground.
func (session *Session) SetPaused(paused bool) {
	session.pause.Publish(paused)
}

// Paused reports whether the user paused sampling.
func (session *Session) Paused() bool {
	return session.pause.Hidden()
}

// TogglePause flips the pause state and returns the new one.
func (session *Session) TogglePause() bool {
	paused := !session.Paused()
	session.SetPaused(paused)
	return paused
}

// Reset clears the totals and restarts the timer in phase. A hidden session
// stays stopped.
func (session *Session) Reset() {
	session.mu.Lock()
	timer := session.timer
	notifier := session.notifier
	session.totals = Totals{}
	onReport := session.onReport
	session.mu.Unlock()

	if timer != nil {
		timer.Reset()
		if notifier != nil && notifier.Hidden() {
			timer.Stop(false)
		}
	}
	if onReport != nil {
		onReport(Totals{})
	}
}

// Close destroys the timer and stops idle polling. Later calls do nothing.
func (session *Session) Close() {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return
	}
	session.closed = true
	old := session.detachLocked()
	session.mu.Unlock()
	old.teardown()
}

func (session *Session) handleReport(report screentimer.Report) error {
	if session.deps.OnTimerReport != nil {
		session.deps.OnTimerReport(report)
	}
	session.mu.Lock()
	session.totals.Visible += report.Elapsed
	session.totals.Reports++
	totals := session.totals
	onReport := session.onReport
	session.mu.Unlock()

	session.logger.Debug("visible time reported", "count", report.Count, "seconds", report.Seconds, "total", totals.Visible)
	if onReport != nil {
		onReport(totals)
	}
	return nil
}

// flush books the ticks a destroyed timer had counted but not reported.
func (session *Session) flush(timer *screentimer.Timer) {
	if timer == nil {
		return
	}
	count := timer.Pending()
	if count == 0 {
		return
	}
	look := timer.Config().LookInterval
	_ = session.handleReport(screentimer.Report{
		Count:   count,
		Seconds: float64(count) * look.Seconds(),
		Elapsed: time.Duration(count) * look,
	})
}

func (session *Session) handleHidden(hidden bool) {
	session.mu.Lock()
	onHidden := session.onHidden
	session.mu.Unlock()
	if onHidden != nil {
		onHidden(hidden)
	}
}

type parts struct {
	timer    *screentimer.Timer
	idle     *platform.IdleNotifier
	notifier *screentimer.Merged
}

func (session *Session) detachLocked() parts {
	old := parts{timer: session.timer, idle: session.idle, notifier: session.notifier}
	session.timer = nil
	session.idle = nil
	session.notifier = nil
	return old
}

func (old parts) teardown() {
	if old.timer != nil {
		old.timer.Destroy()
	}
	if old.notifier != nil {
		old.notifier.Close()
	}
	if old.idle != nil {
		old.idle.Stop()
	}
}
