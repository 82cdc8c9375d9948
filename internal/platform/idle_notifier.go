package platform

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"screentimer/internal/core/screentimer"
)

// IdleConfig controls when an idle user counts as "not looking".
type IdleConfig struct {
	HideAfter     time.Duration
	CheckInterval time.Duration
}

// IdleNotifier reports the page as hidden once the user has been idle for
// HideAfter, and visible again on the next input.
type IdleNotifier struct {
	*screentimer.Broadcast
	mu       sync.Mutex
	provider IdleProvider
	config   IdleConfig
	logger   *slog.Logger
	stopCh   chan struct{}
	running  bool
}

// NewIdleNotifier creates a notifier; call Start to begin polling.
func NewIdleNotifier(provider IdleProvider, config IdleConfig, logger *slog.Logger) *IdleNotifier {
	if config.HideAfter <= 0 {
		config.HideAfter = 2 * time.Minute
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IdleNotifier{
		Broadcast: screentimer.NewBroadcast(),
		provider:  provider,
		config:    config,
		logger:    logger,
	}
}

// Start launches the polling loop. It is a no-op when already running.
func (notifier *IdleNotifier) Start() {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.running {
		return
	}
	notifier.running = true
	notifier.stopCh = make(chan struct{})
	go notifier.run(notifier.stopCh)
}

// Stop terminates the polling loop.
func (notifier *IdleNotifier) Stop() {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if !notifier.running {
		return
	}
	close(notifier.stopCh)
	notifier.running = false
}

// Running reports whether the polling loop is active.
func (notifier *IdleNotifier) Running() bool {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.running
}

// Poll samples the idle duration once and publishes the resulting state.
func (notifier *IdleNotifier) Poll() error {
	idle, err := notifier.provider.IdleDuration()
	if err != nil {
		return err
	}
	notifier.Publish(idle >= notifier.config.HideAfter)
	return nil
}

func (notifier *IdleNotifier) run(stopCh chan struct{}) {
	ticker := time.NewTicker(notifier.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			err := notifier.Poll()
			if err == nil {
				continue
			}
			if errors.Is(err, ErrIdleUnsupported) {
				notifier.logger.Info("idle detection unavailable, idle pause disabled")
				notifier.release(stopCh)
				return
			}
			notifier.logger.Warn("idle check failed", "error", err)
		}
	}
}

func (notifier *IdleNotifier) release(stopCh chan struct{}) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.running && notifier.stopCh == stopCh {
		close(stopCh)
		notifier.running = false
	}
}
