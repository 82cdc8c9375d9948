package preferences

import (
	"time"

	"screentimer/internal/core/model"
	"screentimer/internal/platform"
)

// Settings defines editable user preferences.
type Settings struct {
	LookInterval   time.Duration
	ReportInterval time.Duration
	Threshold      float64
	Oversize       model.OversizePolicy
	Strategy       model.Strategy

	IdlePauseEnabled bool
	IdlePauseAfter   time.Duration
}

// DefaultSettings returns default settings for screentimer.
func DefaultSettings() Settings {
	config := model.DefaultTimerConfig()
	return Settings{
		LookInterval:     config.LookInterval,
		ReportInterval:   config.ReportInterval,
		Threshold:        config.Threshold,
		Oversize:         config.Oversize,
		Strategy:         config.Strategy,
		IdlePauseEnabled: true,
		IdlePauseAfter:   2 * time.Minute,
	}
}

// TimerOptions converts settings to explicit timer options. An empty strategy
// selects the default one.
func (settings Settings) TimerOptions() model.TimerOptions {
	options := model.TimerOptions{
		LookInterval:   model.Duration(settings.LookInterval),
		ReportInterval: model.Duration(settings.ReportInterval),
		Threshold:      model.Float(settings.Threshold),
		Oversize:       model.Policy(settings.Oversize),
	}
	if settings.Strategy != "" {
		options.Strategy = model.StrategyOf(settings.Strategy)
	}
	return options
}

// IdleConfig converts settings to the idle notifier configuration.
func (settings Settings) IdleConfig() platform.IdleConfig {
	return platform.IdleConfig{
		HideAfter:     settings.IdlePauseAfter,
		CheckInterval: 5 * time.Second,
	}
}
