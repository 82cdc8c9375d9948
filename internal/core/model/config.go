package model

import (
	"fmt"
	"time"
)

// OversizePolicy selects how elements taller than the viewport are measured.
type OversizePolicy string

const (
	// OversizeElementHeight measures the visible fraction against the full element height.
	OversizeElementHeight OversizePolicy = "element_height"
	// OversizeViewportHeight caps the denominator at the viewport height.
	OversizeViewportHeight OversizePolicy = "viewport_height"
)

// Strategy names the geometry rule that turns element and viewport into a visible fraction.
type Strategy string

const (
	// StrategyOverlap is vertical overlap over element height, subject to OversizePolicy.
	StrategyOverlap Strategy = "overlap"
	// StrategyFullyInside counts only elements lying entirely inside the viewport.
	StrategyFullyInside Strategy = "fully_inside"
	// StrategyEntryRatio measures how far the top edge has entered the viewport.
	StrategyEntryRatio Strategy = "entry_ratio"
	// StrategyCentreBand counts elements whose centre lies in the middle half of the viewport.
	StrategyCentreBand Strategy = "centre_band"
)

const (
	DefaultLookInterval   = time.Second
	DefaultReportInterval = 10 * time.Second
	DefaultThreshold      = 0.5
	DefaultOversize       = OversizeElementHeight
	DefaultStrategy       = StrategyOverlap
)

// TimerConfig contains the resolved, immutable settings of a sampling timer.
type TimerConfig struct {
	LookInterval   time.Duration
	ReportInterval time.Duration
	Threshold      float64
	Oversize       OversizePolicy
	Strategy       Strategy
}

// DefaultTimerConfig returns the stock look/report cadence.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		LookInterval:   DefaultLookInterval,
		ReportInterval: DefaultReportInterval,
		Threshold:      DefaultThreshold,
		Oversize:       DefaultOversize,
		Strategy:       DefaultStrategy,
	}
}

// TimerOptions is the construction-time form of TimerConfig.
// A nil field falls back to its default; a set field is used as given, zero included.
type TimerOptions struct {
	LookInterval   *time.Duration
	ReportInterval *time.Duration
	Threshold      *float64
	Oversize       *OversizePolicy
	Strategy       *Strategy
}

// InvalidOptionError describes an option value that cannot be used.
type InvalidOptionError struct {
	Field  string
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Resolve applies defaults to absent fields and validates the result.
func (options TimerOptions) Resolve() (TimerConfig, error) {
	config := DefaultTimerConfig()

	if options.LookInterval != nil {
		if *options.LookInterval <= 0 {
			return config, &InvalidOptionError{Field: "lookInterval", Reason: "must be positive"}
		}
		config.LookInterval = *options.LookInterval
	}
	if options.ReportInterval != nil {
		if *options.ReportInterval <= 0 {
			return config, &InvalidOptionError{Field: "reportInterval", Reason: "must be positive"}
		}
		config.ReportInterval = *options.ReportInterval
	}
	if options.Threshold != nil {
		threshold := *options.Threshold
		if threshold < 0 || threshold > 1 || threshold != threshold {
			return config, &InvalidOptionError{Field: "threshold", Reason: "must be within [0,1]"}
		}
		config.Threshold = threshold
	}
	if options.Oversize != nil {
		switch *options.Oversize {
		case OversizeElementHeight, OversizeViewportHeight:
			config.Oversize = *options.Oversize
		default:
			return config, &InvalidOptionError{Field: "oversize", Reason: fmt.Sprintf("unknown policy %q", *options.Oversize)}
		}
	}
	if options.Strategy != nil {
		switch *options.Strategy {
		case StrategyOverlap, StrategyFullyInside, StrategyEntryRatio, StrategyCentreBand:
			config.Strategy = *options.Strategy
		default:
			return config, &InvalidOptionError{Field: "strategy", Reason: fmt.Sprintf("unknown strategy %q", *options.Strategy)}
		}
	}
	return config, nil
}

// Options converts a resolved config back into fully populated options.
func (config TimerConfig) Options() TimerOptions {
	look := config.LookInterval
	report := config.ReportInterval
	threshold := config.Threshold
	oversize := config.Oversize
	strategy := config.Strategy
	return TimerOptions{
		LookInterval:   &look,
		ReportInterval: &report,
		Threshold:      &threshold,
		Oversize:       &oversize,
		Strategy:       &strategy,
	}
}

// Duration returns a pointer to value, for building TimerOptions inline.
func Duration(value time.Duration) *time.Duration {
	return &value
}

// Float returns a pointer to value, for building TimerOptions inline.
func Float(value float64) *float64 {
	return &value
}

// Policy returns a pointer to value, for building TimerOptions inline.
func Policy(value OversizePolicy) *OversizePolicy {
	return &value
}

// StrategyOf returns a pointer to value, for building TimerOptions inline.
func StrategyOf(value Strategy) *Strategy {
	return &value
}
