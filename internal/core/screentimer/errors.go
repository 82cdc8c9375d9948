package screentimer

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("screentimer: invalid configuration")

// ConfigurationError is returned by New when the timer cannot be built.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("screentimer: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("screentimer: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// CallbackError wraps a failure returned by the report callback.
type CallbackError struct {
	Report Report
	Err    error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("screentimer: report callback (count=%d): %v", e.Report.Count, e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}
