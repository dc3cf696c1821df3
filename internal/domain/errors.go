package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCalculationNotFound = errors.New("calculation not found")
	ErrAlertNotFound       = errors.New("alert not found")
	ErrAlertResolved       = errors.New("alert already resolved")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

// ValidationError rejects an out-of-range or malformed input before any
// computation runs. It carries the offending field and value so callers can
// build a user-facing message.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// ConfigurationError reports missing or malformed benchmark/threshold
// configuration.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %q: %s", e.Key, e.Reason)
}
