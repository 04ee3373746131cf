package model

import "fmt"

// ConfigError reports an invalid parameter or sampler range, detected at
// construction time before any simulation day runs.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// InvariantError reports a token pool that would go negative during a day
// transition. Default parameters never trigger this; malformed custom
// parameters can.
type InvariantError struct {
	Day   int
	Pool  string
	Value float64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("state invariant violated on day %d: %s pool would be %.4f", e.Day, e.Pool, e.Value)
}
