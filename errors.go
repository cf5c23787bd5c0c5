package odometry

import "fmt"

// ConfigError is returned when the estimator is configured with invalid parameters.
// Configuration errors are fatal: the estimator must not start with them.
type ConfigError struct {
	// Param is the name of the offending parameter
	Param string
	// Value is the rejected value
	Value float64
	// Reason describes the violated constraint
	Reason string
}

// NewConfigError creates new ConfigError and returns it
func NewConfigError(param string, val float64, reason string) *ConfigError {
	return &ConfigError{
		Param:  param,
		Value:  val,
		Reason: reason,
	}
}

// Error implements error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Param, e.Value, e.Reason)
}
