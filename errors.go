package membridge

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrNotConfigured is returned by user-invoked operations when no API
	// key was resolved from any configuration source.
	ErrNotConfigured = errors.New("membridge is not configured: set MEMBRIDGE_API_KEY or add apiKey to a config file")

	// ErrInvalidConfig is returned when the plugin configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingArgument is returned when a required operation argument is
	// absent or empty.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrFullyPrivate is returned when content to store is nothing but
	// private spans and would strip to empty.
	ErrFullyPrivate = errors.New("content is entirely private")

	// ErrBackend wraps failures from the memory backend on user-invoked
	// paths.
	ErrBackend = errors.New("memory backend request failed")
)

// PluginError represents an error with operation context.
type PluginError struct {
	Op        string // Operation that failed
	Err       error  // Underlying error
	SessionID string // Session ID if applicable
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("%s (session=%s): %v", e.Op, e.SessionID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new PluginError.
func NewPluginError(op string, err error) *PluginError {
	return &PluginError{Op: op, Err: err}
}
