package errors

import (
	stdErrors "errors"
	"fmt"
)

// NotConfiguredError represents a missing credential for a required service.
// It is raised before any external call is attempted.
type NotConfiguredError struct {
	Service string
	Key     string // config key or environment variable that is missing
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("%s is not configured (missing %s)", e.Service, e.Key)
}

// NewNotConfiguredError creates a NotConfiguredError for the given service and config key.
func NewNotConfiguredError(service, key string) *NotConfiguredError {
	return &NotConfiguredError{Service: service, Key: key}
}

// IsNotConfiguredError reports whether err is a NotConfiguredError (even when wrapped).
func IsNotConfiguredError(err error) bool {
	var confErr *NotConfiguredError
	return stdErrors.As(err, &confErr)
}
