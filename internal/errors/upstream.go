package errors

import (
	stdErrors "errors"
	"fmt"
)

// UpstreamError represents a failed call to a required external service
// (generation or catalog). The call chain that needs the service fails;
// callers surface a generic retry-later message and log the cause.
type UpstreamError struct {
	Service    string
	StatusCode int    // 0 when the failure was transport-level
	Message    string // response snippet or transport error text
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s request failed (HTTP %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s request failed: %s", e.Service, e.Message)
}

// NewUpstreamError creates an UpstreamError for the given service.
func NewUpstreamError(service string, statusCode int, message string) *UpstreamError {
	return &UpstreamError{Service: service, StatusCode: statusCode, Message: message}
}

// IsUpstreamError reports whether err is an UpstreamError (even when wrapped).
func IsUpstreamError(err error) bool {
	var upErr *UpstreamError
	return stdErrors.As(err, &upErr)
}
