package errors

import (
	stdErrors "errors"
	"fmt"
)

// NotFoundError represents a detail lookup that yielded zero catalog results.
// Distinct from UpstreamError: the service answered, the game just isn't there.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("game not found: %q", e.Title)
}

// NewNotFoundError creates a NotFoundError for the given title.
func NewNotFoundError(title string) *NotFoundError {
	return &NotFoundError{Title: title}
}

// IsNotFoundError reports whether err is a NotFoundError (even when wrapped).
func IsNotFoundError(err error) bool {
	var nfErr *NotFoundError
	return stdErrors.As(err, &nfErr)
}
