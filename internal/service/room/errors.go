package room

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthorized      = errors.New("not authorized")
	ErrRoomNotFound       = errors.New("room not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrConflict           = errors.New("concurrent room update")
)

// ValidationError carries the human-readable reason for rejecting an input.
// It is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
