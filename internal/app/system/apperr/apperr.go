// Package apperr defines the error taxonomy shared by the stores and the
// HTTP layer. Stores return these; handlers map them to status codes.
// Nothing is logged-and-swallowed: every failure travels back to the
// caller as one of these values (or wraps one).
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced course or enrollment does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotOwner means the caller is not the course's instructor or the
	// enrollment's student.
	ErrNotOwner = errors.New("not authorized")

	// ErrDuplicateEnrollment means an enrollment for the same
	// (student, course) pair already exists.
	ErrDuplicateEnrollment = errors.New("already enrolled in this course")

	// ErrConflict means a concurrent modification was detected, e.g. a
	// cascade delete that could not complete atomically.
	ErrConflict = errors.New("conflicting concurrent modification")
)

// ValidationError reports malformed or out-of-range input. It is never
// silently clamped away; the caller gets the message back.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a *ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
