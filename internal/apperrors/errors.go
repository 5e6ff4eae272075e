// Package apperrors defines the error taxonomy returned by services:
// not-found, validation failures rejected before any mutation, and
// labeled failures from external stores. Callers decide presentation;
// nothing here is retried or logged on construction.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected input field. Returned before any
// state mutation takes place.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ExternalError labels a failure from an external collaborator
// (database, cache, broker, auth service) with a human-readable
// operation name. External failures are surfaced, never auto-retried.
type ExternalError struct {
	Op      string
	Message string
	Err     error
}

func (e *ExternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ExternalError) Unwrap() error { return e.Err }

// NewExternalError wraps err as a labeled external failure.
func NewExternalError(op, message string, err error) error {
	return &ExternalError{Op: op, Message: message, Err: err}
}

// IsExternal reports whether err is an ExternalError.
func IsExternal(err error) bool {
	var ee *ExternalError
	return errors.As(err, &ee)
}
