// Package apperror defines the application error type and the sentinel
// errors shared by all domains.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents an application error with HTTP status and error code
type Error struct {
	HTTPStatus int
	Code       string
	Message    string
	Internal   error
	Details    map[string]any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the internal error
func (e *Error) Unwrap() error {
	return e.Internal
}

// Is matches errors by code so sentinel comparisons survive WithMessage/WithInternal copies
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithInternal returns a copy of the error with an internal error attached
func (e *Error) WithInternal(err error) *Error {
	return &Error{
		HTTPStatus: e.HTTPStatus,
		Code:       e.Code,
		Message:    e.Message,
		Internal:   err,
		Details:    e.Details,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *Error) WithMessage(message string) *Error {
	return &Error{
		HTTPStatus: e.HTTPStatus,
		Code:       e.Code,
		Message:    message,
		Internal:   e.Internal,
		Details:    e.Details,
	}
}

// WithDetails returns a copy of the error with details attached
func (e *Error) WithDetails(details map[string]any) *Error {
	return &Error{
		HTTPStatus: e.HTTPStatus,
		Code:       e.Code,
		Message:    e.Message,
		Internal:   e.Internal,
		Details:    details,
	}
}

// New creates a new application error
func New(status int, code, message string) *Error {
	return &Error{
		HTTPStatus: status,
		Code:       code,
		Message:    message,
	}
}

// Common error definitions
var (
	// Resource errors
	ErrNotFound = New(http.StatusNotFound, "not_found", "Resource not found")
	ErrConflict = New(http.StatusConflict, "conflict", "Resource already exists")

	// ErrInvalidState covers state-machine violations such as rolling back an
	// environment that has nothing to roll back to
	ErrInvalidState = New(http.StatusConflict, "invalid_state", "Operation not valid in current state")

	// Validation errors
	ErrBadRequest = New(http.StatusBadRequest, "bad_request", "Invalid request")
	ErrValidation = New(http.StatusUnprocessableEntity, "validation_error", "Validation failed")

	// Server errors
	ErrInternal    = New(http.StatusInternalServerError, "internal_error", "An internal error occurred")
	ErrDatabase    = New(http.StatusInternalServerError, "database_error", "Database operation failed")
	ErrUnavailable = New(http.StatusServiceUnavailable, "unavailable", "Service temporarily unavailable")
)

// NewNotFound creates a not found error for a resource type and identifier
func NewNotFound(resourceType, id string) *Error {
	return ErrNotFound.WithMessage(fmt.Sprintf("%s '%s' not found", resourceType, id))
}

// NewValidation creates a validation error with a custom message
func NewValidation(message string) *Error {
	return ErrValidation.WithMessage(message)
}

// NewInvalidState creates an invalid state error with a custom message
func NewInvalidState(message string) *Error {
	return ErrInvalidState.WithMessage(message)
}

// IsNotFound reports whether err is (or wraps) a not_found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
