package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a production, week or shoot day was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Is allows errors.Is() to match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConfirmationRequired is returned by destructive actions (delete, reset)
	// invoked without explicit user confirmation
	ErrConfirmationRequired = errors.New("confirmation required")
)

// ImportError is returned when a user-supplied file cannot be parsed.
// Unlike field-level gaps, which the normalizer repairs silently, this is
// always surfaced to the user.
type ImportError struct {
	Filename string
	Err      error
}

// Error implements the error interface
func (e *ImportError) Error() string {
	if e.Filename != "" {
		return "import " + e.Filename + ": " + e.Err.Error()
	}
	return "import: " + e.Err.Error()
}

// Unwrap exposes the underlying parse error
func (e *ImportError) Unwrap() error {
	return e.Err
}

// StatusCode implements the HTTPError interface
func (e *ImportError) StatusCode() int {
	return http.StatusBadRequest
}

// Is allows errors.Is() to match against ErrValidation
func (e *ImportError) Is(target error) bool {
	return target == ErrValidation
}
