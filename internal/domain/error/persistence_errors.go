// Package error defines domain-specific errors for the TimeFlow application.
package error

import "errors"

// Persistence errors.
var (
	// ErrBackendUnavailable is returned when the persistence provider is unreachable or fails.
	ErrBackendUnavailable = errors.New("persistence backend unavailable")
)

// PersistenceErrorCode defines error codes for persistence errors.
type PersistenceErrorCode string

const (
	ErrCodeBackendUnavailable PersistenceErrorCode = "PER-010001"
)

// PersistenceError wraps a provider failure. It matches ErrBackendUnavailable
// with errors.Is while still unwrapping to the provider error.
type PersistenceError struct {
	Code    PersistenceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrBackendUnavailable.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

// NewBackendUnavailableError wraps a provider error as a PersistenceError.
func NewBackendUnavailableError(message string, err error) *PersistenceError {
	return &PersistenceError{
		Code:    ErrCodeBackendUnavailable,
		Message: message,
		Err:     err,
	}
}
