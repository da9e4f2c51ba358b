// Package error defines domain-specific errors for the TimeFlow application.
package error

import "errors"

// Timer domain errors.
var (
	// ErrNoActiveTimer is returned when stopping a timer while none is running.
	ErrNoActiveTimer = errors.New("no active timer")
)

// TimerErrorCode defines error codes for timer errors.
type TimerErrorCode string

const (
	// State errors (01XXXX)
	ErrCodeNoActiveTimer      TimerErrorCode = "TMR-010001"
	ErrCodeMissingTimerFields TimerErrorCode = "TMR-010002"
)

// TimerError represents a timer lifecycle error with code and message.
type TimerError struct {
	Code    TimerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TimerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TimerError) Unwrap() error {
	return e.Err
}

// NewTimerError creates a new TimerError with the given code and message.
func NewTimerError(code TimerErrorCode, message string, err error) *TimerError {
	return &TimerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
