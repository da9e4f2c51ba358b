// Package error defines domain-specific errors for the TimeFlow application.
package error

import "errors"

// Time entry domain errors.
var (
	// ErrTimeEntryNotFound is returned when a time entry is not found in the system.
	ErrTimeEntryNotFound = errors.New("time entry not found")

	// ErrActivityNameRequired is returned when an entry has no activity name.
	ErrActivityNameRequired = errors.New("activity name is required")

	// ErrActivityNameTooLong is returned when the activity name exceeds the maximum length.
	ErrActivityNameTooLong = errors.New("activity name too long")

	// ErrEntryCategoryRequired is returned when an entry has no category.
	ErrEntryCategoryRequired = errors.New("category is required")

	// ErrEntryCategoryTooLong is returned when the entry category exceeds the maximum length.
	ErrEntryCategoryTooLong = errors.New("category too long")

	// ErrStartTimeRequired is returned when an entry has no start time.
	ErrStartTimeRequired = errors.New("start time is required")

	// ErrInvalidTimeRange is returned when an end time precedes the start time.
	ErrInvalidTimeRange = errors.New("end time must not be before start time")

	// ErrActiveTimerExists is returned when a second active entry would be created.
	ErrActiveTimerExists = errors.New("another timer is already running")
)

// TimeEntryErrorCode defines error codes for time entry errors.
// Format: TME-XXYYYY where XX is category and YYYY is specific error.
type TimeEntryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeActivityNameRequired   TimeEntryErrorCode = "TME-010001"
	ErrCodeActivityNameTooLong    TimeEntryErrorCode = "TME-010002"
	ErrCodeEntryCategoryRequired  TimeEntryErrorCode = "TME-010003"
	ErrCodeEntryCategoryTooLong   TimeEntryErrorCode = "TME-010004"
	ErrCodeInvalidTimeRange       TimeEntryErrorCode = "TME-010005"
	ErrCodeTimeEntryNotFound      TimeEntryErrorCode = "TME-010006"
	ErrCodeActiveTimerExists      TimeEntryErrorCode = "TME-010007"
	ErrCodeMissingTimeEntryFields TimeEntryErrorCode = "TME-010008"
)

// TimeEntryError represents a time entry error with code and message.
type TimeEntryError struct {
	Code    TimeEntryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TimeEntryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TimeEntryError) Unwrap() error {
	return e.Err
}

// NewTimeEntryError creates a new TimeEntryError with the given code and message.
func NewTimeEntryError(code TimeEntryErrorCode, message string, err error) *TimeEntryError {
	return &TimeEntryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
