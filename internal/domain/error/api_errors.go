// Package error defines domain-specific errors for the TimeFlow application.
package error

// APIErrorCode defines error codes raised at the HTTP boundary.
type APIErrorCode string

const (
	// Request errors (01XXXX)
	ErrCodeInvalidID    APIErrorCode = "API-010001"
	ErrCodeInvalidDate  APIErrorCode = "API-010002"
	ErrCodeInvalidLimit APIErrorCode = "API-010003"

	// Throttling errors (02XXXX)
	ErrCodeRateLimited APIErrorCode = "API-020001"
)
