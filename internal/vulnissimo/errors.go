package vulnissimo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBaseURL is returned when the configured API base URL is not an absolute URL
	ErrInvalidBaseURL = errors.New("vulnissimo API base URL must be an absolute URL")
	// ErrEmptyTarget is returned when a scan is requested without a target
	ErrEmptyTarget = errors.New("scan target must not be empty")
	// ErrRequestFailed is returned when a Vulnissimo API request cannot be sent
	ErrRequestFailed = errors.New("vulnissimo API request failed")
	// ErrUnexpectedStatus is returned when the Vulnissimo API returns an unexpected HTTP status
	ErrUnexpectedStatus = errors.New("unexpected vulnissimo API response status")
	// ErrDecodeResponse is returned when a Vulnissimo API response body cannot be decoded
	ErrDecodeResponse = errors.New("could not decode vulnissimo API response")
)

// APIError is returned for every failure to create or fetch a scan. Message is
// meant to be shown to the user as is.
type APIError struct {
	// StatusCode is the HTTP status of the response, zero when no response was received
	StatusCode int
	// Message is a human readable description of the failure
	Message string
	// Err is the underlying cause
	Err error
}

// Error returns the human readable message
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause
func (e *APIError) Unwrap() error {
	return e.Err
}

// newAPIError builds an APIError with a formatted message
func newAPIError(status int, cause error, format string, args ...any) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf(format, args...),
		Err:        cause,
	}
}
