// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories that map onto the failure classes
// reported by the trading-calendar CLI:
//   - General errors (1-99): Unknown errors
//   - Configuration errors (100-199): Missing credential, invalid configuration
//   - Authentication errors (200-299): Refresh token exchange failures
//   - Fetch errors (300-399): Trading calendar request failures
//   - Schema errors (400-499): Records that cannot be coerced to the columnar schema
//   - Filesystem errors (500-599): Output directory, JSON and Parquet write failures
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeMissingCredential, "JQUANTS_REFRESH_TOKEN is not set")
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeIOFailed, "failed to create output directory", originalErr)
//
//	// Check error class
//	if errors.KindOf(err) == errors.KindAuth { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// KindOf returns the failure class of err. Errors outside the taxonomy are KindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	return GetCode(err).Kind()
}

// HTTPError carries the status and body of a non-2xx API response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("http status %s", e.Status)
	}

	return fmt.Sprintf("http status %d", e.StatusCode)
}

// AsHTTPError returns the HTTPError in err's chain, if any.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}

	return nil, false
}
