// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid flags, configuration and missing parameters
//   - Catalog errors (200-299): Preset and shorthand lookups
//   - Download errors (700-799): Provider, empty series and filesystem failures
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "years must be at least 1")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeNoData, "no data found for %s", ticker)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeProviderFailure, "failed to fetch history", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeNoData) { ... }
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

// FailureKind classifies why a single download did not produce a file.
type FailureKind string

const (
	FailureNone          FailureKind = ""
	FailureUnknownPreset FailureKind = "unknown_preset"
	FailureNoData        FailureKind = "no_data"
	FailureProvider      FailureKind = "provider"
	FailureFilesystem    FailureKind = "filesystem"
)

// KindOf maps err onto the download failure taxonomy.
// Errors without a recognised code count as provider failures.
func KindOf(err error) FailureKind {
	if err == nil {
		return FailureNone
	}

	switch GetCode(err) {
	case ErrCodeUnknownPreset:
		return FailureUnknownPreset
	case ErrCodeNoData:
		return FailureNoData
	case ErrCodeFilesystemFailure:
		return FailureFilesystem
	default:
		return FailureProvider
	}
}
