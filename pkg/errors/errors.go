// Package errors provides structured error types for the bookfair client.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, TUI and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-facing messages that can be shown verbatim as notices
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into a few families:
//   - INVALID_*, VALIDATION: input rejected before any network call
//   - NOT_FOUND, CONFLICT: backend resource state
//   - NETWORK_ERROR, TIMEOUT: transport failures
//   - UNAUTHORIZED, FORBIDDEN, SESSION_EXPIRED: authentication
//   - CART_*, STALL_*, GENRE_REQUIRED: reservation rules
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCartLimit, "Maximum reservation limit of %d stalls reached", 3)
//	if errors.Is(err, errors.ErrCodeCartLimit) {
//	    // Show the notice, keep the cart as-is
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeValidation    Code = "VALIDATION"

	// Backend resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeConflict Code = "CONFLICT"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Authentication errors
	ErrCodeUnauthorized   Code = "UNAUTHORIZED"
	ErrCodeForbidden      Code = "FORBIDDEN"
	ErrCodeSessionExpired Code = "SESSION_EXPIRED"

	// Reservation rules
	ErrCodeCartEmpty       Code = "CART_EMPTY"
	ErrCodeCartLimit       Code = "CART_LIMIT"
	ErrCodeStallReserved   Code = "STALL_RESERVED"
	ErrCodeAlreadyReserved Code = "ALREADY_RESERVED"
	ErrCodeGenreRequired   Code = "GENRE_REQUIRED"
	ErrCodeReservation     Code = "RESERVATION_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// StatusError carries the HTTP status and backend message of a failed call.
type StatusError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("status %d", e.Status)
}

// Code maps the HTTP status to an error code.
func (e *StatusError) Code() Code {
	switch {
	case e.Status == 401:
		return ErrCodeUnauthorized
	case e.Status == 403:
		return ErrCodeForbidden
	case e.Status == 404:
		return ErrCodeNotFound
	case e.Status == 409:
		return ErrCodeConflict
	case e.Status == 400 || e.Status == 422:
		return ErrCodeValidation
	case e.Status == 408 || e.Status == 504:
		return ErrCodeTimeout
	default:
		return ErrCodeNetwork
	}
}
