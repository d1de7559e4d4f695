// Package errors defines the application error catalogue for the
// provenance protocol. Every error crossing the external interface is
// structured: an error kind plus human-readable detail, never a raw
// backend failure.
package errors

import (
	"net/http"

	"truetrace/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrValidationFailed covers malformed or missing caller input.
	// Caller's fault, never retried automatically.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// ErrEncodingFailed covers payload text that is not representable
	// (not valid UTF-8).
	ErrEncodingFailed = NewBaseError(
		http.StatusBadRequest,
		"ENCODING_FAILED",
		"Payload text is not valid UTF-8",
		"",
	)

	// ErrRecordNotFound is the chain anchor failure: a retailer acted on a
	// product no manufacturer ever registered.
	ErrRecordNotFound = NewBaseError(
		http.StatusNotFound,
		"RECORD_NOT_FOUND",
		"No manufacturer record exists for this product",
		"",
	)

	// ErrNoRecordForSlot means verification was attempted against a slot
	// that has never been written. Distinct from a commitment mismatch:
	// there is nothing to compare against.
	ErrNoRecordForSlot = NewBaseError(
		http.StatusNotFound,
		"NO_RECORD_FOR_SLOT",
		"No commitment registered for this slot",
		"",
	)

	// ErrRegistryUnavailable means the backing ledger rejected the
	// operation or was unreachable. Safe to retry with backoff; without a
	// receipt the caller must not assume the write happened.
	ErrRegistryUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"REGISTRY_UNAVAILABLE",
		"Commitment registry is unavailable",
		"",
	)

	// ErrInternalError is the fallback for anything unexpected.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// RegistryExecuteError wraps a backend ledger failure, implementing the
// AppError interface while keeping the cause available for logs.
type RegistryExecuteError struct {
	err     error
	details string
}

// NewRegistryExecuteError creates a registry-backend error.
func NewRegistryExecuteError(err error, details string) AppError {
	return &RegistryExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *RegistryExecuteError) Error() string {
	return errors.Wrap(e.err, "registry execution failed").Error()
}

// Unwrap exposes the backend cause for errors.Is/As.
func (e *RegistryExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *RegistryExecuteError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *RegistryExecuteError) ErrorCode() string {
	return "REGISTRY_UNAVAILABLE"
}

// Message returns the user-friendly error message
func (e *RegistryExecuteError) Message() string {
	return "Commitment registry is unavailable"
}

// Details returns detailed error information
func (e *RegistryExecuteError) Details() string {
	return e.details
}
