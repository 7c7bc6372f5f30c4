// Package errors provides unified error handling for the service.
// It implements structured error types with machine-readable codes, HTTP
// status mapping, and retryable detection. Every collaborator returns these
// typed errors; the transport boundary alone maps them to responses.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// InvalidInput creates an AppError naming a violated input constraint.
func InvalidInput(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

// Unprocessable creates an AppError for a request body that failed binding.
func Unprocessable(message string) *AppError {
	return New(ErrCodeMissingField, message, http.StatusUnprocessableEntity)
}

// ServiceUnavailable creates an AppError for an unavailable collaborator.
func ServiceUnavailable(service, message string) *AppError {
	e := New(ErrCodeServiceUnavailable, message, http.StatusServiceUnavailable)
	return e.WithDetail("service", service)
}

// ExternalService creates an AppError for a failed external-service operation.
func ExternalService(service, message string) *AppError {
	e := New(ErrCodeExternalService, message, http.StatusInternalServerError)
	return e.WithDetail("service", service)
}

// Internal creates an AppError for an unexpected fault, carrying the fault's
// textual description.
func Internal(err error) *AppError {
	msg := "An unexpected error occurred."
	if err != nil {
		msg = fmt.Sprintf("An unexpected error occurred: %v", err)
	}
	e := New(ErrCodeInternal, msg, http.StatusInternalServerError)
	e.Cause = err
	return e
}
