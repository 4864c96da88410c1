package errors

import (
	"errors"
	"fmt"
)

// Domain error types for the analysis engine

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrExternal indicates a failure reported by an external service
	ErrExternal = errors.New("external service error")
)

// Model call errors

var (
	// ErrModelConnection indicates a transient connectivity failure reaching
	// the language model endpoint. This is the only error kind the agent
	// retry policy considers retryable.
	ErrModelConnection = errors.New("model connection error")

	// ErrModelResponse indicates the model endpoint answered but the response
	// was unusable (empty choices, refusal, malformed body)
	ErrModelResponse = errors.New("unusable model response")
)

// Data errors

var (
	// ErrInsufficientData indicates a calculation was given too few data
	// points to produce a meaningful result
	ErrInsufficientData = errors.New("insufficient data")

	// ErrProviderFailure indicates a capability provider (market data,
	// financial metrics, search) failed to produce a result
	ErrProviderFailure = errors.New("capability provider failure")
)

// DomainError wraps an error with a stable code and message
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions

// New creates a new error from a message
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new error from a format string
func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
