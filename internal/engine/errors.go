// internal/engine/errors.go
package engine

import (
	"context"
	"errors"
	"fmt"
)

// Common engine errors
var (
	ErrBrowserNotFound = errors.New("chrome browser not found")
	ErrTimeout         = errors.New("timed out waiting for search results")
	ErrNoListings      = errors.New("no product listings found")
	ErrInvalidQuery    = errors.New("invalid search query")
	ErrParseError      = errors.New("failed to parse page")
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeBrowser      ErrorCode = "BROWSER"
	ErrCodeNavigation   ErrorCode = "NAVIGATION"
	ErrCodeParseError   ErrorCode = "PARSE_ERROR"
	ErrCodeSessionError ErrorCode = "SESSION_ERROR"
	ErrCodeCancelled    ErrorCode = "CANCELLED"
)

// EngineError wraps errors with additional context
type EngineError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is checks if the error matches the target
func (e *EngineError) Is(target error) bool {
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the error
func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	e.Details[key] = value
	return e
}

// Classify maps an error from a browser run onto an EngineError.
// Deadline errors become ErrCodeTimeout, cancellation ErrCodeCancelled.
func Classify(message string, err error) *EngineError {
	if err == nil {
		return nil
	}
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewEngineError(ErrCodeTimeout, message, fmt.Errorf("%w: %v", ErrTimeout, err))
	case errors.Is(err, context.Canceled):
		return NewEngineError(ErrCodeCancelled, message, err)
	default:
		return NewEngineError(ErrCodeBrowser, message, err)
	}
}

// IsCancelled reports whether err came from the caller abandoning the run
func IsCancelled(err error) bool {
	var ee *EngineError
	if errors.As(err, &ee) && ee.Code == ErrCodeCancelled {
		return true
	}
	return errors.Is(err, context.Canceled)
}
