// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-evx library.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrInvalidArgument  = fmt.Errorf("invalid argument")
	ErrContextShutdown  = fmt.Errorf("lifecycle context has been shut down")
	ErrTriggerClosed    = fmt.Errorf("trigger primitive is closed")
	ErrGuardInUse       = fmt.Errorf("guard condition is in use by a wait set")
	ErrWaitSetClosed    = fmt.Errorf("wait set is closed")
	ErrOperationTimeout = fmt.Errorf("operation timeout")
	ErrNotSupported     = fmt.Errorf("operation not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodePlatformFailure
	ErrCodeInUse
	ErrCodeClosed
	ErrCodeTimeout
	ErrCodeNotSupported
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// NewPlatformError wraps a platform-level fault, preserving the OS error
// so callers can inspect the errno via errors.As.
func NewPlatformError(message string, cause error) *Error {
	return &Error{
		Code:    ErrCodePlatformFailure,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
