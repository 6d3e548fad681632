// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Common error types and error handling utilities for hioload-jobs.
// Contract violations (deque overflow, scheduling after shutdown, invalid
// capacities) are not represented here: those panic at the violation site.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrSchedulerClosed      = fmt.Errorf("scheduler is closed")
	ErrInvalidArgument      = fmt.Errorf("invalid argument")
	ErrResourceExhausted    = fmt.Errorf("resource exhausted")
	ErrInvalidWorkerCount   = fmt.Errorf("invalid worker count")
	ErrAffinityNotSupported = fmt.Errorf("CPU affinity not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeResourceExhausted
	ErrCodeClosed
	ErrCodeNotSupported
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
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
