// Package errors provides structured error handling for searchlink with rich
// context, stack traces, and error categorization. It enables consistent error
// handling patterns across the entire codebase.
//
// # Overview
//
// The errors package extends Go's standard error handling with:
//   - Error categorization through ErrorType
//   - Structured context with key-value details
//   - Automatic stack trace capture
//   - Error wrapping with cause preservation
//   - Retryability detection
//
// # Basic Usage
//
//	// Create a new error
//	err := errors.New(errors.ErrorTypeInvalidInput, "server cannot be empty")
//
//	// Add context
//	err = err.WithDetail("field", "server").
//	         WithDetail("value", raw)
//
//	// Wrap existing errors
//	if err := drv.Open(ctx, cs, opts); err != nil {
//	    return errors.Wrap(err, errors.ErrorTypeConnection, "driver open failed").
//	        WithDetail("data_source", cs.Redacted())
//	}
//
// # Error Types
//
// Errors are categorized by type, which helps with:
//   - Error handling strategies (retry logic)
//   - User-facing message selection
//   - Monitoring and alerting
//   - Debugging and troubleshooting
//
// # Stack Traces
//
// Stack traces are automatically captured at error creation points,
// providing valuable debugging information without manual intervention.
//
// # Thread Safety
//
// Error instances are not thread-safe for modification. Create new
// instances or use WithDetail before sharing across goroutines.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error, used for error handling
// strategies, user-facing message selection, and monitoring.
type ErrorType string

const (
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeInvalidInput represents malformed caller-supplied input,
	// caught before any driver call is made
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	// ErrorTypeDriverNotInstalled means no matching ODBC driver is registered
	// on the host machine
	ErrorTypeDriverNotInstalled ErrorType = "driver_not_installed"
	// ErrorTypeHostUnreachable means the cluster address could not be reached
	ErrorTypeHostUnreachable ErrorType = "host_unreachable"
	// ErrorTypeCredential represents credential resolution errors
	ErrorTypeCredential ErrorType = "credential"
	// ErrorTypeConnection represents connection errors
	ErrorTypeConnection ErrorType = "connection"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeTimeout represents timeout errors
	ErrorTypeTimeout ErrorType = "timeout"
)

// Error represents a structured error with context, providing rich debugging
// information and enabling sophisticated error handling strategies.
//
// Fields:
//   - Type: Categorizes the error for handling strategies
//   - Message: Human-readable error description
//   - Cause: The underlying error that caused this error
//   - Details: Key-value pairs providing additional context
//   - Stack: Call stack at the point of error creation
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack, capturing
// the function name, file path, and line number for debugging.
type StackFrame struct {
	Function string // Fully qualified function name
	File     string // Source file path
	Line     int    // Line number in source file
}

// Error implements the error interface, returning a formatted error message
// that includes the error type, message, and cause (if present).
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error, enabling compatibility with errors.Is
// and errors.As for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error, providing additional context
// for debugging and monitoring. This method can be chained for adding multiple details.
//
// Example:
//
//	err := errors.New(ErrorTypeInvalidInput, "cannot parse server").
//	    WithDetail("field", "server").
//	    WithDetail("value", raw)
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message, automatically
// capturing the call stack at the point of creation.
//
// Example:
//
//	if host == "" {
//	    return errors.New(errors.ErrorTypeInvalidInput, "server cannot be empty")
//	}
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context, preserving the original
// error as the cause. If the error is already a structured Error, its stack
// trace is preserved. Returns nil if the input error is nil.
//
// Example:
//
//	handle, err := drv.Open(ctx, cs, opts)
//	if err != nil {
//	    return errors.Wrap(err, errors.ErrorTypeConnection, "failed to open data source").
//	        WithDetail("data_source", cs.Redacted())
//	}
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsRetryable returns true if the error is retryable based on its type.
// Host-unreachable, timeout, and plain connection errors are considered
// retryable; the retry policy itself is owned by the host application.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	switch e.Type {
	case ErrorTypeHostUnreachable, ErrorTypeTimeout, ErrorTypeConnection:
		return true
	case ErrorTypeInternal, ErrorTypeInvalidInput, ErrorTypeDriverNotInstalled,
		ErrorTypeCredential, ErrorTypeConfig:
		return false
	default:
		return false
	}
}

// IsType checks if the error is of the given type, useful for error handling
// strategies and conditional logic based on error categories.
//
// Example:
//
//	if errors.IsType(err, errors.ErrorTypeDriverNotInstalled) {
//	    // Show the install instructions to the user
//	}
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// captureStack captures the current call stack up to maxFrames deep,
// skipping the specified number of frames from the top. This is used
// internally to record the call stack at error creation points.
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
