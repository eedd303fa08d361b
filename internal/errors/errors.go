// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrSessionNotFound indicates the conversation session does not exist or expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrCourseNotFound indicates a requested course was not found in the catalog.
	ErrCourseNotFound = errors.New("course not found")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAIUnavailable indicates the external AI chat backend could not produce a reply.
	ErrAIUnavailable = errors.New("ai backend unavailable")

	// ErrMissingParameter indicates a required request parameter is missing.
	ErrMissingParameter = errors.New("missing required parameter")
)

// IsSessionNotFound reports whether err wraps ErrSessionNotFound.
func IsSessionNotFound(err error) bool { return errors.Is(err, ErrSessionNotFound) }

// IsCourseNotFound reports whether err wraps ErrCourseNotFound.
func IsCourseNotFound(err error) bool { return errors.Is(err, ErrCourseNotFound) }

// IsRateLimitExceeded reports whether err wraps ErrRateLimitExceeded.
func IsRateLimitExceeded(err error) bool { return errors.Is(err, ErrRateLimitExceeded) }

// IsInvalidInput reports whether err wraps ErrInvalidInput.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

// WrappedError carries both internal error details and a user-facing message.
type WrappedError struct {
	Operation   string // Operation being performed (e.g., "handle_message", "attach_course")
	Module      string // Module name (e.g., "engine", "session", "aichat")
	Cause       error  // Underlying error
	UserMessage string // User-friendly message
}

func (e *WrappedError) Error() string {
	return fmt.Sprintf("[%s:%s] %s: %v", e.Module, e.Operation, e.UserMessage, e.Cause)
}

func (e *WrappedError) Unwrap() error {
	return e.Cause
}

// Wrap attaches module/operation context and a user message to err.
// Returns nil if err is nil.
func Wrap(module, operation string, err error, userMessage string) error {
	if err == nil {
		return nil
	}
	return &WrappedError{
		Module:      module,
		Operation:   operation,
		Cause:       err,
		UserMessage: userMessage,
	}
}

// GetUserMessage returns the user-friendly message from a WrappedError.
// Returns the error string if not a WrappedError.
func GetUserMessage(err error) string {
	if err == nil {
		return ""
	}
	var wrapped *WrappedError
	if errors.As(err, &wrapped) {
		return wrapped.UserMessage
	}
	return err.Error()
}
