// Package errors provides a lightweight structured error type (BookError)
// for category-based classification of build failures in the CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a bookit error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig ErrorCategory = "config"

	// Build pipeline errors
	CategoryIdentity ErrorCategory = "identity"
	CategoryTOC      ErrorCategory = "toc"
	CategoryRender   ErrorCategory = "render"

	// Runtime and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the build
	SeverityError   ErrorSeverity = "error"   // Error, but the build continues
	SeverityWarning ErrorSeverity = "warning" // Degraded functionality only
)

// BookError is a structured error with category, severity, and context
type BookError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BookError
type ContextFields map[string]any

// Error implements the error interface
func (e *BookError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *BookError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BookError) WithContext(key string, value any) *BookError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new BookError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BookError {
	return &BookError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BookError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BookError {
	return &BookError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory reports whether err is a BookError of the given category.
func IsCategory(err error, category ErrorCategory) bool {
	var be *BookError
	if !stderrors.As(err, &be) {
		return false
	}
	return be.Category == category
}
