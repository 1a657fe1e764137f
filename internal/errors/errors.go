// Package errors provides a lightweight structured error type (DeployGenError)
// for category-based classification of generator failures and CLI exit codes.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a deploygen error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryCatalog    ErrorCategory = "catalog"

	// External system integration errors
	CategoryGit ErrorCategory = "git"

	// Generation errors
	CategoryRender     ErrorCategory = "render"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// DeployGenError is a structured error with category, severity, and context
type DeployGenError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DeployGenError
type ContextFields map[string]any

// Error implements the error interface
func (e *DeployGenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping
func (e *DeployGenError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DeployGenError) WithContext(key string, value any) *DeployGenError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DeployGenError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DeployGenError {
	return &DeployGenError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DeployGenError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DeployGenError {
	return &DeployGenError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As extracts the outermost DeployGenError from an error chain.
func As(err error) (*DeployGenError, bool) {
	var dge *DeployGenError
	if stderrors.As(err, &dge) {
		return dge, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if dge, ok := As(err); ok {
		return dge.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DeployGenError
func GetCategory(err error) ErrorCategory {
	if dge, ok := As(err); ok {
		return dge.Category
	}
	return CategoryInternal
}
