package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryLoader   Category = "loader"
	CategoryProtocol Category = "protocol"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// ServoError is a structured error with a code, category, and suggestions.
type ServoError struct {
	// Code is a unique error identifier (e.g., "E020").
	Code string

	// Category is the error type (runtime, loader, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ServoError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ServoError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ServoError) WithSuggestion(s string) *ServoError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ServoError) WithDetail(d string) *ServoError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *ServoError) Wrap(err error) *ServoError {
	e.Wrapped = err
	return e
}

// New creates a ServoError from a registered error code.
func New(code string) *ServoError {
	template, ok := registry[code]
	if !ok {
		return &ServoError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ServoError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new ServoError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ServoError {
	return &ServoError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ServoError.
func FromError(err error, code string) *ServoError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*ServoError); ok {
		return se
	}
	return New(code).Wrap(err)
}
