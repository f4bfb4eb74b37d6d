// Package errors provides standardized error types and helpers for the passage codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidPassage indicates a passage reference that cannot exist
	ErrInvalidPassage = errors.New("invalid passage")
)

// Reason classifies why a passage failed validation.
type Reason string

// Passage validation reasons.
const (
	ReasonUnknownBook         Reason = "unknown-book"
	ReasonNonPositiveNumeral  Reason = "non-positive-numeral"
	ReasonUnsatisfiableFields Reason = "unsatisfiable-fields"
	ReasonEndBeforeStart      Reason = "end-before-start"
	ReasonOutOfBounds         Reason = "out-of-bounds"
	ReasonMissingVerse        Reason = "missing-verse"
	ReasonExceedsLength       Reason = "exceeds-length"
)

// InvalidPassageError is the single failure kind for passage construction.
// No partially built passage is ever returned alongside it.
type InvalidPassageError struct {
	Reason Reason // Classification of the failure
	Detail string // Human-readable context (e.g., "Gen 51")
}

func (e *InvalidPassageError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("invalid passage (%s): %s", e.Reason, e.Detail)
	}
	return fmt.Sprintf("invalid passage (%s)", e.Reason)
}

// Is reports whether target is one of the sentinels this error stands for.
func (e *InvalidPassageError) Is(target error) bool {
	return target == ErrInvalidPassage || target == ErrInvalidInput
}

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "catalog", "passage")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation (may be redacted)
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "open", "query")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "OSIS", "citation")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewInvalidPassage creates an InvalidPassageError
func NewInvalidPassage(reason Reason, detail string) *InvalidPassageError {
	return &InvalidPassageError{
		Reason: reason,
		Detail: detail,
	}
}

// NewInvalidPassagef creates an InvalidPassageError with a formatted detail
func NewInvalidPassagef(reason Reason, format string, args ...interface{}) *InvalidPassageError {
	return &InvalidPassageError{
		Reason: reason,
		Detail: fmt.Sprintf(format, args...),
	}
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// ReasonOf returns the validation reason carried by err, or "" if err is not
// an InvalidPassageError.
func ReasonOf(err error) Reason {
	var ip *InvalidPassageError
	if errors.As(err, &ip) {
		return ip.Reason
	}
	return ""
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
