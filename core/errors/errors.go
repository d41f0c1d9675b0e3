// Package errors provides the error kinds shared by the conversion pipeline.
//
// Every typed error unwraps onto one of the package sentinels so callers can
// branch with errors.Is without knowing which layer produced the failure.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a file or registry entry was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or a configuration validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported option or format
	ErrUnsupported = errors.New("unsupported")
	// ErrSchemaMismatch indicates a row does not fit the column schema it is written with
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// NotFoundError represents a missing resource, such as an unregistered client type.
type NotFoundError struct {
	Resource string // Type of resource (e.g., "client type", "file")
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

// ValidationError represents a configuration or option validation error.
type ValidationError struct {
	Field   string // Field or option key that failed validation
	Value   string // Offending value, if useful
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

// IOError represents a failed read or write of a source or destination.
type IOError struct {
	Operation string // Operation being performed (e.g., "open", "read", "write")
	Path      string // File path involved
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

// ParseError represents malformed XML or configuration input.
type ParseError struct {
	Format  string // Format being parsed ("XML", "config")
	Path    string // File path, if applicable
	Line    int    // 1-based line, 0 when unknown
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	loc := ""
	switch {
	case e.Path != "" && e.Line > 0:
		loc = fmt.Sprintf(" at %s:%d", e.Path, e.Line)
	case e.Path != "":
		loc = " at " + e.Path
	case e.Line > 0:
		loc = fmt.Sprintf(" at line %d", e.Line)
	}
	return fmt.Sprintf("failed to parse %s%s: %s", e.Format, loc, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// UnsupportedError represents an unsupported option value or file format.
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// SchemaError reports a row carrying more subsection levels than the schema
// it is being written with has columns for.
type SchemaError struct {
	Row    int // Index of the offending row, -1 when unknown
	Levels int // Subsection levels in the row
	Max    int // Subsection levels in the schema
}

func (e *SchemaError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("row %d has %d subsection levels, schema allows %d", e.Row, e.Levels, e.Max)
	}
	return fmt.Sprintf("row has %d subsection levels, schema allows %d", e.Levels, e.Max)
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
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

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target any) bool {
	return errors.As(err, target)
}
