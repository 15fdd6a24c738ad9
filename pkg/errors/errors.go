// Package errors provides custom error types for the SHARE resolution core.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// It's an alias for the standard library errors.As for convenience.
var As = errors.As

// Common sentinel errors for the resolution core
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRef indicates that an opaque record reference is malformed
	// or does not decode to a persisted record
	ErrInvalidRef = errors.New("invalid record reference")

	// ErrAmbiguousMatch indicates that a required relation resolved to more
	// than one existing record and needs an external merge decision
	ErrAmbiguousMatch = errors.New("ambiguous match")

	// ErrInvalidConfig indicates missing or contradictory configuration
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnparseable indicates that a raw identifier could not be parsed
	// into canonical IRI form
	ErrUnparseable = errors.New("unparseable identifier")

	// ErrDisallowed indicates that an identifier is well-formed but rejected
	// by domain policy
	ErrDisallowed = errors.New("disallowed identifier")

	// ErrReadOnly indicates an attempt to write through the read-only store
	ErrReadOnly = errors.New("read only")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// RefError represents a malformed or unresolvable opaque record reference
type RefError struct {
	Ref     string
	Message string
}

// Error implements the error interface
func (e *RefError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("invalid reference %q: %s", e.Ref, e.Message)
	}
	return fmt.Sprintf("invalid reference %q", e.Ref)
}

// Is implements errors.Is support
func (e *RefError) Is(target error) bool {
	return target == ErrInvalidRef
}

// NewRefError creates a new RefError
func NewRefError(ref, message string) *RefError {
	return &RefError{Ref: ref, Message: message}
}

// IdentifierError represents a rejected raw identifier, either unparseable
// or disallowed by policy
type IdentifierError struct {
	URI        string
	Authority  string
	Scheme     string
	Disallowed bool
	Err        error
}

// Error implements the error interface
func (e *IdentifierError) Error() string {
	if e.Disallowed {
		return fmt.Sprintf("identifier %q disallowed (authority %q, scheme %q)", e.URI, e.Authority, e.Scheme)
	}
	return fmt.Sprintf("identifier %q could not be parsed", e.URI)
}

// Unwrap implements errors.Unwrap
func (e *IdentifierError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *IdentifierError) Is(target error) bool {
	if e.Disallowed {
		return target == ErrDisallowed
	}
	return target == ErrUnparseable
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// DatabaseError represents a failure talking to the persisted store
type DatabaseError struct {
	Operation string // "query", "connect", "scan"
	Table     string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *DatabaseError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("database error during %s of %s: %s", e.Operation, e.Table, e.Message)
	}
	return fmt.Sprintf("database error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(operation, table string, err error) *DatabaseError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &DatabaseError{
		Operation: operation,
		Table:     table,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d:%d: %s", e.Format, e.File, e.Line, e.Column, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "load", "resolve", "normalize", "decode"
	Resource  string // "config", "graph", "schema", "match set"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvalidRef checks if an error is a malformed reference error
func IsInvalidRef(err error) bool {
	return errors.Is(err, ErrInvalidRef)
}

// IsAmbiguous checks if an error is an ambiguous match error
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguousMatch)
}

// IsUnparseable checks if an error is an unparseable identifier error
func IsUnparseable(err error) bool {
	return errors.Is(err, ErrUnparseable)
}

// IsDisallowed checks if an error is a disallowed identifier error
func IsDisallowed(err error) bool {
	return errors.Is(err, ErrDisallowed)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapDatabase wraps an error as a DatabaseError
func WrapDatabase(operation, table string, err error) error {
	if err == nil {
		return nil
	}
	return NewDatabaseError(operation, table, err)
}
