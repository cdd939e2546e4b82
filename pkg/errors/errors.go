// Package errors provides custom error types for the comicmeta system.
// These errors enable programmatic error checking across codecs and
// archive handling without string matching.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the comicmeta system
var (
	// ErrFormat indicates that input bytes are not a well-formed document
	// of the expected tagging scheme
	ErrFormat = errors.New("unrecognized format")

	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedStyle indicates a tag style the archive cannot carry
	ErrUnsupportedStyle = errors.New("unsupported tag style")

	// ErrReadOnly indicates an attempt to modify a read-only archive
	ErrReadOnly = errors.New("read only")
)

// FormatError represents input that is not a well-formed document of the
// expected scheme: malformed XML/JSON, or a foreign root element.
type FormatError struct {
	Format  string // "cix", "cbi", "comet"
	Message string
	Err     error
}

// Error implements the error interface
func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s format error: %s: %v", e.Format, e.Message, e.Err)
	}
	return fmt.Sprintf("%s format error: %s", e.Format, e.Message)
}

// Is implements errors.Is support
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// Unwrap implements errors.Unwrap
func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError creates a new FormatError
func NewFormatError(format, message string, err error) *FormatError {
	return &FormatError{Format: format, Message: message, Err: err}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IOError represents an error during I/O operations on an archive or
// sidecar file
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Helper functions for error checking

// IsFormat checks if an error is a format error
func IsFormat(err error) bool {
	return errors.Is(err, ErrFormat)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}
