// Package persistence provides standardized error types for persistence
// operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrDocumentNotFound indicates no document exists for the given uid or id.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDocumentAlreadyExists indicates a document with the same identity
	// already exists.
	ErrDocumentAlreadyExists = errors.New("document already exists")
)

// DocumentError wraps document-related errors with additional context.
type DocumentError struct {
	Op  string // Operation being performed (e.g., "Create", "Update", "Delete")
	Key string // Document id or uid the operation targeted
	Err error  // Underlying error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s operation failed for document %s: %v", e.Op, e.Key, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

func (e *DocumentError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewDocumentError creates a new document error with context.
func NewDocumentError(op, key string, err error) *DocumentError {
	return &DocumentError{
		Op:  op,
		Key: key,
		Err: err,
	}
}

// IsDocumentNotFound checks if an error indicates a missing document.
func IsDocumentNotFound(err error) bool {
	return errors.Is(err, ErrDocumentNotFound)
}
