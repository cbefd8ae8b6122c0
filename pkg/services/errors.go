// Package services provides the application service layer between the HTTP
// surface and the draft/persistence machinery.
package services

import (
	"errors"

	"github.com/stepflow/stepflow/pkg/draft"
)

// Business logic errors surfaced to the HTTP layer.
var (
	// ErrOwnerRequired indicates a listing was requested without an owner.
	ErrOwnerRequired = errors.New("owner ID cannot be empty")

	// ErrLocatorRequired indicates a document operation without a locator.
	ErrLocatorRequired = errors.New("workflow locator cannot be empty")
)

// IsValidationError checks if an error should map to HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrOwnerRequired) ||
		errors.Is(err, ErrLocatorRequired) ||
		errors.Is(err, draft.ErrValidationFailed)
}

// IsForbiddenError checks if an error should map to HTTP 403.
func IsForbiddenError(err error) bool {
	return errors.Is(err, draft.ErrNotOwner)
}
