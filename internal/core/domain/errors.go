package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleMismatch       = errors.New("role does not match credentials")
	ErrInvalidRole        = errors.New("invalid role")

	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")

	ErrForbidden      = errors.New("access forbidden")
	ErrInvalidStatus  = errors.New("invalid status value")
	ErrOrderFinalized = errors.New("order already finalized")

	ErrUploadFailed = errors.New("image upload failed")
)

// ValidationError is a client-fixable input error carrying one message per
// offending field, so callers get a machine-checkable list alongside the
// summary string.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Details, "; ")
}

// NewValidationError builds a ValidationError from field messages.
func NewValidationError(details ...string) *ValidationError {
	return &ValidationError{Details: details}
}
