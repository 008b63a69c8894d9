package models

import "errors"

// Error kinds shared by services and handlers.
// Handlers translate a kind into an HTTP status, so every failure a client
// should see must be wrapped in one of them.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// DomainError carries a client-facing message together with its kind
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) error {
	return &DomainError{Kind: ErrValidation, Message: message}
}

// NewConflictError creates a conflict error with the given message
func NewConflictError(message string) error {
	return &DomainError{Kind: ErrConflict, Message: message}
}

// NewUnauthorizedError creates an authentication error with the given message
func NewUnauthorizedError(message string) error {
	return &DomainError{Kind: ErrUnauthorized, Message: message}
}

// NewForbiddenError creates a permission error with the given message
func NewForbiddenError(message string) error {
	return &DomainError{Kind: ErrForbidden, Message: message}
}

// NewNotFoundError creates a missing resource error with the given message
func NewNotFoundError(message string) error {
	return &DomainError{Kind: ErrNotFound, Message: message}
}
