package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrReferential  = errors.New("referential integrity violation")
)

// ReferentialError reports a write that would leave a dangling reference.
// The store rejects the write entirely; no partial mutation happens.
type ReferentialError struct {
	Entity string // entity being written, e.g. "recognition"
	Field  string // reference field that failed to resolve
	RefID  string // identifier that did not resolve
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("referential: %s.%s does not resolve (%s)", e.Entity, e.Field, e.RefID)
}

func (e *ReferentialError) Unwrap() error { return ErrReferential }

// NewReferentialError creates a ReferentialError for a single dangling reference.
func NewReferentialError(entity, field, refID string) *ReferentialError {
	return &ReferentialError{Entity: entity, Field: field, RefID: refID}
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
