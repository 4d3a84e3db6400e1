package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Common domain errors
var (
	// ErrNotFound is returned when a referenced entity is not in the supplied collection
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate lead)
	ErrConflict = errors.New("resource conflict")

	// ErrInvalidStatus is returned when a status value is not part of its enum
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidReportType is returned when a report type is unknown
	ErrInvalidReportType = errors.New("invalid report type")
)

// NotFoundError identifies which entity id could not be resolved
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Unwrap allows errors.Is(err, ErrNotFound)
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError builds a NotFoundError for the given entity and id
func NewNotFoundError(entity string, id uuid.UUID) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError carries per-field validation messages
type ValidationError struct {
	Errors map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + ": " + e.Errors[field]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Unwrap allows errors.Is(err, ErrInvalidInput)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError converts validator errors into a ValidationError.
// Errors that are not validator.ValidationErrors are wrapped as invalid input.
func NewValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = GetValidationMessage(fe.Tag())
	}
	return &ValidationError{Errors: fields}
}

// ValidationMessages provides human-readable validation error messages
// These map validator tags to user-friendly messages
var ValidationMessages = map[string]string{
	"required":         "This field is required",
	"required_without": "Either this field or its alternative is required",
	"email":            "Must be a valid email address",
	"max":              "Exceeds maximum length",
	"min":              "Below minimum length",
	"gte":              "Must be greater than or equal to minimum value",
	"gtefield":         "Must not be before the start",
	"oneof":            "Must be one of the allowed values",
	"uuid":             "Must be a valid UUID",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}
