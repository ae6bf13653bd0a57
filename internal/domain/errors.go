package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by services and adapters. The REST layer maps
// each to one status code.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	// ErrExternal marks a failure in a collaborator outside this service,
	// such as the OAuth provider or an unreadable spreadsheet upload.
	ErrExternal = errors.New("external dependency failure")
)

// FieldError is one rejected request field, named as the client sent it
// (e.g. "assignedTo", "profilePic").
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) String() string { return f.Field + ": " + f.Message }

// ValidationError collects every rejected field of a request so the client
// can fix them in one round trip.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, f := range e.Errors {
		parts[i] = f.String()
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Summary is the one-line message shown to API clients: the field error
// itself when there is only one.
func (e *ValidationError) Summary() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].String()
	}
	return "validation failed"
}

// NewValidationError rejects a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// FieldErrors returns a *ValidationError for errs, or nil when errs is
// empty, so input validators can end with `return domain.FieldErrors(errs)`.
func FieldErrors(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
