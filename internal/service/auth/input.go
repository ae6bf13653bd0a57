package auth

import (
	"github.com/leadflow/leadflow-backend/internal/auth"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

// LoginInput holds parameters for password login. Identifier is an email
// address or a display name.
type LoginInput struct {
	Identifier string
	Password   string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Identifier == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	return domain.FieldErrors(errs)
}

// RegisterInput holds parameters for self-service registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Validate validates the register input.
func (i RegisterInput) Validate(minPassword int) error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 255 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, ok := auth.NormalizeEmail(i.Email); !ok {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}

	if len(i.Password) < minPassword {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too short"})
	} else if len(i.Password) > 72 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	return domain.FieldErrors(errs)
}

// GoogleInput holds the ID token obtained by the client from Google Sign-In.
type GoogleInput struct {
	IDToken string
}

// Validate validates the google input.
func (i GoogleInput) Validate() error {
	if i.IDToken == "" {
		return domain.NewValidationError("idToken", "required")
	}
	if len(i.IDToken) > 8192 {
		return domain.NewValidationError("idToken", "too long")
	}
	return nil
}
