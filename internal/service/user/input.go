package user

import (
	"net/url"
	"strings"
	"time"

	"github.com/leadflow/leadflow-backend/internal/auth"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

const dobLayout = "2006-01-02"

// UpdateProfileInput holds a partial profile update. Nil fields are left
// unchanged; an empty DOB clears it.
type UpdateProfileInput struct {
	Name       *string
	Email      *string
	Phone      *string
	Location   *string
	DOB        *string
	ProfilePic *string
	Password   *string
}

// Validate validates the update profile input.
func (i UpdateProfileInput) Validate(minPassword int) error {
	var errs []domain.FieldError
	errs = validateName(errs, i.Name)
	errs = validateEmail(errs, i.Email)
	errs = validateContact(errs, i.Phone, i.Location)
	errs = validatePassword(errs, i.Password, minPassword)

	if i.DOB != nil && *i.DOB != "" {
		if _, err := time.Parse(dobLayout, *i.DOB); err != nil {
			errs = append(errs, domain.FieldError{Field: "dob", Message: "must be YYYY-MM-DD"})
		}
	}

	if i.ProfilePic != nil && *i.ProfilePic != "" {
		if len(*i.ProfilePic) > 1024 {
			errs = append(errs, domain.FieldError{Field: "profilePic", Message: "too long"})
		} else if u, err := url.Parse(*i.ProfilePic); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, domain.FieldError{Field: "profilePic", Message: "must be an http(s) URL"})
		}
	}

	return domain.FieldErrors(errs)
}

// CreateUserInput holds parameters for an admin-created account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
	Location string
}

// Validate validates the create user input.
func (i CreateUserInput) Validate(minPassword int) error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else {
		errs = validateName(errs, &i.Name)
	}
	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else {
		errs = validateEmail(errs, &i.Email)
	}
	errs = validatePassword(errs, &i.Password, minPassword)
	errs = validateRole(errs, &i.Role)
	errs = validateContact(errs, &i.Phone, &i.Location)

	return domain.FieldErrors(errs)
}

// UpdateUserInput holds an admin edit of another account. Nil fields are
// left unchanged.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *string
	Password *string
	Phone    *string
	Location *string
}

// Validate validates the update user input.
func (i UpdateUserInput) Validate(minPassword int) error {
	var errs []domain.FieldError
	errs = validateName(errs, i.Name)
	errs = validateEmail(errs, i.Email)
	errs = validateContact(errs, i.Phone, i.Location)
	errs = validatePassword(errs, i.Password, minPassword)
	if i.Role != nil {
		errs = validateRole(errs, i.Role)
	}

	return domain.FieldErrors(errs)
}

func validateName(errs []domain.FieldError, name *string) []domain.FieldError {
	if name == nil {
		return errs
	}
	n := strings.TrimSpace(*name)
	if n == "" {
		return append(errs, domain.FieldError{Field: "name", Message: "cannot be empty"})
	}
	if len(n) > 255 {
		return append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	return errs
}

func validateEmail(errs []domain.FieldError, email *string) []domain.FieldError {
	if email == nil {
		return errs
	}
	if _, ok := auth.NormalizeEmail(*email); !ok {
		return append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}
	return errs
}

func validatePassword(errs []domain.FieldError, password *string, minPassword int) []domain.FieldError {
	if password == nil {
		return errs
	}
	if len(*password) < minPassword {
		return append(errs, domain.FieldError{Field: "password", Message: "too short"})
	}
	if len(*password) > 72 {
		return append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}
	return errs
}

func validateRole(errs []domain.FieldError, role *string) []domain.FieldError {
	if !domain.Role(*role).IsValid() {
		return append(errs, domain.FieldError{Field: "role", Message: "must be super-admin, sub-admin or support-agent"})
	}
	return errs
}

func validateContact(errs []domain.FieldError, phone, location *string) []domain.FieldError {
	if phone != nil && len(*phone) > 32 {
		errs = append(errs, domain.FieldError{Field: "phone", Message: "too long"})
	}
	if location != nil && len(*location) > 255 {
		errs = append(errs, domain.FieldError{Field: "location", Message: "too long"})
	}
	return errs
}
