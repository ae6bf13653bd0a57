package lead

import (
	"strings"

	"github.com/google/uuid"

	"github.com/leadflow/leadflow-backend/internal/auth"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

const (
	maxTags      = 20
	maxTagLength = 50
	maxNoteText  = 2000
)

// CreateLeadInput holds parameters for creating a lead. AssignedTo is a
// user id and is only read for callers that may assign leads.
type CreateLeadInput struct {
	Name       string
	Email      string
	Phone      string
	Source     string
	Status     string
	Tags       []string
	AssignedTo string
}

func (i *CreateLeadInput) normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Email = strings.TrimSpace(i.Email)
	i.Phone = strings.TrimSpace(i.Phone)
	i.Source = strings.TrimSpace(i.Source)
	i.Status = strings.TrimSpace(i.Status)
	i.Tags = normalizeTags(i.Tags)
	i.AssignedTo = strings.TrimSpace(i.AssignedTo)
}

// requestedAssignee parses AssignedTo for a caller with the assign
// capability. For anyone else the value is ignored.
func (i CreateLeadInput) requestedAssignee(caller domain.Caller) (*uuid.UUID, error) {
	if i.AssignedTo == "" || !caller.Role.Can(domain.CapAssignLeads) {
		return nil, nil
	}
	id, err := uuid.Parse(i.AssignedTo)
	if err != nil {
		return nil, domain.NewValidationError("assignedTo", "invalid user id")
	}
	return &id, nil
}

// Validate validates the create lead input.
func (i CreateLeadInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	errs = validateFields(errs, &i.Name, &i.Email, &i.Phone, &i.Source)
	if i.Status != "" {
		errs = validateStatus(errs, i.Status)
	}
	errs = validateTags(errs, i.Tags)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateLeadInput holds a partial lead update. Nil fields are left
// unchanged. AssignedTo is a user id, or "" to unassign.
type UpdateLeadInput struct {
	Name       *string
	Email      *string
	Phone      *string
	Source     *string
	Status     *string
	Tags       *[]string
	AssignedTo *string
}

// Validate validates the update lead input.
func (i UpdateLeadInput) Validate() error {
	var errs []domain.FieldError

	if i.Name != nil && strings.TrimSpace(*i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "cannot be empty"})
	}
	if i.Email != nil && strings.TrimSpace(*i.Email) == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "cannot be empty"})
	}
	errs = validateFields(errs, i.Name, i.Email, i.Phone, i.Source)
	if i.Status != nil {
		errs = validateStatus(errs, strings.TrimSpace(*i.Status))
	}
	if i.Tags != nil {
		errs = validateTags(errs, normalizeTags(*i.Tags))
	}
	if i.AssignedTo != nil && *i.AssignedTo != "" {
		if _, err := uuid.Parse(*i.AssignedTo); err != nil {
			errs = append(errs, domain.FieldError{Field: "assignedTo", Message: "invalid user id"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// assignee returns the requested assignee and whether one was requested.
// A malformed id is reported as uuid.Nil so it still counts as a
// reassignment; Validate rejects it afterwards.
func (i UpdateLeadInput) assignee() (*uuid.UUID, bool) {
	if i.AssignedTo == nil {
		return nil, false
	}
	if *i.AssignedTo == "" {
		return nil, true
	}
	id, err := uuid.Parse(*i.AssignedTo)
	if err != nil {
		return &uuid.Nil, true
	}
	return &id, true
}

// NoteInput holds the text of a new note.
type NoteInput struct {
	Text string
}

// Validate validates the note input.
func (i NoteInput) Validate() error {
	text := strings.TrimSpace(i.Text)
	if text == "" {
		return domain.NewValidationError("text", "required")
	}
	if len(text) > maxNoteText {
		return domain.NewValidationError("text", "too long")
	}
	return nil
}

func validateFields(errs []domain.FieldError, name, email, phone, source *string) []domain.FieldError {
	if name != nil && len(*name) > 255 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if email != nil && strings.TrimSpace(*email) != "" {
		if _, ok := auth.NormalizeEmail(*email); !ok {
			errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
		}
	}
	if phone != nil && len(*phone) > 32 {
		errs = append(errs, domain.FieldError{Field: "phone", Message: "too long"})
	}
	if source != nil && len(*source) > 255 {
		errs = append(errs, domain.FieldError{Field: "source", Message: "too long"})
	}
	return errs
}

func validateStatus(errs []domain.FieldError, status string) []domain.FieldError {
	if !domain.LeadStatus(status).IsValid() {
		return append(errs, domain.FieldError{Field: "status", Message: "invalid status"})
	}
	return errs
}

func validateTags(errs []domain.FieldError, tags []string) []domain.FieldError {
	if len(tags) > maxTags {
		return append(errs, domain.FieldError{Field: "tags", Message: "too many tags"})
	}
	for _, t := range tags {
		if len(t) > maxTagLength {
			return append(errs, domain.FieldError{Field: "tags", Message: "tag too long"})
		}
	}
	return errs
}

// normalizeTags trims tags, dropping blanks and duplicates.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
