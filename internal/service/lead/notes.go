package lead

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/leadflow/leadflow-backend/internal/access"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

// AddNote appends a note signed with the caller's display name and returns
// the updated lead.
func (s *Service) AddNote(ctx context.Context, caller domain.Caller, leadID uuid.UUID, input NoteInput) (*domain.Lead, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("lead.AddNote: %w", err)
	}
	if err := access.CanEditNotes(caller, lead); err != nil {
		return nil, err
	}

	note := domain.Note{
		ID:        uuid.New(),
		LeadID:    leadID,
		Text:      strings.TrimSpace(input.Text),
		Author:    caller.Name,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.leads.AddNote(ctx, note); err != nil {
		return nil, fmt.Errorf("lead.AddNote: %w", err)
	}

	s.activity.Record(ctx, caller.ID, domain.ActionAddNote, "Added note to lead "+lead.Name)

	updated, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("lead.AddNote reload: %w", err)
	}
	return updated, nil
}

// DeleteNote removes one note from a lead and returns the updated lead.
func (s *Service) DeleteNote(ctx context.Context, caller domain.Caller, leadID, noteID uuid.UUID) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("lead.DeleteNote: %w", err)
	}
	if err := access.CanEditNotes(caller, lead); err != nil {
		return nil, err
	}

	if err := s.leads.DeleteNote(ctx, leadID, noteID); err != nil {
		return nil, fmt.Errorf("lead.DeleteNote: %w", err)
	}

	s.activity.Record(ctx, caller.ID, domain.ActionDeleteNote, "Deleted note from lead "+lead.Name)

	updated, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("lead.DeleteNote reload: %w", err)
	}
	return updated, nil
}
