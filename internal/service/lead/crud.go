package lead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/leadflow/leadflow-backend/internal/access"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

// List returns one page of the leads caller may read, newest first.
func (s *Service) List(ctx context.Context, caller domain.Caller, req access.ListRequest) (*domain.LeadPage, error) {
	q := access.BuildListQuery(caller, req, s.paging())

	leads, total, err := s.leads.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("lead.List: %w", err)
	}

	return &domain.LeadPage{
		Items:      leads,
		Pagination: access.Paginate(total, q.Page, q.Limit),
	}, nil
}

// Get returns a single lead.
func (s *Service) Get(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lead.Get: %w", err)
	}
	if err := access.CanRead(caller, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// Create stores a new lead. A caller without the assign capability always
// becomes the assignee, whatever was requested.
func (s *Service) Create(ctx context.Context, caller domain.Caller, input CreateLeadInput) (*domain.Lead, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	requested, err := input.requestedAssignee(caller)
	if err != nil {
		return nil, err
	}
	assignee := access.CreateAssignee(caller, requested)
	if assignee != nil && *assignee != caller.ID {
		if err := s.checkAssignee(ctx, *assignee); err != nil {
			return nil, err
		}
	}

	status := domain.LeadStatus(input.Status)
	if status == "" {
		status = domain.LeadStatusNew
	}

	now := s.clock.Now().UTC()
	created, err := s.leads.Create(ctx, &domain.Lead{
		ID:         uuid.New(),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Source:     input.Source,
		Status:     status,
		Tags:       input.Tags,
		AssignedTo: assignee,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("lead.Create: %w", err)
	}

	s.activity.Record(ctx, caller.ID, domain.ActionCreateLead, "Created lead "+created.Name)
	s.invalidateStats(ctx)
	s.log.InfoContext(ctx, "lead created",
		slog.String("lead_id", created.ID.String()),
		slog.String("user_id", caller.ID.String()))

	return created, nil
}

// Update applies a partial update. Changing the assignee requires the
// assign capability on top of update access. The payload is validated
// only once the lead exists and caller may change it.
func (s *Service) Update(ctx context.Context, caller domain.Caller, id uuid.UUID, input UpdateLeadInput) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lead.Update: %w", err)
	}

	newAssignee, requested := input.assignee()
	reassign := requested && !sameAssignee(lead.AssignedTo, newAssignee)
	if err := access.CanUpdate(caller, lead, reassign); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if reassign {
		if newAssignee != nil {
			if err := s.checkAssignee(ctx, *newAssignee); err != nil {
				return nil, err
			}
		}
		lead.AssignedTo = newAssignee
	}
	if input.Name != nil {
		lead.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		lead.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		lead.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Source != nil {
		lead.Source = strings.TrimSpace(*input.Source)
	}
	if input.Status != nil {
		lead.Status = domain.LeadStatus(strings.TrimSpace(*input.Status))
	}
	if input.Tags != nil {
		lead.Tags = normalizeTags(*input.Tags)
	}
	lead.UpdatedAt = s.clock.Now().UTC()

	updated, err := s.leads.Update(ctx, lead)
	if err != nil {
		return nil, fmt.Errorf("lead.Update: %w", err)
	}

	s.activity.Record(ctx, caller.ID, domain.ActionUpdateLead, "Updated lead "+updated.Name)
	s.invalidateStats(ctx)
	s.log.InfoContext(ctx, "lead updated",
		slog.String("lead_id", id.String()),
		slog.String("user_id", caller.ID.String()))

	return updated, nil
}

// Delete removes a lead and its notes.
func (s *Service) Delete(ctx context.Context, caller domain.Caller, id uuid.UUID) error {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("lead.Delete: %w", err)
	}
	if err := access.CanDelete(caller); err != nil {
		return err
	}

	if err := s.leads.Delete(ctx, id); err != nil {
		return fmt.Errorf("lead.Delete: %w", err)
	}

	s.activity.Record(ctx, caller.ID, domain.ActionDeleteLead, "Deleted lead "+lead.Name)
	s.invalidateStats(ctx)
	s.log.InfoContext(ctx, "lead deleted",
		slog.String("lead_id", id.String()),
		slog.String("user_id", caller.ID.String()))

	return nil
}

// checkAssignee rejects assignment to a user that does not exist.
func (s *Service) checkAssignee(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("assignedTo", "unknown user")
		}
		return fmt.Errorf("lookup assignee: %w", err)
	}
	return nil
}

func sameAssignee(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
