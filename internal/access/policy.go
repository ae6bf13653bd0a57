package access

import (
	"context"

	"github.com/google/uuid"

	"github.com/leadflow/leadflow-backend/internal/domain"
	"github.com/leadflow/leadflow-backend/pkg/ctxutil"
)

// CallerFromCtx rebuilds the authenticated caller stored by the auth middleware.
func CallerFromCtx(ctx context.Context) (domain.Caller, error) {
	p, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return domain.Caller{}, domain.ErrUnauthorized
	}
	role := domain.Role(p.Role)
	if !role.IsValid() {
		return domain.Caller{}, domain.ErrUnauthorized
	}
	return domain.Caller{ID: p.ID, Name: p.Name, Role: role}, nil
}

// Require returns ErrForbidden unless the caller's role holds c.
func Require(caller domain.Caller, c domain.Capability) error {
	if !caller.Role.Can(c) {
		return domain.ErrForbidden
	}
	return nil
}

// CanRead allows admins and the lead's assignee.
func CanRead(caller domain.Caller, lead *domain.Lead) error {
	if caller.Role.Can(domain.CapViewAllLeads) || lead.IsAssignedTo(caller.ID) {
		return nil
	}
	return domain.ErrForbidden
}

// CanUpdate allows admins and the lead's current assignee. Changing the
// assignee additionally requires the assign capability.
func CanUpdate(caller domain.Caller, lead *domain.Lead, reassign bool) error {
	if !caller.Role.Can(domain.CapUpdateAnyLead) && !lead.IsAssignedTo(caller.ID) {
		return domain.ErrForbidden
	}
	if reassign && !caller.Role.Can(domain.CapAssignLeads) {
		return domain.ErrForbidden
	}
	return nil
}

// CanDelete does not look at assignment: only the delete capability counts.
func CanDelete(caller domain.Caller) error {
	return Require(caller, domain.CapDeleteLead)
}

// CanEditNotes allows anyone who can read the lead.
func CanEditNotes(caller domain.Caller, lead *domain.Lead) error {
	return CanRead(caller, lead)
}

// CreateAssignee returns the assignee a newly created lead must get.
// Callers without the assign capability always own what they create.
func CreateAssignee(caller domain.Caller, requested *uuid.UUID) *uuid.UUID {
	if !caller.Role.Can(domain.CapAssignLeads) {
		id := caller.ID
		return &id
	}
	return requested
}
