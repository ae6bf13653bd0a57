package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/leadflow/leadflow-backend/internal/access"
	"github.com/leadflow/leadflow-backend/internal/auth"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

// ListUsers returns every account with its presence status computed
// against the configured activity window.
func (s *Service) ListUsers(ctx context.Context, caller domain.Caller) ([]domain.UserWithPresence, error) {
	if err := access.Require(caller, domain.CapListUsers); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user.ListUsers: %w", err)
	}

	now := s.clock.Now()
	result := make([]domain.UserWithPresence, 0, len(users))
	for i := range users {
		result = append(result, domain.UserWithPresence{
			User:   users[i],
			Status: users[i].PresenceAt(now, s.presence.ActiveWindow),
		})
	}
	return result, nil
}

// CreateUser creates an account with an explicit role.
func (s *Service) CreateUser(ctx context.Context, caller domain.Caller, input CreateUserInput) (*domain.User, error) {
	if err := access.Require(caller, domain.CapManageUsers); err != nil {
		return nil, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := input.Validate(s.auth.PasswordMinLength); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.auth.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("user.CreateUser: %w", err)
	}

	email, _ := auth.NormalizeEmail(input.Email)
	now := s.clock.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         domain.Role(input.Role),
		Phone:        strings.TrimSpace(input.Phone),
		Location:     strings.TrimSpace(input.Location),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("user.CreateUser: %w", err)
	}

	s.activity.Record(ctx, caller.ID, domain.ActionCreateUser,
		fmt.Sprintf("Created user %s (%s)", created.Email, created.Role))
	s.log.InfoContext(ctx, "user created",
		slog.String("target_user_id", created.ID.String()),
		slog.String("role", created.Role.String()))

	return created, nil
}

// UpdateUser edits another account. A caller cannot change their own role.
func (s *Service) UpdateUser(ctx context.Context, caller domain.Caller, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	if err := access.Require(caller, domain.CapManageUsers); err != nil {
		return nil, err
	}
	if err := input.Validate(s.auth.PasswordMinLength); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user.UpdateUser: %w", err)
	}

	if input.Role != nil && domain.Role(*input.Role) != user.Role {
		if id == caller.ID {
			return nil, domain.NewValidationError("role", "cannot change your own role")
		}
		user.Role = domain.Role(*input.Role)
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		user.Email, _ = auth.NormalizeEmail(*input.Email)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Location != nil {
		user.Location = strings.TrimSpace(*input.Location)
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.auth.PasswordHashCost)
		if err != nil {
			return nil, fmt.Errorf("user.UpdateUser: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.clock.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("user.UpdateUser: %w", err)
	}

	s.activity.Record(ctx, caller.ID, domain.ActionUpdateUser, "Updated user "+updated.Email)
	s.invalidateStats(ctx)
	s.log.InfoContext(ctx, "user updated", slog.String("target_user_id", id.String()))

	return updated, nil
}

// DeleteUser removes an account. Leads assigned to it become unassigned.
func (s *Service) DeleteUser(ctx context.Context, caller domain.Caller, id uuid.UUID) error {
	if err := access.Require(caller, domain.CapManageUsers); err != nil {
		return err
	}
	if id == caller.ID {
		return domain.NewValidationError("id", "cannot delete your own account")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("user.DeleteUser: %w", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("user.DeleteUser: %w", err)
	}

	s.activity.Record(ctx, caller.ID, domain.ActionDeleteUser, "Deleted user "+user.Email)
	s.invalidateStats(ctx)
	s.log.InfoContext(ctx, "user deleted", slog.String("target_user_id", id.String()))

	return nil
}
