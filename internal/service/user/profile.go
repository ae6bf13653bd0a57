package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leadflow/leadflow-backend/internal/auth"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

// ProfileResult is the updated profile plus a freshly issued token.
type ProfileResult struct {
	User  *domain.User
	Token string
}

// GetProfile returns the caller's own account.
func (s *Service) GetProfile(ctx context.Context, caller domain.Caller) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("user.GetProfile: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's own account.
// The role can never be changed here.
func (s *Service) UpdateProfile(ctx context.Context, caller domain.Caller, input UpdateProfileInput) (*ProfileResult, error) {
	if err := input.Validate(s.auth.PasswordMinLength); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("user.UpdateProfile: %w", err)
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
	if input.ProfilePic != nil {
		user.ProfilePic = strings.TrimSpace(*input.ProfilePic)
	}
	if input.DOB != nil {
		user.DOB = nil
		if *input.DOB != "" {
			dob, _ := time.Parse(dobLayout, *input.DOB)
			user.DOB = &dob
		}
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.auth.PasswordHashCost)
		if err != nil {
			return nil, fmt.Errorf("user.UpdateProfile: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.clock.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("user.UpdateProfile: %w", err)
	}
	if input.Name != nil {
		s.invalidateStats(ctx)
	}

	token, err := s.tokens.GenerateToken(updated.ID, updated.Role.String())
	if err != nil {
		return nil, fmt.Errorf("user.UpdateProfile generate token: %w", err)
	}

	s.activity.Record(ctx, updated.ID, domain.ActionUpdateProfile, "User updated their profile")
	s.log.InfoContext(ctx, "profile updated", slog.String("user_id", updated.ID.String()))

	return &ProfileResult{User: updated, Token: token}, nil
}

// Ping records a heartbeat for the caller.
func (s *Service) Ping(ctx context.Context, caller domain.Caller) error {
	if err := s.users.TouchLastActive(ctx, caller.ID, s.clock.Now().UTC()); err != nil {
		return fmt.Errorf("user.Ping: %w", err)
	}
	return nil
}
