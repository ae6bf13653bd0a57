package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/leadflow/leadflow-backend/internal/auth"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

// Register creates a support-agent account and signs it in. The role is
// never taken from the request.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if !s.cfg.RegistrationEnabled {
		return nil, ErrRegistrationDisabled
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := input.Validate(s.cfg.PasswordMinLength); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	now := s.clock.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         domain.RoleSupportAgent,
		LastLogin:    &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Register create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("auth.Register generate token: %w", err)
	}

	s.activity.Record(ctx, user.ID, domain.ActionRegister, "User registered new account")
	s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))

	return &AuthResult{User: user, Token: token, Created: true}, nil
}
