package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/leadflow/leadflow-backend/internal/auth"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

// Login authenticates with an email or display name plus password.
// Unknown accounts and wrong passwords both yield ErrUnauthorized.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Identifier = strings.TrimSpace(input.Identifier)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByLogin(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		return nil, domain.ErrUnauthorized
	}

	result, err := s.signIn(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	s.activity.Record(ctx, user.ID, domain.ActionLogin, "User logged in")
	s.log.InfoContext(ctx, "user logged in via password", slog.String("user_id", user.ID.String()))

	return result, nil
}

// LoginWithGoogle signs in with a Google ID token. An unknown verified
// email gets a new support-agent account with a random password.
func (s *Service) LoginWithGoogle(ctx context.Context, input GoogleInput) (*AuthResult, error) {
	if s.oauth == nil {
		return nil, ErrGoogleDisabled
	}
	input.IDToken = strings.TrimSpace(input.IDToken)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity, err := s.oauth.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithGoogle verify: %w", err)
	}

	user, err := s.users.GetByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		result, err := s.signIn(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("auth.LoginWithGoogle: %w", err)
		}
		s.activity.Record(ctx, user.ID, domain.ActionLoginGoogle, "User logged in via Google")
		s.log.InfoContext(ctx, "user logged in via google", slog.String("user_id", user.ID.String()))
		return result, nil

	case errors.Is(err, domain.ErrNotFound):
		// fall through to registration

	default:
		return nil, fmt.Errorf("auth.LoginWithGoogle get user: %w", err)
	}

	password, err := auth.RandomPassword()
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithGoogle: %w", err)
	}
	hash, err := auth.HashPassword(password, s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithGoogle: %w", err)
	}

	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = auth.EmailLocalPart(identity.Email)
	}

	now := s.clock.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        identity.Email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleSupportAgent,
		ProfilePic:   identity.PictureURL,
		LastLogin:    &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithGoogle create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(created.ID, created.Role.String())
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithGoogle generate token: %w", err)
	}

	s.activity.Record(ctx, created.ID, domain.ActionRegisterGoogle, "User registered via Google")
	s.log.InfoContext(ctx, "user registered via google", slog.String("user_id", created.ID.String()))

	return &AuthResult{User: created, Token: token, Created: true}, nil
}

// Authenticate resolves a bearer token to the current state of its user.
// Deleted users are rejected and role changes apply immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Caller, error) {
	userID, _, err := s.tokens.ValidateToken(token)
	if err != nil {
		return domain.Caller{}, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Caller{}, domain.ErrUnauthorized
		}
		return domain.Caller{}, fmt.Errorf("auth.Authenticate: %w", err)
	}
	return user.Caller(), nil
}
