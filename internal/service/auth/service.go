package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/leadflow/leadflow-backend/internal/auth"
	"github.com/leadflow/leadflow-backend/internal/config"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

var (
	// ErrRegistrationDisabled is returned by Register when self-service
	// sign-up is turned off.
	ErrRegistrationDisabled = fmt.Errorf("registration disabled: %w", domain.ErrForbidden)
	// ErrGoogleDisabled is returned when no Google client is configured.
	ErrGoogleDisabled = fmt.Errorf("google sign-in: %w", domain.ErrNotFound)
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByLogin(ctx context.Context, identifier string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// activityRecorder appends audit entries.
type activityRecorder interface {
	Record(ctx context.Context, actorID uuid.UUID, action domain.ActivityAction, details string)
}

// oauthVerifier defines the Google ID token verification needed by auth service.
type oauthVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.OAuthIdentity, error)
}

// tokenManager defines the JWT operations needed by auth service.
type tokenManager interface {
	GenerateToken(userID uuid.UUID, role string) (string, error)
	ValidateToken(token string) (uuid.UUID, string, error)
}

// Service implements auth operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	activity activityRecorder
	oauth    oauthVerifier
	tokens   tokenManager
	clock    clockwork.Clock
	cfg      config.AuthConfig
}

// NewService creates a new auth service instance. oauth may be nil when
// Google sign-in is not configured.
func NewService(
	logger *slog.Logger,
	users userRepo,
	activity activityRecorder,
	oauth oauthVerifier,
	tokens tokenManager,
	clock clockwork.Clock,
	cfg config.AuthConfig,
) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		log:      logger.With("service", "auth"),
		users:    users,
		activity: activity,
		oauth:    oauth,
		tokens:   tokens,
		clock:    clock,
		cfg:      cfg,
	}
}

// AuthResult is the outcome of a successful sign-in or sign-up.
type AuthResult struct {
	User  *domain.User
	Token string
	// Created is set when the call created the account.
	Created bool
}

// signIn stamps lastLogin and issues a token.
func (s *Service) signIn(ctx context.Context, user *domain.User) (*AuthResult, error) {
	now := s.clock.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("touch last login: %w", err)
	}
	user.LastLogin = &now

	token, err := s.tokens.GenerateToken(user.ID, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
