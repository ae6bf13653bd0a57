package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/leadflow/leadflow-backend/internal/config"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error
}

// activityRecorder appends audit entries.
type activityRecorder interface {
	Record(ctx context.Context, actorID uuid.UUID, action domain.ActivityAction, details string)
}

// tokenIssuer re-issues a token after the caller's profile changes.
type tokenIssuer interface {
	GenerateToken(userID uuid.UUID, role string) (string, error)
}

// statsInvalidator drops cached lead stats, whose per-agent rows carry
// user names.
type statsInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service implements profile, heartbeat and user administration operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	activity activityRecorder
	tokens   tokenIssuer
	stats    statsInvalidator
	clock    clockwork.Clock
	auth     config.AuthConfig
	presence config.PresenceConfig
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	activity activityRecorder,
	tokens tokenIssuer,
	stats statsInvalidator,
	clock clockwork.Clock,
	authCfg config.AuthConfig,
	presenceCfg config.PresenceConfig,
) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		log:      logger.With("service", "user"),
		users:    users,
		activity: activity,
		tokens:   tokens,
		stats:    stats,
		clock:    clock,
		auth:     authCfg,
		presence: presenceCfg,
	}
}

func (s *Service) invalidateStats(ctx context.Context) {
	if s.stats == nil {
		return
	}
	if err := s.stats.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "stats cache invalidation failed", slog.String("error", err.Error()))
	}
}
