// Package lead implements lead CRUD, notes, dashboard statistics and bulk
// spreadsheet import and export.
package lead

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/leadflow/leadflow-backend/internal/access"
	"github.com/leadflow/leadflow-backend/internal/config"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type leadRepo interface {
	List(ctx context.Context, q domain.LeadQuery) ([]domain.Lead, int, error)
	ListForExport(ctx context.Context, f domain.LeadFilter, limit int) ([]domain.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error)
	CreateMany(ctx context.Context, leads []domain.Lead) (int, error)
	Update(ctx context.Context, l *domain.Lead) (*domain.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddNote(ctx context.Context, n domain.Note) error
	DeleteNote(ctx context.Context, leadID, noteID uuid.UUID) error
	StatusCounts(ctx context.Context, f domain.LeadFilter) ([]domain.StatusCount, error)
	AgentCounts(ctx context.Context, f domain.LeadFilter) ([]domain.AgentCount, error)
	Recent(ctx context.Context, f domain.LeadFilter, limit int) ([]domain.RecentLead, error)
}

type userLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type activityRecorder interface {
	Record(ctx context.Context, actorID uuid.UUID, action domain.ActivityAction, details string)
}

type statsCache interface {
	Get(ctx context.Context, scope string) (*domain.LeadStats, int64, error)
	Set(ctx context.Context, scope string, gen int64, stats *domain.LeadStats) error
	Invalidate(ctx context.Context) error
}

type sheetCodec interface {
	Decode(r io.Reader) ([]domain.ImportRow, error)
	Encode(w io.Writer, leads []domain.Lead) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements lead operations.
type Service struct {
	log      *slog.Logger
	leads    leadRepo
	users    userLookup
	activity activityRecorder
	cache    statsCache
	sheets   sheetCodec
	tx       txManager
	clock    clockwork.Clock
	cfg      config.LeadsConfig
}

// NewService creates a new lead service instance. cache may be nil, in
// which case statistics are computed on every call.
func NewService(
	logger *slog.Logger,
	leads leadRepo,
	users userLookup,
	activity activityRecorder,
	cache statsCache,
	sheets sheetCodec,
	tx txManager,
	clock clockwork.Clock,
	cfg config.LeadsConfig,
) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		log:      logger.With("service", "lead"),
		leads:    leads,
		users:    users,
		activity: activity,
		cache:    cache,
		sheets:   sheets,
		tx:       tx,
		clock:    clock,
		cfg:      cfg,
	}
}

func (s *Service) paging() access.Paging {
	return access.Paging{DefaultLimit: s.cfg.DefaultPageSize, MaxLimit: s.cfg.MaxPageSize}
}

// invalidateStats drops cached dashboard aggregates after a mutation.
// A failure only delays freshness until the entries expire.
func (s *Service) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "stats cache invalidation failed", slog.String("error", err.Error()))
	}
}
