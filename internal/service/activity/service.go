// Package activity records and reads the audit trail.
//
// Recording is best-effort: the action being audited has already committed,
// so a failed write is logged and dropped.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/leadflow/leadflow-backend/internal/access"
	"github.com/leadflow/leadflow-backend/internal/config"
	"github.com/leadflow/leadflow-backend/internal/domain"
	"github.com/leadflow/leadflow-backend/pkg/ctxutil"
)

// activityRepo defines the persistence the recorder needs.
type activityRepo interface {
	Create(ctx context.Context, log domain.ActivityLog) error
	Recent(ctx context.Context, limit int) ([]domain.ActivityLog, error)
}

// Recorder appends and reads activity logs.
type Recorder struct {
	log   *slog.Logger
	repo  activityRepo
	clock clockwork.Clock
	cfg   config.ActivityConfig
}

// NewRecorder creates a recorder. A nil clock means the real clock.
func NewRecorder(logger *slog.Logger, repo activityRepo, clock clockwork.Clock, cfg config.ActivityConfig) *Recorder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Recorder{
		log:   logger.With("service", "activity"),
		repo:  repo,
		clock: clock,
		cfg:   cfg,
	}
}

// Record appends one entry attributed to actorID. The client IP is taken
// from ctx. The write outlives cancellation of ctx but is bounded by the
// configured write timeout. Errors never reach the caller.
func (r *Recorder) Record(ctx context.Context, actorID uuid.UUID, action domain.ActivityAction, details string) {
	entry := domain.ActivityLog{
		ID:        uuid.New(),
		UserID:    actorID,
		Action:    action,
		Details:   details,
		IPAddress: ctxutil.ClientIPFromCtx(ctx),
		CreatedAt: r.clock.Now().UTC(),
	}

	timeout := r.cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := r.repo.Create(writeCtx, entry); err != nil {
		r.log.WarnContext(ctx, "activity log write failed",
			slog.String("action", action.String()),
			slog.String("user_id", actorID.String()),
			slog.String("error", err.Error()))
	}
}

// Recent returns the newest entries, newest first. Only callers allowed to
// view activity may read it.
func (r *Recorder) Recent(ctx context.Context, caller domain.Caller) ([]domain.ActivityLog, error) {
	if err := access.Require(caller, domain.CapViewActivity); err != nil {
		return nil, err
	}

	limit := r.cfg.ReadLimit
	if limit <= 0 {
		limit = 100
	}
	logs, err := r.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("activity.Recent: %w", err)
	}
	return logs, nil
}
