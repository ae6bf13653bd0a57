// Package activity implements the ActivityLog repository using PostgreSQL.
// It provides append-only operations for audit records.
package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	postgres "github.com/leadflow/leadflow-backend/internal/adapter/postgres"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

// Repo provides activity log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new activity repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create appends one record. There is deliberately no update or delete.
func (r *Repo) Create(ctx context.Context, log domain.ActivityLog) error {
	query, args, err := postgres.Builder().
		Insert("activity_logs").
		Columns("id", "user_id", "action", "details", "ip_address", "created_at").
		Values(log.ID, log.UserID, log.Action.String(), log.Details, log.IPAddress, log.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "activity_log", log.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Recent returns the newest limit records. Records whose actor no longer
// exists are returned with a nil Actor.
func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	query, args, err := postgres.Builder().
		Select(
			"a.id", "a.user_id", "a.action", "a.details", "a.ip_address", "a.created_at",
			"u.name", "u.email", "u.role",
		).
		From("activity_logs a").
		LeftJoin("users u ON u.id = a.user_id").
		OrderBy("a.created_at DESC", "a.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "activity_logs", "")
	}
	defer rows.Close()

	logs := make([]domain.ActivityLog, 0, limit)
	for rows.Next() {
		var (
			l                 domain.ActivityLog
			action            string
			name, email, role *string
		)
		if err := rows.Scan(&l.ID, &l.UserID, &action, &l.Details, &l.IPAddress, &l.CreatedAt,
			&name, &email, &role); err != nil {
			return nil, postgres.MapError(err, "activity_logs", "")
		}
		l.Action = domain.ActivityAction(action)
		l.Actor = toActor(l.UserID, name, email, role)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "activity_logs", "")
	}
	return logs, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func toActor(id uuid.UUID, name, email, role *string) *domain.UserRef {
	if name == nil {
		return nil
	}
	ref := &domain.UserRef{ID: id, Name: *name}
	if email != nil {
		ref.Email = *email
	}
	if role != nil {
		ref.Role = domain.Role(*role)
	}
	return ref
}
