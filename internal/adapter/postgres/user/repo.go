// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/leadflow/leadflow-backend/internal/adapter/postgres"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

const table = "users"

var columns = []string{
	"id", "email", "name", "password_hash", "role", "profile_pic",
	"phone", "location", "dob", "last_login", "last_active", "created_at", "updated_at",
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, id)
}

// GetByEmail returns a user by email address, ignoring case.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, sq.Expr("lower(email) = lower(?)", email), email)
}

// GetByLogin finds the account for a login identifier, which may be an
// email address or a display name. An email match wins over a name match.
func (r *Repo) GetByLogin(ctx context.Context, identifier string) (*domain.User, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Or{
			sq.Expr("lower(email) = lower(?)", identifier),
			sq.Eq{"name": identifier},
		}).
		OrderByClause("(lower(email) = lower(?)) DESC, created_at ASC", identifier).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	u, err := scanUser(r.q(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", identifier)
	}
	return u, nil
}

// List returns all users, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "users", "")
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, postgres.MapError(err, "users", "")
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "users", "")
	}
	return users, nil
}

// Create inserts a new user and returns the persisted row.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(u.ID, u.Email, u.Name, u.PasswordHash, u.Role.String(), u.ProfilePic,
			u.Phone, u.Location, u.DOB, u.LastLogin, u.LastActive, u.CreatedAt, u.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	created, err := scanUser(r.q(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", u.Email)
	}
	return created, nil
}

// Update writes every editable field of u.
func (r *Repo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	query, args, err := postgres.Builder().
		Update(table).
		SetMap(map[string]any{
			"email":         u.Email,
			"name":          u.Name,
			"password_hash": u.PasswordHash,
			"role":          u.Role.String(),
			"profile_pic":   u.ProfilePic,
			"phone":         u.Phone,
			"location":      u.Location,
			"dob":           u.DOB,
			"updated_at":    u.UpdatedAt,
		}).
		Where(sq.Eq{"id": u.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	updated, err := scanUser(r.q(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}
	return updated, nil
}

// UpdateRole changes the role of the user with the given email.
func (r *Repo) UpdateRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("role", role.String()).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Expr("lower(email) = lower(?)", email)).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	updated, err := scanUser(r.q(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", email)
	}
	return updated, nil
}

// Delete removes a user. Leads assigned to them become unassigned.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id)
	}
	return nil
}

// TouchLastLogin records a successful authentication.
func (r *Repo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.touch(ctx, id, "last_login", at)
}

// TouchLastActive records a heartbeat.
func (r *Repo) TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.touch(ctx, id, "last_active", at)
}

func (r *Repo) touch(ctx context.Context, id uuid.UUID, column string, at time.Time) error {
	query, args, err := postgres.Builder().
		Update(table).
		Set(column, at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id)
	}
	return nil
}

func (r *Repo) getOne(ctx context.Context, where sq.Sqlizer, ref any) (*domain.User, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	u, err := scanUser(r.q(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", ref)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.ProfilePic,
		&u.Phone, &u.Location, &u.DOB, &u.LastLogin, &u.LastActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}
