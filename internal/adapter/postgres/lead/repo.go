// Package lead implements the Lead repository using PostgreSQL.
// Notes live in their own table but are only reachable through a lead.
package lead

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/leadflow/leadflow-backend/internal/adapter/postgres"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

var selectColumns = []string{
	"l.id", "l.name", "l.email", "l.phone", "l.source", "l.status", "l.tags",
	"l.assigned_to", "l.created_at", "l.updated_at",
	"u.name", "u.email", "u.role",
}

var insertColumns = []string{
	"id", "name", "email", "phone", "source", "status", "tags",
	"assigned_to", "created_at", "updated_at",
}

// Repo provides lead persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new lead repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// List returns one page of leads matching q, newest first, together with
// the total number of matches.
func (r *Repo) List(ctx context.Context, q domain.LeadQuery) ([]domain.Lead, int, error) {
	countQuery, countArgs, err := applyFilter(
		postgres.Builder().Select("count(*)").From("leads l"), q.Filter,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.q(ctx).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "leads", "")
	}
	if total == 0 {
		return []domain.Lead{}, 0, nil
	}

	b := applyFilter(selectLeads(), q.Filter).OrderBy("l.created_at DESC", "l.id DESC")
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit)).Offset(uint64(q.Offset()))
	}

	leads, err := r.queryLeads(ctx, b)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachNotes(ctx, leads); err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// ListForExport returns up to limit leads matching f without their notes.
func (r *Repo) ListForExport(ctx context.Context, f domain.LeadFilter, limit int) ([]domain.Lead, error) {
	b := applyFilter(selectLeads(), f).OrderBy("l.created_at DESC", "l.id DESC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return r.queryLeads(ctx, b)
}

// GetByID returns a lead with its notes and assignee.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	query, args, err := selectLeads().Where(sq.Eq{"l.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	lead, err := scanLead(r.q(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "lead", id)
	}

	leads := []domain.Lead{*lead}
	if err := r.attachNotes(ctx, leads); err != nil {
		return nil, err
	}
	return &leads[0], nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts l and returns the stored lead.
func (r *Repo) Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	query, args, err := postgres.Builder().
		Insert("leads").
		Columns(insertColumns...).
		Values(insertValues(l)...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if _, err := r.q(ctx).Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, "lead", l.ID)
	}
	return r.GetByID(ctx, l.ID)
}

// CreateMany inserts leads in a single statement and returns how many rows
// were written. Callers bound the batch size.
func (r *Repo) CreateMany(ctx context.Context, leads []domain.Lead) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}

	b := postgres.Builder().Insert("leads").Columns(insertColumns...)
	for i := range leads {
		b = b.Values(insertValues(&leads[i])...)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "leads", "")
	}
	return int(tag.RowsAffected()), nil
}

// Update writes every editable field of l and returns the stored lead.
func (r *Repo) Update(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	query, args, err := postgres.Builder().
		Update("leads").
		SetMap(map[string]any{
			"name":        l.Name,
			"email":       l.Email,
			"phone":       l.Phone,
			"source":      l.Source,
			"status":      l.Status.String(),
			"tags":        nonNilTags(l.Tags),
			"assigned_to": l.AssignedTo,
			"updated_at":  l.UpdatedAt,
		}).
		Where(sq.Eq{"id": l.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lead", l.ID)
	}
	if tag.RowsAffected() == 0 {
		return nil, postgres.MapError(pgx.ErrNoRows, "lead", l.ID)
	}
	return r.GetByID(ctx, l.ID)
}

// Delete removes a lead and, by cascade, its notes.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().Delete("leads").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "lead", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "lead", id)
	}
	return nil
}

// AddNote appends a note to its lead.
func (r *Repo) AddNote(ctx context.Context, n domain.Note) error {
	query, args, err := postgres.Builder().
		Insert("lead_notes").
		Columns("id", "lead_id", "text", "author", "created_at").
		Values(n.ID, n.LeadID, n.Text, n.Author, n.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.q(ctx).Exec(ctx, query, args...); err != nil {
		// 23503 here means the lead vanished between the read and the write.
		return postgres.MapError(err, "lead", n.LeadID)
	}
	return nil
}

// DeleteNote removes one note of one lead.
func (r *Repo) DeleteNote(ctx context.Context, leadID, noteID uuid.UUID) error {
	query, args, err := postgres.Builder().
		Delete("lead_notes").
		Where(sq.Eq{"id": noteID, "lead_id": leadID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "note", noteID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "note", noteID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Aggregates
// ---------------------------------------------------------------------------

// StatusCounts groups the leads matching f by status.
func (r *Repo) StatusCounts(ctx context.Context, f domain.LeadFilter) ([]domain.StatusCount, error) {
	query, args, err := applyFilter(
		postgres.Builder().Select("l.status", "count(*)").From("leads l"), f,
	).GroupBy("l.status").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lead stats", "")
	}
	defer rows.Close()

	counts := make([]domain.StatusCount, 0, len(domain.LeadStatuses))
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, postgres.MapError(err, "lead stats", "")
		}
		counts = append(counts, domain.StatusCount{Status: domain.LeadStatus(status), Count: n})
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "lead stats", "")
	}
	return counts, nil
}

// AgentCounts groups the leads matching f by assignee, largest first.
// Unassigned leads form one bucket with a nil AgentID.
func (r *Repo) AgentCounts(ctx context.Context, f domain.LeadFilter) ([]domain.AgentCount, error) {
	query, args, err := applyFilter(
		postgres.Builder().
			Select("l.assigned_to", "COALESCE(u.name, '')", "count(*)").
			From("leads l").
			LeftJoin("users u ON u.id = l.assigned_to"),
		f,
	).GroupBy("l.assigned_to", "u.name").OrderBy("count(*) DESC", "u.name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lead stats", "")
	}
	defer rows.Close()

	counts := make([]domain.AgentCount, 0)
	for rows.Next() {
		var c domain.AgentCount
		if err := rows.Scan(&c.AgentID, &c.Name, &c.Count); err != nil {
			return nil, postgres.MapError(err, "lead stats", "")
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "lead stats", "")
	}
	return counts, nil
}

// Recent returns the newest limit leads matching f in compact form.
func (r *Repo) Recent(ctx context.Context, f domain.LeadFilter, limit int) ([]domain.RecentLead, error) {
	query, args, err := applyFilter(
		postgres.Builder().
			Select("l.id", "l.name", "l.email", "l.status", "l.created_at").
			From("leads l"),
		f,
	).OrderBy("l.created_at DESC", "l.id DESC").Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lead stats", "")
	}
	defer rows.Close()

	recent := make([]domain.RecentLead, 0, limit)
	for rows.Next() {
		var (
			rl     domain.RecentLead
			status string
		)
		if err := rows.Scan(&rl.ID, &rl.Name, &rl.Email, &status, &rl.CreatedAt); err != nil {
			return nil, postgres.MapError(err, "lead stats", "")
		}
		rl.Status = domain.LeadStatus(status)
		recent = append(recent, rl)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "lead stats", "")
	}
	return recent, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func selectLeads() sq.SelectBuilder {
	return postgres.Builder().
		Select(selectColumns...).
		From("leads l").
		LeftJoin("users u ON u.id = l.assigned_to")
}

// applyFilter ANDs every non-empty dimension of f onto b. The builder must
// alias leads as l.
func applyFilter(b sq.SelectBuilder, f domain.LeadFilter) sq.SelectBuilder {
	if f.AssignedTo != nil {
		b = b.Where(sq.Eq{"l.assigned_to": *f.AssignedTo})
	}
	if f.Status != nil {
		b = b.Where(sq.Eq{"l.status": f.Status.String()})
	}
	if len(f.Tags) > 0 {
		// Overlap: a lead matches when it carries at least one requested tag.
		b = b.Where("l.tags && ?", f.Tags)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		b = b.Where(sq.Or{
			sq.ILike{"l.name": pattern},
			sq.ILike{"l.email": pattern},
			sq.ILike{"l.phone": pattern},
			sq.ILike{"l.source": pattern},
		})
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"l.created_at": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"l.created_at": *f.To})
	}
	return b
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *Repo) queryLeads(ctx context.Context, b sq.SelectBuilder) ([]domain.Lead, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "leads", "")
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, postgres.MapError(err, "leads", "")
		}
		leads = append(leads, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "leads", "")
	}
	return leads, nil
}

// attachNotes loads the notes of every lead in one query, oldest first.
func (r *Repo) attachNotes(ctx context.Context, leads []domain.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(leads))
	index := make(map[uuid.UUID]int, len(leads))
	for i := range leads {
		ids[i] = leads[i].ID
		index[leads[i].ID] = i
		leads[i].Notes = []domain.Note{}
	}

	query, args, err := postgres.Builder().
		Select("id", "lead_id", "text", "author", "created_at").
		From("lead_notes").
		Where("lead_id = ANY(?)", ids).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "lead notes", "")
	}
	defer rows.Close()

	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.LeadID, &n.Text, &n.Author, &n.CreatedAt); err != nil {
			return postgres.MapError(err, "lead notes", "")
		}
		if i, ok := index[n.LeadID]; ok {
			leads[i].Notes = append(leads[i].Notes, n)
		}
	}
	return postgres.MapError(rows.Err(), "lead notes", "")
}

func scanLead(row pgx.Row) (*domain.Lead, error) {
	var (
		l                         domain.Lead
		status                    string
		assigneeName, assigneeEml *string
		assigneeRole              *string
	)
	err := row.Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Source, &status, &l.Tags,
		&l.AssignedTo, &l.CreatedAt, &l.UpdatedAt,
		&assigneeName, &assigneeEml, &assigneeRole,
	)
	if err != nil {
		return nil, err
	}

	l.Status = domain.LeadStatus(status)
	if l.Tags == nil {
		l.Tags = []string{}
	}
	if l.AssignedTo != nil && assigneeName != nil {
		l.Assignee = &domain.UserRef{ID: *l.AssignedTo, Name: *assigneeName}
		if assigneeEml != nil {
			l.Assignee.Email = *assigneeEml
		}
		if assigneeRole != nil {
			l.Assignee.Role = domain.Role(*assigneeRole)
		}
	}
	return &l, nil
}

func insertValues(l *domain.Lead) []any {
	return []any{
		l.ID, l.Name, l.Email, l.Phone, l.Source, l.Status.String(), nonNilTags(l.Tags),
		l.AssignedTo, l.CreatedAt, l.UpdatedAt,
	}
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
