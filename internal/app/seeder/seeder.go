// Package seeder bootstraps a fresh database: the first super-admin and,
// optionally, a set of demo leads.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/leadflow/leadflow-backend/internal/auth"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

type userRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
}

type leadRepo interface {
	CreateMany(ctx context.Context, leads []domain.Lead) (int, error)
}

// Result summarizes a run.
type Result struct {
	AdminCreated bool
	AdminID      uuid.UUID
	LeadsCreated int
	Duration     time.Duration
}

// Seeder creates bootstrap data. Every step is idempotent except demo leads,
// which are only inserted together with a newly created admin.
type Seeder struct {
	log      *slog.Logger
	users    userRepo
	leads    leadRepo
	clock    clockwork.Clock
	cfg      Config
	hashCost int
}

// New creates a Seeder.
func New(log *slog.Logger, users userRepo, leads leadRepo, clock clockwork.Clock, cfg Config, hashCost int) *Seeder {
	return &Seeder{
		log:      log.With("component", "seeder"),
		users:    users,
		leads:    leads,
		clock:    clock,
		cfg:      cfg,
		hashCost: hashCost,
	}
}

// Run seeds the database.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	start := s.clock.Now()
	var res Result

	email, ok := auth.NormalizeEmail(s.cfg.AdminEmail)
	if !ok {
		return res, domain.NewValidationError("admin_email", "invalid email")
	}
	if len(s.cfg.AdminPassword) < 6 {
		return res, domain.NewValidationError("admin_password", "must be at least 6 characters")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		s.log.InfoContext(ctx, "admin already exists, nothing to do",
			slog.String("email", email),
			slog.String("role", existing.Role.String()),
		)
		res.AdminID = existing.ID
		res.Duration = s.clock.Since(start)
		return res, nil
	case !errors.Is(err, domain.ErrNotFound):
		return res, fmt.Errorf("lookup admin: %w", err)
	}

	if s.cfg.DryRun {
		s.log.InfoContext(ctx, "dry run, admin would be created", slog.String("email", email))
		res.Duration = s.clock.Since(start)
		return res, nil
	}

	admin, err := s.createAdmin(ctx, email)
	if err != nil {
		return res, err
	}
	res.AdminCreated = true
	res.AdminID = admin.ID
	s.log.InfoContext(ctx, "admin created", slog.String("email", email), slog.String("id", admin.ID.String()))

	if s.cfg.DemoLeads > 0 {
		leads := demoLeads(s.cfg.DemoLeads, s.clock.Now())
		n, err := batchProcess(leads, s.cfg.BatchSize, func(batch []domain.Lead) (int, error) {
			return s.leads.CreateMany(ctx, batch)
		})
		res.LeadsCreated = n
		if err != nil {
			return res, fmt.Errorf("insert demo leads: %w", err)
		}
		s.log.InfoContext(ctx, "demo leads created", slog.Int("count", n))
	}

	res.Duration = s.clock.Since(start)
	return res, nil
}

func (s *Seeder) createAdmin(ctx context.Context, email string) (*domain.User, error) {
	hash, err := auth.HashPassword(s.cfg.AdminPassword, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	name := strings.TrimSpace(s.cfg.AdminName)
	if name == "" {
		name = auth.EmailLocalPart(email)
	}

	now := s.clock.Now()
	created, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return created, nil
}

var (
	demoSources = []string{"Website", "Referral", "LinkedIn", "Trade show", "Cold call"}
	demoTags    = [][]string{{"enterprise"}, {"smb", "priority"}, {}, {"follow-up"}, {"priority"}}
)

// demoLeads builds n unassigned leads spread over the statuses and the
// preceding n days.
func demoLeads(n int, now time.Time) []domain.Lead {
	statuses := domain.LeadStatuses
	leads := make([]domain.Lead, n)
	for i := range leads {
		created := now.Add(-time.Duration(i) * 24 * time.Hour)
		leads[i] = domain.Lead{
			ID:        uuid.New(),
			Name:      fmt.Sprintf("Demo Lead %d", i+1),
			Email:     fmt.Sprintf("demo.lead%d@example.com", i+1),
			Source:    demoSources[i%len(demoSources)],
			Status:    statuses[i%len(statuses)],
			Tags:      demoTags[i%len(demoTags)],
			CreatedAt: created,
			UpdatedAt: created,
		}
	}
	return leads
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
