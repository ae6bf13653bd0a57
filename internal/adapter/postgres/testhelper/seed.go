package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadflow/leadflow-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with the given role. The password hash is a
// placeholder and never matches any password.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "user-" + suffix + "@example.com",
		Name:         "Test User " + suffix,
		PasswordHash: "!",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role.String(), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedLead inserts a lead. createdAt controls list ordering in tests.
func SeedLead(t *testing.T, pool *pgxpool.Pool, name string, status domain.LeadStatus, tags []string, assignedTo *uuid.UUID, createdAt time.Time) domain.Lead {
	t.Helper()
	ctx := context.Background()

	if tags == nil {
		tags = []string{}
	}
	lead := domain.Lead{
		ID:         uuid.New(),
		Name:       name,
		Email:      name + "-" + uniqueSuffix() + "@leads.example.com",
		Phone:      "+1-555-0100",
		Source:     "Website",
		Status:     status,
		Tags:       tags,
		AssignedTo: assignedTo,
		CreatedAt:  createdAt.UTC().Truncate(time.Microsecond),
		UpdatedAt:  createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO leads (id, name, email, phone, source, status, tags, assigned_to, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Source, lead.Status.String(),
		lead.Tags, lead.AssignedTo, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLead: %v", err)
	}

	return lead
}
