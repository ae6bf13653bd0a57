// Package testhelper provisions a migrated PostgreSQL database for
// integration and end-to-end tests.
package testhelper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	postgres "github.com/leadflow/leadflow-backend/internal/adapter/postgres"
)

// DSNEnv points the helpers at an existing database instead of starting a
// container. The database is migrated but never dropped.
const DSNEnv = "LEADFLOW_TEST_DSN"

var (
	dbOnce  sync.Once
	testDSN string
	dbErr   error
)

// SetupTestDB returns a pool on the shared, migrated test database. The
// database (container or DSNEnv) is prepared once per test binary; each
// caller gets its own pool, closed on cleanup.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbOnce.Do(func() { testDSN, dbErr = provision() })
	if dbErr != nil {
		t.Fatalf("testhelper: provision database: %v", dbErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, testDSN)
	if err != nil {
		t.Fatalf("testhelper: connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func provision() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		var err error
		if dsn, err = startPostgres(ctx); err != nil {
			return "", err
		}
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := postgres.Migrate(ctx, dsn, quiet); err != nil {
		return "", err
	}
	return dsn, nil
}

// startPostgres runs the same major version production uses. The
// container is reaped by testcontainers' ryuk sidecar when the test
// process exits.
func startPostgres(ctx context.Context) (string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "leadflow",
				"POSTGRES_PASSWORD": "leadflow",
				"POSTGRES_DB":       "leadflow_test",
			},
			// The entrypoint restarts postgres once after initdb.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		return "", fmt.Errorf("resolve postgres endpoint: %w", err)
	}
	return fmt.Sprintf("postgres://leadflow:leadflow@%s/leadflow_test?sslmode=disable", endpoint), nil
}
