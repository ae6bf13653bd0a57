//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/leadflow/leadflow-backend/internal/adapter/postgres/testhelper"
	"github.com/leadflow/leadflow-backend/internal/adapter/redis/statscache"
	"github.com/leadflow/leadflow-backend/internal/app"
	authpkg "github.com/leadflow/leadflow-backend/internal/auth"
	"github.com/leadflow/leadflow-backend/internal/config"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

const (
	jwtSecret = "test-secret-at-least-32-chars-long!!"
	jwtIssuer = "leadflow-e2e"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{MaxUploadBytes: 1 << 20},
		Auth: config.AuthConfig{
			JWTSecret:           jwtSecret,
			JWTIssuer:           jwtIssuer,
			TokenTTL:            12 * time.Hour,
			PasswordHashCost:    4,
			PasswordMinLength:   6,
			RegistrationEnabled: true,
		},
		Presence: config.PresenceConfig{ActiveWindow: 15 * time.Minute},
		Leads: config.LeadsConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
			ExportMaxRows:   1000,
			ImportMaxRows:   100,
			ImportChunkSize: 2,
			RecentLimit:     5,
			StatsCacheTTL:   time.Minute,
		},
		Activity:  config.ActivityConfig{ReadLimit: 100, WriteTimeout: time.Second},
		RateLimit: config.RateLimitConfig{AuthPerMinute: 1000, IdleTTL: time.Minute},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		},
	}
}

// setupTestServer bootstraps the application stack backed by a real
// PostgreSQL container (shared via testhelper) and an in-memory redis.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := testConfig()
	clock := clockwork.NewRealClock()

	handler, cleanup := app.NewHandler(app.Deps{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(testLogWriter{t}, nil)),
		Pool:   pool,
		Cache:  statscache.New(rdb, cfg.Leads.StatsCacheTTL),
		Clock:  clock,
	})
	t.Cleanup(cleanup)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    authpkg.NewJWTManager(jwtSecret, jwtIssuer, 12*time.Hour, clock),
	}
}

// ---------------------------------------------------------------------------
// Request helpers.
// ---------------------------------------------------------------------------

// restRequest sends a JSON request. body may be nil.
func restRequest(t *testing.T, ts *testServer, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// call sends a request and decodes the JSON response into out (if non-nil).
func call(t *testing.T, ts *testServer, method, path, token string, body, out any) int {
	t.Helper()
	resp := restRequest(t, ts, method, path, token, body)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// uploadXLSX posts a one-sheet workbook to path as the "file" field.
func uploadXLSX(t *testing.T, ts *testServer, path, token string, rows [][]any) *http.Response {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}
	xlsx, err := f.WriteToBuffer()
	require.NoError(t, err)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "leads.xlsx")
	require.NoError(t, err)
	_, err = part.Write(xlsx.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// ---------------------------------------------------------------------------
// Fixture helpers.
// ---------------------------------------------------------------------------

// createUser seeds a user with the given role and returns a valid token.
func createUser(t *testing.T, ts *testServer, role domain.Role) (string, domain.User) {
	t.Helper()

	u := testhelper.SeedUser(t, ts.Pool, role)
	tok, err := ts.jwt.GenerateToken(u.ID, role.String())
	require.NoError(t, err)
	return tok, u
}

// createUserWithPassword seeds a user that can sign in with password.
func createUserWithPassword(t *testing.T, ts *testServer, role domain.Role, password string) domain.User {
	t.Helper()

	hash, err := authpkg.HashPassword(password, 4)
	require.NoError(t, err)

	suffix := uuid.New().String()[:8]
	now := time.Now().UTC()
	u := domain.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("login-%s@example.com", suffix),
		Name:         "Login " + suffix,
		PasswordHash: hash,
		Role:         role,
	}
	_, err = ts.Pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role.String(), now,
	)
	require.NoError(t, err)
	return u
}

// uniqueName returns a lead name that only this test uses, so list and
// search assertions are not disturbed by other tests sharing the database.
func uniqueName(prefix string) string {
	return prefix + " " + uuid.New().String()[:8]
}

// ---------------------------------------------------------------------------
// Response shapes.
// ---------------------------------------------------------------------------

type authBody struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

type leadBody struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Status string   `json:"status"`
	Tags   []string `json:"tags"`
	Notes  []struct {
		ID     string `json:"id"`
		Text   string `json:"text"`
		Author string `json:"author"`
	} `json:"notes"`
	AssignedTo *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"assignedTo"`
}

type leadPageBody struct {
	Items      []leadBody `json:"items"`
	Pagination struct {
		Total int `json:"total"`
		Page  int `json:"page"`
		Pages int `json:"pages"`
	} `json:"pagination"`
}
