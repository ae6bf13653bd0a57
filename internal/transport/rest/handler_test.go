package rest

//go:generate moq -out auth_service_mock_test.go -pkg rest . authService
//go:generate moq -out lead_service_mock_test.go -pkg rest . leadService
//go:generate moq -out user_service_mock_test.go -pkg rest . userService
//go:generate moq -out activity_reader_mock_test.go -pkg rest . activityReader

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/leadflow/leadflow-backend/internal/domain"
	"github.com/leadflow/leadflow-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type testDeps struct {
	auth     *authServiceMock
	leads    *leadServiceMock
	users    *userServiceMock
	activity *activityReaderMock
}

func newDeps() *testDeps {
	return &testDeps{
		auth:     &authServiceMock{},
		leads:    &leadServiceMock{},
		users:    &userServiceMock{},
		activity: &activityReaderMock{},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestRouter(d *testDeps) http.Handler {
	log := testLogger()
	return NewRouter(Handlers{
		Health: NewHealthHandler("test", nil, Check{Name: "database", Probe: up, Critical: true}),
		Auth:   NewAuthHandler(d.auth, log),
		Lead:   NewLeadHandler(d.leads, log, 1<<20),
		User:   NewUserHandler(d.users, d.activity, log),
	}, RouterConfig{})
}

func callerOf(role domain.Role) domain.Caller {
	return domain.Caller{ID: uuid.New(), Name: "Tester", Role: role}
}

// do serves a request through the router. A zero caller is anonymous.
func do(t *testing.T, h http.Handler, caller domain.Caller, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, r)
	req = req.WithContext(withCaller(req.Context(), caller))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func withCaller(ctx context.Context, caller domain.Caller) context.Context {
	if caller.ID == uuid.Nil {
		return ctx
	}
	return ctxutil.WithPrincipal(ctx, ctxutil.Principal{ID: caller.ID, Name: caller.Name, Role: caller.Role.String()})
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func ptr[T any](v T) *T { return &v }
