package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/leadflow/leadflow-backend/internal/domain"
	"github.com/leadflow/leadflow-backend/pkg/ctxutil"
)

type authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Caller, error)
}

// Auth resolves a bearer token to the current caller and stores it in the
// request context. Requests without a token pass through anonymously.
func Auth(a authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			caller, err := a.Authenticate(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authorized, token failed")
				return
			}
			ctx := ctxutil.WithPrincipal(r.Context(), ctxutil.Principal{
				ID:   caller.ID,
				Name: caller.Name,
				Role: caller.Role.String(),
			})
			noteUser(ctx, caller.ID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.PrincipalFromCtx(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "not authorized, no token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
