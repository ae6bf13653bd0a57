package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/leadflow/leadflow-backend/internal/config"
)

// originMatcher decides which browser origins may call the API. Entries
// are exact origins, "*" for any, or a single-label wildcard such as
// "https://*.leadflow.app" for preview deployments.
type originMatcher struct {
	any      bool
	exact    map[string]struct{}
	suffixes []wildcard
}

type wildcard struct{ scheme, suffix string }

func newOriginMatcher(list string) originMatcher {
	m := originMatcher{exact: make(map[string]struct{})}
	for _, o := range strings.Split(list, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch {
		case o == "":
		case o == "*":
			m.any = true
		case strings.Contains(o, "://*."):
			scheme, host, _ := strings.Cut(o, "://*")
			m.suffixes = append(m.suffixes, wildcard{scheme: scheme + "://", suffix: host})
		default:
			m.exact[o] = struct{}{}
		}
	}
	return m
}

func (m originMatcher) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if m.any {
		return true
	}
	if _, ok := m.exact[origin]; ok {
		return true
	}
	for _, w := range m.suffixes {
		rest, ok := strings.CutPrefix(origin, w.scheme)
		if !ok || !strings.HasSuffix(rest, w.suffix) {
			continue
		}
		label := strings.TrimSuffix(rest, w.suffix)
		if label != "" && !strings.ContainsAny(label, "./:") {
			return true
		}
	}
	return false
}

// CORS answers browser preflights and decorates responses for allowed
// origins. The request origin is echoed rather than "*" so credentialed
// requests from the dashboard work. Plain OPTIONS requests without a
// preflight header fall through to the router.
func CORS(cfg config.CORSConfig) Middleware {
	origins := newOriginMatcher(cfg.AllowedOrigins)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()
			h.Add("Vary", "Origin")

			allowed := origins.allows(origin)
			if allowed {
				h.Set("Access-Control-Allow-Origin", origin)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if cfg.ExposedHeaders != "" {
					h.Set("Access-Control-Expose-Headers", cfg.ExposedHeaders)
				}
			}

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				next.ServeHTTP(w, r)
				return
			}

			if allowed {
				h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				h.Set("Access-Control-Max-Age", maxAge)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
