package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leadflow/leadflow-backend/internal/transport/middleware"
)

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health *HealthHandler
	Auth   *AuthHandler
	Lead   *LeadHandler
	User   *UserHandler
}

// RouterConfig carries the cross-cutting middleware. Global wraps every
// route in order; AuthLimit guards the public /api/auth endpoints.
type RouterConfig struct {
	Global    []middleware.Middleware
	AuthLimit middleware.Middleware
}

// NewRouter builds the HTTP route table.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	for _, mw := range cfg.Global {
		r.Use(mw)
	}

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			if cfg.AuthLimit != nil {
				r.Use(cfg.AuthLimit)
			}
			r.Post("/login", h.Auth.Login)
			r.Post("/register", h.Auth.Register)
			r.Post("/google", h.Auth.Google)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", h.Lead.List)
				r.Post("/", h.Lead.Create)
				r.Get("/stats", h.Lead.Stats)
				r.Get("/export", h.Lead.Export)
				r.Post("/import", h.Lead.Import)
				r.Get("/{id}", h.Lead.Get)
				r.Put("/{id}", h.Lead.Update)
				r.Delete("/{id}", h.Lead.Delete)
				r.Post("/{id}/note", h.Lead.AddNote)
				r.Delete("/{id}/note/{noteId}", h.Lead.DeleteNote)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Get("/profile", h.User.Profile)
				r.Put("/profile", h.User.UpdateProfile)
				r.Post("/ping", h.User.Ping)
				r.Get("/activity", h.User.Activity)
				r.Put("/{id}", h.User.Update)
				r.Delete("/{id}", h.User.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
