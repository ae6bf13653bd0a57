package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	postgres "github.com/leadflow/leadflow-backend/internal/adapter/postgres"
	activityrepo "github.com/leadflow/leadflow-backend/internal/adapter/postgres/activity"
	leadrepo "github.com/leadflow/leadflow-backend/internal/adapter/postgres/lead"
	userrepo "github.com/leadflow/leadflow-backend/internal/adapter/postgres/user"
	"github.com/leadflow/leadflow-backend/internal/adapter/provider/google"
	"github.com/leadflow/leadflow-backend/internal/adapter/redis/statscache"
	"github.com/leadflow/leadflow-backend/internal/adapter/spreadsheet"
	"github.com/leadflow/leadflow-backend/internal/auth"
	"github.com/leadflow/leadflow-backend/internal/config"
	"github.com/leadflow/leadflow-backend/internal/domain"
	"github.com/leadflow/leadflow-backend/internal/service/activity"
	authsvc "github.com/leadflow/leadflow-backend/internal/service/auth"
	"github.com/leadflow/leadflow-backend/internal/service/lead"
	"github.com/leadflow/leadflow-backend/internal/service/user"
	"github.com/leadflow/leadflow-backend/internal/transport/middleware"
	"github.com/leadflow/leadflow-backend/internal/transport/rest"
)

// StatsCache is the optional dashboard cache. A nil value disables caching.
type StatsCache interface {
	Get(ctx context.Context, scope string) (*domain.LeadStats, int64, error)
	Set(ctx context.Context, scope string, gen int64, stats *domain.LeadStats) error
	Invalidate(ctx context.Context) error
	Ping(ctx context.Context) error
}

// OAuthVerifier is the optional Google ID token verifier.
type OAuthVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.OAuthIdentity, error)
}

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL and (optionally) Redis, wires the services and serves HTTP
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := NewLogger(cfg.Log, "server")
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	logger.Info("starting application",
		slog.String("commit", Build().Commit),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	var cache StatsCache
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, stats will be computed on demand",
				slog.String("addr", cfg.Redis.Addr),
				slog.String("error", err.Error()),
			)
		}
		cache = statscache.New(client, cfg.Leads.StatsCacheTTL)
	}

	var oauth OAuthVerifier
	if cfg.Auth.GoogleEnabled() {
		oauth = google.NewVerifier(cfg.Auth.GoogleClientID, logger)
	}

	handler, cleanup := NewHandler(Deps{
		Config: cfg,
		Logger: logger,
		Pool:   pool,
		Cache:  cache,
		OAuth:  oauth,
		Clock:  clockwork.NewRealClock(),
	})
	defer cleanup()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return Serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// Deps are the connected infrastructure the HTTP stack is built on.
type Deps struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool
	Cache  StatsCache
	OAuth  OAuthVerifier
	Clock  clockwork.Clock
}

// NewHandler wires repositories, services and transport into the API
// handler. The returned cleanup releases background resources.
func NewHandler(d Deps) (http.Handler, func()) {
	cfg, logger := d.Config, d.Logger

	// Repositories.
	users := userrepo.New(d.Pool)
	leads := leadrepo.New(d.Pool)
	activityLogs := activityrepo.New(d.Pool)
	txm := postgres.NewTxManager(d.Pool)

	// Services.
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL, d.Clock)
	recorder := activity.NewRecorder(logger, activityLogs, d.Clock, cfg.Activity)
	authService := authsvc.NewService(logger, users, recorder, d.OAuth, jwtManager, d.Clock, cfg.Auth)
	userService := user.NewService(logger, users, recorder, jwtManager, d.Cache, d.Clock, cfg.Auth, cfg.Presence)
	leadService := lead.NewService(logger, leads, users, recorder, d.Cache, spreadsheet.Codec{}, txm, d.Clock, cfg.Leads)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.IdleTTL)

	router := rest.NewRouter(rest.Handlers{
		Health: rest.NewHealthHandler(Build().String(), d.Clock,
			rest.Check{Name: "database", Probe: d.Pool, Critical: true},
			rest.Check{Name: "redis", Probe: d.Cache},
		),
		Auth:   rest.NewAuthHandler(authService, logger),
		Lead:   rest.NewLeadHandler(leadService, logger, cfg.Server.MaxUploadBytes),
		User:   rest.NewUserHandler(userService, recorder, logger),
	}, rest.RouterConfig{
		Global: []middleware.Middleware{
			middleware.Recovery(logger),
			middleware.RequestID,
			middleware.ClientIP,
			middleware.Logger(logger),
			middleware.CORS(cfg.CORS),
			middleware.Auth(authService),
		},
		AuthLimit: limiter.Limit(cfg.RateLimit.AuthPerMinute),
	})

	return router, limiter.Stop
}
