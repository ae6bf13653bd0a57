// Command seeder bootstraps a fresh database with the first super-admin
// account and, optionally, demo leads. Running it again is a no-op once
// the admin exists.
//
// Flags:
//
//	--seeder-config  path to seeder YAML config file
//	--dry-run        report what would be created without writing
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/leadflow/leadflow-backend/internal/adapter/postgres"
	leadrepo "github.com/leadflow/leadflow-backend/internal/adapter/postgres/lead"
	userrepo "github.com/leadflow/leadflow-backend/internal/adapter/postgres/user"
	"github.com/leadflow/leadflow-backend/internal/app"
	"github.com/leadflow/leadflow-backend/internal/app/seeder"
	"github.com/leadflow/leadflow-backend/internal/config"
)

func main() {
	dryRunFlag := flag.Bool("dry-run", false, "report without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	// Load app config (for DB connection).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger, closeLog, err := app.NewLogger(appCfg.Log, "seeder")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer closeLog() //nolint:errcheck

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if appCfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, appCfg.Database.DSN, logger); err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	s := seeder.New(logger, userrepo.New(pool), leadrepo.New(pool), clockwork.NewRealClock(),
		*seederCfg, appCfg.Auth.PasswordHashCost)

	res, err := s.Run(ctx)
	if err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeding completed",
		slog.Bool("admin_created", res.AdminCreated),
		slog.String("admin_id", res.AdminID.String()),
		slog.Int("leads_created", res.LeadsCreated),
		slog.Duration("duration", res.Duration),
	)
}
