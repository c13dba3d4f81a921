package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tally-lab/project-tally/internal/analytics"
	"github.com/tally-lab/project-tally/internal/config"
	"github.com/tally-lab/project-tally/internal/dataset"
	"github.com/tally-lab/project-tally/internal/migrations"
	"github.com/tally-lab/project-tally/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"address", cfg.Server.Addr(),
		"mode", cfg.Server.Mode,
		"source_type", cfg.Dataset.SourceType,
		"top_n", cfg.Analytics.TopN,
	)

	if err := run(cfg); err != nil {
		slog.Error("Tally stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}

// run owns every resource opened after configuration, so deferred cleanup
// happens before main exits.
func run(cfg *config.Config) error {
	// 2. Initialize Dataset Source
	source, db, err := buildSource(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dataset source: %w", err)
	}
	if db != nil {
		defer db.Close()
	}

	// 3. Load the first snapshot
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := dataset.NewStore(source)
	if _, err := store.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	// 4. Initialize Analytics (query API)
	analyticsSvc := analytics.NewService(store, cfg.Analytics.TopN)

	// 5. Initialize Server
	srv := server.New(cfg.Server.Addr(), cfg.Server.Mode, store, server.CORSOptions{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	analyticsSvc.RegisterRoutes(srv.Engine)

	// 6. Start Services
	if cfg.Dataset.ReloadEvery > 0 {
		reloader := dataset.NewReloader(cfg.Dataset.ReloadEvery, store)
		go func() {
			if err := reloader.Start(ctx); err != nil {
				slog.Error("Reloader stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Dataset reloading disabled by config")
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("Signal received, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// HTTP server blocks until ctx is cancelled.
	return srv.Run(ctx)
}

// buildSource selects the record source. SQL sources also return the pool so
// the caller can close it.
func buildSource(cfg *config.Config) (dataset.Source, *sql.DB, error) {
	if cfg.Dataset.SourceType == config.SourceFile {
		return dataset.NewFileSource(cfg.Dataset.Paths...), nil, nil
	}

	driver := cfg.DatabaseDriver()
	db, err := dataset.OpenDB(driver, cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, nil, err
	}

	if err := migrations.RunMigrations(db, driver, cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	src, err := dataset.NewSQLSource(db, driver, cfg.Dataset.Table)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return src, db, nil
}
