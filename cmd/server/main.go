package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/keralakitchen/kitchen-backend/internal/config"
	"github.com/keralakitchen/kitchen-backend/internal/database"
	"github.com/keralakitchen/kitchen-backend/internal/features"
	"github.com/keralakitchen/kitchen-backend/internal/logging"
	"github.com/keralakitchen/kitchen-backend/internal/routes"
	"github.com/keralakitchen/kitchen-backend/internal/services"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := checkRequired(cfg); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	feats := routes.Features()
	if err := database.Migrate(database.DB, routes.FeatureModels(feats)...); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	for _, f := range feats {
		slog.Info("feature ready", "feature", f.ID(), "models", len(f.Models()))
	}

	// From here on ERROR records are also batched into system_logs.
	dbLogHandler := logging.AttachDB(database.DB)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	publisher := openPublisher(cfg)

	svc := routes.NewServices(database.DB, cfg, publisher)
	if err := svc.Auth.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("admin seed failed", "error", err)
		os.Exit(1)
	}

	sentryEnabled := initSentry(cfg)

	app := newApp(cfg)
	routes.Setup(app, features.Deps{
		DB:     database.DB,
		Config: cfg,
		Events: publisher,
		Filter: services.NewContentFilter(),
		Now:    features.KitchenClock(cfg.Location),
	}, svc, feats)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "timezone", cfg.KitchenTimezone)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	close(cleanupDone)
	if err := publisher.Close(); err != nil {
		slog.Error("event publisher close error", "error", err)
	}
	dbLogHandler.Stop()
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}
