package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/puzzlehut/daily-widget/internal/analytics"
	"github.com/puzzlehut/daily-widget/internal/config"
	"github.com/puzzlehut/daily-widget/internal/database"
	"github.com/puzzlehut/daily-widget/internal/events"
	server "github.com/puzzlehut/daily-widget/internal/http"
	"github.com/puzzlehut/daily-widget/internal/identity"
	"github.com/puzzlehut/daily-widget/internal/leaderboard"
	"github.com/puzzlehut/daily-widget/internal/metrics"
	"github.com/puzzlehut/daily-widget/internal/notifier/slack"
	"github.com/puzzlehut/daily-widget/internal/progress"
	"github.com/puzzlehut/daily-widget/internal/widget"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	bus := events.New()
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	provider := identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.APIKey)
	tracker := identity.NewTracker(provider, bus)
	progressStore := progress.New(db)
	leaderboardSvc := leaderboard.New(db, bus)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	usage := analytics.New(cfg.ProjectID, "widget-analytics")

	shell := widget.NewShell(bus, tracker, progressStore, leaderboardSvc, metricsSvc, usage)
	registry := widget.NewRegistry(func() *widget.Shell {
		return widget.NewShell(bus, tracker, progressStore, leaderboardSvc, metricsSvc, usage)
	}, metricsSvc)
	registry.AutoMount(cfg.AutoMountSlot)

	s := server.NewServer(
		bus,
		registry,
		shell,
		leaderboardSvc,
		notifier,
		metricsSvc,
		metricsHandler,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
