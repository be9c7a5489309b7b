package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	domainsearch "github.com/personfinder/person-finder/internal/domain/search"
	"github.com/personfinder/person-finder/internal/infrastructure/config"
	"github.com/personfinder/person-finder/internal/infrastructure/logger"
	"github.com/personfinder/person-finder/internal/infrastructure/metrics"
	"github.com/personfinder/person-finder/internal/interfaces/httpserver"
)

type Application struct {
	httpServer   *httpserver.HTTPServer
	orchestrator *domainsearch.Orchestrator
}

func init() {
	// Initialize logger with default settings
	logger.Init("info", "json")
}

// Start subscribes metrics to view state transitions and serves HTTP until ctx is cancelled.
func (app *Application) Start(ctx context.Context) error {
	app.orchestrator.Subscribe(metrics.RecordViewState)
	return app.httpServer.Run(ctx)
}

func main() {
	config.LoadEnvFiles()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Re-initialize logger with config settings
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("log_level", cfg.LogLevel).
		Bool("real_backend", cfg.UseRealBackend).
		Msg("Starting person-finder service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := CreateApplication(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}
	defer cleanup()

	if err := application.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return
	}

	log.Info().Msg("application exited cleanly")
}
