package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Caelestis94/telehook/config"
	"github.com/Caelestis94/telehook/definitions"
	"github.com/Caelestis94/telehook/internal/http/chi"
	"github.com/Caelestis94/telehook/metrics"
	"github.com/Caelestis94/telehook/render"
	"github.com/Caelestis94/telehook/telegram"
	"github.com/Caelestis94/telehook/webhook"
	"github.com/Caelestis94/telehook/webhook/notify"
	"github.com/Caelestis94/telehook/webhook/postgres"
	redisstats "github.com/Caelestis94/telehook/webhook/redis"
	"github.com/Caelestis94/telehook/webhook/turso"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 30 * time.Second

/* main wires the layers together: config, storage backend, stat store,
 * Telegram client, delivery pipeline and the HTTP transport. Imports go
 * one direction only: the binary imports the business layer, which
 * imports the storage layer.
 */

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.GetConfig()
	if err != nil {
		logger.Error().Err(err).Msg("loading configuration")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	repo, err := openRepository(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Str("backend", cfg.StoreBackend).Msg("opening store")
		os.Exit(1)
	}
	defer repo.Close(ctx)

	stats, err := redisstats.NewStats(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Error().Err(err).Str("addr", cfg.RedisAddr).Msg("connecting to redis")
		os.Exit(1)
	}
	defer stats.Close()

	client := telegram.NewClient(cfg.TelegramBaseURL, cfg.TelegramTimeout())

	service := webhook.NewService(webhook.ServiceDeps{
		Configs:        repo,
		Logs:           repo,
		Stats:          stats,
		Renderer:       render.NewEngine(),
		Dispatcher:     client,
		Notifier:       notify.NewTelegramNotifier(client),
		Logger:         logger,
		DisabledStatus: cfg.DisabledStatus,
	})

	exporter, err := metrics.NewOTelExporter(metrics.NewStatsCollector(stats))
	if err != nil {
		logger.Error().Err(err).Msg("setting up metrics")
		os.Exit(1)
	}
	defer exporter.Shutdown(context.Background())

	r := chi.Handlers(ctx, service, exporter.Handler())
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)

	logger.Info().Str("port", cfg.Port).Str("backend", cfg.StoreBackend).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
	if err := <-errShutdown; err != nil {
		logger.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}

	// let in-flight failure notifications drain before exiting
	service.Wait()
	logger.Info().Msg("server stopped")
}

// openRepository selects the configured store backend
func openRepository(cfg *config.Config, logger zerolog.Logger) (webhook.Repository, error) {
	switch cfg.StoreBackend {
	case "postgres":
		return postgres.NewRepository(cfg.DatabaseURL)
	case "turso":
		return turso.NewRepository(cfg.TursoDBName, cfg.TursoDatabaseURL, cfg.TursoAuthToken)
	case "definitions":
		loader := definitions.NewLoader(logger)
		if err := loader.Load(cfg.DefinitionsFile); err != nil {
			return nil, err
		}
		return loader, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	if err := server.Shutdown(ctxTimeout); err != nil {
		errShutdown <- fmt.Errorf("forcing the server closed: %w", err)
		return
	}
	errShutdown <- nil
}
