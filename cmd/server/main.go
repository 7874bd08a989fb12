package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/roster-mahasiswa/internal/config"
	"github.com/stemsi/roster-mahasiswa/internal/handler"
	"github.com/stemsi/roster-mahasiswa/internal/logger"
	"github.com/stemsi/roster-mahasiswa/internal/middleware"
	"github.com/stemsi/roster-mahasiswa/internal/repository"
	"github.com/stemsi/roster-mahasiswa/internal/router"
	"github.com/stemsi/roster-mahasiswa/internal/service"
	"github.com/stemsi/roster-mahasiswa/internal/validator"
	"github.com/stemsi/roster-mahasiswa/internal/websocket"
	"github.com/stemsi/roster-mahasiswa/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("timezone", cfg.Location.String()).
		Msg("Starting Roster Mahasiswa")

	// ─── Initialize Roster Store ───────────────────────────────────────
	rosterRepo := repository.NewRosterRepository(time.Now)

	// ─── Live Viewers ──────────────────────────────────────────────────
	hub := websocket.NewHub(log)
	broadcastWorker := worker.NewBroadcastWorker(hub, cfg.EventBuffer, log)

	// ─── Initialize Services ──────────────────────────────────────────
	rosterService := service.NewRosterService(rosterRepo, validator.New(), broadcastWorker, log)
	exportService := service.NewExportService(rosterRepo, cfg.Location, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	notifier := handler.NewNotifier(cfg.NotificationDuration)
	handlers := &router.Handlers{
		Page:   handler.NewPageHandler(rosterService, exportService, notifier),
		Roster: handler.NewRosterHandler(rosterService, exportService, notifier),
		WS:     handler.NewWSHandler(rosterService, hub, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		broadcastWorker.Start(workerCtx)
		close(workerDone)
	}()

	limiter := middleware.NewRateLimiter(cfg.SubmitRateLimit, time.Minute)
	defer limiter.Stop()

	// ─── Setup Router ──────────────────────────────────────────────────
	r, err := router.SetupRouter(handlers, cfg, log, limiter)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load page templates")
	}

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the broadcast worker and wait for its queue to drain.
	workerCancel()
	select {
	case <-workerDone:
	case <-time.After(2 * time.Second):
		log.Warn().Msg("Broadcast worker did not drain in time")
	}

	log.Info().Int("students", rosterRepo.Count()).Msg("Shutdown complete, roster discarded")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
