// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the readverse HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the store, object storage and page cache (migrations and indexes included).
//  4. Load the identity provider's public key.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/readverse/internal/api"
	"github.com/taibuivan/readverse/internal/app"
	"github.com/taibuivan/readverse/internal/core/content"
	"github.com/taibuivan/readverse/internal/core/genre"
	"github.com/taibuivan/readverse/internal/platform/config"
	"github.com/taibuivan/readverse/internal/platform/constants"
	"github.com/taibuivan/readverse/internal/platform/middleware"
	"github.com/taibuivan/readverse/internal/platform/sec"
	"github.com/taibuivan/readverse/internal/social/comment"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store", cfg.StoreDriver),
		slog.String("storage", cfg.StorageDriver),
	)

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Backends ───────────────────────────────────────────────────────
	backends, err := app.Open(startupCtx, cfg, log)
	must(log, err, "open backends")
	defer func() {
		log.Info("closing_backends")
		backends.Close()
	}()

	// ── 4. Token Verification ─────────────────────────────────────────────
	verifier := newVerifier(cfg, log)

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	services := backends.Services(cfg, log)

	checks := make([]api.HealthCheck, 0, len(backends.Checks))
	for _, check := range backends.Checks {
		checks = append(checks, api.HealthCheck{Name: check.Name, Ping: check.Ping})
	}
	liveness, readiness := api.NewHealthHandlers(checks, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Genre:     genre.NewHandler(services.Genres),
		Content:   content.NewHandler(services.Contents, backends.Cache),
		Comment:   comment.NewHandler(services.Comments),
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, verifier, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		return
	}

	log.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))
}

// newVerifier loads the identity provider key. Without one, every bearer
// token is rejected and only anonymous endpoints work.
func newVerifier(cfg *config.Config, log *slog.Logger) middleware.TokenVerifier {
	if cfg.JWTPubKeyPath == "" {
		log.Warn("auth_disabled", slog.String("hint", "set JWT_PUBLIC_KEY_PATH to accept bearer tokens"))
		return sec.DisabledVerifier{}
	}

	verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, cfg.AuthIssuer)
	must(log, err, "load jwt public key")
	return verifier
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Startup wiring only. After startup, all errors are returned and handled.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
