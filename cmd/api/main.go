// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the ShopHub HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and run migrations.
//  4. Connect to Redis when configured.
//  5. Build the security, metrics and media components.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/taibuivan/shophub/internal/api"
	"github.com/taibuivan/shophub/internal/catalog"
	"github.com/taibuivan/shophub/internal/platform/config"
	"github.com/taibuivan/shophub/internal/platform/constants"
	"github.com/taibuivan/shophub/internal/platform/media"
	"github.com/taibuivan/shophub/internal/platform/metrics"
	"github.com/taibuivan/shophub/internal/platform/migration"
	pgstore "github.com/taibuivan/shophub/internal/platform/postgres"
	redisstore "github.com/taibuivan/shophub/internal/platform/redis"
	"github.com/taibuivan/shophub/internal/platform/sec"
	"github.com/taibuivan/shophub/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("[ShopHub] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("media_enabled", cfg.MediaEnabled()),
		slog.Bool("cache_enabled", cfg.RedisURL != ""),
	)

	// Root context: cancelled on SIGINT/SIGTERM. Background goroutines
	// (rate limiter eviction) stop with it.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	if rdb != nil {
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Security, Metrics, Media ───────────────────────────────────────
	hasher, err := sec.NewHasher(cfg.BcryptCost, cfg.HashWorkers)
	must(log, err, "initialize password hasher")

	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	var uploader media.Uploader = media.Disabled{}
	if cfg.MediaEnabled() {
		uploader, err = media.NewS3Uploader(startupCtx, media.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.MediaPublicURL,
		}, log)
		must(log, err, "initialize media uploader")
	} else {
		log.Warn("media_disabled", slog.String("reason", "S3_BUCKET not set"))
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(auth.NewUserRepository(pool), hasher, tokens, cfg.JWTExpiresIn, collector)

	catalogOptions := []catalog.Option{catalog.WithRecorder(collector)}
	if rdb != nil {
		catalogOptions = append(catalogOptions, catalog.WithCaches(
			catalog.NewRedisPageCache[*catalog.Category](rdb, constants.RedisPrefixCategories, constants.CatalogCacheTTL),
			catalog.NewRedisPageCache[*catalog.Product](rdb, constants.RedisPrefixProducts, constants.CatalogCacheTTL),
		))
	}
	catalogService := catalog.NewService(
		catalog.NewCategoryRepository(pool),
		catalog.NewProductRepository(pool),
		uploader,
		catalogOptions...,
	)

	checks := []api.Check{
		{Name: "postgres", Probe: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
	}
	if rdb != nil {
		checks = append(checks, api.Check{
			Name:  "redis",
			Probe: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		})
	}
	liveness, readiness := api.NewHealthHandlers(checks, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, collector, tokens, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metrics.Handler(registry),
		Auth:      auth.NewHandler(authService),
		Catalog:   catalog.NewHandler(catalogService),
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the process-wide JSON logger and installs it as default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))

	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
