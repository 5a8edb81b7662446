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

	"github.com/joho/godotenv"

	_ "github.com/merrbio/marketplace-api/docs"
	"github.com/merrbio/marketplace-api/internal/api"
	"github.com/merrbio/marketplace-api/internal/infrastructure/config"
	"github.com/merrbio/marketplace-api/internal/infrastructure/db/postgres"
	redisdb "github.com/merrbio/marketplace-api/internal/infrastructure/db/redis"
	"github.com/merrbio/marketplace-api/internal/infrastructure/queue"
	"github.com/merrbio/marketplace-api/internal/infrastructure/storage"
	"github.com/merrbio/marketplace-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        MerrBio Marketplace API
// @version      1.0
// @description  Farmers marketplace backend: accounts, product catalog and purchase requests.
// @BasePath     /
func main() {
	_ = godotenv.Load()
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- PostgreSQL ---
	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}
	log.Info().Msg("postgres connected")

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() { _ = rdb.Close() }()
	log.Info().Msg("redis connected")

	// --- Image storage ---
	gcs, err := storage.NewGCSImageStore(ctx, cfg.GCS.Bucket, cfg.GCS.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("gcs client failed")
	}
	defer func() { _ = gcs.Close() }()

	images := queue.NewAsyncImageStore(gcs, 0, logger.Component("image_cleanup"))
	images.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, images, cfg, logger.Component("http"))

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("marketplace api started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("marketplace api stopped gracefully")
}
