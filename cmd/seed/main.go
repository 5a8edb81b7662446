// Command seed provisions the initial admin account. Run once after the
// database is up:
//
//	ADMIN_USERNAME=admin ADMIN_PASSWORD=change-me go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/merrbio/marketplace-api/internal/core/domain"
	"github.com/merrbio/marketplace-api/internal/core/service"
	"github.com/merrbio/marketplace-api/internal/infrastructure/config"
	"github.com/merrbio/marketplace-api/internal/infrastructure/db/postgres"
	"github.com/merrbio/marketplace-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal().Msg("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}

	ctx := context.Background()

	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	users := service.NewUserService(postgres.NewUserRepository(db), logger.Component("seed"))

	admin, err := users.Create(ctx, username, password, domain.RoleAdmin)
	if errors.Is(err, domain.ErrUserExists) {
		log.Info().Str("username", username).Msg("admin already exists, nothing to do")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("admin provisioning failed")
	}

	log.Info().Str("username", admin.Username).Uint("id", admin.ID).Msg("admin account created")
}
