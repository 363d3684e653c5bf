package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/storefrontlabs/storefront-api/docs"
	"github.com/storefrontlabs/storefront-api/internal/api"
	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/service"
	"github.com/storefrontlabs/storefront-api/internal/infrastructure/config"
	"github.com/storefrontlabs/storefront-api/internal/infrastructure/db/postgres"
	"github.com/storefrontlabs/storefront-api/internal/infrastructure/db/redis"
	"github.com/storefrontlabs/storefront-api/pkg/logger"
)

// @title        Storefront API
// @version      1.0
// @description  Storefront catalog, cart and account API with role-gated admin routes.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; write directly to stderr and exit.
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer func() { _ = db.Close() }()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("schema setup failed")
	}

	// Redis backs the login rate limiter and the readiness probe. The service
	// runs without it, unthrottled.
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
		rdb = nil
	} else {
		defer func() { _ = rdb.Close() }()
	}

	if err := seedAdmin(ctx, cfg, db, log); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	e, err := api.NewRouter(log, cfg, db, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
	log.Info().Msg("stopped")
}

// seedAdmin creates the initial admin account when ADMIN_PASSWORD is set and
// the username is not taken yet. The public register route only ever grants
// the user role, so this is the sole path to the first admin.
func seedAdmin(ctx context.Context, cfg *config.Config, db *postgres.DB, log zerolog.Logger) error {
	if cfg.AdminPassword == "" {
		return nil
	}

	repo := postgres.NewAuthRepository(db)
	auth := service.NewAuthService(repo, nil, nil)

	if _, err := auth.Register(ctx, cfg.AdminUsername, cfg.AdminPassword, domain.RoleAdmin); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return err
	}
	log.Info().Str("username", cfg.AdminUsername).Msg("seeded admin account")
	return nil
}
