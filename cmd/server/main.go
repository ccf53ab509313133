package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appforge/auth-api/internal/api"
	"github.com/appforge/auth-api/internal/api/handler"
	"github.com/appforge/auth-api/internal/core/ports"
	"github.com/appforge/auth-api/internal/core/service"
	"github.com/appforge/auth-api/internal/infrastructure/config"
	"github.com/appforge/auth-api/internal/infrastructure/db/postgres"
	redisdb "github.com/appforge/auth-api/internal/infrastructure/db/redis"
	"github.com/appforge/auth-api/internal/infrastructure/ratelimit"
	"github.com/appforge/auth-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Postgres ---
	if err := postgres.Migrate(cfg.Postgres.URL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	// --- Redis (rate limiting); fall back to in-process counters when down ---
	var limiter ports.RateLimiter
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory rate limiting")
		limiter = ratelimit.NewMemoryLimiter()
	} else {
		defer rdb.Close()
		limiter = redisdb.NewRateLimiter(rdb)
	}
	if !cfg.RateLimit.Enabled {
		limiter = nil
	}

	// --- Services ---
	authService := service.NewAuthService(
		postgres.NewUserRepository(pool),
		service.NewBcryptHasher(0),
		service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL()),
	)

	e := api.NewRouter(api.Deps{
		AuthService:   authService,
		Limiter:       limiter,
		Health:        handler.NewHealthHandler(),
		Readiness:     handler.NewHealthDependenciesHandler(pool, rdb),
		CORSOrigins:   cfg.CORSOriginList(),
		RegisterLimit: ports.Limit{Requests: cfg.RateLimit.RegisterPerMinute, Window: time.Minute},
		LoginLimit:    ports.Limit{Requests: cfg.RateLimit.LoginPerMinute, Window: time.Minute},
		RefreshLimit:  ports.Limit{Requests: cfg.RateLimit.RefreshPerMinute, Window: time.Minute},
	})

	e.Debug = cfg.Debug

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
