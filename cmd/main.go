// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/auth"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/cache"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/config"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/database"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/handler"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/logging"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/repository"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/service"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/worker"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 1. Config and logging ─────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// ── 2. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx, database.Options{URL: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns}, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Redis is optional; without it stats and trends are computed per request.
	var statsCache *cache.Cache
	if cfg.RedisAddr != "" {
		statsCache, err = cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, caching disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			defer statsCache.Close()
			log.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
		}
	}

	// ── 3. Wire up layers ────────────────────────────────────────────────
	eventRepo := repository.NewEventRepository(pool)
	regRepo := repository.NewRegistrationRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	wordRepo := repository.NewBannedWordRepository(pool)

	loc := cfg.Location()
	clock := service.NewClock(loc)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	eventSvc := service.NewEventService(eventRepo, regRepo, wordRepo, statsCache, cfg.StatsCacheTTL, log)
	authSvc := service.NewAuthService(userRepo, tokens, cfg.SchoolEmailDomains, cfg.RoleSecrets(), log)
	userSvc := service.NewUserService(userRepo, regRepo, clock)
	requestSvc := service.NewRequestService(requestRepo, clock, log)
	moderationSvc := service.NewModerationService(wordRepo, log)
	insightSvc := service.NewInsightService(eventRepo, regRepo, requestRepo, statsCache, cfg.StatsCacheTTL, clock, log)

	limiter := handler.NewRateLimiter(cfg.MaxRequestsPerMin, log)
	router := handler.NewRouter(handler.Router{
		Auth:        handler.NewAuthenticator(tokens),
		RateLimiter: limiter,
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,
		Log:         log,

		Health:     handler.NewHealthHandler(pool),
		Events:     handler.NewEventHandler(eventSvc, log),
		Accounts:   handler.NewAuthHandler(authSvc, log),
		Users:      handler.NewUserHandler(userSvc, log),
		Assistant:  handler.NewAssistantHandler(requestSvc, log),
		Insights:   handler.NewInsightHandler(insightSvc, log),
		Admin:      handler.NewAdminHandler(moderationSvc, log),
		Navigation: handler.NewNavigationHandler(eventSvc, loc, log),
	})

	// ── 4. Background workers ─────────────────────────────────────────────
	go worker.NewExpirySweeper(eventRepo, cfg.ExpirySweepInterval, loc, log).Run(ctx)
	go limiter.Run(ctx, time.Minute)

	// ── 5. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Block until SIGINT/SIGTERM or a listener failure.
	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
