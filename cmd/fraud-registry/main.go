package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YusovID/fraud-registry/internal/auth"
	"github.com/YusovID/fraud-registry/internal/config"
	"github.com/YusovID/fraud-registry/internal/ratelimit"
	"github.com/YusovID/fraud-registry/internal/repository/postgres"
	"github.com/YusovID/fraud-registry/internal/service"
	"github.com/YusovID/fraud-registry/internal/storage"
	myhttp "github.com/YusovID/fraud-registry/internal/transport/http"
	"github.com/YusovID/fraud-registry/pkg/logger/sl"
	"github.com/YusovID/fraud-registry/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting fraud-registry", slog.String("env", cfg.Env))

	db, err := postgres.NewDB(ctx, cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to init image storage: %w", err)
	}

	limiter, stopLimiter, err := newLimiter(ctx, cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("failed to init rate limiter: %w", err)
	}
	defer stopLimiter()

	reportRepo := postgres.NewReportRepository(db.DB(), log)
	userRepo := postgres.NewUserRepository(db.DB(), log)
	adminRepo := postgres.NewAdminRepository(db.DB(), log)

	tokens := auth.NewTokenManager(cfg.Auth)
	verifier := auth.NewGoogleVerifier(cfg.Auth.GoogleClientID)

	if cfg.Auth.GoogleClientID == "" {
		log.Warn("GOOGLE_CLIENT_ID is not set, google sign in is disabled")
	}

	opts := myhttp.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Limits:      cfg.RateLimit,
	}
	if local, ok := store.(*storage.LocalStorage); ok {
		opts.UploadsDir = local.Dir()
	}

	srv := myhttp.NewServer(log, opts, myhttp.Deps{
		Reports:    service.NewReportService(db.DB(), log, reportRepo, reportRepo, reportRepo, userRepo, store),
		Moderation: service.NewModerationService(db.DB(), log, reportRepo, reportRepo, userRepo, store),
		Search:     service.NewSearchService(log, reportRepo, store),
		Users:      service.NewUserService(db.DB(), log, userRepo, reportRepo, reportRepo, store),
		Auth:       service.NewAuthService(log, userRepo, adminRepo, tokens, verifier),
		Tokens:     tokens,
		Limiter:    limiter,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           srv.Routes(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %w", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %w", err)
	}

	log.Info("server stopped")

	return nil
}

// newLimiter prefers Redis so limits hold across replicas and falls back
// to a per-process limiter otherwise.
func newLimiter(ctx context.Context, cfg config.Redis, log *slog.Logger) (ratelimit.Limiter, func(), error) {
	if !cfg.Enabled {
		log.Info("using in-memory rate limiter")

		limiter := ratelimit.NewMemoryLimiter(10 * time.Minute)

		return limiter, limiter.Stop, nil
	}

	client, err := ratelimit.NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	log.Info("using redis rate limiter", slog.String("addr", cfg.Addr))

	return ratelimit.NewRedisLimiter(client), func() {
		if err := client.Close(); err != nil {
			log.Error("redis close failed", sl.Err(err))
		}
	}, nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errChan <- fmt.Errorf("error listening and serving: %w", err)
	}
}
