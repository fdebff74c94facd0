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

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/config"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/logger"
)

const (
	limiterCleanupInterval = time.Minute
	limiterMaxIdle         = 10 * time.Minute
)

func main() {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lg := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, lg zerolog.Logger) error {
	a, err := newApp(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer a.Close()

	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	if a.rateLimiter != nil {
		go a.rateLimiter.RunCleanup(limiterCleanupInterval, limiterMaxIdle, stopCleanup)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info().
			Str("port", cfg.HTTPPort).
			Str("storage", cfg.StorageDriver).
			Str("lock", cfg.LockDriver).
			Bool("auth", cfg.AuthEnabled).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	lg.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	lg.Info().Msg("server stopped")
	return nil
}
