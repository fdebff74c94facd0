package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Aditya-Sharma03/spendwise/internal/adapter/http/handler"
	"github.com/Aditya-Sharma03/spendwise/internal/adapter/http/middleware"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/auth"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/metrics"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler      *handler.WalletHandler
	TransactionHandler *handler.TransactionHandler
	DueHandler         *handler.DueHandler
	InsightHandler     *handler.InsightHandler
	HealthHandler      *handler.HealthHandler

	// JWTManager enables bearer authentication. When nil, callers are
	// identified by the X-User-ID header.
	JWTManager *auth.JWTManager

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		} else {
			r.Use(middleware.LocalIdentity(middleware.DefaultLocalUser))
		}

		// Runs after identity so keys are scoped per user.
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		// Wallets and their monthly ledger
		r.Route("/wallets", func(r chi.Router) {
			r.Post("/", cfg.WalletHandler.Create)
			r.Get("/", cfg.WalletHandler.List)
			r.Get("/{id}", cfg.WalletHandler.Get)
			r.Get("/{id}/balance/latest", cfg.WalletHandler.LatestBalance)
			r.Get("/{id}/monthly/{month}", cfg.WalletHandler.Monthly)
			r.Post("/{id}/monthly/{month}/recompute", cfg.WalletHandler.Recompute)
			r.Get("/{id}/check", cfg.WalletHandler.Check)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", cfg.TransactionHandler.List)
			r.Post("/income", cfg.TransactionHandler.AddIncome)
			r.Post("/expense", cfg.TransactionHandler.AddExpense)
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.CreateTransfer)
			r.Get("/{id}", cfg.TransactionHandler.GetTransfer)
		})

		// Dues
		r.Route("/dues", func(r chi.Router) {
			r.Post("/", cfg.DueHandler.Create)
			r.Get("/active", cfg.DueHandler.Active)
			r.Get("/history", cfg.DueHandler.History)
			r.Post("/{id}/settle", cfg.DueHandler.Settle)
		})

		// Insights
		r.Route("/insights", func(r chi.Router) {
			r.Get("/burn-rate", cfg.InsightHandler.BurnRate)
			r.Get("/summary", cfg.InsightHandler.Summary)
			r.Get("/trend", cfg.InsightHandler.Trend)
			r.Get("/categories", cfg.InsightHandler.Categories)
		})
	})

	return r
}
