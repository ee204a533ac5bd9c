package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/handler"
	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/middleware"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/auth"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/metrics"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	MovementHandler  *handler.MovementHandler
	AccountHandler   *handler.AccountHandler
	StatsHandler     *handler.StatsHandler
	CloseHandler     *handler.CloseHandler
	ServiceHandler   *handler.ServiceHandler
	ClientHandler    *handler.ClientHandler
	ExportHandler    *handler.ExportHandler
	AuthHandler      *handler.AuthHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	AuthRateLimiter  *middleware.RateLimiter
	IdempotencyStore usecase.IdempotencyStore
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and telemetry endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints, rate limited per IP
		r.Group(func(r chi.Router) {
			if cfg.AuthRateLimiter != nil {
				r.Use(cfg.AuthRateLimiter.Limit)
			}

			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
			r.Post("/auth/forgot-password", cfg.AuthHandler.ForgotPassword)
			r.Get("/auth/reset-password", cfg.AuthHandler.ValidateResetToken)
			r.Post("/auth/reset-password", cfg.AuthHandler.ResetPassword)
			r.Post("/auth/verify-email", cfg.AuthHandler.VerifyEmail)
		})

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Get("/auth/me", cfg.AuthHandler.Me)
			r.Post("/auth/change-password", cfg.AuthHandler.ChangePassword)
			r.Post("/auth/change-email", cfg.AuthHandler.ChangeEmail)

			// Cash ledger
			r.Route("/cash/movements", func(r chi.Router) {
				r.Post("/", cfg.MovementHandler.Create)
				r.Get("/", cfg.MovementHandler.List)
				r.Get("/{id}", cfg.MovementHandler.Get)
				r.Put("/{id}", cfg.MovementHandler.Update)
				r.Delete("/{id}", cfg.MovementHandler.Delete)
			})
			r.Get("/cash/stats", cfg.StatsHandler.Summary)
			r.Route("/cash/close", func(r chi.Router) {
				r.Post("/", cfg.CloseHandler.Create)
				r.Get("/", cfg.CloseHandler.List)
				r.Get("/{date}", cfg.CloseHandler.GetByDate)
			})

			// Transfer accounts; deleting one is owner-only
			r.Route("/transfer-accounts", func(r chi.Router) {
				r.Post("/", cfg.AccountHandler.Create)
				r.Get("/", cfg.AccountHandler.List)
				r.Put("/{id}", cfg.AccountHandler.Update)
				r.With(middleware.RequireOwner).Delete("/{id}", cfg.AccountHandler.Delete)
			})

			// Scheduling
			r.Route("/services", func(r chi.Router) {
				r.Post("/", cfg.ServiceHandler.Create)
				r.Get("/", cfg.ServiceHandler.List)
				r.Get("/{id}", cfg.ServiceHandler.Get)
				r.Put("/{id}", cfg.ServiceHandler.Update)
				r.Delete("/{id}", cfg.ServiceHandler.Delete)
			})
			r.Route("/clients", func(r chi.Router) {
				r.Post("/", cfg.ClientHandler.Create)
				r.Get("/", cfg.ClientHandler.List)
				r.Get("/{id}", cfg.ClientHandler.Get)
				r.Put("/{id}", cfg.ClientHandler.Update)
				r.Delete("/{id}", cfg.ClientHandler.Delete)
			})
			r.Get("/export", cfg.ExportHandler.Month)
		})
	})

	return r
}
