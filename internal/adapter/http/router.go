package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/stefanv/moneta/internal/adapter/http/handler"
	"github.com/stefanv/moneta/internal/adapter/http/middleware"
	"github.com/stefanv/moneta/internal/infrastructure/auth"
	"github.com/stefanv/moneta/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	EntryHandler     *handler.EntryHandler
	GoalHandler      *handler.GoalHandler
	ReminderHandler  *handler.ReminderHandler
	SettingsHandler  *handler.SettingsHandler
	SummaryHandler   *handler.SummaryHandler
	DashboardHandler *handler.DashboardHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
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
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Everything else requires a token
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Get("/auth/me", cfg.AuthHandler.Me)

			r.Route("/entries", func(r chi.Router) {
				r.Post("/", cfg.EntryHandler.Create)
				r.Get("/", cfg.EntryHandler.List)
				r.Put("/{id}", cfg.EntryHandler.Update)
				r.Delete("/{id}", cfg.EntryHandler.Delete)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Post("/", cfg.GoalHandler.Create)
				r.Get("/", cfg.GoalHandler.List)
				r.Get("/{id}", cfg.GoalHandler.Get)
				r.Put("/{id}", cfg.GoalHandler.Update)
				r.Delete("/{id}", cfg.GoalHandler.Delete)
			})

			r.Route("/reminders", func(r chi.Router) {
				r.Post("/", cfg.ReminderHandler.Create)
				r.Get("/", cfg.ReminderHandler.List)
				r.Get("/upcoming", cfg.ReminderHandler.Upcoming)
				r.Delete("/{id}", cfg.ReminderHandler.Delete)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", cfg.SettingsHandler.Get)
				r.Put("/base-currency", cfg.SettingsHandler.SetBaseCurrency)
				r.Put("/rates", cfg.SettingsHandler.SetRates)
			})

			r.Route("/summary", func(r chi.Router) {
				r.Get("/totals", cfg.SummaryHandler.Totals)
				r.Get("/monthly", cfg.SummaryHandler.MonthlyTotals)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", cfg.DashboardHandler.Get)
				r.Get("/stream", cfg.DashboardHandler.Stream)
			})
		})
	})

	return r
}
