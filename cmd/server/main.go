package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/stefanv/moneta/internal/adapter/http"
	"github.com/stefanv/moneta/internal/adapter/http/handler"
	"github.com/stefanv/moneta/internal/adapter/http/middleware"
	postgresRepo "github.com/stefanv/moneta/internal/adapter/repository/postgres"
	redisRepo "github.com/stefanv/moneta/internal/adapter/repository/redis"
	"github.com/stefanv/moneta/internal/infrastructure/auth"
	"github.com/stefanv/moneta/internal/infrastructure/config"
	"github.com/stefanv/moneta/internal/infrastructure/logger"
	"github.com/stefanv/moneta/internal/infrastructure/mailer"
	"github.com/stefanv/moneta/internal/infrastructure/metrics"
	"github.com/stefanv/moneta/internal/infrastructure/postgres"
	"github.com/stefanv/moneta/internal/infrastructure/redis"
	"github.com/stefanv/moneta/internal/infrastructure/reminderworker"
	"github.com/stefanv/moneta/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.DefaultContextLogger = &appLogger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Run migrations
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories and stores
	entryRepo := postgresRepo.NewEntryRepository(pool)
	goalRepo := postgresRepo.NewGoalRepository(pool)
	reminderRepo := postgresRepo.NewReminderRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	settingsStore := redisRepo.NewSettingsStore(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	smtpMailer := mailer.NewSMTPMailer(mailer.Config{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUsername,
		Password:    cfg.SMTPPassword,
		SenderEmail: cfg.SenderEmail,
	}, appLogger)

	// Initialize use cases
	hub := usecase.NewStreamHub()
	entryUC := usecase.NewEntryUseCase(entryRepo, goalRepo, settingsStore, idGen, hub, appMetrics)
	goalUC := usecase.NewGoalUseCase(goalRepo, entryRepo, settingsStore, idGen, hub, appMetrics)
	reminderUC := usecase.NewReminderUseCase(reminderRepo, userRepo, smtpMailer, idGen, appMetrics)
	settingsUC := usecase.NewSettingsUseCase(settingsStore, hub, appMetrics)
	userUC := usecase.NewUserUseCase(userRepo, idGen, appMetrics)
	dashboardUC := usecase.NewDashboardUseCase(entryRepo, goalRepo, settingsStore, hub, nil, appMetrics)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	entryHandler := handler.NewEntryHandler(entryUC)
	goalHandler := handler.NewGoalHandler(goalUC)
	reminderHandler := handler.NewReminderHandler(reminderUC)
	settingsHandler := handler.NewSettingsHandler(settingsUC)
	summaryHandler := handler.NewSummaryHandler(entryUC)
	dashboardHandler := handler.NewDashboardHandler(dashboardUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      authHandler,
		EntryHandler:     entryHandler,
		GoalHandler:      goalHandler,
		ReminderHandler:  reminderHandler,
		SettingsHandler:  settingsHandler,
		SummaryHandler:   summaryHandler,
		DashboardHandler: dashboardHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logger:           appLogger,
	})

	// Start the reminder worker
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()

	worker := reminderworker.New(reminderworker.Config{
		Sender:   reminderUC,
		Metrics:  appMetrics,
		Interval: cfg.ReminderInterval,
	})
	go func() {
		if err := worker.Start(workerCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("reminder worker stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:     router,
		ReadTimeout: cfg.HTTPReadTimeout,
		// No write timeout: dashboard event streams stay open until the
		// client disconnects.
		WriteTimeout: 0,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopWorker()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
