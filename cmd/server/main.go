package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http"
	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/handler"
	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/middleware"
	postgresRepo "github.com/auradigitalchile/agendamiento-fletes/internal/adapter/repository/postgres"
	redisRepo "github.com/auradigitalchile/agendamiento-fletes/internal/adapter/repository/redis"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/auth"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/config"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/logger"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/metrics"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/postgres"
	"github.com/auradigitalchile/agendamiento-fletes/internal/infrastructure/redis"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	movementRepo := postgresRepo.NewMovementRepository(pool)
	accountRepo := postgresRepo.NewTransferAccountRepository(pool)
	closeRepo := postgresRepo.NewDailyCloseRepository(pool)
	serviceRepo := postgresRepo.NewServiceRepository(pool)
	clientRepo := postgresRepo.NewClientRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	orgRepo := postgresRepo.NewOrganizationRepository(pool)
	membershipRepo := postgresRepo.NewMembershipRepository(pool)
	tokenRepo := postgresRepo.NewTokenRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)
	clock := usecase.SystemClock{}

	// Initialize use cases
	movementUC := usecase.NewMovementUseCase(movementRepo, accountRepo, idGen, clock)
	accountUC := usecase.NewTransferAccountUseCase(accountRepo, movementRepo, idGen, clock)
	statsUC := usecase.NewStatsUseCase(movementRepo, accountRepo, clock)
	closeUC := usecase.NewCloseUseCase(txManager, closeRepo, retrier, idGen, clock)
	serviceUC := usecase.NewServiceUseCase(serviceRepo, clientRepo, idGen, clock)
	clientUC := usecase.NewClientUseCase(clientRepo, idGen, clock)
	exportUC := usecase.NewExportUseCase(serviceRepo)
	authUC := usecase.NewAuthUseCase(txManager, userRepo, orgRepo, membershipRepo, accountRepo, tokenRepo, idGen, clock)

	// Initialize HTTP layer
	appMetrics := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	authRateLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	go func() {
		for range time.Tick(time.Hour) {
			authRateLimiter.CleanupLimiters()
		}
	}()

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		MovementHandler:  handler.NewMovementHandler(movementUC, appMetrics),
		AccountHandler:   handler.NewAccountHandler(accountUC),
		StatsHandler:     handler.NewStatsHandler(statsUC),
		CloseHandler:     handler.NewCloseHandler(closeUC, statsUC, appMetrics),
		ServiceHandler:   handler.NewServiceHandler(serviceUC, appMetrics),
		ClientHandler:    handler.NewClientHandler(clientUC),
		ExportHandler:    handler.NewExportHandler(exportUC, appMetrics),
		AuthHandler:      handler.NewAuthHandler(authUC, jwtManager, appMetrics, appLogger),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		JWTManager:       jwtManager,
		AuthRateLimiter:  authRateLimiter,
		IdempotencyStore: idempotencyStore,
		Metrics:          appMetrics,
		Logger:           appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
