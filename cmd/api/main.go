package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobs-backend/config"
	_ "go-jobs-backend/docs" // Important for Swagger
	v1 "go-jobs-backend/internal/delivery/http/v1"
	"go-jobs-backend/internal/repository/postgres"
	"go-jobs-backend/internal/usecase"
	"go-jobs-backend/pkg/auth"
	"go-jobs-backend/pkg/database"
	"go-jobs-backend/pkg/logger"
	redisclient "go-jobs-backend/pkg/redis"
	"go-jobs-backend/pkg/security"
	"go-jobs-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Jobs Backend API
// @version         1.0
// @description     Job board backend: user signup/login and job posting CRUD.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting jobs backend", "port", cfg.Port, "environment", cfg.Environment)

	zapLogger := security.NewZapLogger()
	defer func() { _ = zapLogger.Sync() }()
	secLog := security.NewSecurityLogger(zapLogger, "go-jobs-backend", cfg.Environment)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.EnsureSchema(ctx, dbPool); err != nil {
		logger.Log.Error("Failed to apply schema", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (optional)
	var redisClient goredis.UniversalClient
	rc, err := redisclient.NewClient(ctx, redisclient.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, redisclient.ErrNotConfigured):
		logger.Log.Warn("Redis not configured, using in-memory rate limiting and no login lockout")
	case err != nil:
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting and no login lockout", "error", err)
	default:
		redisClient = rc
		defer rc.Close()
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	hasher := security.NewPasswordHasher(cfg.BcryptCost)

	trackerCfg := security.DefaultLoginTrackerConfig()
	trackerCfg.MaxAttempts = cfg.FailedLoginMaxAttempts
	trackerCfg.BlockDuration = time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute
	loginTracker := security.NewLoginTracker(redisClient, trackerCfg, secLog)

	authUC := usecase.NewAuthUsecase(userRepo, hasher, tokens, loginTracker, secLog)
	jobUC := usecase.NewJobUsecase(jobRepo, validate)

	checks := map[string]usecase.HealthCheck{
		"postgres": dbPool.Ping,
		"redis":    nil,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	healthUC := usecase.NewHealthUsecase(checks)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		JobUC:          jobUC,
		HealthUC:       healthUC,
		Tokens:         tokens,
		SecurityLogger: secLog,
		AccessLogger:   zapLogger,
		Redis:          redisClient,
		Config:         cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server running", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
