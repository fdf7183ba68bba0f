package v1

import (
	"context"
	"net/http"
	"time"

	"go-jobs-backend/config"
	"go-jobs-backend/internal/delivery/http/middleware"
	"go-jobs-backend/internal/delivery/http/response"
	"go-jobs-backend/internal/domain"
	"go-jobs-backend/pkg/security"
	"go-jobs-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// HealthChecker reports per-component status and overall health.
type HealthChecker interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	JobUC          domain.JobUsecase
	HealthUC       HealthChecker
	Tokens         middleware.TokenParser
	SecurityLogger *security.SecurityLogger
	AccessLogger   *zap.Logger
	// Optional; rate limits fall back to process memory when nil
	Redis  goredis.UniversalClient
	Config *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.RequestLogger(deps.AccessLogger))
	r.Use(middleware.ErrorHandler())

	r.NoRoute(middleware.UnknownEndpoint())

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
			return
		}
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		response.JSON(c, code, status)
	})

	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limiter := middleware.NewRateLimiter(deps.Redis, deps.SecurityLogger)
	authLimit := middleware.AuthRateLimitConfig(
		deps.Config.RateLimitAuthThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC, deps.SecurityLogger))

	NewAuthHandler(api, deps.AuthUC, limiter.Middleware(authLimit))
	NewJobHandler(api, protected, deps.JobUC)

	return r
}
