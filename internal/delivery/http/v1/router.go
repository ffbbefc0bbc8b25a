package v1

import (
	"context"
	"time"

	"hr-platform/config"
	"hr-platform/internal/delivery/http/middleware"
	"hr-platform/internal/domain"
	"hr-platform/internal/usecase"
	"hr-platform/pkg/redis"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CandidateUC domain.CandidateUsecase
	SkillUC     domain.SkillUsecase
	HealthUC    usecase.HealthUsecase
	Config      *config.Config
}

// NewRouter wires the middleware chain and the /v1 routes. ctx bounds the
// lifetime of background work started by middleware.
func NewRouter(ctx context.Context, deps RouterDeps) *gin.Engine {
	r := gin.New()

	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	limit := middleware.DefaultRateLimitConfig(cfg.RateLimitThreshold, time.Duration(cfg.RateLimitWindowSeconds)*time.Second)
	limit.Redis = redis.Client
	r.Use(middleware.RateLimitMiddleware(ctx, limit))

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewSkillHandler(v1, deps.SkillUC)
	NewCandidateHandler(v1, deps.CandidateUC)

	return r
}
