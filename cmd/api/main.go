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

	"hr-platform/config"
	_ "hr-platform/docs" // Important for Swagger
	v1 "hr-platform/internal/delivery/http/v1"
	"hr-platform/internal/domain"
	"hr-platform/internal/repository/memory"
	"hr-platform/internal/repository/postgres"
	"hr-platform/internal/usecase"
	"hr-platform/pkg/database"
	"hr-platform/pkg/logger"
	"hr-platform/pkg/redis"
	"hr-platform/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           HR Platform API
// @version         1.0
// @description     Candidate and skill directory with filtered, sorted and paginated search.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting hr platform", "port", cfg.Port, "store", cfg.StoreDriver)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Store
	var (
		candidateRepo domain.CandidateRepository
		skillRepo     domain.SkillRepository
		checks        = map[string]usecase.HealthCheck{}
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		candidateRepo = memory.NewCandidateRepository(store)
		skillRepo = memory.NewSkillRepository(store)
		checks["store"] = store.Ping
	default:
		if cfg.AutoMigrate {
			if err := database.MigrateUp(cfg.DBUrl, cfg.MigrationsPath); err != nil {
				logger.Log.Error("Failed to run migrations", "error", err)
				os.Exit(1)
			}
		}

		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.PoolOptions{
			MaxConns: int32(cfg.DBMaxConns),
			MinConns: int32(cfg.DBMinConns),
		})
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		candidateRepo = postgres.NewCandidateRepository(dbPool)
		skillRepo = postgres.NewSkillRepository(dbPool)
		checks["store"] = dbPool.Ping
	}

	// 4. Setup Redis (optional, backs the rate limiter)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
		} else {
			defer redis.Close()
			checks["redis"] = redis.HealthCheck
		}
	}

	// 5. Setup UseCases
	validate := validation.Validator()
	skillUC := usecase.NewSkillUsecase(skillRepo, validate)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, skillRepo, validate)
	healthUC := usecase.NewHealthUsecase(checks)

	if cfg.SeedOnStart {
		if err := usecase.NewSeeder(skillUC, candidateUC).Seed(ctx); err != nil {
			logger.Log.Error("Failed to seed data", "error", err)
			os.Exit(1)
		}
	}

	// 6. Setup Router
	router := v1.NewRouter(ctx, v1.RouterDeps{
		CandidateUC: candidateUC,
		SkillUC:     skillUC,
		HealthUC:    healthUC,
		Config:      cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
