package main

import (
	"context"
	"errors"
	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	"go-jobboard-backend/internal/delivery/http/middleware"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/resumeparser"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/security/antivirus"
	"go-jobboard-backend/pkg/storage"
	"go-jobboard-backend/pkg/validation"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Job Board API
// @version         1.0
// @description     Job board backend: postings, applications and résumé ingestion.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.Env)
	logger.Log.Info("Starting job board backend", "port", cfg.Port, "env", cfg.Env)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	audit := security.NewAuditLogger("jobboard-api", cfg.Env)
	defer audit.Sync()

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limits fall back to memory)
	var redisClient *goredis.Client
	redisClient, err = redis.NewClient(ctx, redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Warn("Redis not configured; using in-memory rate limiting")
	case err != nil:
		logger.Log.Warn("Redis unavailable; using in-memory rate limiting", "error", err)
	default:
		defer redisClient.Close()
	}

	// 5. Setup Resume Storage
	resumeStore, err := newResumeStorage(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to initialize resume storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	recruiterRepo := postgres.NewRecruiterRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 7. Setup External Services
	parser := resumeparser.NewClient(resumeparser.Config{
		BaseURL:    cfg.ResumeParserURL,
		Timeout:    cfg.ResumeParserTimeout,
		MaxRetries: cfg.ResumeParserMaxRetries,
		Logger:     logger.Log,
	})

	var scanner antivirus.Scanner = antivirus.NewNoOpScanner()
	if cfg.ClamAVAddress != "" {
		scanner = antivirus.NewClamAVScanner(cfg.ClamAVAddress, 30*time.Second)
		if !scanner.Available(ctx) {
			logger.Log.Warn("ClamAV not reachable at startup; uploads will be rejected until it is", "address", cfg.ClamAVAddress)
		}
	} else {
		logger.Log.Warn("CLAMAV_ADDRESS not set; resume uploads are not scanned")
	}

	// 8. Setup UseCases
	validate := validation.New()
	passwordAttempts := security.NewPasswordAttemptTracker(redisClient, security.DefaultPasswordAttemptConfig(), audit)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, validate, audit, passwordAttempts, cfg.BcryptCost)
	recruiterUC := usecase.NewRecruiterUsecase(recruiterRepo, validate, cfg.BcryptCost)
	jobUC := usecase.NewJobUsecase(jobRepo, recruiterRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, candidateRepo, audit)
	resumeUC := usecase.NewResumeUsecase(candidateRepo, jobRepo, resumeStore, parser, scanner, audit, usecase.ResumeConfig{
		Policy: security.ResumePolicy{
			AllowedMIMETypes: cfg.ResumeAllowedMIMEs,
			MaxSize:          cfg.ResumeMaxBytes(),
		},
		ExperienceCapYears: cfg.ExperienceCapYears,
	})

	probes := map[string]usecase.HealthProbe{
		"database": dbPool.Ping,
	}
	if redisClient != nil {
		probes["redis"] = func(ctx context.Context) error {
			return redis.HealthCheck(ctx, redisClient)
		}
	}
	if pinger, ok := resumeStore.(interface{ Ping(context.Context) error }); ok {
		probes["storage"] = pinger.Ping
	}
	healthUC := usecase.NewHealthUsecase(probes)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC:   candidateUC,
		RecruiterUC:   recruiterUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		ResumeUC:      resumeUC,
		HealthUC:      healthUC,
		Audit:         audit,
		RateLimiter:   middleware.NewRateLimiter(redisClient, audit),
		UploadLimiter: security.NewUploadLimiter(redisClient, cfg.UploadRatePerMinute, cfg.UploadRatePerDay),
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func newResumeStorage(ctx context.Context, cfg *config.Config) (domain.ResumeStorage, error) {
	switch cfg.StorageDriver {
	case "s3":
		return storage.NewS3Store(ctx, storage.S3Config{
			Provider:        storage.S3Provider(cfg.S3Provider),
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
		})
	case "local", "":
		return storage.NewLocalStore(cfg.UploadDir)
	default:
		return nil, errors.New("unknown STORAGE_DRIVER " + cfg.StorageDriver)
	}
}
