package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skinsano-backend/internal/analyses"
	"skinsano-backend/internal/consultations"
	"skinsano-backend/internal/doctors"
	"skinsano-backend/internal/llm"
	"skinsano-backend/internal/llm/openai"
	"skinsano-backend/internal/payments"
	"skinsano-backend/internal/progress"
	"skinsano-backend/internal/shared/config"
	"skinsano-backend/internal/shared/metrics"
	"skinsano-backend/internal/shared/server/middleware"
	"skinsano-backend/internal/shared/server/respond"
	"skinsano-backend/internal/shared/storage/db"
	"skinsano-backend/internal/usage"
	"skinsano-backend/internal/users"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
		middleware.RateLimit(rateLimitConfig()),
	)

	// Database is optional: without it every repo runs on its in-memory
	// fallback, and with it the dual repos still degrade per operation.
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var userRepo users.Repo
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
	} else {
		userRepo = users.NewMemoryRepo()
	}
	userSvc := users.NewService(userRepo)
	userHandler := users.NewHandler(userSvc)

	var remoteAnalysisRepo analyses.Repo
	if sqlDB != nil {
		remoteAnalysisRepo = &analyses.PGRepo{DB: sqlDB}
	}
	analysisRepo := analyses.NewDualRepo(remoteAnalysisRepo)

	usageSvc := usage.NewService(analysisRepo, cfg.FreeScanLimit)
	usageHandler := usage.NewHandler(usageSvc, userSvc)

	analysisSvc := &analyses.Service{
		Repo:  analysisRepo,
		LLM:   newLLMClient(cfg),
		Quota: usageSvc,
	}
	analysisHandler := analyses.NewHandler(analysisSvc)

	var consultationRepo consultations.Repo
	if sqlDB != nil {
		consultationRepo = &consultations.PGRepo{DB: sqlDB}
	} else {
		consultationRepo = consultations.NewMemoryRepo()
	}
	consultationHandler := consultations.NewHandler(consultations.NewService(consultationRepo))

	var progressRepo progress.Repo
	if sqlDB != nil {
		progressRepo = &progress.PGRepo{DB: sqlDB}
	} else {
		progressRepo = progress.NewMemoryRepo()
	}
	progressHandler := progress.NewHandler(progress.NewService(progressRepo))

	var paymentRepo payments.Repo
	if sqlDB != nil {
		paymentRepo = &payments.PGRepo{DB: sqlDB}
	} else {
		paymentRepo = payments.NewMemoryRepo()
	}
	razorpay := payments.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	paymentHandler := payments.NewHandler(payments.NewService(razorpay, paymentRepo, userSvc))

	doctorHandler := doctors.NewHandler()

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	userHandler.RegisterRoutes(api)
	analysisHandler.RegisterRoutes(api)
	usageHandler.RegisterRoutes(api)
	doctorHandler.RegisterRoutes(api)
	consultationHandler.RegisterRoutes(api)
	progressHandler.RegisterRoutes(api)
	paymentHandler.RegisterRoutes(api)

	return r
}

// newLLMClient builds the configured provider client, or nil when the
// provider is unconfigured so submissions go straight to the keyword
// fallback.
func newLLMClient(cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "", "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeoutSeconds)
		if err != nil {
			log.Printf("llm provider unavailable, using keyword fallback: %v", err)
			return nil
		}
		return client
	default:
		log.Printf("unknown llm provider %q, using keyword fallback", cfg.LLMProvider)
		return nil
	}
}

func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ANALYZE": {Rate: 0.5, Burst: 3},
			"POLL":    {Rate: 5, Burst: 20},
			"DEFAULT": {Rate: 10, Burst: 40},
		},
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			path := c.FullPath()
			switch {
			case c.Request.Method == http.MethodPost && path == "/api/v1/analyses":
				return "ANALYZE"
			case c.Request.Method == http.MethodGet && strings.HasPrefix(path, "/api/v1/analyses/"):
				return "POLL"
			default:
				return "DEFAULT"
			}
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
