package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeats-api/internal/config"
	"github.com/yourusername/resumeats-api/internal/handler"
	"github.com/yourusername/resumeats-api/internal/middleware"
	"github.com/yourusername/resumeats-api/internal/repository"
	"github.com/yourusername/resumeats-api/internal/service"
)

func main() {
	// ── Logging ──────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// ── Config ───────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting ResumeATS API")

	// ── Database (optional) ──────────────────────────────
	ctx := context.Background()
	var reportRepo *repository.ReportRepo
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to ping database")
		}
		log.Info().Msg("Database connected, report history enabled")
		reportRepo = repository.NewReportRepo(pool)
	} else {
		log.Info().Msg("No DATABASE_URL set, report history disabled")
	}

	// ── Services ─────────────────────────────────────────
	extractor := service.NewExtractor()
	uploads := service.NewFileIOClient(cfg.FileIOURL)
	magical := service.NewMagicalAPIClient(cfg.MagicalAPIKey, cfg.MagicalAPIURL, uploads)
	parser := service.NewAPILayerClient(cfg.APILayerKey, cfg.APILayerURL)

	enhancer, err := service.NewGeminiEnhancer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Gemini client")
	}

	chain := buildScoreChain(cfg.ScoreProviders, magical, extractor)

	// ── Handlers ─────────────────────────────────────────
	optimizeHandler := handler.NewOptimizeHandler(extractor, chain, enhancer, parser, reportRepo)
	downloadHandler := handler.NewDownloadHandler()

	// ── Middleware ────────────────────────────────────────
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS)
	defer rateLimiter.Stop()

	// ── Router ───────────────────────────────────────────
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Liveness
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ResumeATS Optimizer API is running"})
	})

	// Health reports which collaborators are configured
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":                "ok",
			"service":               "resumeats-api",
			"time":                  time.Now().UTC(),
			"gemini_configured":     enhancer.Enabled(),
			"magicalapi_configured": magical.Enabled(),
			"parser_configured":     parser.Enabled(),
			"database_configured":   reportRepo != nil,
			"score_providers":       cfg.ScoreProviders,
		})
	})

	api := r.Group("/", rateLimiter.Limit())
	{
		api.POST("/optimize_resume", optimizeHandler.Optimize)
		api.POST("/analyze_resume", optimizeHandler.Analyze)
		api.GET("/download/:filename", downloadHandler.Download)

		if reportRepo != nil {
			reportHandler := handler.NewReportHandler(reportRepo)
			api.GET("/reports", reportHandler.List)
			api.GET("/reports/:id", reportHandler.Get)
		}
	}

	// ── Server ───────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("ResumeATS API server running")

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// buildScoreChain assembles the provider chain from config order. The
// heuristic provider is always appended as the terminal member so the
// chain can never come back empty.
func buildScoreChain(names []string, magical *service.MagicalAPIClient, extractor *service.Extractor) *service.ScoreChain {
	var providers []service.ScoreProvider
	heuristicAdded := false

	for _, name := range names {
		switch name {
		case "magicalapi":
			if magical.Enabled() {
				providers = append(providers, magical)
			} else {
				log.Info().Msg("MagicalAPI key not set, provider skipped")
			}
		case "heuristic":
			providers = append(providers, service.NewHeuristicProvider(extractor))
			heuristicAdded = true
		default:
			log.Warn().Str("provider", name).Msg("Unknown score provider in config, skipped")
		}
	}

	if !heuristicAdded {
		providers = append(providers, service.NewHeuristicProvider(extractor))
	}

	names = make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	log.Info().Strs("providers", names).Msg("Score chain assembled")

	return service.NewScoreChain(providers...)
}

// requestLogger logs every request with zerolog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg(fmt.Sprintf("%s %s", c.Request.Method, path))
	}
}
