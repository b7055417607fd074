package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	renderapp "github.com/docgen/backend/internal/application/rendering"
	"github.com/docgen/backend/internal/infrastructure/auth"
	"github.com/docgen/backend/internal/infrastructure/config"
	"github.com/docgen/backend/internal/infrastructure/logger"
	"github.com/docgen/backend/internal/infrastructure/persistence"
	infrarender "github.com/docgen/backend/internal/infrastructure/rendering"
	"github.com/docgen/backend/internal/infrastructure/scheduler"
	"github.com/docgen/backend/internal/infrastructure/telemetry"
	"github.com/docgen/backend/internal/interfaces/http/handler"
	"github.com/docgen/backend/internal/interfaces/http/middleware"
	"github.com/docgen/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting document generation backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	shutdownTracing, err := telemetry.Init(context.Background(), telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.CollectorEndpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		SampleRatio: cfg.Telemetry.SamplingRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Error("Error shutting down tracing", zap.Error(err))
		}
	}()

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	recordRepo := persistence.NewGormRecordRepository(db.DB)
	artifactRepo := persistence.NewGormArtifactRepository(db.DB)
	jobRepo := persistence.NewGormDeferredJobRepository(db.DB)

	// Initialize the browser-backed document engine
	docEngine, err := infrarender.NewChromedpEngine(&infrarender.ChromedpConfig{
		DefaultTimeout: cfg.Chrome.Timeout,
		RemoteURL:      cfg.Chrome.RemoteURL,
		Headless:       &cfg.Chrome.Headless,
		NoSandbox:      cfg.Chrome.NoSandbox,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize document engine", zap.Error(err))
	}
	defer func() {
		if err := docEngine.Close(); err != nil {
			log.Error("Error closing document engine", zap.Error(err))
		}
	}()

	mergeEngine := infrarender.NewMergeEngine()
	enrichers := infrarender.NewEnricherRegistry()
	composer := renderapp.NewComposer(mergeEngine, renderapp.ComposerDefaults{
		FontFace: cfg.Rendering.DefaultFontFace,
		FontSize: cfg.Rendering.FontSize,
	})
	accessPolicy := auth.NewAccessPolicy()

	// Deferred-job runner handles artifact cleanup
	runner := scheduler.NewRunner(scheduler.RunnerConfig{
		PollInterval: cfg.Scheduler.PollInterval,
		Workers:      cfg.Scheduler.Workers,
		BatchSize:    cfg.Scheduler.BatchSize,
		JobTimeout:   cfg.Scheduler.JobTimeout,
	}, jobRepo, log)

	cleanupHandler := renderapp.NewCleanupHandler(artifactRepo, log)
	if err := runner.Register(renderapp.CleanupHandlerName, cleanupHandler); err != nil {
		log.Fatal("Failed to register cleanup handler", zap.Error(err))
	}

	if cfg.Scheduler.Enabled {
		if err := runner.Start(context.Background()); err != nil {
			log.Fatal("Failed to start job runner", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := runner.Stop(ctx); err != nil {
				log.Error("Error stopping job runner", zap.Error(err))
			}
		}()
		log.Info("Job runner started",
			zap.Duration("poll_interval", cfg.Scheduler.PollInterval),
			zap.Int("workers", cfg.Scheduler.Workers),
		)
	}

	// Initialize application service
	renderService := renderapp.NewService(
		templateRepo,
		recordRepo,
		artifactRepo,
		enrichers,
		docEngine,
		composer,
		accessPolicy,
		runner,
		renderapp.Config{
			MassMaxCount:      cfg.Rendering.MassMaxCount,
			ArtifactRetention: cfg.Rendering.ArtifactRetention,
		},
		log,
	)

	// Initialize HTTP handlers
	renderHandler := handler.NewRenderHandler(renderService, templateRepo, recordRepo, artifactRepo, log)
	templateHandler := handler.NewTemplateHandler(templateRepo)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ginEngine := gin.New()
	ginEngine.Use(middleware.RequestID())
	ginEngine.Use(logger.Recovery(log))
	ginEngine.Use(logger.GinMiddleware(log))
	ginEngine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	ginEngine.GET("/health", healthHandler(db))

	actorMiddleware := middleware.Actor()
	r := router.NewRouter(ginEngine, router.WithAPIVersion("v1"))
	r.Register(handler.RenderRoutes(renderHandler, actorMiddleware)).
		Register(handler.ArtifactRoutes(renderHandler, actorMiddleware)).
		Register(handler.TemplateRoutes(templateHandler, actorMiddleware))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      ginEngine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
