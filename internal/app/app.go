// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/learnhub/course-assistant-go/internal/aichat"
	"github.com/learnhub/course-assistant-go/internal/buildinfo"
	"github.com/learnhub/course-assistant-go/internal/config"
	"github.com/learnhub/course-assistant-go/internal/courses"
	"github.com/learnhub/course-assistant-go/internal/engine"
	"github.com/learnhub/course-assistant-go/internal/httpapi"
	"github.com/learnhub/course-assistant-go/internal/logger"
	"github.com/learnhub/course-assistant-go/internal/metrics"
	"github.com/learnhub/course-assistant-go/internal/ratelimit"
	"github.com/learnhub/course-assistant-go/internal/recommend"
	"github.com/learnhub/course-assistant-go/internal/sentry"
	"github.com/learnhub/course-assistant-go/internal/session"
	"github.com/learnhub/course-assistant-go/internal/timeouts"
)

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg            *config.Config
	logger         *logger.Logger
	store          *courses.Store
	metrics        *metrics.Metrics
	registry       *prometheus.Registry
	sessions       *session.Manager
	recommender    *recommend.Index
	chat           aichat.Client
	messageLimiter *ratelimit.KeyedLimiter
	aiLimiter      *ratelimit.KeyedLimiter
	globalLimiter  *ratelimit.Limiter
	server         *http.Server
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})

	log = log.WithField("service", "course-assistant-go")
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Release:     buildinfo.Version,
	}); err != nil {
		log.WithError(err).Warn("Sentry initialization failed")
	} else if sentry.IsEnabled() {
		log.WithField("environment", cfg.Environment).Info("Sentry error tracking enabled")
	}

	store, err := courses.New(cfg.SQLitePath())
	if err != nil {
		return nil, fmt.Errorf("course store: %w", err)
	}
	log.WithField("path", cfg.SQLitePath()).Info("Course store connected")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	// Catalog load and AI client setup are independent; run them together.
	recommender := recommend.New(log)
	var chat aichat.Client
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loadCatalog(gctx, cfg, log, store, recommender)
	})
	g.Go(func() error {
		var chatErr error
		chat, chatErr = aichat.NewFromConfig(gctx, cfg, m)
		if chatErr != nil {
			return fmt.Errorf("aichat: %w", chatErr)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sessions := session.NewManager(session.Config{
		TTL:           cfg.SessionTTL,
		CleanupPeriod: cfg.SessionCleanupInterval,
		Metrics:       m,
		Logger:        log,
	})

	messageLimiter := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		Name:          "session",
		Burst:         cfg.SessionRateLimitBurst,
		RefillRate:    cfg.SessionRateLimitRefillPerSec,
		CleanupPeriod: cfg.SessionCleanupInterval,
		Metrics:       m,
	})
	aiLimiter := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		Name:          "ai",
		Burst:         cfg.AIRateLimitBurst,
		RefillRate:    cfg.AIRateLimitRefillPerHour / 3600.0, // Convert hourly to per-second
		CleanupPeriod: cfg.SessionCleanupInterval,
		Metrics:       m,
	})

	apiHandler := httpapi.NewHandler(httpapi.HandlerConfig{
		Sessions:         sessions,
		Store:            store,
		Orchestrator:     engine.NewDialogueOrchestrator(log),
		Recommender:      recommender,
		Chat:             chat,
		MessageLimiter:   messageLimiter,
		AILimiter:        aiLimiter,
		Metrics:          m,
		Logger:           log,
		MaxMessageLength: cfg.MaxMessageLength,
		SuggestionLimit:  cfg.RecommendationResultLimit,
		ChatTimeout:      cfg.AIChatTimeout,
	})

	app := &Application{
		cfg:            cfg,
		logger:         log,
		store:          store,
		metrics:        m,
		registry:       registry,
		sessions:       sessions,
		recommender:    recommender,
		chat:           chat,
		messageLimiter: messageLimiter,
		aiLimiter:      aiLimiter,
		globalLimiter:  ratelimit.New(cfg.GlobalRateLimitRPS, cfg.GlobalRateLimitRPS),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(corsMiddleware(cfg.AllowedOrigins))
	router.Use(loggingMiddleware(log, m))
	router.Use(app.globalRateLimitMiddleware())

	router.GET("/livez", app.livenessCheck)
	router.HEAD("/livez", app.livenessCheck)
	router.GET("/readyz", app.readinessCheck)
	router.HEAD("/readyz", app.readinessCheck)
	router.GET("/metrics",
		metricsAuthMiddleware(cfg.MetricsPassword != "", cfg.MetricsUsername, cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	apiHandler.Register(router)

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: timeouts.HTTPReadHeader,
		ReadTimeout:       timeouts.HTTPRead,
		WriteTimeout:      timeouts.HTTPWrite,
		IdleTimeout:       timeouts.HTTPIdle,
	}

	log.Info("Initialization complete")
	return app, nil
}

// loadCatalog seeds an empty catalog and builds the recommendation index.
func loadCatalog(ctx context.Context, cfg *config.Config, log *logger.Logger, store *courses.Store, recommender *recommend.Index) error {
	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("course count: %w", err)
	}

	if count == 0 && cfg.CourseSeedPath != "" {
		seeded, err := store.Seed(ctx, cfg.CourseSeedPath)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		log.WithField("count", seeded).WithField("path", cfg.CourseSeedPath).Info("Course catalog seeded")
	}

	records, err := store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}
	if err := recommender.Initialize(records); err != nil {
		// Recommendations are optional; the engine answers without them.
		log.WithError(err).Warn("Recommendation index initialization failed")
	}
	return nil
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func (a *Application) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeouts.ReadinessCheck)
	defer cancel()

	count, err := a.store.Count(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("Readiness check failed: course store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "course store unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ready",
		"version":         buildinfo.Version,
		"courses":         count,
		"active_sessions": a.sessions.Count(),
		"features": gin.H{
			"recommendations": a.recommender != nil,
			"ai_delegation":   a.chat != nil,
		},
	})
}

// Run starts the HTTP server and blocks until a shutdown signal arrives.
func (a *Application) Run() error {
	go func() {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.WithError(err).Error("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	a.logger.WithField("signal", sig.String()).Info("Received shutdown signal")
	return a.Shutdown()
}

// Shutdown stops the HTTP server and closes resources in dependency order:
// server first so no new requests arrive, then the AI client and store, then
// the background loops.
func (a *Application) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}

	a.logger.Info("Closing resources...")

	if a.chat != nil {
		if err := a.chat.Close(); err != nil {
			a.logger.WithError(err).WithField("component", "aichat").Error("Component close error")
		}
	}

	if err := a.store.Close(); err != nil {
		a.logger.WithError(err).WithField("component", "course_store").Error("Component close error")
	}

	a.sessions.Stop()
	a.messageLimiter.Stop()
	a.aiLimiter.Stop()

	if sentry.IsEnabled() {
		sentry.Flush(timeouts.SentryFlush)
	}

	a.logger.Info("Shutdown complete")
	return nil
}
