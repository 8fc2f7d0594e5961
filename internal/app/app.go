// Package app wires configuration, storage, the monitoring pipeline and the
// HTTP API together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/review-monitor/core/internal/config"
	"github.com/review-monitor/core/internal/middleware"
	"github.com/review-monitor/core/internal/modules/analyzer"
	"github.com/review-monitor/core/internal/modules/crawler"
	"github.com/review-monitor/core/internal/modules/monitor"
	pkgcron "github.com/review-monitor/core/internal/pkg/cron"
	"github.com/review-monitor/core/internal/pkg/metrics"
	"github.com/review-monitor/core/internal/storage"
)

// App holds all application dependencies.
type App struct {
	cfg        *config.AppConfig
	router     *gin.Engine
	store      *storage.Store
	monitorSvc *monitor.Service
	collector  *metrics.Collector
	logger     *zap.Logger
	cancel     context.CancelFunc
	sched      *pkgcron.Scheduler
}

// New initializes the application: config → storage → pipeline → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	cr, err := crawler.New(cfg.CommentDataFile, logger)
	if err != nil {
		return nil, fmt.Errorf("crawler: %w", err)
	}

	collector := metrics.NewCollector()
	analyzerSvc := analyzer.NewService(&cfg.AI, logger, collector)
	notifier := monitor.NewWebhookNotifier(cfg.WebhookURL, logger, collector)
	monitorSvc := monitor.NewService(store, cr, analyzerSvc, notifier, logger, collector)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	ctx, cancel := context.WithCancel(context.Background())
	sched := pkgcron.New()
	registerCronJobs(sched, monitorSvc, cfg, logger)
	go sched.Start(ctx)

	app := &App{
		cfg:        cfg,
		router:     router,
		store:      store,
		monitorSvc: monitorSvc,
		collector:  collector,
		logger:     logger,
		cancel:     cancel,
		sched:      sched,
	}
	app.registerRoutes()

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background goroutines.
func (a *App) Shutdown() { a.cancel() }
