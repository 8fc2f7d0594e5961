package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/review-monitor/core/internal/app"
	"github.com/review-monitor/core/internal/config"
	"github.com/review-monitor/core/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (default "+config.DefaultConfigPath+")")
	flag.Parse()

	// Optional .env for local development; environment wins over file values.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("failed to load config", zap.Error(err))
	}

	log, err := logger.New(logger.Options{
		Dir:        cfg.Log.Dir,
		MaxSizeMB:  cfg.Log.RotateSizeMB,
		MaxBackups: cfg.Log.RotateKeep,
		Level:      cfg.Log.Level,
	})
	if err != nil {
		log, _ = zap.NewProduction()
		log.Warn("file log pipeline unavailable, fallback to zap production logger", zap.Error(err))
	}
	defer log.Sync()

	application, err := app.New(log, cfg)
	if err != nil {
		log.Fatal("failed to initialize app", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    application.Addr(),
		Handler: application.Router(),
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	application.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}
	log.Info("server exited")
}
