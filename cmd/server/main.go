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

	"go.uber.org/zap"

	"github.com/marcvidal/hotel-booking-backend/internal/app"
	"github.com/marcvidal/hotel-booking-backend/internal/cache"
	"github.com/marcvidal/hotel-booking-backend/internal/config"
	"github.com/marcvidal/hotel-booking-backend/internal/db"
	"github.com/marcvidal/hotel-booking-backend/internal/logger"
	"github.com/marcvidal/hotel-booking-backend/internal/reconcile"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		zlog.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	// Optional Redis for availability caching
	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, zlog)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Wire all modules
	container, err := app.NewContainer(cfg, pool, redisClient, zlog)
	if err != nil {
		zlog.Fatal("failed to init application", zap.Error(err))
	}

	// Periodic ledger/booking drift repair
	scheduler, err := reconcile.StartScheduler(container.Reconciler, cfg.ReconcileInterval, zlog)
	if err != nil {
		zlog.Fatal("failed to start reconciliation scheduler", zap.Error(err))
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			zlog.Warn("scheduler shutdown failed", zap.Error(err))
		}
	}()

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		zlog.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	zlog.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited gracefully")
}
