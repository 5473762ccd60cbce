package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"election-bknd/internal/auth"
	"election-bknd/internal/cache"
	"election-bknd/internal/config"
	"election-bknd/internal/database"
	"election-bknd/internal/logger"
	"election-bknd/internal/routes"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logr := logger.New(cfg)

	db, err := database.New(cfg.DatabaseURL, cfg)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.InitSchema(ctx, db); err != nil {
		cancel()
		logr.Fatal("failed to init schema", zap.Error(err))
	}
	cancel()

	jwtMgr, err := auth.NewJWTManager(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, "election-bknd")
	if err != nil {
		logr.Fatal("failed to init jwt manager", zap.Error(err))
	}

	inv, err := cache.New(cfg.RedisURL, cfg.InvalidateChannel, logr.Logger)
	if err != nil {
		logr.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer inv.Close()

	r := routes.NewRouter(db, cfg, logr, jwtMgr, inv)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("server started", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Fatal("server forced to shutdown", zap.Error(err))
	}

	_ = db.Close()
	logr.Info("server exited gracefully")
}
