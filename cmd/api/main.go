package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mim-rose/nexthire-server/internal/config"
	"github.com/Mim-rose/nexthire-server/internal/database"
	"github.com/Mim-rose/nexthire-server/internal/handlers"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// 2. Setup logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Database connection, acquired once and shared by every handler
	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	store, err := database.Connect(connectCtx, cfg)
	cancel()
	if err != nil {
		slog.Error("Failed to connect to the database", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	// 4. Router, services and handlers
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(cfg, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-shutdownCtx.Done()
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced to shutdown", "error", err)
	}
	if err := store.Close(ctx); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}

	slog.Info("Server exited cleanly")
}
