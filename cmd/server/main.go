package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/learnprofile/api"
	dbfs "github.com/garnizeh/learnprofile/db"
	"github.com/garnizeh/learnprofile/internal/config"
	"github.com/garnizeh/learnprofile/internal/content"
	"github.com/garnizeh/learnprofile/internal/db"
	"github.com/garnizeh/learnprofile/pkg/ollama"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)
	ollama.SetLogger(logger)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("starting learnprofile server",
		slog.String("version", version), slog.String("build_time", buildTime),
		slog.String("provider", cfg.Content.Provider), slog.String("model", cfg.Content.Model),
		slog.Duration("request_timeout", requestTimeout(cfg)))

	ctx := context.Background()

	dbCtx, dbCancel := context.WithTimeout(ctx, cfg.APITimeout)
	database, err := db.New(dbCtx, cfg.DatabasePath, logger)
	if err != nil {
		dbCancel()
		logger.Error("failed to open DB", slog.Any("err", err))
		os.Exit(1)
	}
	if err := db.Migrate(dbCtx, database, dbfs.Migrations); err != nil {
		dbCancel()
		logger.Error("failed to migrate DB", slog.Any("err", err))
		os.Exit(1)
	}
	dbCancel()

	gen, err := content.NewGenerator(ctx, cfg, nil)
	if err != nil {
		logger.Error("failed to initialize content provider", slog.Any("err", err))
		os.Exit(1)
	}
	gateway := content.NewGateway(gen, cfg.Content, logger)

	handler := api.SetupRoutes(cfg, version, buildTime, database, gateway)

	server := newHTTPServer(cfg, handler)

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed to start", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("err", err))
	}

	if err := gateway.Close(); err != nil {
		logger.Warn("error closing content provider", slog.Any("err", err))
	}
	if err := database.Close(); err != nil {
		logger.Warn("error closing DB", slog.Any("err", err))
	}

	logger.Info("server exited")
}
