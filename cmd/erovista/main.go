package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/ktg84478/erovista/internal/adapter/http"
	"github.com/ktg84478/erovista/internal/adapter/dataset"
	"github.com/ktg84478/erovista/internal/config"
	"github.com/ktg84478/erovista/internal/observability"
	"github.com/ktg84478/erovista/internal/resolver"
	"github.com/ktg84478/erovista/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The table is loaded once; a bad dataset is fatal.
	loader := dataset.NewLoader(cfg.DatasetFetchTimeout, logger)
	ds, err := loader.Load(ctx, cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to load dataset", "source", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}

	svc := resolver.New(logger, metrics)
	svc.Install(ds.Table)

	sessions := session.NewStore(cfg.SessionCacheSize, cfg.SessionTTL, nil, metrics)
	if cfg.RequireTerms {
		logger.Info("terms gate enabled", "session_ttl", cfg.SessionTTL, "session_cache_size", cfg.SessionCacheSize)
	} else {
		logger.Info("terms gate disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, sessions, cfg.RequireTerms, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
