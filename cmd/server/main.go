package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/seorender/internal/api"
	"github.com/dgallion1/seorender/internal/cache"
	"github.com/dgallion1/seorender/internal/config"
	"github.com/dgallion1/seorender/internal/pipeline"
	"github.com/dgallion1/seorender/internal/render"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache backend: Redis when configured, in-process otherwise.
	var store cache.Store
	if cfg.RedisAddr != "" {
		store = cache.NewRedis(cfg.RedisAddr, os.Getenv("REDIS_PASSWORD"), 0, cache.WithTTL(cfg.CacheTTL))
		log.Info("using redis cache", "addr", cfg.RedisAddr)
	} else {
		store = cache.NewMemory(cfg.CacheTTL)
	}

	renderer := render.New(render.Options{
		Excluded: cfg.ExcludedKinds,
		MaxDepth: cfg.MaxRenderDepth,
	})

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, renderer, store, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, renderer, store, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		store.Close()
	}()

	log.Info("starting seorender", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
