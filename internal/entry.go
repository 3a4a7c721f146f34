// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/halvard/orglog/internal/metastore"
	"github.com/halvard/orglog/internal/postservice"
	"github.com/halvard/orglog/internal/web"
)

// Run starts the blog server with the given options. The metadata store is
// opened and the corpus fully bootstrapped before the HTTP listener starts,
// so request handlers only ever see a read-only, fully indexed store.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	cachePath := cfg.Cache.ResolvePath(cfg.Posts.Path)
	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("posts_path", cfg.Posts.Path),
		slog.String("cache_path", cachePath),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure posts directory exists.
	if err := os.MkdirAll(cfg.Posts.Path, 0o755); err != nil {
		return fmt.Errorf("create posts dir: %w", err)
	}

	// Open the metadata store; the process must not serve without it.
	store, err := metastore.Open(cachePath)
	if err != nil {
		return fmt.Errorf("init metadata store: %w", err)
	}
	defer store.Close()

	// Index every not-yet-seen post before accepting traffic.
	if err := metastore.Bootstrap(store, cfg.Posts.Path, logger); err != nil {
		return fmt.Errorf("bootstrap scan: %w", err)
	}

	svc := postservice.NewService(store, cfg.Posts.Path)
	blogRouter := web.NewRouter(svc, web.Site{
		Title:       cfg.Site.Title,
		Author:      cfg.Site.Author,
		BaseURL:     cfg.Site.BaseURL,
		Welcome:     cfg.Site.Welcome,
		About:       cfg.Site.About,
		RecentCount: cfg.Site.RecentCount,
	})

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/", blogRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Watch for posts exported after startup.
	if cfg.Posts.Watch {
		g.Go(func() error {
			return metastore.Watch(gCtx, store, cfg.Posts.Path, logger)
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
