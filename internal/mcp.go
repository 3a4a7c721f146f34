package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/halvard/orglog/internal/mcpserver"
	"github.com/halvard/orglog/internal/metastore"
	"github.com/halvard/orglog/internal/postservice"
)

// RunMCP serves the post index over MCP stdio. Logs go to stderr: stdout
// carries the protocol.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	store, err := metastore.Open(cfg.Cache.ResolvePath(cfg.Posts.Path))
	if err != nil {
		return fmt.Errorf("init metadata store: %w", err)
	}
	defer store.Close()

	if err := metastore.Bootstrap(store, cfg.Posts.Path, logger); err != nil {
		return fmt.Errorf("bootstrap scan: %w", err)
	}

	svc := postservice.NewService(store, cfg.Posts.Path)
	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc).ServeStdio()
}
