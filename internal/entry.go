// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/daybook/internal/clock"
	"github.com/starford/daybook/internal/dispatch"
	"github.com/starford/daybook/internal/groupstore"
	"github.com/starford/daybook/internal/mcpserver"
	"github.com/starford/daybook/internal/scan"
	"github.com/starford/daybook/internal/storage"
	"github.com/starford/daybook/internal/watcher"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{clock: clock.System{}}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger on stderr; stdout belongs to the
	// MCP stdio transport.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("data_root", cfg.Data.Root),
		slog.Bool("watch", cfg.Watch.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure the data root exists.
	if err := os.MkdirAll(cfg.Data.Root, 0o755); err != nil {
		return fmt.Errorf("create data root: %w", err)
	}

	// Initialize storage and the persistence core.
	fs, err := storage.NewFS(cfg.Data.Root)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	store := groupstore.New(fs, app.clock, logger)
	scanner := scan.New(fs, logger)
	serial := dispatch.NewSerializer()

	srv := mcpserver.New(store, scanner, fs, serial)

	g, gCtx := errgroup.WithContext(ctx)

	// Start the external-change watcher.
	if cfg.Watch.Enabled {
		debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
		g.Go(func() error {
			return watcher.Watch(gCtx, fs.Root(), debounce, logger, func(ev watcher.Event) {
				logger.Info("external change",
					slog.String("kind", ev.Kind),
					slog.String("group", ev.Identity.Key()),
					slog.String("path", ev.Path))
			})
		})
	}

	// Serve MCP tools on stdin/stdout.
	g.Go(func() error {
		logger.Info("Serving MCP tools on stdio")
		if err := srv.ServeStdio(); err != nil {
			return fmt.Errorf("mcp server error: %w", err)
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
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Stopped")
	return nil
}
