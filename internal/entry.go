// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nborders/grove/internal/export"
	"github.com/nborders/grove/internal/graph"
	"github.com/nborders/grove/internal/storage"
)

// Run loads the snapshot and performs the export with the given options.
// With watch enabled it keeps running and re-exports on snapshot changes
// until interrupted.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := app.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.App.LogLevel,
		}))
		slog.SetDefault(logger)
	}

	logger.Info("Configuration loaded",
		slog.String("source_path", cfg.Source.Path),
		slog.String("output_path", cfg.Output.Path),
		slog.Int("workers", cfg.App.Workers),
		slog.Bool("watch", cfg.App.Watch),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// The snapshot is loaded before the output tree is touched, so a bad
	// source aborts with no output-side effects.
	runOnce := func(ctx context.Context) error {
		g, err := graph.Load(cfg.Source.Path)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		vault, err := storage.NewVault(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		return export.New(g, vault, logger, cfg.App.Workers).Run(ctx)
	}

	if err := runOnce(ctx); err != nil {
		return err
	}

	if !cfg.App.Watch {
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return export.Watch(gCtx, cfg.Source.Path, logger, runOnce)
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
		}
		return context.Canceled
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Stopped")
	return nil
}
