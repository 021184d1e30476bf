package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/riskibarqy/event-agenda/internal/app"
	"github.com/riskibarqy/event-agenda/internal/config"
	"github.com/riskibarqy/event-agenda/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("collector run failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	started := time.Now()

	collector, err := app.NewCollector(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build collector: %w", err)
	}
	defer func() {
		if err := collector.Close(); err != nil {
			logger.Warn("close collector", "error", err)
		}
	}()

	in, closeIn, err := openInput(cfg.InputPath)
	if err != nil {
		return err
	}
	defer closeIn()

	out, commit, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}

	n, err := collector.Run(ctx, in, out)
	if err != nil {
		_ = commit(false)
		return err
	}
	if err := commit(true); err != nil {
		return err
	}

	counts := logger.Counts()
	logger.Info("agenda written",
		"events", n,
		"output", cfg.OutputPath,
		"elapsed", time.Since(started),
		"warnings", counts.Warn,
		"errors", counts.Error,
	)
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// openOutput writes to a temporary file next to path and renames it on
// commit, so a failed run never leaves a truncated agenda behind.
func openOutput(path string) (io.Writer, func(ok bool) error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func(bool) error { return nil }, nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".agenda-*.json")
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	commit := func(ok bool) error {
		closeErr := tmp.Close()
		if !ok || closeErr != nil {
			_ = os.Remove(tmp.Name())
			if closeErr != nil {
				return fmt.Errorf("close output: %w", closeErr)
			}
			return nil
		}
		if err := os.Rename(tmp.Name(), path); err != nil {
			_ = os.Remove(tmp.Name())
			return fmt.Errorf("rename output: %w", err)
		}
		return nil
	}
	return tmp, commit, nil
}
