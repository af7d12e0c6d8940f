// Command lanesd runs the lanes HTTP API as a long-lived service, configured
// only through the config file.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/lanes/internal/cli/serve"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, closer, err := logging.Init(cfg.Log)
	if err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	logger.Info("lanes daemon starting", "addr", cfg.Server.Addr, "db", cfg.Database.Path, "pid", os.Getpid())

	// Blocks until shutdown
	if err := serve.Run(ctx, cfg, logger); err != nil {
		logger.Error("daemon error", "error", err)
		_ = closer.Close()
		os.Exit(1)
	}

	logger.Info("lanes daemon shutting down gracefully")
}
