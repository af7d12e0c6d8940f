package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config
}

// NewCLI opens the database and optional integrations described by cfg
func NewCLI(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*CLI, error) {
	application, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}

	return &CLI{
		App:    application,
		Config: cfg,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.App == nil {
		return nil
	}
	return c.App.Close()
}
