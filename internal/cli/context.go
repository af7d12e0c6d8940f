package cli

import (
	"context"
	"errors"

	"github.com/thenoetrevino/lanes/internal/config"
)

type cliContextKey struct{}

// ErrNoCLI indicates a command ran without an initialized CLI in its context
var ErrNoCLI = errors.New("CLI not initialized")

// WithCLI returns a copy of ctx carrying c
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, cliContextKey{}, c)
}

// GetCLIFromContext returns the CLI stored by the root command
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		return nil, ErrNoCLI
	}
	c, ok := ctx.Value(cliContextKey{}).(*CLI)
	if !ok || c == nil || c.App == nil {
		return nil, ErrNoCLI
	}
	return c, nil
}

type configContextKey struct{}

// AnnotationStandalone marks commands that build their own App instead of
// receiving one from the root command.
const AnnotationStandalone = "lanes/standalone"

// WithConfig returns a copy of ctx carrying the loaded configuration
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configContextKey{}, cfg)
}

// ConfigFromContext returns the configuration loaded by the root command
func ConfigFromContext(ctx context.Context) (*config.Config, error) {
	if ctx == nil {
		return nil, errors.New("config not loaded")
	}
	cfg, ok := ctx.Value(configContextKey{}).(*config.Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not loaded")
	}
	return cfg, nil
}
