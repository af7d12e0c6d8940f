package serve

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/api"
	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/events"
)

// ServeCmd returns the serve command. It builds its own App so the event
// publisher can be instrumented, so it must not be wrapped by the root's
// CLI initialization.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board API over HTTP",
		Long: `Start the HTTP API. The server stops on SIGINT or SIGTERM after
draining in-flight requests.

Examples:
  lanes serve
  lanes serve --addr=0.0.0.0:9000
`,
		Annotations: map[string]string{cli.AnnotationStandalone: "true"},
		RunE:        runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.ConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, cfg, slog.Default())
}

// Run bootstraps an App from cfg and serves it until ctx is done
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	metrics := api.NewMetrics()

	a, err := app.Bootstrap(ctx, cfg, logger, app.WithPublisherWrapper(func(p events.Publisher) events.Publisher {
		return api.InstrumentPublisher(p, metrics)
	}))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close app", "error", err)
		}
	}()

	return api.NewServer(a, cfg.Server, metrics).Run(ctx)
}
