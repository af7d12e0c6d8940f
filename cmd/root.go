package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/board"
	"github.com/thenoetrevino/lanes/internal/cli/card"
	"github.com/thenoetrevino/lanes/internal/cli/column"
	"github.com/thenoetrevino/lanes/internal/cli/serve"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/logging"
)

// session holds what the root command opened for one invocation
type session struct {
	cli       *cli.CLI
	logCloser io.Closer
}

func (s *session) close() {
	if s.cli != nil {
		if err := s.cli.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
		s.cli = nil
	}
	if s.logCloser != nil {
		_ = s.logCloser.Close()
		s.logCloser = nil
	}
}

// NewRootCmd builds the lanes command tree. The returned cleanup releases
// the database and log file opened while the command ran.
func NewRootCmd() (*cobra.Command, func()) {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:   "lanes",
		Short: "Lanes - a kanban board with ordered columns and cards",
		Long: `Lanes keeps kanban boards in a local SQLite database. Cards can be
moved within and between columns; positions always stay 0..n-1.

Every command accepts --json for agents and --quiet for shell capture.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return &cli.ExitCodeError{Code: cli.ExitUsage, Err: err}
			}

			logger, closer, err := logging.Init(cfg.Log)
			if err != nil {
				return &cli.ExitCodeError{Code: cli.ExitUsage, Err: err}
			}
			s.logCloser = closer
			styles.Init(cfg.Theme)

			ctx := cli.WithConfig(cmd.Context(), cfg)
			if cmd.Annotations[cli.AnnotationStandalone] != "true" {
				s.cli, err = cli.NewCLI(ctx, cfg, logger)
				if err != nil {
					return err
				}
				ctx = cli.WithCLI(ctx, s.cli)
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cli.ExitCodeError{Code: cli.ExitUsage, Err: err}
	})

	rootCmd.PersistentFlags().String("config", "", "Config file (default $LANES_CONFIG or ~/.config/lanes/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Database path (overrides database.path)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(column.ColumnCmd())
	rootCmd.AddCommand(card.CardCmd())
	rootCmd.AddCommand(serve.ServeCmd())

	return rootCmd, s.close
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context, args []string) int {
	rootCmd, cleanup := NewRootCmd()
	defer cleanup()

	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)

	var exitErr *cli.ExitCodeError
	if err != nil && !(errors.As(err, &exitErr) && exitErr.Reported) {
		rootCmd.PrintErrln("Error:", err)
	}
	return cli.ExitCodeFor(err)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	return cfg, cfg.Validate()
}
