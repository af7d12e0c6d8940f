package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	boardservice "github.com/thenoetrevino/lanes/internal/services/board"
)

// Action runs one command. It returns the data to print and, optionally,
// how to render it for humans.
type Action func(ctx context.Context, c *CLI, cmd *cobra.Command, args []string) (data any, render func() string, err error)

// AddOutputFlags registers the agent-friendly output flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// Formatter builds the output formatter selected by the command's flags
func Formatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// Command wraps common command execution logic:
// CLI lookup, error reporting with exit codes and output formatting.
// Returns a cobra RunE compatible function.
func Command(action Action) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		formatter := Formatter(cmd)

		cliInstance, err := GetCLIFromContext(ctx)
		if err != nil {
			if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			return &ExitCodeError{Code: ExitError, Err: err, Reported: true}
		}

		data, render, err := action(ctx, cliInstance, cmd, args)
		if err != nil {
			suggestion := ""
			if errors.Is(err, boardservice.ErrExportDisabled) {
				suggestion = "Configure the s3 section of the config file"
			}
			if fmtErr := formatter.ErrorWithSuggestion(errorCode(err), err.Error(), suggestion); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			return &ExitCodeError{Code: ExitCodeFor(err), Err: err, Reported: true}
		}

		return formatter.Success(data, render)
	}
}

// RequireID reads a positive integer flag
func RequireID(cmd *cobra.Command, name string) (int, error) {
	id, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, &ExitCodeError{Code: ExitUsage, Err: err}
	}
	if id <= 0 {
		return 0, &ExitCodeError{Code: ExitUsage, Err: errors.New("--" + name + " must be greater than 0")}
	}
	return id, nil
}
