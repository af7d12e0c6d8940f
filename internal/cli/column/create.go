package column

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	columnservice "github.com/thenoetrevino/lanes/internal/services/column"
)

// CreateCmd returns the column create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new column",
		Long: `Create a new column at the right end of a board.

Examples:
  # Create column (human-readable output)
  lanes column create --title="Review" --board=1

  # JSON output for agents
  lanes column create --title="Review" --board=1 --json

  # Quiet mode for bash capture
  COLUMN_ID=$(lanes column create --title="Review" --board=1 --quiet)
`,
		RunE: cli.Command(runCreate),
	}

	cmd.Flags().String("title", "", "Column title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "title", "error", err)
	}
	cmd.Flags().Int("board", 0, "Board ID (uses LANES_BOARD env var if not specified)")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	boardID, err := cli.BoardFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}
	title, _ := cmd.Flags().GetString("title")

	col, err := c.App.ColumnService.CreateColumn(ctx, columnservice.CreateColumnRequest{
		BoardID: boardID,
		Title:   title,
	})
	if err != nil {
		return nil, nil, err
	}

	return col, func() string {
		return cli.RenderSuccess(fmt.Sprintf("Column '%s' created (ID: %d, position %d)", col.Title, col.ID, col.Position))
	}, nil
}
