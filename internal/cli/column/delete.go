package column

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
)

// DeleteCmd returns the column delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a column",
		Long: `Delete a column by ID (requires confirmation unless --force, --json or --quiet).

Warning: Deleting a column deletes every card in it. Columns to its right
shift left so positions stay contiguous.

Examples:
  lanes column delete --id=1
  lanes column delete --id=1 --force
`,
		RunE: cli.Command(runDelete),
	}

	cmd.Flags().Int("id", 0, "Column ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "id", "error", err)
	}
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	columnID, err := cli.RequireID(cmd, "id")
	if err != nil {
		return nil, nil, err
	}

	col, err := c.App.ColumnService.GetColumn(ctx, columnID)
	if err != nil {
		return nil, nil, err
	}
	cards, err := c.App.CardService.ListCards(ctx, columnID)
	if err != nil {
		return nil, nil, err
	}

	if err := cli.Confirm(cmd, fmt.Sprintf("Delete column '%s' and its %d cards?", col.Title, len(cards))); err != nil {
		return nil, nil, err
	}

	if err := c.App.ColumnService.DeleteColumn(ctx, columnID); err != nil {
		return nil, nil, err
	}

	return cli.Deleted{ID: columnID, Deleted: true, Kind: "column"}, func() string {
		return cli.RenderSuccess(fmt.Sprintf("Column '%s' deleted", col.Title))
	}, nil
}
