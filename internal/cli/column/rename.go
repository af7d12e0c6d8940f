package column

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
)

// RenameCmd returns the column rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a column",
		Long: `Change a column's title. Its position and cards are untouched.

Examples:
  lanes column rename --id=3 --title="Shipped"
`,
		RunE: cli.Command(runRename),
	}

	cmd.Flags().Int("id", 0, "Column ID (required)")
	cmd.Flags().String("title", "", "New column title (required)")
	for _, name := range []string{"id", "title"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}
	cli.AddOutputFlags(cmd)

	return cmd
}

func runRename(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	columnID, err := cli.RequireID(cmd, "id")
	if err != nil {
		return nil, nil, err
	}
	title, _ := cmd.Flags().GetString("title")

	if err := c.App.ColumnService.RenameColumn(ctx, columnID, title); err != nil {
		return nil, nil, err
	}

	col, err := c.App.ColumnService.GetColumn(ctx, columnID)
	if err != nil {
		return nil, nil, err
	}

	return col, func() string {
		return cli.RenderSuccess(fmt.Sprintf("Column %d renamed to '%s'", col.ID, col.Title))
	}, nil
}
