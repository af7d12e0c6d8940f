package column

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the columns of a board",
		Long: `List the columns of a board in position order.

Examples:
  lanes column list --board=1
  lanes column list --board=1 --json
  lanes column list --board=1 --quiet   # IDs only
`,
		RunE: cli.Command(runList),
	}

	cmd.Flags().Int("board", 0, "Board ID (uses LANES_BOARD env var if not specified)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	boardID, err := cli.BoardFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}

	columns, err := c.App.ColumnService.ListColumns(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}

	return cli.ColumnList(columns), func() string { return cli.RenderColumns(columns) }, nil
}
