package board

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a board with its columns and cards",
		Long: `Print a board snapshot: every column left to right, each with its
cards in position order.

Examples:
  lanes board show --board=1
  lanes board show --board=1 --json
`,
		RunE: cli.Command(runShow),
	}

	cmd.Flags().Int("board", 0, "Board ID (uses LANES_BOARD env var if not specified)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	boardID, err := cli.BoardFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}

	snap, err := c.App.BoardService.GetSnapshot(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}

	return snap, func() string { return cli.RenderBoard(snap) }, nil
}
