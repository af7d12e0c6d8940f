package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
)

// DeleteCmd returns the board delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a board",
		Long: `Delete a board with all of its columns and cards
(requires confirmation unless --force, --json or --quiet).
`,
		RunE: cli.Command(runDelete),
	}

	cmd.Flags().Int("board", 0, "Board ID (uses LANES_BOARD env var if not specified)")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	boardID, err := cli.BoardFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}

	snap, err := c.App.BoardService.GetSnapshot(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}
	prompt := fmt.Sprintf("Delete board '%s' with %d columns and %d cards?", snap.Board.Title, len(snap.Columns), snap.CardCount())
	if err := cli.Confirm(cmd, prompt); err != nil {
		return nil, nil, err
	}

	if err := c.App.BoardService.DeleteBoard(ctx, boardID); err != nil {
		return nil, nil, err
	}

	return cli.Deleted{ID: boardID, Deleted: true, Kind: "board"}, func() string {
		return cli.RenderSuccess(fmt.Sprintf("Board '%s' deleted", snap.Board.Title))
	}, nil
}
