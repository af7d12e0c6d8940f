package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
)

// RenameCmd returns the board rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a board",
		RunE:  cli.Command(runRename),
	}

	cmd.Flags().Int("board", 0, "Board ID (uses LANES_BOARD env var if not specified)")
	cmd.Flags().String("title", "", "New board title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "title", "error", err)
	}
	cli.AddOutputFlags(cmd)

	return cmd
}

func runRename(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	boardID, err := cli.BoardFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}
	title, _ := cmd.Flags().GetString("title")

	if err := c.App.BoardService.RenameBoard(ctx, boardID, title); err != nil {
		return nil, nil, err
	}
	board, err := c.App.BoardService.GetBoard(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}

	return board, func() string {
		return cli.RenderSuccess(fmt.Sprintf("Board %d renamed to '%s'", board.ID, board.Title))
	}, nil
}
