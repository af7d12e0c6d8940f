package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	boardservice "github.com/thenoetrevino/lanes/internal/services/board"
)

// CreateCmd returns the board create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new board",
		Long: `Create a board together with its columns.

Without --columns the board gets Todo, In Progress and Done.

Examples:
  lanes board create --title="Roadmap"
  lanes board create --title="Sprint 12" --columns=Backlog,Doing,Review,Done
  BOARD_ID=$(lanes board create --title="Roadmap" --quiet)
`,
		RunE: cli.Command(runCreate),
	}

	cmd.Flags().String("title", "", "Board title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "flag", "title", "error", err)
	}
	cmd.Flags().StringSlice("columns", nil, "Column titles, left to right")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	title, _ := cmd.Flags().GetString("title")

	req := boardservice.CreateBoardRequest{Title: title}
	if cmd.Flags().Changed("columns") {
		columns, _ := cmd.Flags().GetStringSlice("columns")
		req.Columns = append([]string{}, columns...)
	}

	board, err := c.App.BoardService.CreateBoard(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	return board, func() string {
		return cli.RenderSuccess(fmt.Sprintf("Board '%s' created (ID: %d)", board.Title, board.ID))
	}, nil
}
