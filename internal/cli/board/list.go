package board

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
)

// ListCmd returns the board list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boards",
		RunE:  cli.Command(runList),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, c *cli.CLI, _ *cobra.Command, _ []string) (any, func() string, error) {
	boards, err := c.App.BoardService.ListBoards(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cli.BoardList(boards), func() string { return cli.RenderBoards(boards) }, nil
}
