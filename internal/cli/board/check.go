package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
)

// CheckResult reports a passed integrity check
type CheckResult struct {
	BoardID    int  `json:"boardId"`
	Contiguous bool `json:"contiguous"`
}

// GetID returns the checked board's ID
func (r CheckResult) GetID() int { return r.BoardID }

// CheckCmd returns the board check subcommand
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify column and card positions are contiguous",
		Long: `Verify that the board's columns, and the cards of each column, are
numbered 0..n-1 without gaps or duplicates. Exits non-zero on a violation.
`,
		RunE: cli.Command(runCheck),
	}

	cmd.Flags().Int("board", 0, "Board ID (uses LANES_BOARD env var if not specified)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCheck(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	boardID, err := cli.BoardFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}

	if err := c.App.BoardService.CheckIntegrity(ctx, boardID); err != nil {
		return nil, nil, err
	}

	return CheckResult{BoardID: boardID, Contiguous: true}, func() string {
		return cli.RenderSuccess(fmt.Sprintf("Board %d positions are contiguous", boardID))
	}, nil
}
