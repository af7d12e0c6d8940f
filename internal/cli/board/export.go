package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
)

// ExportResult is where a board snapshot was uploaded
type ExportResult struct {
	BoardID int    `json:"boardId"`
	Key     string `json:"key"`
}

// GetID returns the exported board's ID
func (r ExportResult) GetID() int { return r.BoardID }

// ExportCmd returns the board export subcommand
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload a board snapshot to S3",
		Long: `Upload the board snapshot as JSON to the bucket configured in the
s3 section of the config file.

Examples:
  lanes board export --board=1
`,
		RunE: cli.Command(runExport),
	}

	cmd.Flags().Int("board", 0, "Board ID (uses LANES_BOARD env var if not specified)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runExport(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	boardID, err := cli.BoardFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}

	key, err := c.App.BoardService.ExportBoard(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}

	return ExportResult{BoardID: boardID, Key: key}, func() string {
		return cli.RenderSuccess(fmt.Sprintf("Board %d exported to %s", boardID, key))
	}, nil
}
