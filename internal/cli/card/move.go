package card

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	cardservice "github.com/thenoetrevino/lanes/internal/services/card"
)

// MoveCmd returns the card move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a card to a position in a column",
		Long: `Move a card to --index of --column. The column may be the card's own
column (reorder) or another column of the same board. Indexes past the end
are clamped to the end; negative indexes are clamped to the top.

Examples:
  # Move card 7 to the top of column 3
  lanes card move --id=7 --column=3 --index=0

  # Move card 7 to the bottom of its current column
  lanes card move --id=7 --column=2 --index=999
`,
		RunE: cli.Command(runMove),
	}

	cmd.Flags().Int("id", 0, "Card ID (required)")
	cmd.Flags().Int("column", 0, "Destination column ID (required)")
	cmd.Flags().Int("index", 0, "Destination index, 0 is the top")
	for _, name := range []string{"id", "column"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	cardID, err := cli.RequireID(cmd, "id")
	if err != nil {
		return nil, nil, err
	}
	columnID, err := cli.RequireID(cmd, "column")
	if err != nil {
		return nil, nil, err
	}
	index, _ := cmd.Flags().GetInt("index")

	if err := c.App.CardService.MoveCard(ctx, cardservice.MoveCardRequest{
		CardID:              cardID,
		DestinationColumnID: columnID,
		DestinationIndex:    index,
	}); err != nil {
		return nil, nil, err
	}

	card, err := c.App.CardService.GetCard(ctx, cardID)
	if err != nil {
		return nil, nil, err
	}

	return card, func() string {
		return cli.RenderSuccess(fmt.Sprintf("Card '%s' is now at position %d of column %d", card.Title, card.Position, card.ColumnID))
	}, nil
}
