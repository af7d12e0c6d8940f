package card

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
)

// DeleteCmd returns the card delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a card",
		Long: `Delete a card (requires confirmation unless --force, --json or --quiet).
Cards below it in the column move up one position.
`,
		RunE: cli.Command(runDelete),
	}

	cmd.Flags().Int("id", 0, "Card ID (required)")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	cardID, err := cli.RequireID(cmd, "id")
	if err != nil {
		return nil, nil, err
	}

	card, err := c.App.CardService.GetCard(ctx, cardID)
	if err != nil {
		return nil, nil, err
	}
	if err := cli.Confirm(cmd, fmt.Sprintf("Delete card '%s'?", card.Title)); err != nil {
		return nil, nil, err
	}

	if err := c.App.CardService.DeleteCard(ctx, cardID); err != nil {
		return nil, nil, err
	}

	return cli.Deleted{ID: cardID, Deleted: true, Kind: "card"}, func() string {
		return cli.RenderSuccess(fmt.Sprintf("Card '%s' deleted", card.Title))
	}, nil
}
