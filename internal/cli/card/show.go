package card

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
)

// ShowCmd returns the card show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a card",
		RunE:  cli.Command(runShow),
	}

	cmd.Flags().Int("id", 0, "Card ID (required)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	cardID, err := cli.RequireID(cmd, "id")
	if err != nil {
		return nil, nil, err
	}

	card, err := c.App.CardService.GetCard(ctx, cardID)
	if err != nil {
		return nil, nil, err
	}

	return card, func() string { return cli.RenderCardDetail(card) }, nil
}
