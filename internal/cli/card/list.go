package card

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
)

// ListCmd returns the card list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the cards of a column",
		RunE:  cli.Command(runList),
	}

	cmd.Flags().Int("column", 0, "Column ID (required)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	columnID, err := cli.RequireID(cmd, "column")
	if err != nil {
		return nil, nil, err
	}

	cards, err := c.App.CardService.ListCards(ctx, columnID)
	if err != nil {
		return nil, nil, err
	}

	return cards, func() string { return cli.RenderCardList(cards) }, nil
}
