package card

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	cardservice "github.com/thenoetrevino/lanes/internal/services/card"
)

// UpdateCmd returns the card update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a card's title or description",
		Long: `Update a card's title and/or description. The card keeps its column and position.

Examples:
  lanes card update --id=4 --title="Fix login redirect loop"
  lanes card update --id=4 --description=""
`,
		RunE: cli.Command(runUpdate),
	}

	cmd.Flags().Int("id", 0, "Card ID (required)")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description (markdown)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	cardID, err := cli.RequireID(cmd, "id")
	if err != nil {
		return nil, nil, err
	}

	req := cardservice.UpdateCardRequest{CardID: cardID}
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		req.Title = &title
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		req.Description = &description
	}
	if req.Title == nil && req.Description == nil {
		return nil, nil, &cli.ExitCodeError{Code: cli.ExitUsage, Err: errors.New("at least one of --title or --description is required")}
	}

	card, err := c.App.CardService.UpdateCard(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	return card, func() string {
		return cli.RenderSuccess(fmt.Sprintf("Card %d updated", card.ID))
	}, nil
}
