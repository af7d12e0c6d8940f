package card

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/cli"
	cardservice "github.com/thenoetrevino/lanes/internal/services/card"
)

// CreateCmd returns the card create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new card",
		Long: `Create a card at the bottom of a column.

Examples:
  lanes card create --column=2 --title="Fix login redirect"
  lanes card create --column=2 --title="Write docs" --description="Cover the **move** API"
  CARD_ID=$(lanes card create --column=2 --title="Ship" --quiet)
`,
		RunE: cli.Command(runCreate),
	}

	cmd.Flags().Int("column", 0, "Column ID (required)")
	cmd.Flags().String("title", "", "Card title (required)")
	for _, name := range []string{"column", "title"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}
	cmd.Flags().String("description", "", "Card description (markdown)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, cmd *cobra.Command, _ []string) (any, func() string, error) {
	columnID, err := cli.RequireID(cmd, "column")
	if err != nil {
		return nil, nil, err
	}
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")

	card, err := c.App.CardService.CreateCard(ctx, cardservice.CreateCardRequest{
		ColumnID:    columnID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, nil, err
	}

	return card, func() string {
		return cli.RenderSuccess(fmt.Sprintf("Card '%s' created (ID: %d, column %d, position %d)", card.Title, card.ID, card.ColumnID, card.Position))
	}, nil
}
