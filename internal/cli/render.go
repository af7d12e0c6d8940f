package cli

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/thenoetrevino/lanes/internal/cli/styles"
	"github.com/thenoetrevino/lanes/internal/models"
)

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderMarkdown renders a card description, falling back to the raw text
func RenderMarkdown(text string, width int) string {
	if text == "" {
		return styles.SubtitleStyle.Italic(true).Render("No description")
	}
	renderer, err := getRenderer(width)
	if err != nil {
		return text
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(rendered)
}

// RenderBoard draws a snapshot as side-by-side columns
func RenderBoard(snap *models.BoardSnapshot) string {
	header := styles.TitleStyle.Render(snap.Board.Title) + " " +
		styles.SubtitleStyle.Render(fmt.Sprintf("#%d  %d cards", snap.Board.ID, snap.CardCount()))

	if len(snap.Columns) == 0 {
		return header + "\n" + styles.SubtitleStyle.Render("No columns")
	}

	columns := make([]string, 0, len(snap.Columns))
	for _, col := range snap.Columns {
		var b strings.Builder
		b.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Cards))))
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("column #%d", col.ID)))
		for _, card := range col.Cards {
			b.WriteString("\n")
			b.WriteString(styles.ValueStyle.Render(fmt.Sprintf("%d. %s [#%d]", card.Position, card.Title, card.ID)))
		}
		columns = append(columns, styles.RenderColumn(b.String()))
	}

	return header + "\n" + styles.JoinColumns(columns...)
}

// RenderCardDetail draws a single card with its description
func RenderCardDetail(card *models.Card) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(card.Title))
	b.WriteString("\n\n")
	b.WriteString(styles.Field("ID", fmt.Sprintf("%d", card.ID)))
	b.WriteString("\n")
	b.WriteString(styles.Field("Column", fmt.Sprintf("%d", card.ColumnID)))
	b.WriteString("\n")
	b.WriteString(styles.Field("Position", fmt.Sprintf("%d", card.Position)))
	b.WriteString("\n")
	b.WriteString(styles.Field("Updated", card.UpdatedAt.Format("2006-01-02 15:04")))
	b.WriteString("\n")
	b.WriteString(styles.SectionStyle.Render("Description"))
	b.WriteString("\n")
	b.WriteString(RenderMarkdown(card.Description, styles.CardWidth-8))
	return styles.RenderCard(b.String())
}

// RenderCardList draws cards one per line in position order
func RenderCardList(cards models.Cards) string {
	if len(cards) == 0 {
		return styles.SubtitleStyle.Render("No cards")
	}
	lines := make([]string, len(cards))
	for i, card := range cards {
		lines[i] = fmt.Sprintf("%s %s %s",
			styles.SubtitleStyle.Render(fmt.Sprintf("%3d", card.Position)),
			styles.ValueStyle.Render(card.Title),
			styles.SubtitleStyle.Render(fmt.Sprintf("#%d", card.ID)))
	}
	return strings.Join(lines, "\n")
}

// RenderColumns draws the columns of a board in position order
func RenderColumns(columns []*models.Column) string {
	if len(columns) == 0 {
		return styles.SubtitleStyle.Render("No columns")
	}
	lines := make([]string, len(columns))
	for i, col := range columns {
		lines[i] = fmt.Sprintf("%s %s %s",
			styles.SubtitleStyle.Render(fmt.Sprintf("%3d", col.Position)),
			styles.ValueStyle.Render(col.Title),
			styles.SubtitleStyle.Render(fmt.Sprintf("#%d", col.ID)))
	}
	return strings.Join(lines, "\n")
}

// RenderBoards draws one line per board
func RenderBoards(boards []*models.Board) string {
	if len(boards) == 0 {
		return styles.SubtitleStyle.Render("No boards")
	}
	lines := make([]string, len(boards))
	for i, b := range boards {
		lines[i] = fmt.Sprintf("%s %s",
			styles.SubtitleStyle.Render(fmt.Sprintf("#%d", b.ID)),
			styles.ValueStyle.Render(b.Title))
	}
	return strings.Join(lines, "\n")
}

// RenderSuccess draws a one-line confirmation
func RenderSuccess(message string) string {
	return styles.SuccessStyle.Render("OK") + " " + message
}
