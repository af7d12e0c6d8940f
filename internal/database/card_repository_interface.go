package database

import (
	"context"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/reindex"
)

// CardReader defines read operations for cards.
type CardReader interface {
	GetCard(ctx context.Context, cardID int) (*models.Card, error)
	ListCardsByColumn(ctx context.Context, columnID int) (models.Cards, error)
}

// CardWriter defines write operations for cards.
type CardWriter interface {
	CreateCard(ctx context.Context, columnID int, title, description string) (*models.Card, error)
	UpdateCard(ctx context.Context, cardID int, title, description string) error
	DeleteCard(ctx context.Context, cardID int) error
	SaveCardPositions(ctx context.Context, assignments []reindex.Assignment) error
}

// CardRepository combines all card-related operations.
type CardRepository interface {
	CardReader
	CardWriter
}
