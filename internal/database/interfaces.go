package database

import (
	"context"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/reindex"
)

// MoveStore is the persistence contract a card move runs against.
// Every call made through one MoveStore belongs to the same transaction.
type MoveStore interface {
	GetCard(ctx context.Context, cardID int) (*models.Card, error)
	GetColumn(ctx context.Context, columnID int) (*models.Column, error)
	ListCardsByColumn(ctx context.Context, columnID int) (models.Cards, error)
	SaveCardPositions(ctx context.Context, assignments []reindex.Assignment) error
}

// Transactor runs fn against a transaction-bound MoveStore. The transaction
// commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(MoveStore) error) error
}
