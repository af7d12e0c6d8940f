package database

import (
	"context"
	"database/sql"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/reindex"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*BoardRepo
	*ColumnRepo
	*CardRepo
	db *sql.DB
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		BoardRepo:  &BoardRepo{db: db},
		ColumnRepo: &ColumnRepo{db: db},
		CardRepo:   &CardRepo{db: db},
		db:         db,
	}
}

// WithinTx implements Transactor
func (r *Repository) WithinTx(ctx context.Context, fn func(MoveStore) error) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&txStore{tx: tx})
	})
}

// txStore is a MoveStore bound to one transaction
type txStore struct {
	tx *sql.Tx
}

func (s *txStore) GetCard(ctx context.Context, cardID int) (*models.Card, error) {
	return getCard(ctx, s.tx, cardID)
}

func (s *txStore) GetColumn(ctx context.Context, columnID int) (*models.Column, error) {
	return getColumn(ctx, s.tx, columnID)
}

func (s *txStore) ListCardsByColumn(ctx context.Context, columnID int) (models.Cards, error) {
	return listCardsByColumn(ctx, s.tx, columnID)
}

func (s *txStore) SaveCardPositions(ctx context.Context, assignments []reindex.Assignment) error {
	return saveCardPositions(ctx, s.tx, assignments)
}
