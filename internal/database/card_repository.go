package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/reindex"
)

const cardColumns = `id, column_id, title, description, position, created_at, updated_at`

// CardRepo handles all card-related database operations.
type CardRepo struct {
	db *sql.DB
}

// CreateCard appends a new card at the end of its column
func (r *CardRepo) CreateCard(ctx context.Context, columnID int, title, description string) (*models.Card, error) {
	var card *models.Card
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := getColumn(ctx, tx, columnID); err != nil {
			return err
		}

		var count int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM cards WHERE column_id = ?`, columnID,
		).Scan(&count); err != nil {
			return fmt.Errorf("failed to count cards: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO cards (column_id, title, description, position) VALUES (?, ?, ?, ?)`,
			columnID, title, description, count,
		)
		if err != nil {
			return fmt.Errorf("failed to insert card: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		card, err = getCard(ctx, tx, int(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// GetCard retrieves a card by its ID
func (r *CardRepo) GetCard(ctx context.Context, cardID int) (*models.Card, error) {
	return getCard(ctx, r.db, cardID)
}

// ListCardsByColumn retrieves all cards of a column, ordered by position
func (r *CardRepo) ListCardsByColumn(ctx context.Context, columnID int) (models.Cards, error) {
	return listCardsByColumn(ctx, r.db, columnID)
}

// UpdateCard updates a card's title and description
func (r *CardRepo) UpdateCard(ctx context.Context, cardID int, title, description string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE cards
		 SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		title, description, cardID,
	)
	if err != nil {
		return fmt.Errorf("failed to update card %d: %w", cardID, err)
	}
	return requireAffected(result, "card", cardID)
}

// DeleteCard removes a card and closes the gap it leaves in its column
func (r *CardRepo) DeleteCard(ctx context.Context, cardID int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		card, err := getCard(ctx, tx, cardID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, cardID); err != nil {
			return fmt.Errorf("failed to delete card %d: %w", cardID, err)
		}

		return closeGap(ctx, tx, "cards", "column_id", card.ColumnID, card.Position)
	})
}

// SaveCardPositions applies a batch of assignments as one atomic unit
func (r *CardRepo) SaveCardPositions(ctx context.Context, assignments []reindex.Assignment) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return saveCardPositions(ctx, tx, assignments)
	})
}

func getCard(ctx context.Context, q querier, cardID int) (*models.Card, error) {
	row := q.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, cardID)
	card, err := scanCard(row)
	if err != nil {
		return nil, notFound(err, "card", cardID)
	}
	return card, nil
}

func listCardsByColumn(ctx context.Context, q querier, columnID int) (models.Cards, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE column_id = ? ORDER BY position`,
		columnID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying cards for column %d: %w", columnID, err)
	}
	defer rows.Close()

	cards := models.Cards{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card rows: %w", err)
	}
	return cards, nil
}

// saveCardPositions writes the assignments in two passes. The first parks every
// affected card on a distinct negative position in its new column, the second
// writes the final positions. Cards not in the batch keep their positions, which
// never collide with the final ones because the batch is a valid reindex.
func saveCardPositions(ctx context.Context, tx *sql.Tx, assignments []reindex.Assignment) error {
	for i, a := range assignments {
		result, err := tx.ExecContext(ctx,
			`UPDATE cards SET column_id = ?, position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			a.ColumnID, -(i + 1), a.CardID,
		)
		if err != nil {
			return fmt.Errorf("failed to park card %d: %w", a.CardID, err)
		}
		if err := requireAffected(result, "card", a.CardID); err != nil {
			return err
		}
	}

	for _, a := range assignments {
		if _, err := tx.ExecContext(ctx,
			`UPDATE cards SET position = ? WHERE id = ?`,
			a.Position, a.CardID,
		); err != nil {
			return fmt.Errorf("failed to set card %d position: %w", a.CardID, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	card := &models.Card{}
	var description sql.NullString
	if err := row.Scan(
		&card.ID, &card.ColumnID, &card.Title, &description,
		&card.Position, &card.CreatedAt, &card.UpdatedAt,
	); err != nil {
		return nil, err
	}
	card.Description = NullStringToString(description)
	return card, nil
}

// requireAffected reports models.ErrNotFound when an update touched no row
func requireAffected(result sql.Result, entity string, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, models.ErrNotFound)
	}
	return nil
}
