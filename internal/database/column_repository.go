package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/lanes/internal/models"
)

// ColumnRepo handles all column-related database operations.
type ColumnRepo struct {
	db *sql.DB
}

// CreateColumn appends a new column at the end of the board
func (r *ColumnRepo) CreateColumn(ctx context.Context, boardID int, title string) (*models.Column, error) {
	var column *models.Column
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := getBoard(ctx, tx, boardID); err != nil {
			return err
		}
		var err error
		column, err = appendColumn(ctx, tx, boardID, title)
		return err
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

// GetColumn retrieves a column by its ID
func (r *ColumnRepo) GetColumn(ctx context.Context, columnID int) (*models.Column, error) {
	return getColumn(ctx, r.db, columnID)
}

// ListColumnsByBoard retrieves all columns of a board, ordered by position
func (r *ColumnRepo) ListColumnsByBoard(ctx context.Context, boardID int) ([]*models.Column, error) {
	return listColumnsByBoard(ctx, r.db, boardID)
}

// UpdateColumnTitle updates the title of an existing column
func (r *ColumnRepo) UpdateColumnTitle(ctx context.Context, columnID int, title string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE columns SET title = ? WHERE id = ?`, title, columnID)
	if err != nil {
		return fmt.Errorf("failed to update column %d: %w", columnID, err)
	}
	return requireAffected(result, "column", columnID)
}

// DeleteColumn removes a column and all its cards, then closes the gap in the
// board's column positions. Children go first, all in one transaction.
func (r *ColumnRepo) DeleteColumn(ctx context.Context, columnID int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		column, err := getColumn(ctx, tx, columnID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE column_id = ?`, columnID); err != nil {
			return fmt.Errorf("failed to delete cards of column %d: %w", columnID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, columnID); err != nil {
			return fmt.Errorf("failed to delete column %d: %w", columnID, err)
		}

		return closeGap(ctx, tx, "columns", "board_id", column.BoardID, column.Position)
	})
}

func appendColumn(ctx context.Context, tx *sql.Tx, boardID int, title string) (*models.Column, error) {
	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM columns WHERE board_id = ?`, boardID,
	).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count columns: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO columns (board_id, title, position) VALUES (?, ?, ?)`,
		boardID, title, count,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert column: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Column{
		ID:       int(id),
		BoardID:  boardID,
		Title:    title,
		Position: count,
	}, nil
}

func getColumn(ctx context.Context, q querier, columnID int) (*models.Column, error) {
	column := &models.Column{}
	err := q.QueryRowContext(ctx,
		`SELECT id, board_id, title, position FROM columns WHERE id = ?`,
		columnID,
	).Scan(&column.ID, &column.BoardID, &column.Title, &column.Position)
	if err != nil {
		return nil, notFound(err, "column", columnID)
	}
	return column, nil
}

func listColumnsByBoard(ctx context.Context, q querier, boardID int) ([]*models.Column, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, board_id, title, position FROM columns WHERE board_id = ? ORDER BY position`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying columns for board %d: %w", boardID, err)
	}
	defer rows.Close()

	columns := []*models.Column{}
	for rows.Next() {
		col := &models.Column{}
		if err := rows.Scan(&col.ID, &col.BoardID, &col.Title, &col.Position); err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column rows: %w", err)
	}
	return columns, nil
}
