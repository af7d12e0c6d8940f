package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/lanes/internal/models"
)

// BoardRepo handles all board-related database operations.
type BoardRepo struct {
	db *sql.DB
}

// CreateBoard creates a board and its initial columns in one transaction
func (r *BoardRepo) CreateBoard(ctx context.Context, title string, columnTitles []string) (*models.Board, error) {
	var board *models.Board
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `INSERT INTO boards (title) VALUES (?)`, title)
		if err != nil {
			return fmt.Errorf("failed to insert board: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		for _, colTitle := range columnTitles {
			if _, err := appendColumn(ctx, tx, int(id), colTitle); err != nil {
				return err
			}
		}

		board, err = getBoard(ctx, tx, int(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// GetBoard retrieves a board by its ID
func (r *BoardRepo) GetBoard(ctx context.Context, boardID int) (*models.Board, error) {
	return getBoard(ctx, r.db, boardID)
}

// ListBoards retrieves all boards ordered by ID
func (r *BoardRepo) ListBoards(ctx context.Context) ([]*models.Board, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, created_at FROM boards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying boards: %w", err)
	}
	defer rows.Close()

	boards := []*models.Board{}
	for rows.Next() {
		b := &models.Board{}
		if err := rows.Scan(&b.ID, &b.Title, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning board row: %w", err)
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// UpdateBoardTitle renames a board
func (r *BoardRepo) UpdateBoardTitle(ctx context.Context, boardID int, title string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE boards SET title = ? WHERE id = ?`, title, boardID)
	if err != nil {
		return fmt.Errorf("failed to update board %d: %w", boardID, err)
	}
	return requireAffected(result, "board", boardID)
}

// DeleteBoard removes a board with its columns and cards, children first
func (r *BoardRepo) DeleteBoard(ctx context.Context, boardID int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := getBoard(ctx, tx, boardID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM cards WHERE column_id IN (SELECT id FROM columns WHERE board_id = ?)`,
			boardID,
		); err != nil {
			return fmt.Errorf("failed to delete cards of board %d: %w", boardID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM columns WHERE board_id = ?`, boardID); err != nil {
			return fmt.Errorf("failed to delete columns of board %d: %w", boardID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, boardID); err != nil {
			return fmt.Errorf("failed to delete board %d: %w", boardID, err)
		}
		return nil
	})
}

// GetBoardSnapshot reads a board with its ordered columns and cards from one
// consistent transaction.
func (r *BoardRepo) GetBoardSnapshot(ctx context.Context, boardID int) (*models.BoardSnapshot, error) {
	var snap *models.BoardSnapshot
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		snap, err = boardSnapshot(ctx, tx, boardID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// CheckIntegrity verifies that column positions of the board and card positions
// of each column are contiguous from 0.
func (r *BoardRepo) CheckIntegrity(ctx context.Context, boardID int) error {
	snap, err := r.GetBoardSnapshot(ctx, boardID)
	if err != nil {
		return err
	}

	colPositions := make([]int, len(snap.Columns))
	for i, col := range snap.Columns {
		colPositions[i] = col.Position
		if err := models.CheckContiguous(col.Cards.Positions()); err != nil {
			return fmt.Errorf("column %d: %w", col.ID, err)
		}
	}
	if err := models.CheckContiguous(colPositions); err != nil {
		return fmt.Errorf("board %d: %w", boardID, err)
	}
	return nil
}

func getBoard(ctx context.Context, q querier, boardID int) (*models.Board, error) {
	board := &models.Board{}
	err := q.QueryRowContext(ctx,
		`SELECT id, title, created_at FROM boards WHERE id = ?`,
		boardID,
	).Scan(&board.ID, &board.Title, &board.CreatedAt)
	if err != nil {
		return nil, notFound(err, "board", boardID)
	}
	return board, nil
}

func boardSnapshot(ctx context.Context, q querier, boardID int) (*models.BoardSnapshot, error) {
	board, err := getBoard(ctx, q, boardID)
	if err != nil {
		return nil, err
	}
	columns, err := listColumnsByBoard(ctx, q, boardID)
	if err != nil {
		return nil, err
	}

	snap := &models.BoardSnapshot{
		Board:   *board,
		Columns: make([]models.ColumnSnapshot, 0, len(columns)),
	}
	for _, col := range columns {
		cards, err := listCardsByColumn(ctx, q, col.ID)
		if err != nil {
			return nil, err
		}
		snap.Columns = append(snap.Columns, models.ColumnSnapshot{Column: *col, Cards: cards})
	}
	return snap, nil
}
