package database

import (
	"context"
	"database/sql"
)

// Positions are unique per parent. Rewrites that shuffle several siblings first
// park them on negative positions (see saveCardPositions and closeGap).
//
// Foreign keys deliberately omit ON DELETE CASCADE: deleting a parent is an
// explicit delete-children-then-parent sequence inside one transaction.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS boards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS columns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		board_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		position INTEGER NOT NULL,
		FOREIGN KEY (board_id) REFERENCES boards(id),
		UNIQUE(board_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		column_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		position INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (column_id) REFERENCES columns(id),
		UNIQUE(column_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_column ON cards(column_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_columns_board ON columns(board_id, position)`,
}

// runMigrations creates the database schema if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	return withTx(ctx, db, func(tx *sql.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
