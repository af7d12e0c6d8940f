package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/lanes/internal/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// notFound converts sql.ErrNoRows into a wrapped models.ErrNotFound
func notFound(err error, entity string, id int) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, id, models.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %d: %w", entity, id, err)
}

// closeGap moves every row of a parent whose position is above `after`
// onto negative positions, then brings them back one slot lower. Used to close
// the gap left by a deleted row without tripping the UNIQUE(parent, position)
// constraint mid-update.
func closeGap(ctx context.Context, q querier, table, parentColumn string, parentID, after int) error {
	park := fmt.Sprintf(`UPDATE %s SET position = -position WHERE %s = ? AND position > ?`, table, parentColumn)
	if _, err := q.ExecContext(ctx, park, parentID, after); err != nil {
		return fmt.Errorf("failed to park %s positions: %w", table, err)
	}

	restore := fmt.Sprintf(`UPDATE %s SET position = -position - 1 WHERE %s = ? AND position < 0`, table, parentColumn)
	if _, err := q.ExecContext(ctx, restore, parentID); err != nil {
		return fmt.Errorf("failed to restore %s positions: %w", table, err)
	}
	return nil
}

// NullStringToString converts sql.NullString to string.
// Returns empty string if the value is not valid.
func NullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
