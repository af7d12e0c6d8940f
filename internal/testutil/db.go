package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/lanes/internal/database"
)

// SetupTestDB opens a migrated sqlite database in the test's temp dir.
// A file database is used because the connection pool would give every
// connection its own :memory: database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lanes-test.db")
	db, err := database.Open(context.Background(), path, database.DefaultBusyTimeout)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestBoard creates a board with the given columns and returns the board
// ID and column IDs in position order. No titles means Todo, In Progress, Done.
func CreateTestBoard(t *testing.T, db *sql.DB, title string, columnTitles ...string) (int, []int) {
	t.Helper()
	if len(columnTitles) == 0 {
		columnTitles = []string{"Todo", "In Progress", "Done"}
	}

	ctx := context.Background()
	result, err := db.ExecContext(ctx, "INSERT INTO boards (title) VALUES (?)", title)
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}
	boardID, _ := result.LastInsertId()

	columnIDs := make([]int, len(columnTitles))
	for i, name := range columnTitles {
		columnIDs[i] = CreateTestColumn(t, db, int(boardID), name)
	}
	return int(boardID), columnIDs
}

// CreateTestColumn appends a column to a board and returns its ID
func CreateTestColumn(t *testing.T, db *sql.DB, boardID int, title string) int {
	t.Helper()
	ctx := context.Background()

	var next int
	if err := db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), -1) + 1 FROM columns WHERE board_id = ?", boardID,
	).Scan(&next); err != nil {
		t.Fatalf("Failed to get next column position: %v", err)
	}

	result, err := db.ExecContext(ctx,
		"INSERT INTO columns (board_id, title, position) VALUES (?, ?, ?)", boardID, title, next)
	if err != nil {
		t.Fatalf("Failed to create test column: %v", err)
	}
	columnID, _ := result.LastInsertId()
	return int(columnID)
}

// CreateTestCard appends a card to a column and returns its ID
func CreateTestCard(t *testing.T, db *sql.DB, columnID int, title string) int {
	t.Helper()
	ctx := context.Background()

	var next int
	if err := db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), -1) + 1 FROM cards WHERE column_id = ?", columnID,
	).Scan(&next); err != nil {
		t.Fatalf("Failed to get next card position: %v", err)
	}

	result, err := db.ExecContext(ctx,
		"INSERT INTO cards (column_id, title, position) VALUES (?, ?, ?)", columnID, title, next)
	if err != nil {
		t.Fatalf("Failed to create test card: %v", err)
	}
	cardID, _ := result.LastInsertId()
	return int(cardID)
}

// CreateTestCards appends one card per title and returns their IDs in order
func CreateTestCards(t *testing.T, db *sql.DB, columnID int, titles ...string) []int {
	t.Helper()
	ids := make([]int, len(titles))
	for i, title := range titles {
		ids[i] = CreateTestCard(t, db, columnID, title)
	}
	return ids
}

// CardOrder returns the card IDs of a column in position order
func CardOrder(t *testing.T, db *sql.DB, columnID int) []int {
	t.Helper()
	rows, err := db.QueryContext(context.Background(),
		"SELECT id FROM cards WHERE column_id = ? ORDER BY position", columnID)
	if err != nil {
		t.Fatalf("Failed to query card order: %v", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("Failed to scan card id: %v", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to iterate cards: %v", err)
	}
	return ids
}

// CardPositions returns the positions of a column's cards in ascending order
func CardPositions(t *testing.T, db *sql.DB, columnID int) []int {
	t.Helper()
	rows, err := db.QueryContext(context.Background(),
		"SELECT position FROM cards WHERE column_id = ? ORDER BY position", columnID)
	if err != nil {
		t.Fatalf("Failed to query card positions: %v", err)
	}
	defer func() { _ = rows.Close() }()

	var positions []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			t.Fatalf("Failed to scan position: %v", err)
		}
		positions = append(positions, p)
	}
	return positions
}

// DiscardLogger returns a logger that drops every record
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
