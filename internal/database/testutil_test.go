package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/lanes/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB opens a fresh file-backed database with the full schema
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "lanes.db"), 0)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// setupTestRepo returns a repository over a fresh database
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(setupTestDB(t))
}

// ============================================================================
// FIXTURE HELPERS
// ============================================================================

// createTestBoard creates a board with the given column titles
func createTestBoard(t *testing.T, repo *Repository, columnTitles ...string) (*models.Board, []*models.Column) {
	t.Helper()
	ctx := context.Background()

	board, err := repo.CreateBoard(ctx, "Test Board", columnTitles)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	columns, err := repo.ListColumnsByBoard(ctx, board.ID)
	if err != nil {
		t.Fatalf("Failed to list columns: %v", err)
	}
	return board, columns
}

// createTestCards appends cards with the given titles to a column and returns their IDs
func createTestCards(t *testing.T, repo *Repository, columnID int, titles ...string) []int {
	t.Helper()
	ids := make([]int, 0, len(titles))
	for _, title := range titles {
		card, err := repo.CreateCard(context.Background(), columnID, title, "")
		if err != nil {
			t.Fatalf("Failed to create card %q: %v", title, err)
		}
		ids = append(ids, card.ID)
	}
	return ids
}

// columnOrder returns the card IDs and positions of a column in position order
func columnOrder(t *testing.T, repo *Repository, columnID int) ([]int, []int) {
	t.Helper()
	cards, err := repo.ListCardsByColumn(context.Background(), columnID)
	if err != nil {
		t.Fatalf("Failed to list cards: %v", err)
	}
	return cards.IDs(), cards.Positions()
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
