package cli

import (
	"database/sql"
	"testing"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/testutil"
)

// SetupCLITest creates a test DB and returns both the DB and App instance.
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil.
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	// Events go to the Nop publisher; publishing is tested in the events package
	appInstance := app.New(database.NewRepository(db), app.WithLogger(testutil.DiscardLogger()))

	return db, appInstance
}

// CreateTestBoard wraps testutil.CreateTestBoard for CLI tests.
// No column titles creates Todo, In Progress, Done.
func CreateTestBoard(t *testing.T, db *sql.DB, title string, columnTitles ...string) (int, []int) {
	t.Helper()
	return testutil.CreateTestBoard(t, db, title, columnTitles...)
}

// CreateTestCards wraps testutil.CreateTestCards for CLI tests
func CreateTestCards(t *testing.T, db *sql.DB, columnID int, titles ...string) []int {
	t.Helper()
	return testutil.CreateTestCards(t, db, columnID, titles...)
}
