package column

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lanescli "github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/testutil"
	"github.com/thenoetrevino/lanes/internal/testutil/cli"
)

func TestCreateColumn_Integration(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	boardID, _ := cli.CreateTestBoard(t, db, "Roadmap")

	t.Run("JSON output", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--title", "Review",
			"--board", fmt.Sprintf("%d", boardID),
			"--json",
		})
		require.NoError(t, err)

		data := cli.JSONData(t, output)
		assert.Equal(t, "Review", data["title"])
		assert.Equal(t, float64(boardID), data["boardId"])
		assert.Equal(t, float64(3), data["position"])
	})

	t.Run("quiet output prints the ID", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--title", "Archive",
			"--board", fmt.Sprintf("%d", boardID),
			"--quiet",
		})
		require.NoError(t, err)
		assert.Regexp(t, `^\d+\n$`, output)
	})

	t.Run("board from environment", func(t *testing.T) {
		t.Setenv(lanescli.EnvBoard, fmt.Sprintf("%d", boardID))
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--title", "Blocked"})
		require.NoError(t, err)
		assert.Contains(t, output, "Column 'Blocked' created")
	})

	t.Run("unknown board", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--title", "X", "--board", "999", "--json"})
		require.Error(t, err)
		assert.Equal(t, lanescli.ExitNotFound, lanescli.ExitCodeFor(err))
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--title", "  ", "--board", fmt.Sprintf("%d", boardID), "--json"})
		require.Error(t, err)
		assert.Equal(t, lanescli.ExitValidation, lanescli.ExitCodeFor(err))
	})

	t.Run("missing board", func(t *testing.T) {
		t.Setenv(lanescli.EnvBoard, "")
		_, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--title", "X", "--quiet"})
		require.Error(t, err)
		assert.Equal(t, lanescli.ExitUsage, lanescli.ExitCodeFor(err))
	})
}

func TestListColumns_Integration(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	boardID, columnIDs := cli.CreateTestBoard(t, db, "Roadmap")

	output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--board", fmt.Sprintf("%d", boardID), "--quiet"})
	require.NoError(t, err)

	want := make([]string, len(columnIDs))
	for i, id := range columnIDs {
		want[i] = fmt.Sprintf("%d", id)
	}
	assert.Equal(t, strings.Join(want, "\n")+"\n", output)

	output, err = cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--board", fmt.Sprintf("%d", boardID)})
	require.NoError(t, err)
	for _, title := range []string{"Todo", "In Progress", "Done"} {
		assert.Contains(t, output, title)
	}
}

func TestRenameColumn_Integration(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	_, columnIDs := cli.CreateTestBoard(t, db, "Roadmap")

	output, err := cli.ExecuteCLICommand(t, app, RenameCmd(), []string{
		"--id", fmt.Sprintf("%d", columnIDs[2]),
		"--title", "Shipped",
		"--json",
	})
	require.NoError(t, err)
	data := cli.JSONData(t, output)
	assert.Equal(t, "Shipped", data["title"])
	assert.Equal(t, float64(2), data["position"])

	_, err = cli.ExecuteCLICommand(t, app, RenameCmd(), []string{"--id", "0", "--title", "X", "--quiet"})
	require.Error(t, err)
	assert.Equal(t, lanescli.ExitUsage, lanescli.ExitCodeFor(err))
}

func TestDeleteColumn_Integration(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	boardID, columnIDs := cli.CreateTestBoard(t, db, "Roadmap")
	cli.CreateTestCards(t, db, columnIDs[0], "A", "B")

	t.Run("declined confirmation keeps the column", func(t *testing.T) {
		cmd := DeleteCmd()
		cmd.SetIn(strings.NewReader("n\n"))
		_, err := cli.ExecuteCLICommand(t, app, cmd, []string{"--id", fmt.Sprintf("%d", columnIDs[0])})
		require.ErrorIs(t, err, lanescli.ErrAborted)
		assert.Len(t, testutil.CardOrder(t, db, columnIDs[0]), 2)
	})

	t.Run("force deletes column and cards", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", fmt.Sprintf("%d", columnIDs[0]), "--force"})
		require.NoError(t, err)
		assert.Contains(t, output, "Column 'Todo' deleted")
		assert.Empty(t, testutil.CardOrder(t, db, columnIDs[0]))

		columns, err := app.ColumnService.ListColumns(t.Context(), boardID)
		require.NoError(t, err)
		require.Len(t, columns, 2)
		assert.Equal(t, 0, columns[0].Position)
		assert.Equal(t, 1, columns[1].Position)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", "999", "--json"})
		require.Error(t, err)
		assert.Equal(t, lanescli.ExitNotFound, lanescli.ExitCodeFor(err))
	})
}
