package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/models"
)

// EnvBoard supplies --board when the flag is not given
const EnvBoard = "LANES_BOARD"

// BoardFromFlags reads --board, falling back to $LANES_BOARD
func BoardFromFlags(cmd *cobra.Command) (int, error) {
	if cmd.Flags().Changed("board") {
		return RequireID(cmd, "board")
	}
	if env := os.Getenv(EnvBoard); env != "" {
		id, err := strconv.Atoi(env)
		if err != nil || id <= 0 {
			return 0, &ExitCodeError{Code: ExitUsage, Err: fmt.Errorf("%s must be a positive board ID, got %q", EnvBoard, env)}
		}
		return id, nil
	}
	return 0, &ExitCodeError{Code: ExitUsage, Err: errors.New("--board is required (or set " + EnvBoard + ")")}
}

// ErrAborted is returned when the user declines a confirmation prompt
var ErrAborted = errors.New("aborted")

// Confirm asks for a y/N answer on the command's input unless --force,
// --quiet or --json is set.
func Confirm(cmd *cobra.Command, prompt string) error {
	force, _ := cmd.Flags().GetBool("force")
	f := Formatter(cmd)
	if force || f.Quiet || f.JSON {
		return nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return &ExitCodeError{Code: ExitError, Err: ErrAborted}
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return &ExitCodeError{Code: ExitError, Err: ErrAborted}
	}
}

// ColumnList adapts a column slice for quiet output
type ColumnList []*models.Column

// IDs returns the column IDs in order
func (l ColumnList) IDs() []int {
	ids := make([]int, len(l))
	for i, c := range l {
		ids[i] = c.ID
	}
	return ids
}

// BoardList adapts a board slice for quiet output
type BoardList []*models.Board

// IDs returns the board IDs in order
func (l BoardList) IDs() []int {
	ids := make([]int, len(l))
	for i, b := range l {
		ids[i] = b.ID
	}
	return ids
}

// Deleted is the result of a delete command
type Deleted struct {
	ID      int    `json:"id"`
	Deleted bool   `json:"deleted"`
	Kind    string `json:"kind"`
}

// GetID returns the deleted entity's ID
func (d Deleted) GetID() int { return d.ID }
