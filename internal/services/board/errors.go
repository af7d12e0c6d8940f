package board

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/lanes/internal/models"
)

// Board-related errors
var (
	// Validation errors
	ErrEmptyTitle     = fmt.Errorf("board title cannot be empty: %w", models.ErrValidation)
	ErrTitleTooLong   = fmt.Errorf("board title cannot exceed %d characters: %w", models.MaxTitleLength, models.ErrValidation)
	ErrInvalidBoardID = fmt.Errorf("invalid board ID: %w", models.ErrValidation)

	// Lookup errors
	ErrBoardNotFound = fmt.Errorf("board %w", models.ErrNotFound)

	// ErrExportDisabled indicates that no object storage is configured for exports
	ErrExportDisabled = errors.New("board export is not configured")
)

// classify maps store errors onto the board error set
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrBoardNotFound, err)
	case errors.Is(err, models.ErrValidation):
		return err
	default:
		return fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}
}
