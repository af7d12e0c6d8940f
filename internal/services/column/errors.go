package column

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/lanes/internal/models"
)

// Column-related errors
var (
	// Validation errors
	ErrEmptyTitle      = fmt.Errorf("column title cannot be empty: %w", models.ErrValidation)
	ErrTitleTooLong    = fmt.Errorf("column title cannot exceed %d characters: %w", models.MaxTitleLength, models.ErrValidation)
	ErrInvalidColumnID = fmt.Errorf("invalid column ID: %w", models.ErrValidation)
	ErrInvalidBoardID  = fmt.Errorf("invalid board ID: %w", models.ErrValidation)

	// Lookup errors
	ErrColumnNotFound = fmt.Errorf("column %w", models.ErrNotFound)
	ErrBoardNotFound  = fmt.Errorf("board %w", models.ErrNotFound)
)

// classify maps store errors onto the column error set
func classify(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound):
		return fmt.Errorf("%w: %v", notFound, err)
	default:
		return fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}
}
