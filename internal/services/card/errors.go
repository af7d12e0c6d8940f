package card

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/lanes/internal/models"
)

// Card-related errors
var (
	// Validation errors
	ErrEmptyTitle         = fmt.Errorf("card title cannot be empty: %w", models.ErrValidation)
	ErrTitleTooLong       = fmt.Errorf("card title cannot exceed %d characters: %w", models.MaxTitleLength, models.ErrValidation)
	ErrDescriptionTooLong = fmt.Errorf("card description cannot exceed %d characters: %w", models.MaxDescriptionLength, models.ErrValidation)
	ErrInvalidCardID      = fmt.Errorf("invalid card ID: %w", models.ErrValidation)
	ErrInvalidColumnID    = fmt.Errorf("invalid column ID: %w", models.ErrValidation)
	ErrNothingToUpdate    = fmt.Errorf("no fields to update: %w", models.ErrValidation)

	// Lookup errors
	ErrCardNotFound   = fmt.Errorf("card %w", models.ErrNotFound)
	ErrColumnNotFound = fmt.Errorf("column %w", models.ErrNotFound)

	// ErrCrossBoardMove indicates a destination column on another board than the card's column
	ErrCrossBoardMove = fmt.Errorf("destination column belongs to another board: %w", models.ErrInvalidTarget)
)

// classify maps store errors onto the card error set. Lookup failures become
// ErrCardNotFound/ErrColumnNotFound, anything else the store reports is a
// persistence failure.
func classify(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound):
		return fmt.Errorf("%w: %v", notFound, err)
	default:
		return persistence(err)
	}
}

// persistence wraps err as a models.ErrPersistence unless it is already classified
func persistence(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{models.ErrNotFound, models.ErrInvalidTarget, models.ErrValidation, models.ErrPersistence} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", models.ErrPersistence, err)
}
