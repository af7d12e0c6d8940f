package models

// ============================================================================
// FIELD LIMITS
// ============================================================================

const (
	// MaxTitleLength bounds board, column and card titles
	MaxTitleLength = 255

	// MaxDescriptionLength bounds card descriptions
	MaxDescriptionLength = 2000
)

// ============================================================================
// DEFAULT COLUMNS
// ============================================================================

// DefaultColumnTitles are created for a new board when no titles are given
var DefaultColumnTitles = []string{"Todo", "In Progress", "Done"}
