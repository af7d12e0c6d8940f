package database

import (
	"context"

	"github.com/thenoetrevino/lanes/internal/models"
)

// ColumnReader defines read operations for columns.
type ColumnReader interface {
	GetColumn(ctx context.Context, columnID int) (*models.Column, error)
	ListColumnsByBoard(ctx context.Context, boardID int) ([]*models.Column, error)
}

// ColumnWriter defines write operations for columns.
type ColumnWriter interface {
	CreateColumn(ctx context.Context, boardID int, title string) (*models.Column, error)
	UpdateColumnTitle(ctx context.Context, columnID int, title string) error
	DeleteColumn(ctx context.Context, columnID int) error
}

// ColumnRepository combines all column-related operations.
type ColumnRepository interface {
	ColumnReader
	ColumnWriter
}
