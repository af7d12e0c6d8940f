package database

import (
	"context"

	"github.com/thenoetrevino/lanes/internal/models"
)

// BoardReader defines read operations for boards.
type BoardReader interface {
	GetBoard(ctx context.Context, boardID int) (*models.Board, error)
	ListBoards(ctx context.Context) ([]*models.Board, error)
	GetBoardSnapshot(ctx context.Context, boardID int) (*models.BoardSnapshot, error)
	CheckIntegrity(ctx context.Context, boardID int) error
}

// BoardWriter defines write operations for boards.
type BoardWriter interface {
	CreateBoard(ctx context.Context, title string, columnTitles []string) (*models.Board, error)
	UpdateBoardTitle(ctx context.Context, boardID int, title string) error
	DeleteBoard(ctx context.Context, boardID int) error
}

// BoardRepository combines all board-related operations.
type BoardRepository interface {
	BoardReader
	BoardWriter
}
