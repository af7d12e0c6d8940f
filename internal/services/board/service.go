package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
)

// Exporter stores a board snapshot somewhere outside the database and
// returns where it went.
type Exporter interface {
	Export(ctx context.Context, snap *models.BoardSnapshot) (string, error)
}

// Service defines all board-related business operations
type Service interface {
	// Read operations
	ListBoards(ctx context.Context) ([]*models.Board, error)
	GetBoard(ctx context.Context, boardID int) (*models.Board, error)
	GetSnapshot(ctx context.Context, boardID int) (*models.BoardSnapshot, error)
	CheckIntegrity(ctx context.Context, boardID int) error

	// Write operations
	CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error)
	RenameBoard(ctx context.Context, boardID int, title string) error
	DeleteBoard(ctx context.Context, boardID int) error

	// ExportBoard uploads the board snapshot and returns the object key
	ExportBoard(ctx context.Context, boardID int) (string, error)
}

// CreateBoardRequest encapsulates data for creating a board.
// A nil Columns slice creates models.DefaultColumnTitles.
type CreateBoardRequest struct {
	Title   string
	Columns []string
}

// service implements Service interface
type service struct {
	repo      database.DataStore
	publisher events.Publisher
	exporter  Exporter
}

// NewService creates a new board service. exporter may be nil, in which case
// ExportBoard reports ErrExportDisabled.
func NewService(repo database.DataStore, publisher events.Publisher, exporter Exporter) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		exporter:  exporter,
	}
}

// ListBoards retrieves every board ordered by ID
func (s *service) ListBoards(ctx context.Context) ([]*models.Board, error) {
	boards, err := s.repo.ListBoards(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return boards, nil
}

// GetBoard retrieves a board by ID
func (s *service) GetBoard(ctx context.Context, boardID int) (*models.Board, error) {
	if boardID <= 0 {
		return nil, ErrInvalidBoardID
	}
	board, err := s.repo.GetBoard(ctx, boardID)
	if err != nil {
		return nil, classify(err)
	}
	return board, nil
}

// GetSnapshot retrieves a board with its ordered columns and cards
func (s *service) GetSnapshot(ctx context.Context, boardID int) (*models.BoardSnapshot, error) {
	if boardID <= 0 {
		return nil, ErrInvalidBoardID
	}
	snap, err := s.repo.GetBoardSnapshot(ctx, boardID)
	if err != nil {
		return nil, classify(err)
	}
	return snap, nil
}

// CheckIntegrity verifies the board's column and card positions are contiguous
func (s *service) CheckIntegrity(ctx context.Context, boardID int) error {
	if boardID <= 0 {
		return ErrInvalidBoardID
	}
	if err := s.repo.CheckIntegrity(ctx, boardID); err != nil {
		return classify(err)
	}
	return nil
}

// CreateBoard creates a board together with its initial columns
func (s *service) CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error) {
	title := strings.TrimSpace(req.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	columns := req.Columns
	if columns == nil {
		columns = models.DefaultColumnTitles
	}
	trimmed := make([]string, len(columns))
	for i, c := range columns {
		trimmed[i] = strings.TrimSpace(c)
		if err := validateTitle(trimmed[i]); err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
	}

	board, err := s.repo.CreateBoard(ctx, title, trimmed)
	if err != nil {
		return nil, classify(err)
	}

	s.publishBoardEvent(ctx, events.EventBoardCreated, board.ID)
	return board, nil
}

// RenameBoard changes a board's title
func (s *service) RenameBoard(ctx context.Context, boardID int, title string) error {
	if boardID <= 0 {
		return ErrInvalidBoardID
	}
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return err
	}
	return classify(s.repo.UpdateBoardTitle(ctx, boardID, title))
}

// DeleteBoard removes a board, its columns and their cards
func (s *service) DeleteBoard(ctx context.Context, boardID int) error {
	if boardID <= 0 {
		return ErrInvalidBoardID
	}
	if err := s.repo.DeleteBoard(ctx, boardID); err != nil {
		return classify(err)
	}

	s.publishBoardEvent(ctx, events.EventBoardDeleted, boardID)
	return nil
}

// ExportBoard uploads the board snapshot through the configured exporter
func (s *service) ExportBoard(ctx context.Context, boardID int) (string, error) {
	if s.exporter == nil {
		return "", ErrExportDisabled
	}
	snap, err := s.GetSnapshot(ctx, boardID)
	if err != nil {
		return "", err
	}

	key, err := s.exporter.Export(ctx, snap)
	if err != nil {
		return "", fmt.Errorf("failed to export board %d: %w", boardID, err)
	}
	slog.Info("board exported", "board_id", boardID, "key", key, "cards", snap.CardCount())
	return key, nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// publishBoardEvent publishes a board event
func (s *service) publishBoardEvent(ctx context.Context, eventType events.EventType, boardID int) {
	if s.publisher == nil {
		return
	}
	_ = events.PublishWithRetry(ctx, s.publisher, events.Event{Type: eventType, BoardID: boardID}, 3)
}
