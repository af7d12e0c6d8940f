package column

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
)

// Service defines all column-related business operations
type Service interface {
	// Read operations
	ListColumns(ctx context.Context, boardID int) ([]*models.Column, error)
	GetColumn(ctx context.Context, columnID int) (*models.Column, error)

	// Write operations
	CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, error)
	RenameColumn(ctx context.Context, columnID int, title string) error
	DeleteColumn(ctx context.Context, columnID int) error
}

// CreateColumnRequest encapsulates data for creating a column.
// The column is appended after the board's last column.
type CreateColumnRequest struct {
	BoardID int
	Title   string
}

// service implements Service interface
type service struct {
	repo      database.DataStore
	publisher events.Publisher
}

// NewService creates a new column service
func NewService(repo database.DataStore, publisher events.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
	}
}

// ListColumns retrieves all columns of a board in display order
func (s *service) ListColumns(ctx context.Context, boardID int) ([]*models.Column, error) {
	if boardID <= 0 {
		return nil, ErrInvalidBoardID
	}
	if _, err := s.repo.GetBoard(ctx, boardID); err != nil {
		return nil, classify(err, ErrBoardNotFound)
	}
	columns, err := s.repo.ListColumnsByBoard(ctx, boardID)
	if err != nil {
		return nil, classify(err, ErrBoardNotFound)
	}
	return columns, nil
}

// GetColumn retrieves a specific column
func (s *service) GetColumn(ctx context.Context, columnID int) (*models.Column, error) {
	if columnID <= 0 {
		return nil, ErrInvalidColumnID
	}
	column, err := s.repo.GetColumn(ctx, columnID)
	if err != nil {
		return nil, classify(err, ErrColumnNotFound)
	}
	return column, nil
}

// CreateColumn appends a new column to a board
func (s *service) CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, error) {
	title := strings.TrimSpace(req.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if req.BoardID <= 0 {
		return nil, ErrInvalidBoardID
	}

	column, err := s.repo.CreateColumn(ctx, req.BoardID, title)
	if err != nil {
		return nil, classify(err, ErrBoardNotFound)
	}

	s.publishColumnEvent(ctx, events.EventColumnCreated, column)
	return column, nil
}

// RenameColumn changes a column's title
func (s *service) RenameColumn(ctx context.Context, columnID int, title string) error {
	if columnID <= 0 {
		return ErrInvalidColumnID
	}
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := s.repo.UpdateColumnTitle(ctx, columnID, title); err != nil {
		return classify(err, ErrColumnNotFound)
	}
	return nil
}

// DeleteColumn removes a column together with its cards. Remaining columns
// of the board are renumbered to stay contiguous.
func (s *service) DeleteColumn(ctx context.Context, columnID int) error {
	if columnID <= 0 {
		return ErrInvalidColumnID
	}

	column, err := s.repo.GetColumn(ctx, columnID)
	if err != nil {
		return classify(err, ErrColumnNotFound)
	}
	if err := s.repo.DeleteColumn(ctx, columnID); err != nil {
		return classify(err, ErrColumnNotFound)
	}

	s.publishColumnEvent(ctx, events.EventColumnDeleted, column)
	return nil
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

// publishColumnEvent publishes a column event
func (s *service) publishColumnEvent(ctx context.Context, eventType events.EventType, column *models.Column) {
	if s.publisher == nil {
		return
	}

	_ = events.PublishWithRetry(ctx, s.publisher, events.Event{
		Type:     eventType,
		BoardID:  column.BoardID,
		ColumnID: column.ID,
	}, 3)
}
