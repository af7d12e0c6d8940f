package card

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/reindex"
)

// publishRetries bounds how often a committed change is re-announced
const publishRetries = 3

// Service defines all card-related business operations
type Service interface {
	// Read operations
	GetCard(ctx context.Context, cardID int) (*models.Card, error)
	ListCards(ctx context.Context, columnID int) (models.Cards, error)

	// Write operations
	CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error)
	UpdateCard(ctx context.Context, req UpdateCardRequest) (*models.Card, error)
	DeleteCard(ctx context.Context, cardID int) error

	// MoveCard places a card at DestinationIndex of the destination column and
	// renumbers every affected column so positions stay contiguous.
	MoveCard(ctx context.Context, req MoveCardRequest) error
}

// CreateCardRequest encapsulates all data needed to create a card.
// The card is appended to the end of its column.
type CreateCardRequest struct {
	ColumnID    int
	Title       string
	Description string
}

// UpdateCardRequest encapsulates all data needed to update a card
// Fields with pointers are optional - nil means don't update
type UpdateCardRequest struct {
	CardID      int
	Title       *string
	Description *string
}

// MoveCardRequest describes one move. DestinationIndex is clamped into the
// destination's valid range, so out-of-range values are never an error.
type MoveCardRequest struct {
	CardID              int `json:"cardId"`
	DestinationColumnID int `json:"destinationColumnId"`
	DestinationIndex    int `json:"destinationIndex"`
}

// service implements Service interface
type service struct {
	repo      database.DataStore
	publisher events.Publisher
}

// NewService creates a new card service
func NewService(repo database.DataStore, publisher events.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
	}
}

// GetCard retrieves a card by ID
func (s *service) GetCard(ctx context.Context, cardID int) (*models.Card, error) {
	if cardID <= 0 {
		return nil, ErrInvalidCardID
	}
	card, err := s.repo.GetCard(ctx, cardID)
	if err != nil {
		return nil, classify(err, ErrCardNotFound)
	}
	return card, nil
}

// ListCards retrieves the cards of a column in display order
func (s *service) ListCards(ctx context.Context, columnID int) (models.Cards, error) {
	if columnID <= 0 {
		return nil, ErrInvalidColumnID
	}
	if _, err := s.repo.GetColumn(ctx, columnID); err != nil {
		return nil, classify(err, ErrColumnNotFound)
	}
	cards, err := s.repo.ListCardsByColumn(ctx, columnID)
	if err != nil {
		return nil, persistence(err)
	}
	return cards, nil
}

// CreateCard handles card creation with validation
func (s *service) CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error) {
	if req.ColumnID <= 0 {
		return nil, ErrInvalidColumnID
	}
	title := strings.TrimSpace(req.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}

	column, err := s.repo.GetColumn(ctx, req.ColumnID)
	if err != nil {
		return nil, classify(err, ErrColumnNotFound)
	}

	card, err := s.repo.CreateCard(ctx, req.ColumnID, title, req.Description)
	if err != nil {
		return nil, classify(err, ErrColumnNotFound)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventCardCreated,
		BoardID:  column.BoardID,
		ColumnID: card.ColumnID,
		CardID:   card.ID,
	})
	return card, nil
}

// UpdateCard changes a card's title and/or description
func (s *service) UpdateCard(ctx context.Context, req UpdateCardRequest) (*models.Card, error) {
	if req.CardID <= 0 {
		return nil, ErrInvalidCardID
	}
	if req.Title == nil && req.Description == nil {
		return nil, ErrNothingToUpdate
	}

	card, err := s.repo.GetCard(ctx, req.CardID)
	if err != nil {
		return nil, classify(err, ErrCardNotFound)
	}

	title, description := card.Title, card.Description
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		description = *req.Description
		if err := validateDescription(description); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateCard(ctx, req.CardID, title, description); err != nil {
		return nil, classify(err, ErrCardNotFound)
	}

	updated, err := s.repo.GetCard(ctx, req.CardID)
	if err != nil {
		return nil, classify(err, ErrCardNotFound)
	}

	s.publishForColumn(ctx, events.EventCardUpdated, updated.ColumnID, updated.ID)
	return updated, nil
}

// DeleteCard removes a card and closes the gap it leaves
func (s *service) DeleteCard(ctx context.Context, cardID int) error {
	if cardID <= 0 {
		return ErrInvalidCardID
	}

	card, err := s.repo.GetCard(ctx, cardID)
	if err != nil {
		return classify(err, ErrCardNotFound)
	}
	// Resolve the board before the card disappears
	column, err := s.repo.GetColumn(ctx, card.ColumnID)
	if err != nil {
		return classify(err, ErrColumnNotFound)
	}

	if err := s.repo.DeleteCard(ctx, cardID); err != nil {
		return classify(err, ErrCardNotFound)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventCardDeleted,
		BoardID:  column.BoardID,
		ColumnID: column.ID,
		CardID:   cardID,
	})
	return nil
}

// MoveCard reads both affected columns, computes the new ordering and writes
// every changed position inside one store transaction. Nothing is written when
// any step fails.
//
// IDs are not range checked: one that matches no row, zero included, is
// reported as ErrCardNotFound or ErrColumnNotFound.
func (s *service) MoveCard(ctx context.Context, req MoveCardRequest) error {
	var (
		boardID int
		changed int
	)
	err := s.repo.WithinTx(ctx, func(store database.MoveStore) error {
		card, err := store.GetCard(ctx, req.CardID)
		if err != nil {
			return classify(err, ErrCardNotFound)
		}
		source, err := store.GetColumn(ctx, card.ColumnID)
		if err != nil {
			return classify(err, ErrColumnNotFound)
		}
		dest := source
		if req.DestinationColumnID != source.ID {
			dest, err = store.GetColumn(ctx, req.DestinationColumnID)
			if err != nil {
				return classify(err, ErrColumnNotFound)
			}
			if dest.BoardID != source.BoardID {
				return fmt.Errorf("%w: card %d is on board %d, column %d is on board %d",
					ErrCrossBoardMove, card.ID, source.BoardID, dest.ID, dest.BoardID)
			}
		}
		boardID = source.BoardID

		sourceCards, err := store.ListCardsByColumn(ctx, source.ID)
		if err != nil {
			return persistence(err)
		}
		current := sourceCards
		var destCards models.Cards
		if dest.ID != source.ID {
			destCards, err = store.ListCardsByColumn(ctx, dest.ID)
			if err != nil {
				return persistence(err)
			}
			current = append(append(models.Cards{}, sourceCards...), destCards...)
		}

		plan, err := reindex.Plan(reindex.Request{
			CardID:              card.ID,
			Source:              sourceCards,
			Destination:         destCards,
			DestinationColumnID: dest.ID,
			Index:               req.DestinationIndex,
		})
		if err != nil {
			return persistence(fmt.Errorf("planning move of card %d: %w", card.ID, err))
		}

		assignments := plan.Changed(current)
		changed = len(assignments)
		if changed == 0 {
			return nil
		}
		if err := reindex.Verify(current, assignments); err != nil {
			return persistence(fmt.Errorf("planned move of card %d: %w", card.ID, err))
		}
		if err := store.SaveCardPositions(ctx, assignments); err != nil {
			return persistence(err)
		}
		return nil
	})
	if err != nil {
		return persistence(err)
	}

	slog.Debug("card moved",
		"card_id", req.CardID,
		"column_id", req.DestinationColumnID,
		"index", req.DestinationIndex,
		"changed", changed)

	if changed > 0 {
		s.publish(ctx, events.Event{
			Type:     events.EventCardMoved,
			BoardID:  boardID,
			ColumnID: req.DestinationColumnID,
			CardID:   req.CardID,
		})
	}
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

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > models.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// publishForColumn resolves the column's board before publishing
func (s *service) publishForColumn(ctx context.Context, eventType events.EventType, columnID, cardID int) {
	if s.publisher == nil {
		return
	}
	column, err := s.repo.GetColumn(ctx, columnID)
	if err != nil {
		slog.Warn("skipping event for unknown column", "event_type", eventType, "column_id", columnID, "error", err)
		return
	}
	s.publish(ctx, events.Event{Type: eventType, BoardID: column.BoardID, ColumnID: columnID, CardID: cardID})
}

// publish announces a committed change. PublishWithRetry logs a failure, the
// write already happened.
func (s *service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	_ = events.PublishWithRetry(ctx, s.publisher, event, publishRetries)
}
