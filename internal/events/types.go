package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventBoardCreated  EventType = "board.created"
	EventBoardDeleted  EventType = "board.deleted"
	EventColumnCreated EventType = "column.created"
	EventColumnDeleted EventType = "column.deleted"
	EventCardCreated   EventType = "card.created"
	EventCardUpdated   EventType = "card.updated"
	EventCardDeleted   EventType = "card.deleted"
	EventCardMoved     EventType = "card.moved"
)

// Event represents a committed change to a board
type Event struct {
	Type      EventType `json:"type"`
	BoardID   int       `json:"boardId"`            // For filtering - which board was modified
	ColumnID  int       `json:"columnId,omitempty"` // Destination column for moves
	CardID    int       `json:"cardId,omitempty"`
	Actor     string    `json:"actor,omitempty"` // OS user that made the change
	Timestamp time.Time `json:"timestamp"`
}
