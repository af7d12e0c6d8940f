package models

import (
	"sort"
	"time"
)

// Card represents a single card in a column
type Card struct {
	ID          int       `json:"id"`
	ColumnID    int       `json:"columnId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GetID returns the card ID
func (c *Card) GetID() int { return c.ID }

// SetPosition sets the card's rank among its siblings. No validation is done here.
func (c *Card) SetPosition(position int) {
	c.Position = position
}

// SetColumn points the card at a new owning column. No validation is done here.
func (c *Card) SetColumn(columnID int) {
	c.ColumnID = columnID
}

// Cards is an ordered list of cards belonging to one column
type Cards []Card

// Sorted returns a copy ordered by position. Ties keep their input order.
func (cs Cards) Sorted() Cards {
	out := make(Cards, len(cs))
	copy(out, cs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

// IDs returns the card IDs in list order
func (cs Cards) IDs() []int {
	ids := make([]int, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

// Positions returns the card positions in list order
func (cs Cards) Positions() []int {
	positions := make([]int, len(cs))
	for i, c := range cs {
		positions[i] = c.Position
	}
	return positions
}

// Index returns the list index of the card with the given ID, or -1
func (cs Cards) Index(cardID int) int {
	for i, c := range cs {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}
