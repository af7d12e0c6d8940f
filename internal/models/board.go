package models

import "time"

// Board is the root container of a kanban board.
// Columns reference their board through Column.BoardID.
type Board struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetID returns the board ID
func (b *Board) GetID() int { return b.ID }

// BoardSnapshot is a read-only view of a board with its columns and cards,
// each ordered by position.
type BoardSnapshot struct {
	Board   Board            `json:"board"`
	Columns []ColumnSnapshot `json:"columns"`
}

// ColumnSnapshot is a column together with its ordered cards
type ColumnSnapshot struct {
	Column
	Cards Cards `json:"cards"`
}

// GetID returns the board ID
func (s *BoardSnapshot) GetID() int { return s.Board.ID }

// CardCount returns the number of cards across every column of the snapshot
func (s *BoardSnapshot) CardCount() int {
	n := 0
	for _, col := range s.Columns {
		n += len(col.Cards)
	}
	return n
}
