// Package reindex computes the position assignments produced by moving a card
// within its column or into another column. It is a pure computation over an
// in-memory snapshot; persisting the result is the caller's job.
package reindex

import (
	"errors"
	"fmt"
	"sort"

	"github.com/thenoetrevino/lanes/internal/models"
)

var (
	// ErrCardNotInSource indicates that the moving card is missing from its source list
	ErrCardNotInSource = errors.New("card is not a member of its source column")

	// ErrCardInDestination indicates a cross-column move whose destination list
	// already holds the moving card
	ErrCardInDestination = errors.New("card is already a member of the destination column")
)

// Assignment is the new placement of one card
type Assignment struct {
	CardID   int `json:"cardId"`
	Position int `json:"position"`
	ColumnID int `json:"columnId"`
}

// Request describes a single move.
// Source holds every card of the moving card's current column, the moving card included.
// Destination holds the cards of the destination column and is ignored when the
// destination is the source column.
type Request struct {
	CardID              int
	Source              models.Cards
	Destination         models.Cards
	DestinationColumnID int
	Index               int
}

// Result holds one assignment per card of the destination list and, for
// cross-column moves, one per card remaining in the source list.
type Result struct {
	Assignments []Assignment
}

// Clamp bounds index to [0, n]. Out-of-range indexes are not an error:
// negative values insert at the start and values past the end append.
func Clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}

// Plan computes the new ordering for a move
func Plan(req Request) (Result, error) {
	source := req.Source.Sorted()
	at := source.Index(req.CardID)
	if at < 0 {
		return Result{}, ErrCardNotInSource
	}
	moving := source[at]
	sourceColumnID := moving.ColumnID

	remaining := make(models.Cards, 0, len(source)-1)
	remaining = append(remaining, source[:at]...)
	remaining = append(remaining, source[at+1:]...)

	if req.DestinationColumnID == sourceColumnID {
		order := insertAt(remaining, moving, Clamp(req.Index, len(remaining)))
		return Result{Assignments: renumber(order, sourceColumnID)}, nil
	}

	dest := req.Destination.Sorted()
	if dest.Index(req.CardID) >= 0 {
		return Result{}, ErrCardInDestination
	}
	order := insertAt(dest, moving, Clamp(req.Index, len(dest)))

	assignments := renumber(remaining, sourceColumnID)
	assignments = append(assignments, renumber(order, req.DestinationColumnID)...)
	return Result{Assignments: assignments}, nil
}

// Changed returns the assignments that differ from the current placement of their card.
// Cards absent from current are always reported.
func (r Result) Changed(current models.Cards) []Assignment {
	byID := make(map[int]models.Card, len(current))
	for _, c := range current {
		byID[c.ID] = c
	}

	var changed []Assignment
	for _, a := range r.Assignments {
		c, ok := byID[a.CardID]
		if ok && c.Position == a.Position && c.ColumnID == a.ColumnID {
			continue
		}
		changed = append(changed, a)
	}
	return changed
}

// Apply returns a copy of cards with the assignments applied through the
// model's mutation primitives. Cards without an assignment are copied unchanged.
// The move orchestrator uses it through Verify to check the in-memory result
// before anything is written.
func Apply(cards models.Cards, assignments []Assignment) models.Cards {
	byID := make(map[int]Assignment, len(assignments))
	for _, a := range assignments {
		byID[a.CardID] = a
	}

	out := make(models.Cards, len(cards))
	copy(out, cards)
	for i := range out {
		if a, ok := byID[out[i].ID]; ok {
			out[i].SetColumn(a.ColumnID)
			out[i].SetPosition(a.Position)
		}
	}
	return out
}

// Verify applies assignments to current, which must hold every card of the
// columns involved, and checks that each column ends up ordered 0..n-1.
func Verify(current models.Cards, assignments []Assignment) error {
	after := Apply(current, assignments)

	byColumn := make(map[int][]int)
	for _, c := range after {
		byColumn[c.ColumnID] = append(byColumn[c.ColumnID], c.Position)
	}
	for columnID, positions := range byColumn {
		sort.Ints(positions)
		if err := models.CheckContiguous(positions); err != nil {
			return fmt.Errorf("column %d: %w", columnID, err)
		}
	}
	return nil
}

func insertAt(list models.Cards, card models.Card, index int) models.Cards {
	out := make(models.Cards, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, card)
	return append(out, list[index:]...)
}

func renumber(list models.Cards, columnID int) []Assignment {
	out := make([]Assignment, len(list))
	for i, c := range list {
		out[i] = Assignment{CardID: c.ID, Position: i, ColumnID: columnID}
	}
	return out
}
