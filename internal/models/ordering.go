package models

import "fmt"

// OrderingError reports a sibling set whose positions are not exactly 0..n-1
type OrderingError struct {
	Expected int
	Got      int
	Index    int
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("positions are not contiguous: expected %d at index %d, got %d", e.Expected, e.Index, e.Got)
}

// CheckContiguous verifies that the positions, taken in ascending order, are exactly
// 0, 1, ..., n-1. The input must already be sorted.
func CheckContiguous(positions []int) error {
	for i, p := range positions {
		if p != i {
			return &OrderingError{Expected: i, Got: p, Index: i}
		}
	}
	return nil
}
