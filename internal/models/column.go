package models

// Column represents a kanban board column (e.g., "Todo", "In Progress", "Done").
// Columns are ordered within their board by Position, which is contiguous from 0.
type Column struct {
	ID       int    `json:"id"`
	BoardID  int    `json:"boardId"` // Non-owning back-reference, used for lookup only
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// GetID returns the column ID
func (c *Column) GetID() int { return c.ID }
