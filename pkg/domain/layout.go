package domain

import (
	"slices"
	"time"
)

// Column is one container of a board layout.
type Column struct {
	ID    string   `json:"id" yaml:"id"`
	Items []string `json:"items" yaml:"items"`
}

// Layout is the arrangement of a board at a point in time. Removed lists
// definition items that were taken off the board.
type Layout struct {
	Board     string    `json:"board" yaml:"board"`
	Columns   []Column  `json:"columns" yaml:"columns"`
	Removed   []string  `json:"removed,omitempty" yaml:"removed,omitempty"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Column returns the column with the given id.
func (l *Layout) Column(id string) (Column, bool) {
	for _, c := range l.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	out := &Layout{
		Board:     l.Board,
		UpdatedAt: l.UpdatedAt,
		Columns:   make([]Column, len(l.Columns)),
		Removed:   slices.Clone(l.Removed),
	}
	for i, c := range l.Columns {
		out.Columns[i] = Column{ID: c.ID, Items: slices.Clone(c.Items)}
	}
	return out
}
