package ports

import (
	"context"

	"github.com/aretw0/drake/pkg/domain"
)

// LayoutStore persists board layouts so an arrangement survives restarts.
type LayoutStore interface {
	// Save persists the layout under the given board name.
	Save(ctx context.Context, board string, layout *domain.Layout) error

	// Load retrieves the layout for a board.
	// Returns domain.ErrLayoutNotFound if nothing was saved.
	Load(ctx context.Context, board string) (*domain.Layout, error)

	// Delete removes the layout for a board.
	Delete(ctx context.Context, board string) error

	// List returns the names of the boards with a stored layout.
	List(ctx context.Context) ([]string, error)
}
