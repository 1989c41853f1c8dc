package memory

import (
	"context"
	"sync"

	"github.com/aretw0/drake/pkg/domain"
)

// Store implements ports.LayoutStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Layout
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Layout),
	}
}

// Save persists a copy of the layout.
func (s *Store) Save(ctx context.Context, board string, layout *domain.Layout) error {
	copied := layout.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[board] = copied
	return nil
}

// Load retrieves a copy of the layout so callers can't mutate the store.
func (s *Store) Load(ctx context.Context, board string) (*domain.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	layout, ok := s.data[board]
	if !ok {
		return nil, domain.ErrLayoutNotFound
	}
	return layout.Clone(), nil
}

// Delete removes the layout.
func (s *Store) Delete(ctx context.Context, board string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, board)
	return nil
}

// List returns the boards with a stored layout.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	boards := make([]string, 0, len(s.data))
	for id := range s.data {
		boards = append(boards, id)
	}
	return boards, nil
}
