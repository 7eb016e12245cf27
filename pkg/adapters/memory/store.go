package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Store implements ports.MazeStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Grid
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Grid),
	}
}

// Save keeps a copy of the grid so later edits by the caller do not leak in.
func (s *Store) Save(ctx context.Context, name string, grid *domain.Grid) error {
	copied := grid.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load returns a copy of the stored grid.
func (s *Store) Load(ctx context.Context, name string) (*domain.Grid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grid, ok := s.data[name]
	if !ok {
		return nil, domain.ErrMazeNotFound
	}
	return grid.Clone(), nil
}

// Delete removes the maze.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored maze names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
