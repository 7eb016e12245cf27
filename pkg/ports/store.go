package ports

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// MazeStore defines the interface for persisting named grids.
type MazeStore interface {
	// Save persists the grid under the given name, replacing any previous version.
	Save(ctx context.Context, name string, grid *domain.Grid) error

	// Load retrieves the grid stored under the given name.
	// Returns domain.ErrMazeNotFound if the maze does not exist.
	Load(ctx context.Context, name string) (*domain.Grid, error)

	// Delete removes the maze. Deleting an unknown name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored mazes.
	List(ctx context.Context) ([]string, error)
}
