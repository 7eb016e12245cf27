package ports

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Solver runs a search over a grid without touching any store.
// This is the primary interface used by adapters (e.g., HTTP, MCP) for inline grids.
type Solver interface {
	SolveGrid(ctx context.Context, grid *domain.Grid, mode domain.Mode) (*domain.Result, error)
}
