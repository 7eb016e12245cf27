package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

type sizeLimitMiddleware struct {
	next     ports.MazeStore
	maxCells int
}

// NewSizeLimitMiddleware rejects saving grids with more than maxCells cells.
// A non-positive limit disables the check.
func NewSizeLimitMiddleware(maxCells int) Middleware {
	return func(next ports.MazeStore) ports.MazeStore {
		if maxCells <= 0 {
			return next
		}
		return &sizeLimitMiddleware{next: next, maxCells: maxCells}
	}
}

func (m *sizeLimitMiddleware) Save(ctx context.Context, name string, grid *domain.Grid) error {
	if cells := grid.Width() * grid.Height(); cells > m.maxCells {
		return fmt.Errorf("%w: %dx%d exceeds the %d cell limit",
			domain.ErrInvalidDimensions, grid.Width(), grid.Height(), m.maxCells)
	}
	return m.next.Save(ctx, name, grid)
}

func (m *sizeLimitMiddleware) Load(ctx context.Context, name string) (*domain.Grid, error) {
	return m.next.Load(ctx, name)
}

func (m *sizeLimitMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *sizeLimitMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
