package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

type readOnlyMiddleware struct {
	next ports.MazeStore
}

// NewReadOnlyMiddleware rejects Save and Delete with domain.ErrReadOnly.
func NewReadOnlyMiddleware() Middleware {
	return func(next ports.MazeStore) ports.MazeStore {
		return &readOnlyMiddleware{next: next}
	}
}

func (m *readOnlyMiddleware) Save(ctx context.Context, name string, grid *domain.Grid) error {
	return fmt.Errorf("save %q: %w", name, domain.ErrReadOnly)
}

func (m *readOnlyMiddleware) Load(ctx context.Context, name string) (*domain.Grid, error) {
	return m.next.Load(ctx, name)
}

func (m *readOnlyMiddleware) Delete(ctx context.Context, name string) error {
	return fmt.Errorf("delete %q: %w", name, domain.ErrReadOnly)
}

func (m *readOnlyMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
