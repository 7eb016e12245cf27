package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.MazeStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at debug level and failures at warn.
// A missing maze is not a failure.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.MazeStore) ports.MazeStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, name string, start time.Time, err error) {
	attrs := []any{"op", op, "duration", time.Since(start)}
	if name != "" {
		attrs = append(attrs, "maze", name)
	}
	if err != nil && !errors.Is(err, domain.ErrMazeNotFound) {
		m.logger.WarnContext(ctx, "Store call failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "Store call", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, name string, grid *domain.Grid) error {
	start := time.Now()
	err := m.next.Save(ctx, name, grid)
	m.log(ctx, "save", name, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, name string) (*domain.Grid, error) {
	start := time.Now()
	g, err := m.next.Load(ctx, name)
	m.log(ctx, "load", name, start, err)
	return g, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := m.next.Delete(ctx, name)
	m.log(ctx, "delete", name, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return names, err
}
