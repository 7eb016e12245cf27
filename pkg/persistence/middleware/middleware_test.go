package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/persistence/middleware"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_PassesContract(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := middleware.Chain(memory.NewStore(),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewSizeLimitMiddleware(100),
	)
	ports.RunMazeStoreContract(t, store)

	assert.Contains(t, buf.String(), "op=save")
	assert.Contains(t, buf.String(), "op=list")
	assert.NotContains(t, buf.String(), "Store call failed", "not found is not a failure")
}

func TestSizeLimit(t *testing.T) {
	ctx := context.Background()
	store := middleware.NewSizeLimitMiddleware(6)(memory.NewStore())

	require.NoError(t, store.Save(ctx, "small", domain.MustGrid(3, 2)))

	err := store.Save(ctx, "big", domain.MustGrid(3, 3))
	assert.ErrorIs(t, err, domain.ErrInvalidDimensions)
	_, err = store.Load(ctx, "big")
	assert.ErrorIs(t, err, domain.ErrMazeNotFound)

	inner := memory.NewStore()
	assert.Same(t, inner, middleware.NewSizeLimitMiddleware(0)(inner).(*memory.Store))
}

func TestReadOnly(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	require.NoError(t, inner.Save(ctx, "seed", domain.MustGrid(2, 2)))

	store := middleware.NewReadOnlyMiddleware()(inner)

	g, err := store.Load(ctx, "seed")
	require.NoError(t, err)
	assert.Equal(t, 2, g.Width())

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"seed"}, names)

	assert.ErrorIs(t, store.Save(ctx, "seed", domain.MustGrid(1, 1)), domain.ErrReadOnly)
	assert.ErrorIs(t, store.Delete(ctx, "seed"), domain.ErrReadOnly)

	_, err = inner.Load(ctx, "seed")
	assert.NoError(t, err)
}

type failingStore struct{ ports.MazeStore }

func (failingStore) List(context.Context) ([]string, error) { return nil, errors.New("disk on fire") }

func TestLogging_Failures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := middleware.NewLoggingMiddleware(logger)(failingStore{memory.NewStore()})

	_, err := store.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, buf.String(), "Store call failed")
	assert.Contains(t, buf.String(), "disk on fire")
}
