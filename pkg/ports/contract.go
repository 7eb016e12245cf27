package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunMazeStoreContract runs a suite of tests to verify that a MazeStore implementation
// adheres to the defined interface contract.
func RunMazeStoreContract(t *testing.T, store MazeStore) {
	ctx := context.Background()
	name := "contract-maze-" + time.Now().Format("20060102150405")

	sample := func() *domain.Grid {
		g := domain.MustGrid(4, 3)
		g.SetWall(1, 0)
		g.SetWall(1, 1)
		g.SetStart(0, 0)
		g.SetDestination(3, 2)
		g.Paint([]domain.Point{{X: 2, Y: 2}}, domain.Explored)
		return g
	}

	t.Run("Save and Load", func(t *testing.T) {
		g := sample()

		err := store.Save(ctx, name, g)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, g.Equal(loaded), "loaded grid must match saved grid")

		start, ok := loaded.Start()
		assert.True(t, ok)
		assert.Equal(t, domain.Pt(0, 0), start)
	})

	t.Run("Store Is Isolated From Caller", func(t *testing.T) {
		g := sample()
		require.NoError(t, store.Save(ctx, name, g))

		g.SetWall(3, 0)
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, domain.Empty, loaded.At(3, 0), "mutating after Save must not leak into the store")

		loaded.SetWall(2, 0)
		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, domain.Empty, again.At(2, 0), "mutating a loaded grid must not leak into the store")
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, sample()))
		replacement := domain.MustGrid(2, 2)
		require.NoError(t, store.Save(ctx, name, replacement))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Width())
		assert.Equal(t, 2, loaded.Height())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrMazeNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, sample()))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrMazeNotFound, "Load after Delete should return ErrMazeNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of unknown maze should not fail")
	})

	t.Run("List", func(t *testing.T) {
		ids := []string{name + "-1", name + "-2"}
		for _, id := range ids {
			require.NoError(t, store.Save(ctx, id, sample()), fmt.Sprintf("save %s", id))
		}
		defer func() {
			for _, id := range ids {
				_ = store.Delete(ctx, id)
			}
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		for _, id := range ids {
			assert.Contains(t, names, id)
		}
	})
}
