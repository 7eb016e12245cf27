package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/wayfinder/pkg/adapters/file"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements MazeStore
var _ ports.MazeStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunMazeStoreContract(t, store)
}

func TestFileStore_WritesDigitGrid(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	g := domain.MustGrid(3, 2)
	g.SetStart(0, 0)
	g.SetWall(1, 0)
	g.SetDestination(2, 1)
	require.NoError(t, store.Save(ctx, "tiny", g))

	data, err := os.ReadFile(filepath.Join(dir, "tiny.txt"))
	require.NoError(t, err)
	assert.Equal(t, "410\n005\n", string(data))
}

func TestFileStore_ReadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hand.txt"), []byte("401\n005\n\n"), 0644))

	store := file.New(dir)
	g, err := store.Load(context.Background(), "hand")
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())

	dest, ok := g.Destination()
	require.True(t, ok)
	assert.Equal(t, domain.Pt(2, 1), dest)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.txt"), []byte("40x\n"), 0644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrMazeNotFound)
}

func TestFileStore_RejectsPathNames(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "..", "../escape", `a\b`} {
		err := store.Save(ctx, name, domain.MustGrid(1, 1))
		assert.ErrorIs(t, err, domain.ErrInvalidName, name)
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
