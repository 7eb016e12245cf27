package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
	"github.com/stretchr/testify/require"
)

// ParseGrid parses rows of cell digits. Leading and trailing blank lines are
// ignored so fixtures can be written as raw string literals.
// It fails the test immediately on error.
func ParseGrid(t testing.TB, text string) *domain.Grid {
	t.Helper()

	g, err := gridfile.Parse(strings.NewReader(strings.TrimSpace(text)))
	require.NoError(t, err, "Failed to parse grid fixture")
	return g
}

// WriteMaze writes text to <tmp>/<name>.txt and returns the path.
func WriteMaze(t testing.TB, name, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name+gridfile.Ext)
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(text)+"\n"), 0o644), "Failed to write maze fixture")
	return path
}
