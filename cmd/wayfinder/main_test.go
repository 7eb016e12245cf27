package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/wayfinder/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestModesCommand(t *testing.T) {
	out, err := run(t, "modes")
	require.NoError(t, err)
	assert.Equal(t, "1. BFS\n2. DFS\n3. Greedy BFS\n4. A*\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "wayfinder version dev")
}

func TestNewCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.txt")

	out, err := run(t, "new", path, "--width", "3", "--height", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "(3x2)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "000\n000\n", string(data))

	_, err = run(t, "new", path, "--width", "3", "--height", "2")
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestValidateCommand(t *testing.T) {
	ok := testutils.WriteMaze(t, "gate", "410\n000\n015")
	out, err := run(t, "validate", ok)
	require.NoError(t, err)
	assert.Contains(t, out, "Maze is valid!")

	closed := testutils.WriteMaze(t, "closed", "4010\n0015")
	_, err = run(t, "validate", closed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
}

func TestTreeCommand(t *testing.T) {
	path := testutils.WriteMaze(t, "line", "4005")
	out, err := run(t, "tree", path, "--mode", "bfs")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "c1_0 --> c2_0")
	assert.Contains(t, out, "c2_0 ==> c3_0")
}

func TestSolveCommand(t *testing.T) {
	path := testutils.WriteMaze(t, "line", "4005")
	out, err := run(t, "solve", path, "--mode", "a*", "--plain", "--animate=false")
	require.NoError(t, err)
	assert.Equal(t, "4 0 0 5\n4 3 3 5\nExplored cells: 2, Path: 2 cells.\n", out)
}
