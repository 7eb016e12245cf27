package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/search"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModePrompt(t *testing.T) {
	assert.Equal(t, "Input path search mode: 1. BFS, 2. DFS, 3. Greedy BFS, 4. A*: ", ModePrompt())
}

func TestConsole_SelectMode(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(wayfinder.New(), strings.NewReader("9\nsideways\n4\n"), &out)

	m, err := c.SelectMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AStar, m)
	assert.Contains(t, out.String(), "choose a number between 1 and 4")
	assert.Equal(t, 3, strings.Count(out.String(), "Input path search mode"))
}

func TestConsole_SelectModeByName(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(wayfinder.New(), strings.NewReader("greedy\n"), &out)

	m, err := c.SelectMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.GreedyBFS, m)
}

func TestConsole_SolveFile(t *testing.T) {
	const maze = "40000\n11110\n00000\n01111\n00005\n"
	path := filepath.Join(t.TempDir(), "maze.txt")
	require.NoError(t, os.WriteFile(path, []byte(maze), 0o644))

	g, err := gridfile.Unmarshal([]byte(maze))
	require.NoError(t, err)
	want, err := search.FindPath(g, domain.DFS)
	require.NoError(t, err)

	var out bytes.Buffer
	c := NewConsole(wayfinder.New(), strings.NewReader("2\n"), &out)
	res, err := c.SolveFile(context.Background(), path, SolveOptions{Animate: true, Plain: true})
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.Equal(t, domain.DFS, res.Mode)
	assert.True(t, strings.HasPrefix(out.String(), "4 0 0 0 0\n"))
	assert.True(t, strings.HasSuffix(out.String(),
		fmt.Sprintf("Explored cells: %d, Path: %d cells.\n", want.Explored(), len(want.Path))))
}

func TestConsole_SolveWithoutAnimation(t *testing.T) {
	g, err := gridfile.Unmarshal([]byte("405\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	c := NewConsole(wayfinder.New(), strings.NewReader(""), &out)
	_, err = c.Solve(context.Background(), g, SolveOptions{Mode: "bfs", Plain: true})
	require.NoError(t, err)

	assert.Equal(t, "4 0 5\n4 3 5\nExplored cells: 1, Path: 1 cells.\n", out.String())
	assert.Equal(t, domain.Empty, g.At(1, 0), "input grid stays untouched")
}

func TestConsole_Errors(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(wayfinder.New(), strings.NewReader(""), &out)
	ctx := context.Background()

	_, err := c.SolveFile(ctx, filepath.Join(t.TempDir(), "missing.txt"), SolveOptions{Mode: "bfs"})
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("40x5\n"), 0o644))
	_, err = c.SolveFile(ctx, bad, SolveOptions{Mode: "bfs"})
	var syntax *gridfile.SyntaxError
	assert.ErrorAs(t, err, &syntax)

	g, err := gridfile.Unmarshal([]byte("405\n"))
	require.NoError(t, err)
	_, err = c.Solve(ctx, g, SolveOptions{Mode: "zigzag"})
	assert.ErrorIs(t, err, domain.ErrUnknownMode)

	// Empty input while prompting ends the session.
	_, err = c.Solve(ctx, g, SolveOptions{})
	assert.True(t, isInterrupted(err))
}
