package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *wayfinder.Service) {
	t.Helper()
	svc := wayfinder.New()
	g, err := gridfile.Unmarshal([]byte("410\n010\n005\n"))
	require.NoError(t, err)
	require.NoError(t, svc.Put(context.Background(), "gap", g))
	return NewServer(svc), svc
}

func TestNewServer_RegistersTools(t *testing.T) {
	s, _ := newTestServer(t)
	tools := s.MCPServer().ListTools()
	for _, name := range []string{"list_modes", "list_mazes", "get_maze", "edit_cell", "solve_maze", "solve_grid"} {
		assert.Contains(t, tools, name)
	}
}

func TestHandleGetMaze(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleGetMaze(ctx, mcp.CallToolRequest{}, mazeArgs{Name: "gap"})
	require.NoError(t, err)
	assert.Equal(t, []string{"410", "010", "005"}, resp.Rows)
	require.NotNil(t, resp.Destination)
	assert.Equal(t, domain.Pt(2, 2), *resp.Destination)

	_, err = s.handleGetMaze(ctx, mcp.CallToolRequest{}, mazeArgs{Name: "nope"})
	assert.ErrorIs(t, err, domain.ErrMazeNotFound)
}

func TestHandleEditCell(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleEditCell(ctx, mcp.CallToolRequest{}, editCellArgs{Name: "gap", Op: "wall", X: 2, Y: 1})
	require.NoError(t, err)
	require.NotNil(t, resp.Applied)
	assert.True(t, *resp.Applied)
	assert.Equal(t, []string{"410", "011", "005"}, resp.Rows)

	resp, err = s.handleEditCell(ctx, mcp.CallToolRequest{}, editCellArgs{Name: "gap", Op: "start", X: 1, Y: 0})
	require.NoError(t, err)
	assert.False(t, *resp.Applied, "start cannot go on a wall")

	_, err = s.handleEditCell(ctx, mcp.CallToolRequest{}, editCellArgs{Name: "gap", Op: "dig", X: 0, Y: 0})
	assert.Error(t, err)
}

func TestHandleSolveMaze(t *testing.T) {
	s, svc := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleSolveMaze(ctx, mcp.CallToolRequest{}, solveMazeArgs{Name: "gap", Mode: "bfs", Persist: true})
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, 4, resp.Steps)
	assert.Equal(t, []domain.Point{{X: 1, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 1}}, resp.Path)

	g, err := svc.Get(ctx, "gap")
	require.NoError(t, err)
	assert.Equal(t, 3, g.Count(domain.Path))

	_, err = s.handleSolveMaze(ctx, mcp.CallToolRequest{}, solveMazeArgs{Name: "gap", Mode: "teleport"})
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestHandleSolveGrid(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleSolveGrid(ctx, mcp.CallToolRequest{}, solveGridArgs{Grid: "4005\n", Mode: "A*"})
	require.NoError(t, err)
	assert.Equal(t, "A*", resp.Mode)
	assert.True(t, resp.Found)
	assert.Equal(t, 3, resp.Steps)
	assert.Equal(t, []string{"4335"}, resp.Rows)

	_, err = s.handleSolveGrid(ctx, mcp.CallToolRequest{}, solveGridArgs{Grid: "4x5"})
	assert.Error(t, err)

	_, err = s.handleSolveGrid(ctx, mcp.CallToolRequest{}, solveGridArgs{Grid: "400"})
	assert.ErrorIs(t, err, domain.ErrMissingDestination)
}
