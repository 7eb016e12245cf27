package http

import (
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
)

// MazeResponse is the JSON view of a stored maze.
type MazeResponse struct {
	Name        string        `json:"name"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Rows        []string      `json:"rows"`
	Start       *domain.Point `json:"start,omitempty"`
	Destination *domain.Point `json:"destination,omitempty"`
}

// CreateMazeRequest is the body of POST /mazes.
type CreateMazeRequest struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// CellRequest is the body of POST /mazes/{name}/cells.
type CellRequest struct {
	Op string `json:"op"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// CellResponse reports whether an edit changed the maze.
type CellResponse struct {
	Applied bool         `json:"applied"`
	Maze    MazeResponse `json:"maze"`
}

// SolveGridRequest is the body of POST /solve.
type SolveGridRequest struct {
	Grid string `json:"grid"`
	Mode string `json:"mode"`
}

// SolveResponse is the JSON view of a search result.
type SolveResponse struct {
	Mode     string         `json:"mode"`
	Found    bool           `json:"found"`
	Explored int            `json:"explored"`
	Steps    int            `json:"steps"`
	Moves    []domain.Point `json:"moves"`
	Path     []domain.Point `json:"path"`
}

// Event is pushed to /mazes/{name}/events subscribers.
type Event struct {
	Type  string         `json:"type"`
	Maze  string         `json:"maze"`
	Rows  []string       `json:"rows,omitempty"`
	Solve *SolveResponse `json:"solve,omitempty"`
}

func mapMaze(name string, g *domain.Grid) MazeResponse {
	resp := MazeResponse{
		Name:   name,
		Width:  g.Width(),
		Height: g.Height(),
		Rows:   gridfile.EncodeRows(g),
	}
	if p, ok := g.Start(); ok {
		resp.Start = &p
	}
	if p, ok := g.Destination(); ok {
		resp.Destination = &p
	}
	return resp
}

func mapResult(res *domain.Result) SolveResponse {
	return SolveResponse{
		Mode:     res.Mode.String(),
		Found:    res.Found,
		Explored: res.Explored(),
		Steps:    res.Steps(),
		Moves:    res.Moves,
		Path:     res.Path,
	}
}
