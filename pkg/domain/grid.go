package domain

import "fmt"

// Grid is a fixed-size rectangle of cells addressed by (column, row).
//
// Every mutator is bounds-checked and tolerant: writes outside the grid and
// placements that would break the Start/Destination invariants are declined
// and reported through the returned "applied" flag instead of an error.
//
// A Grid is not safe for concurrent mutation.
type Grid struct {
	width, height int
	cells         []Cell

	start, dest       Point
	hasStart, hasDest bool
}

// MaxCells bounds the area of any grid. Stores and services may apply a
// lower limit through CheckDimensions.
const MaxCells = 1 << 24

// CheckDimensions reports whether a width x height grid is positive and holds
// at most maxCells cells. A non-positive maxCells means MaxCells.
func CheckDimensions(width, height, maxCells int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if maxCells <= 0 || maxCells > MaxCells {
		maxCells = MaxCells
	}
	if width > maxCells/height {
		return fmt.Errorf("%w: %dx%d exceeds the %d cell limit", ErrInvalidDimensions, width, height, maxCells)
	}
	return nil
}

// NewGrid creates a grid with every cell Empty.
func NewGrid(width, height int) (*Grid, error) {
	if err := CheckDimensions(width, height, MaxCells); err != nil {
		return nil, err
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// MustGrid is like NewGrid but panics on invalid dimensions.
// Intended for tests and fixed-size defaults.
func MustGrid(width, height int) *Grid {
	g, err := NewGrid(width, height)
	if err != nil {
		panic(err)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the state of the cell at (x, y).
// Out-of-range coordinates read as Wall so that they are never traversable.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.cells[y*g.width+x]
}

// Get returns the state of the cell at p.
func (g *Grid) Get(p Point) Cell {
	return g.At(p.X, p.Y)
}

// Set writes c at (x, y). Start and Destination are routed through
// SetStart and SetDestination so the marker invariants hold.
// Overwriting the recorded Start or Destination cell forgets that marker.
func (g *Grid) Set(x, y int, c Cell) bool {
	switch c {
	case Start:
		return g.SetStart(x, y)
	case Destination:
		return g.SetDestination(x, y)
	}
	if !g.InBounds(x, y) || !c.Valid() {
		return false
	}
	g.forget(Pt(x, y))
	g.put(x, y, c)
	return true
}

// SetWall turns the cell at (x, y) into a Wall.
func (g *Grid) SetWall(x, y int) bool {
	return g.Set(x, y, Wall)
}

// ClearCell resets the cell at (x, y) to Empty, forgetting the Start or
// Destination marker if it was recorded there.
func (g *Grid) ClearCell(x, y int) bool {
	return g.Set(x, y, Empty)
}

// SetStart moves the agent to (x, y).
// It declines when the target is out of range, a Wall, or the current Destination.
// The previous Start cell, if any, is reset to Empty.
func (g *Grid) SetStart(x, y int) bool {
	p := Pt(x, y)
	if !g.InBounds(x, y) || g.At(x, y) == Wall || (g.hasDest && g.dest == p) {
		return false
	}
	if g.hasStart {
		g.put(g.start.X, g.start.Y, Empty)
	}
	g.start, g.hasStart = p, true
	g.put(x, y, Start)
	return true
}

// SetDestination moves the target to (x, y).
// It declines when the target is out of range, a Wall, or the current Start.
// The previous Destination cell, if any, is reset to Empty.
func (g *Grid) SetDestination(x, y int) bool {
	p := Pt(x, y)
	if !g.InBounds(x, y) || g.At(x, y) == Wall || (g.hasStart && g.start == p) {
		return false
	}
	if g.hasDest {
		g.put(g.dest.X, g.dest.Y, Empty)
	}
	g.dest, g.hasDest = p, true
	g.put(x, y, Destination)
	return true
}

// Start returns the recorded agent position.
func (g *Grid) Start() (Point, bool) {
	return g.start, g.hasStart
}

// Destination returns the recorded target position.
func (g *Grid) Destination() (Point, bool) {
	return g.dest, g.hasDest
}

// Clear resets every cell to Empty and forgets both markers.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
	g.hasStart, g.hasDest = false, false
	g.start, g.dest = Point{}, Point{}
}

// ClearExplored resets Explored and Path cells to Empty, leaving everything else.
func (g *Grid) ClearExplored() {
	for i, c := range g.cells {
		if c == Explored || c == Path {
			g.cells[i] = Empty
		}
	}
}

// Find returns the first cell in row-major order holding c.
func (g *Grid) Find(c Cell) (Point, bool) {
	for i, v := range g.cells {
		if v == c {
			return Pt(i%g.width, i/g.width), true
		}
	}
	return Point{}, false
}

// Count returns how many cells hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Row returns a copy of row y, or nil when y is out of range.
func (g *Grid) Row(y int) []Cell {
	if y < 0 || y >= g.height {
		return nil
	}
	row := make([]Cell, g.width)
	copy(row, g.cells[y*g.width:(y+1)*g.width])
	return row
}

// Clone returns a deep copy of the grid, markers included.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = make([]Cell, len(g.cells))
	copy(c.cells, g.cells)
	return &c
}

// Equal reports whether both grids have the same size, cells and markers.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height ||
		g.hasStart != o.hasStart || g.hasDest != o.hasDest ||
		g.start != o.start || g.dest != o.dest {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Paint marks the given cells with c without touching Start or Destination.
// Adapters use it to draw a search result; it does not move markers.
func (g *Grid) Paint(points []Point, c Cell) {
	for _, p := range points {
		if !g.InBounds(p.X, p.Y) {
			continue
		}
		switch g.At(p.X, p.Y) {
		case Start, Destination:
			continue
		}
		g.put(p.X, p.Y, c)
	}
}

func (g *Grid) put(x, y int, c Cell) {
	g.cells[y*g.width+x] = c
}

func (g *Grid) forget(p Point) {
	if g.hasStart && g.start == p {
		g.hasStart = false
	}
	if g.hasDest && g.dest == p {
		g.hasDest = false
	}
}
