package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// ErrPlacement is returned by Build when a step could not be applied.
var ErrPlacement = errors.New("dsl: invalid placement")

type step struct {
	desc  string
	apply func(*domain.Grid) bool
}

// Builder records walls and markers and applies them in order on Build.
// Walls are always applied before markers.
type Builder struct {
	width, height int
	walls         []step
	markers       []step
}

// New creates a builder for a width×height grid.
func New(width, height int) *Builder {
	return &Builder{width: width, height: height}
}

// Wall adds a single wall.
func (b *Builder) Wall(x, y int) *Builder {
	b.walls = append(b.walls, step{
		desc:  fmt.Sprintf("wall at %s", domain.Pt(x, y)),
		apply: func(g *domain.Grid) bool { return g.SetWall(x, y) },
	})
	return b
}

// Walls adds a wall at every point.
func (b *Builder) Walls(points ...domain.Point) *Builder {
	for _, p := range points {
		b.Wall(p.X, p.Y)
	}
	return b
}

// Row adds a horizontal run of walls on row y from column x0 to x1 inclusive.
func (b *Builder) Row(y, x0, x1 int) *Builder {
	for x := min(x0, x1); x <= max(x0, x1); x++ {
		b.Wall(x, y)
	}
	return b
}

// Column adds a vertical run of walls on column x from row y0 to y1 inclusive.
func (b *Builder) Column(x, y0, y1 int) *Builder {
	for y := min(y0, y1); y <= max(y0, y1); y++ {
		b.Wall(x, y)
	}
	return b
}

// Start places the agent.
func (b *Builder) Start(x, y int) *Builder {
	b.markers = append(b.markers, step{
		desc:  fmt.Sprintf("start at %s", domain.Pt(x, y)),
		apply: func(g *domain.Grid) bool { return g.SetStart(x, y) },
	})
	return b
}

// Destination places the target.
func (b *Builder) Destination(x, y int) *Builder {
	b.markers = append(b.markers, step{
		desc:  fmt.Sprintf("destination at %s", domain.Pt(x, y)),
		apply: func(g *domain.Grid) bool { return g.SetDestination(x, y) },
	})
	return b
}

// Build creates the grid. Every rejected step is reported, joined into one error.
func (b *Builder) Build() (*domain.Grid, error) {
	g, err := domain.NewGrid(b.width, b.height)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, s := range append(append([]step{}, b.walls...), b.markers...) {
		if !s.apply(g) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrPlacement, s.desc))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return g, nil
}

// MustBuild is Build that panics on error. Intended for fixtures.
func (b *Builder) MustBuild() *domain.Grid {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
