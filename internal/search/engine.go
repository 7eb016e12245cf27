package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// cancelCheckInterval is how many expansions run between context checks.
const cancelCheckInterval = 1024

// neighbours lists the axis-aligned steps in expansion order: down, right, up, left.
var neighbours = [4]domain.Point{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0}}

// Engine runs frontier searches over a grid.
type Engine struct {
	maxExplored int
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxExplored caps the number of cells a search may take from the frontier.
// Zero means unlimited.
func WithMaxExplored(n int) Option {
	return func(e *Engine) {
		e.maxExplored = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindPath searches g from its Start cell to its Destination cell with an
// unlimited engine and no cancellation.
func FindPath(g *domain.Grid, mode domain.Mode) (*domain.Result, error) {
	return NewEngine().FindPath(context.Background(), g, mode)
}

// FindPath searches g from its Start cell to its Destination cell.
//
// The grid is only read. Explored or Path cells left on it block the search,
// so callers normally run ClearExplored first. An unreachable destination is
// not an error: the result has Found == false and an empty Path.
//
// When the explored budget is exhausted or ctx is cancelled, the partial
// result is returned together with the error.
func (e *Engine) FindPath(ctx context.Context, g *domain.Grid, mode domain.Mode) (*domain.Result, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownMode, int(mode))
	}
	start, ok := g.Find(domain.Start)
	if !ok {
		return nil, domain.ErrMissingStart
	}
	dest, ok := g.Find(domain.Destination)
	if !ok {
		return nil, domain.ErrMissingDestination
	}

	res := &domain.Result{Mode: mode, Moves: []domain.Point{}, Path: []domain.Point{}}
	nodes := &arena{}
	open := newFrontier(mode, nodes)
	seen := make([]bool, g.Width()*g.Height())
	mark := func(p domain.Point) { seen[p.Y*g.Width()+p.X] = true }
	marked := func(p domain.Point) bool { return seen[p.Y*g.Width()+p.X] }

	current := nodes.add(start, noParent)
	mark(start)
	candidates := make([]domain.Point, 0, len(neighbours))

	for {
		candidates = candidates[:0]
		from := nodes.at(current).pos
		for _, d := range neighbours {
			p := from.Add(d)
			if g.Get(p).Traversable() {
				candidates = append(candidates, p)
			}
		}

		for _, p := range candidates {
			if p == dest {
				res.Path = append(res.Path, nodes.trace(current)...)
				res.Found = true
				e.logger.Debug("Search finished",
					"mode", mode.String(), "explored", len(res.Moves), "path", len(res.Path))
				return res, nil
			}
		}

		for _, p := range candidates {
			if marked(p) {
				continue
			}
			mark(p)
			id := nodes.add(p, current)
			if mode.Informed() {
				n := nodes.at(id)
				n.rating = rate(mode, n, dest)
			}
			open.push(id)
		}

		if open.len() == 0 {
			e.logger.Debug("Search exhausted", "mode", mode.String(), "explored", len(res.Moves))
			return res, nil
		}
		if e.maxExplored > 0 && len(res.Moves) >= e.maxExplored {
			return res, fmt.Errorf("%w (%d)", domain.ErrSearchLimit, e.maxExplored)
		}
		if len(res.Moves)%cancelCheckInterval == cancelCheckInterval-1 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		current = open.pop()
		n := nodes.at(current)
		res.Moves = append(res.Moves, n.pos)
		res.Tree = append(res.Tree, domain.Edge{From: nodes.at(n.parent).pos, To: n.pos})
	}
}
