package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Animator replays a search result on a copy of the grid one cell at a time.
type Animator struct {
	out           io.Writer
	renderer      GridRenderer
	exploredDelay time.Duration
	pathDelay     time.Duration
	clear         func()
}

// AnimatorOption configures an Animator.
type AnimatorOption func(*Animator)

// WithDelays sets the pause after each explored cell and each path cell.
func WithDelays(explored, path time.Duration) AnimatorOption {
	return func(a *Animator) {
		a.exploredDelay = explored
		a.pathDelay = path
	}
}

// WithRenderer overrides the renderer chosen by NewAnimator.
func WithRenderer(r GridRenderer) AnimatorOption {
	return func(a *Animator) {
		a.renderer = r
	}
}

// NewAnimator writes frames to out. The screen is cleared between frames only
// when out is a terminal; otherwise frames are appended.
func NewAnimator(out io.Writer, opts ...AnimatorOption) *Animator {
	a := &Animator{
		out:           out,
		exploredDelay: 10 * time.Millisecond,
		pathDelay:     10 * time.Millisecond,
		clear:         func() {},
	}
	if IsTerminal(out) {
		o := termenv.NewOutput(out)
		a.clear = func() {
			o.ClearScreen()
		}
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.renderer == nil {
		a.renderer = NewColorRendererFor(out)
	}
	return a
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Draw renders one frame.
func (a *Animator) Draw(g *domain.Grid) {
	a.clear()
	fmt.Fprint(a.out, a.renderer.Render(g))
}

// Play paints res.Moves as Explored and then res.Path as Path on a copy of g,
// drawing a frame after every cell. It stops early when ctx is done.
func (a *Animator) Play(ctx context.Context, g *domain.Grid, res *domain.Result) error {
	work := g.Clone()
	a.Draw(work)
	if err := a.fill(ctx, work, res.Moves, domain.Explored, a.exploredDelay); err != nil {
		return err
	}
	return a.fill(ctx, work, res.Path, domain.Path, a.pathDelay)
}

func (a *Animator) fill(ctx context.Context, g *domain.Grid, cells []domain.Point, c domain.Cell, delay time.Duration) error {
	var tick <-chan time.Time
	if delay > 0 {
		t := time.NewTicker(delay)
		defer t.Stop()
		tick = t.C
	}

	for _, p := range cells {
		g.Paint([]domain.Point{p}, c)
		a.Draw(g)

		if tick == nil {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
	return nil
}
