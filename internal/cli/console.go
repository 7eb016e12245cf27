package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
)

// SolveOptions controls a one-shot console solve.
type SolveOptions struct {
	// Mode is a mode name; empty asks on the input.
	Mode    string
	Animate bool
	Plain   bool

	ExploredDelay time.Duration
	PathDelay     time.Duration
}

// Console loads a maze file, solves it and draws the outcome.
type Console struct {
	svc *wayfinder.Service
	in  *LineReader
	out io.Writer
}

func NewConsole(svc *wayfinder.Service, in io.Reader, out io.Writer) *Console {
	return &Console{svc: svc, in: NewLineReader(in), out: out}
}

// ModePrompt lists the modes with their 1-based selection numbers.
func ModePrompt() string {
	names := domain.ModeNames()
	items := make([]string, len(names))
	for i, n := range names {
		items[i] = fmt.Sprintf("%d. %s", i+1, n)
	}
	return "Input path search mode: " + strings.Join(items, ", ") + ": "
}

// SelectMode asks for a mode until a valid number or name is entered.
func (c *Console) SelectMode(ctx context.Context) (domain.Mode, error) {
	modes := domain.Modes()
	for {
		fmt.Fprint(c.out, ModePrompt())
		line, err := c.in.ReadLine(ctx)
		if err != nil {
			return domain.BFS, err
		}
		answer, err := SanitizeInput(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			continue
		}
		if n, err := strconv.Atoi(answer); err == nil {
			if n >= 1 && n <= len(modes) {
				return modes[n-1], nil
			}
			fmt.Fprintf(c.out, "choose a number between 1 and %d\n", len(modes))
			continue
		}
		m, err := domain.ParseMode(answer)
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			continue
		}
		return m, nil
	}
}

// SolveFile reads the maze at path and runs SolveGrid.
func (c *Console) SolveFile(ctx context.Context, path string, opts SolveOptions) (*domain.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open maze: %w", err)
	}
	defer f.Close()

	g, err := gridfile.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return c.Solve(ctx, g, opts)
}

// Solve draws g, resolves the mode, searches and renders the result.
// The summary line follows the last frame.
func (c *Console) Solve(ctx context.Context, g *domain.Grid, opts SolveOptions) (*domain.Result, error) {
	animOpts := []tui.AnimatorOption{tui.WithDelays(opts.ExploredDelay, opts.PathDelay)}
	if opts.Plain {
		animOpts = append(animOpts, tui.WithRenderer(tui.PlainRenderer{}))
	}
	animator := tui.NewAnimator(c.out, animOpts...)
	animator.Draw(g)

	var mode domain.Mode
	if opts.Mode == "" {
		m, err := c.SelectMode(ctx)
		if err != nil {
			return nil, err
		}
		mode = m
	} else {
		m, err := domain.ParseMode(opts.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	res, err := c.svc.SolveGrid(ctx, g, mode)
	if err != nil {
		return res, err
	}

	if opts.Animate {
		if err := animator.Play(ctx, g, res); err != nil {
			return res, err
		}
	} else {
		painted := g.Clone()
		res.ApplyTo(painted)
		animator.Draw(painted)
	}
	printSummary(c.out, res)
	return res, nil
}
