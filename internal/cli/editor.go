package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// Editor is an interactive line-oriented maze editor. It keeps a working grid
// in memory and only touches the store on save and load.
type Editor struct {
	svc      *wayfinder.Service
	out      io.Writer
	animator *tui.Animator
	animate  bool
	help     func() string
	logger   *slog.Logger

	name string
	grid *domain.Grid
	draw domain.DrawMode
	mode domain.Mode
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithAnimator replaces the default animator used to draw the grid.
func WithAnimator(a *tui.Animator) EditorOption {
	return func(e *Editor) {
		e.animator = a
	}
}

// WithAnimation toggles the step-by-step replay after solve.
func WithAnimation(enabled bool) EditorOption {
	return func(e *Editor) {
		e.animate = enabled
	}
}

// WithMode sets the initial search mode.
func WithMode(m domain.Mode) EditorOption {
	return func(e *Editor) {
		e.mode = m
	}
}

// WithEditorLogger sets the logger for store failures.
func WithEditorLogger(l *slog.Logger) EditorOption {
	return func(e *Editor) {
		e.logger = l
	}
}

// WithHelp overrides the help renderer.
func WithHelp(fn func() string) EditorOption {
	return func(e *Editor) {
		e.help = fn
	}
}

// NewEditor opens grid under name. The grid is owned by the editor from now on.
func NewEditor(svc *wayfinder.Service, name string, grid *domain.Grid, out io.Writer, opts ...EditorOption) *Editor {
	e := &Editor{
		svc:     svc,
		out:     out,
		animate: true,
		help:    tui.RenderHelp,
		logger:  logging.NewNop(),
		name:    name,
		grid:    grid,
		draw:    domain.DrawWalls,
		mode:    domain.BFS,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.animator == nil {
		e.animator = tui.NewAnimator(out)
	}
	return e
}

// Grid returns the working grid.
func (e *Editor) Grid() *domain.Grid { return e.grid }

// Name returns the maze name used by save and load without arguments.
func (e *Editor) Name() string { return e.name }

// Mode returns the current search mode.
func (e *Editor) Mode() domain.Mode { return e.mode }

// DrawMode returns the current drawing mode.
func (e *Editor) DrawMode() domain.DrawMode { return e.draw }

// Run reads commands from in until quit, EOF or ctx cancellation.
// Command errors are printed and the loop continues.
func (e *Editor) Run(ctx context.Context, in io.Reader) error {
	reader := NewLineReader(in)
	e.animator.Draw(e.grid)
	e.status()

	for {
		fmt.Fprint(e.out, "> ")
		line, err := reader.ReadLine(ctx)
		if err != nil {
			if isInterrupted(err) {
				fmt.Fprintln(e.out)
				return nil
			}
			return err
		}

		quit, err := e.Exec(ctx, line)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Fprintf(e.out, "error: %v\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

// Exec runs a single command line.
func (e *Editor) Exec(ctx context.Context, line string) (quit bool, err error) {
	line, err = SanitizeInput(line)
	if err != nil {
		return false, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprint(e.out, e.help())
		return false, nil
	case "show":
		e.redraw()
		return false, nil
	case "wall", "start", "dest", "destination", "erase", "paint":
		return false, e.edit(cmd, args)
	case "draw":
		e.draw = e.draw.Next()
		e.status()
		return false, nil
	case "mode":
		return false, e.setMode(args)
	case "clear":
		e.grid.Clear()
		e.redraw()
		return false, nil
	case "clear-explored":
		e.grid.ClearExplored()
		e.redraw()
		return false, nil
	case "solve":
		return false, e.solve(ctx)
	case "save":
		return false, e.save(ctx, args)
	case "load":
		return false, e.load(ctx, args)
	default:
		return false, fmt.Errorf("unknown command %q (type help)", cmd)
	}
}

func (e *Editor) edit(cmd string, args []string) error {
	x, y, err := parseCoords(args)
	if err != nil {
		return err
	}
	if !e.grid.InBounds(x, y) {
		return fmt.Errorf("(%d,%d) is outside the %dx%d grid", x, y, e.grid.Width(), e.grid.Height())
	}

	// Painting over stale search output would leave a misleading trail.
	e.grid.ClearExplored()

	var applied bool
	switch cmd {
	case "wall":
		applied = e.grid.SetWall(x, y)
	case "start":
		applied = e.grid.SetStart(x, y)
	case "dest", "destination":
		applied = e.grid.SetDestination(x, y)
	case "erase":
		applied = e.grid.ClearCell(x, y)
	case "paint":
		applied = e.draw.Apply(e.grid, x, y)
	}
	e.redraw()
	if !applied {
		fmt.Fprintf(e.out, "(%d,%d) unchanged\n", x, y)
	}
	return nil
}

func (e *Editor) setMode(args []string) error {
	if len(args) == 0 {
		e.mode = e.mode.Next()
		e.status()
		return nil
	}
	m, err := domain.ParseMode(strings.Join(args, " "))
	if err != nil {
		return err
	}
	e.mode = m
	e.status()
	return nil
}

func (e *Editor) solve(ctx context.Context) error {
	e.grid.ClearExplored()
	res, err := e.svc.SolveGrid(ctx, e.grid, e.mode)
	if err != nil {
		return err
	}

	if e.animate {
		if err := e.animator.Play(ctx, e.grid, res); err != nil {
			return err
		}
	}
	res.ApplyTo(e.grid)
	if !e.animate {
		e.animator.Draw(e.grid)
	}
	printSummary(e.out, res)
	return nil
}

func (e *Editor) save(ctx context.Context, args []string) error {
	name := e.name
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return errors.New("save needs a name")
	}
	if err := e.svc.Put(ctx, name, e.grid); err != nil {
		e.logger.Error("Failed to save maze", "maze", name, "err", err)
		return err
	}
	e.name = name
	printSystemMessage(e.out, "Saved %q", name)
	return nil
}

func (e *Editor) load(ctx context.Context, args []string) error {
	name := e.name
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return errors.New("load needs a name")
	}
	g, err := e.svc.Get(ctx, name)
	if err != nil {
		e.logger.Warn("Failed to load maze, keeping current grid", "maze", name, "err", err)
		return err
	}
	e.grid = g
	e.name = name
	e.redraw()
	printSystemMessage(e.out, "Loaded %q", name)
	return nil
}

func (e *Editor) redraw() {
	e.animator.Draw(e.grid)
}

func (e *Editor) status() {
	name := e.name
	if name == "" {
		name = "(unsaved)"
	}
	printSystemMessage(e.out, "maze=%s %dx%d draw=%s mode=%s",
		name, e.grid.Width(), e.grid.Height(), e.draw, e.mode)
}

func parseCoords(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, errors.New("expected coordinates: x y")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x %q", args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y %q", args[1])
	}
	return x, y, nil
}

func printSummary(w io.Writer, res *domain.Result) {
	fmt.Fprintf(w, "Explored cells: %d, Path: %d cells.\n", res.Explored(), len(res.Path))
}
