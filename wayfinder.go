package wayfinder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/internal/search"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/session"
)

// Service is the high-level entry point for editing and solving stored mazes.
// It is safe for concurrent use; operations on the same maze are serialised.
type Service struct {
	store       ports.MazeStore
	locker      ports.DistributedLocker
	sessions    *session.Manager
	engine      *search.Engine
	hooks       domain.SearchHooks
	logger      *slog.Logger
	maxExplored int
	maxCells    int
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithStore sets the maze store. Defaults to an in-memory store.
func WithStore(store ports.MazeStore) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithLocker enables cross-replica locking of mazes.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Service) {
		s.locker = locker
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHooks registers observability hooks. Repeated calls are merged.
func WithHooks(hooks domain.SearchHooks) Option {
	return func(s *Service) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithMaxExplored caps how many cells a single search may explore. Zero means unlimited.
func WithMaxExplored(n int) Option {
	return func(s *Service) {
		s.maxExplored = n
	}
}

// WithMaxCells caps the area of mazes the Service creates. Zero means domain.MaxCells.
func WithMaxCells(n int) Option {
	return func(s *Service) {
		s.maxCells = n
	}
}

// SolveOptions tune a Solve call.
type SolveOptions struct {
	// Persist writes the painted result (Explored and Path cells) back to the store.
	Persist bool
}

// New initializes a Service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.store == nil {
		s.store = memory.NewStore()
	}

	sessionOpts := []session.Option{
		session.WithLogger(s.logger),
		session.WithMaxCells(s.maxCells),
	}
	if s.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(s.locker))
	}
	s.sessions = session.NewManager(s.store, sessionOpts...)
	s.engine = search.NewEngine(
		search.WithMaxExplored(s.maxExplored),
		search.WithLogger(s.logger),
	)
	return s
}

// Store returns the underlying maze store.
func (s *Service) Store() ports.MazeStore {
	return s.store
}

// Create stores a new empty maze. It fails with domain.ErrMazeExists if the name is taken.
func (s *Service) Create(ctx context.Context, name string, width, height int) (*domain.Grid, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := domain.CheckDimensions(width, height, s.maxCells); err != nil {
		return nil, err
	}
	grid, err := domain.NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	err = s.sessions.WithLock(ctx, name, func(ctx context.Context) error {
		_, err := s.store.Load(ctx, name)
		if err == nil {
			return fmt.Errorf("%w: %q", domain.ErrMazeExists, name)
		}
		if !errors.Is(err, domain.ErrMazeNotFound) {
			return err
		}
		return s.store.Save(ctx, name, grid)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Maze created", "maze", name, "width", width, "height", height)
	return grid, nil
}

// Get loads a maze.
func (s *Service) Get(ctx context.Context, name string) (*domain.Grid, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return s.sessions.Load(ctx, name)
}

// Put stores grid under name, replacing any previous maze.
func (s *Service) Put(ctx context.Context, name string, grid *domain.Grid) error {
	if err := validateName(name); err != nil {
		return err
	}
	return s.sessions.Save(ctx, name, grid)
}

// Delete removes a maze. Deleting an unknown maze is not an error.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, name)
}

// List returns the stored maze names.
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.sessions.List(ctx)
}

// Edit applies fn to the stored maze and saves it, holding the maze lock throughout.
// When fn fails nothing is saved.
func (s *Service) Edit(ctx context.Context, name string, fn func(*domain.Grid) error) (*domain.Grid, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return s.sessions.Update(ctx, name, fn)
}

// Solve clears previous results from the stored maze and searches it with mode.
// With opts.Persist the explored cells and the path are painted and saved.
func (s *Service) Solve(ctx context.Context, name string, mode domain.Mode, opts SolveOptions) (*domain.Result, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	var res *domain.Result
	err := s.sessions.WithLock(ctx, name, func(ctx context.Context) error {
		grid, err := s.store.Load(ctx, name)
		if err != nil {
			return err
		}
		grid.ClearExplored()

		res, err = s.run(ctx, name, grid, mode)
		if err != nil {
			return err
		}
		if !opts.Persist {
			return nil
		}
		res.ApplyTo(grid)
		return s.store.Save(ctx, name, grid)
	})
	return res, err
}

// SolveGrid searches a copy of grid without touching the store.
// Explored and Path cells on grid are ignored.
func (s *Service) SolveGrid(ctx context.Context, grid *domain.Grid, mode domain.Mode) (*domain.Result, error) {
	work := grid.Clone()
	work.ClearExplored()
	return s.run(ctx, "", work, mode)
}

// run executes one search and reports it to hooks and the log.
func (s *Service) run(ctx context.Context, name string, grid *domain.Grid, mode domain.Mode) (*domain.Result, error) {
	event := &domain.SearchEvent{
		Timestamp: time.Now(),
		Maze:      name,
		Mode:      mode,
	}
	if s.hooks.OnSearchStart != nil {
		s.hooks.OnSearchStart(ctx, event)
	}

	res, err := s.engine.FindPath(ctx, grid, mode)

	event.Duration = time.Since(event.Timestamp)
	event.Err = err
	if res != nil {
		event.Explored = res.Explored()
		event.PathLength = len(res.Path)
		event.Found = res.Found
	}
	if s.hooks.OnSearchDone != nil {
		s.hooks.OnSearchDone(ctx, event)
	}

	if err != nil {
		s.logger.Warn("Search failed", "maze", name, "mode", mode.String(), "err", err)
		return res, err
	}
	s.logger.Info("Search completed",
		"maze", name,
		"mode", mode.String(),
		"found", res.Found,
		"explored", event.Explored,
		"path", event.PathLength,
		"duration", event.Duration,
	)
	return res, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	return nil
}

var _ ports.Solver = (*Service)(nil)
