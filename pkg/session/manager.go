package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates maze access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.MazeStore

	mu    sync.Mutex            // guards locks
	locks map[string]*lockEntry // active locks by maze name

	locker   ports.DistributedLocker
	lockTTL  time.Duration
	logger   *slog.Logger
	maxCells int
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks. Defaults to ports.DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithMaxCells caps the area of mazes created by LoadOrCreate.
// Zero means domain.MaxCells.
func WithMaxCells(n int) Option {
	return func(m *Manager) {
		m.maxCells = n
	}
}

// NewManager creates a new Manager over the given store.
func NewManager(store ports.MazeStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: ports.DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu and call release(name) after unlocking.
func (m *Manager) acquire(name string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		entry = &lockEntry{}
		m.locks[name] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, name)
	}
}

// Load retrieves a maze from the store.
func (m *Manager) Load(ctx context.Context, name string) (*domain.Grid, error) {
	var grid *domain.Grid
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		grid, err = m.store.Load(ctx, name)
		return err
	})
	return grid, err
}

// LoadOrCreate loads a maze, creating an empty width x height one if it does not exist.
func (m *Manager) LoadOrCreate(ctx context.Context, name string, width, height int) (*domain.Grid, error) {
	var grid *domain.Grid
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		grid, err = m.store.Load(ctx, name)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrMazeNotFound) {
			return fmt.Errorf("failed to check maze existence: %w", err)
		}

		if err := domain.CheckDimensions(width, height, m.maxCells); err != nil {
			return err
		}
		grid, err = domain.NewGrid(width, height)
		if err != nil {
			return err
		}
		if err := m.store.Save(ctx, name, grid); err != nil {
			return fmt.Errorf("failed to initialize maze: %w", err)
		}
		return nil
	})
	return grid, err
}

// Save persists the maze.
func (m *Manager) Save(ctx context.Context, name string, grid *domain.Grid) error {
	return m.WithLock(ctx, name, func(ctx context.Context) error {
		return m.store.Save(ctx, name, grid)
	})
}

// Update loads the maze, applies fn and saves the result, all under the maze lock.
// Nothing is written when fn returns an error.
func (m *Manager) Update(ctx context.Context, name string, fn func(*domain.Grid) error) (*domain.Grid, error) {
	var grid *domain.Grid
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		grid, err = m.store.Load(ctx, name)
		if err != nil {
			return err
		}
		if err := fn(grid); err != nil {
			return err
		}
		return m.store.Save(ctx, name, grid)
	})
	if err != nil {
		return nil, err
	}
	return grid, nil
}

// Delete removes the maze from the store.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.WithLock(ctx, name, func(ctx context.Context) error {
		return m.store.Delete(ctx, name)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying maze store.
func (m *Manager) Store() ports.MazeStore {
	return m.store
}

// WithLock executes fn while holding the lock for the maze.
func (m *Manager) WithLock(ctx context.Context, name string, fn func(context.Context) error) error {
	entry := m.acquire(name)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(name)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, name, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"maze", name,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
