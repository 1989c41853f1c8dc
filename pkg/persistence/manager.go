package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/drake/internal/logging"
	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/ports"
)

// DefaultLockTTL bounds how long a write may hold the distributed lock.
const DefaultLockTTL = 5 * time.Second

var _ ports.LayoutStore = (*Manager)(nil)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager guards a LayoutStore with per-board locks. Entries are reference
// counted and dropped once no caller holds them.
type Manager struct {
	store ports.LayoutStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.DistributedLocker
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over store.
func NewManager(store ports.LayoutStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		ttl:    DefaultLockTTL,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates the entry of board and increments its count.
// Callers lock entry.mu and call release after unlocking it.
func (m *Manager) acquire(board string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[board]
	if !ok {
		entry = &lockEntry{}
		m.locks[board] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(board string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[board]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, board)
	}
}

// Load retrieves the stored layout of board.
func (m *Manager) Load(ctx context.Context, board string) (*domain.Layout, error) {
	var layout *domain.Layout
	err := m.WithLock(ctx, board, func(ctx context.Context) error {
		var err error
		layout, err = m.store.Load(ctx, board)
		return err
	})
	return layout, err
}

// LoadOrInit loads the layout of board. When none is stored, init provides
// one, which is saved before it is returned.
func (m *Manager) LoadOrInit(ctx context.Context, board string, init func() *domain.Layout) (*domain.Layout, error) {
	var layout *domain.Layout
	err := m.WithLock(ctx, board, func(ctx context.Context) error {
		var err error
		layout, err = m.store.Load(ctx, board)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrLayoutNotFound) {
			return fmt.Errorf("failed to check layout existence: %w", err)
		}

		layout = init()
		if err := m.store.Save(ctx, board, layout); err != nil {
			return fmt.Errorf("failed to initialize layout: %w", err)
		}
		return nil
	})
	return layout, err
}

// Save persists the layout of board.
func (m *Manager) Save(ctx context.Context, board string, layout *domain.Layout) error {
	return m.WithLock(ctx, board, func(ctx context.Context) error {
		return m.store.Save(ctx, board, layout)
	})
}

// Delete removes the layout of board.
func (m *Manager) Delete(ctx context.Context, board string) error {
	return m.WithLock(ctx, board, func(ctx context.Context) error {
		return m.store.Delete(ctx, board)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying layout store.
func (m *Manager) Store() ports.LayoutStore {
	return m.store
}

// WithLock runs fn while holding the lock of board.
func (m *Manager) WithLock(ctx context.Context, board string, fn func(context.Context) error) error {
	entry := m.acquire(board)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(board)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, "board:"+board, m.ttl)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("failed to release distributed lock, it will expire",
					"board", board,
					"error", err,
				)
			}
		}()
	}

	return fn(ctx)
}
