package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/drake"
	"github.com/aretw0/drake/internal/config"
	"github.com/aretw0/drake/internal/logging"
	"github.com/aretw0/drake/pkg/adapters/file"
	"github.com/aretw0/drake/pkg/adapters/memory"
	"github.com/aretw0/drake/pkg/adapters/redis"
	"github.com/aretw0/drake/pkg/board"
	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/observability"
	"github.com/aretw0/drake/pkg/persistence"
	"github.com/aretw0/drake/pkg/ports"
)

// Options carries what every command needs.
type Options struct {
	Config config.Config
	Out    io.Writer
	Err    io.Writer
}

// Logger builds the application logger. Logs go to Err so that Out stays
// free for event streams.
func (o Options) Logger() *slog.Logger {
	return logging.New(o.Err, logging.ParseLevel(o.Config.Log.Level))
}

// backend bundles an opened layout store with its optional locker.
type backend struct {
	Store  ports.LayoutStore
	Locker ports.DistributedLocker
	Close  func() error
}

// layouts guards the store with per-board locks. It is nil without a store.
func (b *backend) layouts(logger *slog.Logger) *persistence.Manager {
	if b.Store == nil {
		return nil
	}
	return persistence.NewManager(b.Store,
		persistence.WithLocker(b.Locker),
		persistence.WithLogger(logger),
	)
}

// openBackend creates the configured layout store. The none backend returns a
// nil store.
func openBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (*backend, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("layout store ready", "backend", "redis", "addr", cfg.Redis.Addr)
		return &backend{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), cfg.Redis.Prefix),
			Close:  store.Close,
		}, nil
	case config.BackendFile:
		logger.Debug("layout store ready", "backend", "file", "path", cfg.Store.Path)
		return &backend{Store: file.New(cfg.Store.Path), Locker: memory.NewLocker(), Close: func() error { return nil }}, nil
	case config.BackendMemory:
		return &backend{Store: memory.NewStore(), Locker: memory.NewLocker(), Close: func() error { return nil }}, nil
	default:
		return &backend{Close: func() error { return nil }}, nil
	}
}

// loadBoard reads the board file and applies its stored layout, if any. A
// board without a stored layout starts from its definition; any other store
// failure is returned.
func loadBoard(ctx context.Context, path string, store ports.LayoutStore, logger *slog.Logger) (*board.Board, error) {
	b, err := board.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return b, nil
	}
	layout, err := store.Load(ctx, b.Name)
	if errors.Is(err, domain.ErrLayoutNotFound) {
		logger.Debug("no stored layout", "board", b.Name)
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load layout of %q: %w", b.Name, err)
	}
	if err := b.Apply(layout); err != nil {
		return nil, err
	}
	logger.Info("layout restored", "board", b.Name, "updated_at", layout.UpdatedAt)
	return b, nil
}

// createDrake builds a drake over b. At debug level every event is logged.
func createDrake(b *board.Board, logger *slog.Logger) (*drake.Drake, error) {
	opts := []drake.Option{drake.WithLogger(logger)}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts, drake.WithLifecycleHooks(observability.AuditHooks(logger)))
	}
	return b.New(opts...)
}
