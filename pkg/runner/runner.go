package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/drake"
	"github.com/aretw0/drake/internal/dto"
	"github.com/aretw0/drake/pkg/board"
	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/ports"
)

// Runner replays scripts against boards.
type Runner struct {
	// Handler presents events and the final layout. Defaults to discarding.
	Handler EventHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Store receives the final layout. If nil, nothing is persisted.
	Store ports.LayoutStore

	// Delay paces steps, for watching a replay.
	Delay time.Duration

	// DrakeOptions are appended to the board's own options.
	DrakeOptions []drake.Option
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithHandler configures where events are written.
func WithHandler(h EventHandler) Option {
	return func(r *Runner) { r.Handler = h }
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.Logger = logger }
}

// WithStore persists the final layout under the board name.
func WithStore(store ports.LayoutStore) Option {
	return func(r *Runner) { r.Store = store }
}

// WithDelay waits d between steps.
func WithDelay(d time.Duration) Option {
	return func(r *Runner) { r.Delay = d }
}

// WithDrakeOptions adds options to the drake built for each run.
func WithDrakeOptions(opts ...drake.Option) Option {
	return func(r *Runner) { r.DrakeOptions = append(r.DrakeOptions, opts...) }
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = discardHandler{}
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run replays steps against b and returns the resulting layout. A session
// still live after the last step, or when the replay stops early, is canceled
// with revert. Listener errors are logged, never fatal; steps naming unknown
// nodes stop the replay.
func (r *Runner) Run(ctx context.Context, b *board.Board, steps []Step) (_ *domain.Layout, err error) {
	opts := append([]drake.Option{drake.WithLogger(r.Logger)}, r.DrakeOptions...)
	d, err := b.New(opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil && d.Dragging() {
			r.Logger.Debug("replay stopped mid-drag, reverting", "error", err)
			if cerr := d.CancelWithRevert(true); cerr != nil {
				r.Logger.Warn("listener failed", "op", "cancel", "error", cerr)
			}
		}
		d.Destroy()
	}()

	var pending []dto.Event
	for _, t := range domain.EventTypes {
		d.On(t, func(e domain.Event) error {
			pending = append(pending, dto.FromEvent(e))
			return nil
		})
	}

	for i, step := range steps {
		if i > 0 && r.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.Delay):
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pending = pending[:0]
		if err := r.apply(d, b, step); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		if err := r.flush(ctx, pending); err != nil {
			return nil, err
		}
		r.Logger.Debug("step replayed", "step", i+1, "op", step.Op, "events", len(pending), "phase", d.Phase())
	}

	if d.Dragging() {
		r.Logger.Debug("script ended mid-drag, reverting")
		pending = pending[:0]
		if err := d.CancelWithRevert(true); err != nil {
			r.Logger.Warn("listener failed", "op", "cancel", "error", err)
		}
		if err := r.flush(ctx, pending); err != nil {
			return nil, err
		}
	}

	layout := b.Snapshot()
	if r.Store != nil {
		if err := r.Store.Save(ctx, b.Name, layout); err != nil {
			return nil, fmt.Errorf("save layout: %w", err)
		}
		r.Logger.Debug("layout saved", "board", b.Name)
	}
	if err := r.Handler.Done(ctx, layout); err != nil {
		return nil, fmt.Errorf("output error: %w", err)
	}
	return layout, nil
}

func (r *Runner) flush(ctx context.Context, events []dto.Event) error {
	for _, ev := range events {
		if err := r.Handler.Event(ctx, ev); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	return nil
}

func (r *Runner) apply(d *drake.Drake, b *board.Board, s Step) error {
	var err error
	switch s.Op {
	case "down":
		err = d.PointerDown(s.Pointer().PointerEvent())
	case "move":
		err = d.PointerMove(s.Pointer().PointerEvent())
	case "up":
		err = d.PointerUp(s.Pointer().PointerEvent())
	case "start":
		item := b.Node(s.Item)
		if item == nil {
			return fmt.Errorf("%w: %q", domain.ErrUnknownNode, s.Item)
		}
		err = d.Start(item)
	case "moveto":
		target := b.Container(s.Target)
		if target == nil {
			return fmt.Errorf("%w: container %q", domain.ErrUnknownNode, s.Target)
		}
		sibling := b.Node(s.Sibling)
		if s.Sibling != "" && sibling == nil {
			return fmt.Errorf("%w: %q", domain.ErrUnknownNode, s.Sibling)
		}
		_, err = d.MoveTo(target, sibling)
	case "end":
		err = d.End()
	case "cancel":
		if s.Revert != nil {
			err = d.CancelWithRevert(*s.Revert)
		} else {
			err = d.Cancel()
		}
	case "remove":
		err = d.Remove()
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidStep, s.Op)
	}
	if err != nil {
		r.Logger.Warn("listener failed", "op", s.Op, "error", err)
	}
	return nil
}
