package drake

import (
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/drake/internal/runtime"
	"github.com/aretw0/drake/pkg/dom"
	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/eligibility"
	"github.com/aretw0/drake/pkg/registry"
)

// TransitClass is set on the node previewed by a live session.
const TransitClass = runtime.TransitClass

// ErrNoDocument is returned by New when no document is given.
var ErrNoDocument = errors.New("drake: document is required")

// Drake is the high-level entry point of the library. It wraps the internal
// state machine and exposes the dragula-style API to hosts.
type Drake struct {
	runtime *runtime.Engine
	logger  *slog.Logger
}

type settings struct {
	cfg         runtime.Config
	containers  []*dom.Node
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	runtimeOpts []runtime.EngineOption
}

// Option defines a functional option for configuring a Drake.
type Option func(*settings)

// WithContainers adds containers to the initial set.
func WithContainers(containers ...*dom.Node) Option {
	return func(s *settings) {
		s.containers = append(s.containers, containers...)
	}
}

// WithIsContainer treats any node the predicate accepts as a container.
func WithIsContainer(fn eligibility.ContainerFunc) Option {
	return func(s *settings) {
		s.cfg.Eligibility.IsContainer = fn
	}
}

// WithMoves decides which items may be dragged.
func WithMoves(fn eligibility.MovesFunc) Option {
	return func(s *settings) {
		s.cfg.Eligibility.Moves = fn
	}
}

// WithAccepts decides where items may be dropped.
func WithAccepts(fn eligibility.AcceptsFunc) Option {
	return func(s *settings) {
		s.cfg.Eligibility.Accepts = fn
	}
}

// WithInvalid marks handles that never start a drag.
func WithInvalid(fn eligibility.InvalidFunc) Option {
	return func(s *settings) {
		s.cfg.Eligibility.Invalid = fn
	}
}

// WithCopy copies every dragged item instead of moving it.
func WithCopy(v bool) Option {
	return WithCopyFunc(eligibility.Static(v))
}

// WithCopyFunc decides per drag whether the item is copied.
func WithCopyFunc(fn eligibility.CopyFunc) Option {
	return func(s *settings) {
		s.cfg.Eligibility.Copy = fn
	}
}

// WithCopySortSource lets copies be reordered inside their source container.
func WithCopySortSource(v bool) Option {
	return func(s *settings) {
		s.cfg.CopySortSource = v
	}
}

// WithRevertOnSpill puts spilled items back where they started.
func WithRevertOnSpill(v bool) Option {
	return func(s *settings) {
		s.cfg.RevertOnSpill = v
	}
}

// WithRemoveOnSpill detaches spilled items from the tree.
func WithRemoveOnSpill(v bool) Option {
	return func(s *settings) {
		s.cfg.RemoveOnSpill = v
	}
}

// WithDirection sets the axis used to resolve drop positions.
func WithDirection(d domain.Direction) Option {
	return func(s *settings) {
		s.cfg.Direction = d
	}
}

// WithMirrorContainer sets the node that hosts the mirror. Defaults to the body.
func WithMirrorContainer(n *dom.Node) Option {
	return func(s *settings) {
		s.cfg.MirrorContainer = n
	}
}

// WithIgnoreInputTextSelection controls whether presses in form fields may
// start drags. Enabled by default.
func WithIgnoreInputTextSelection(v bool) Option {
	return func(s *settings) {
		s.cfg.Eligibility.IgnoreInputTextSelection = v
	}
}

// WithSlideFactor sets how far the pointer may travel before a press becomes a drag.
func WithSlideFactor(x, y float64) Option {
	return func(s *settings) {
		s.cfg.SlideFactor = dom.Point{X: x, Y: y}
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// WithEngineOptions passes options straight to the state machine, such as a
// fixed clock in tests.
func WithEngineOptions(opts ...runtime.EngineOption) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, opts...)
	}
}

// New creates a drake over doc. containers is the initial container set; more
// can be added later through Containers or matched with WithIsContainer.
func New(doc *dom.Document, containers []*dom.Node, opts ...Option) (*Drake, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	s := &settings{containers: containers}
	s.cfg.Eligibility.IgnoreInputTextSelection = true
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLogger(s.logger),
		runtime.WithLifecycleHooks(s.hooks),
	}
	runtimeOpts = append(runtimeOpts, s.runtimeOpts...)

	d := &Drake{
		runtime: runtime.NewEngine(doc, s.containers, s.cfg, runtimeOpts...),
		logger:  s.logger,
	}
	d.logger.Debug("drake ready", "containers", len(s.containers), "direction", d.runtime.Config().Direction)
	return d, nil
}

// Document returns the tree the drake operates on.
func (d *Drake) Document() *dom.Document {
	return d.runtime.Document()
}

// Containers returns the live container set.
func (d *Drake) Containers() *eligibility.ContainerSet {
	return d.runtime.Containers()
}

// On subscribes fn to events of type t.
func (d *Drake) On(t domain.EventType, fn domain.Listener) registry.Subscription {
	return d.runtime.On(t, fn)
}

// Off removes a subscription.
func (d *Drake) Off(id registry.Subscription) bool {
	return d.runtime.Off(id)
}

// PointerDown feeds a press.
func (d *Drake) PointerDown(ev domain.PointerEvent) error {
	return d.runtime.PointerDown(ev)
}

// PointerMove feeds a move.
func (d *Drake) PointerMove(ev domain.PointerEvent) error {
	return d.runtime.PointerMove(ev)
}

// PointerUp feeds a release.
func (d *Drake) PointerUp(ev domain.PointerEvent) error {
	return d.runtime.PointerUp(ev)
}

// Start begins a session for item without a pointer.
func (d *Drake) Start(item *dom.Node) error {
	return d.runtime.Start(item)
}

// MoveTo relocates the preview of the live session.
func (d *Drake) MoveTo(target, sibling *dom.Node) (bool, error) {
	return d.runtime.MoveTo(target, sibling)
}

// End drops the live session at its previewed position.
func (d *Drake) End() error {
	return d.runtime.End()
}

// Cancel ends the live session, reverting if configured to revert on spill.
func (d *Drake) Cancel() error {
	return d.runtime.Cancel()
}

// CancelWithRevert ends the live session, optionally putting the item back.
func (d *Drake) CancelWithRevert(revert bool) error {
	return d.runtime.CancelWithRevert(revert)
}

// Remove ends the live session by detaching the item.
func (d *Drake) Remove() error {
	return d.runtime.Remove()
}

// CanMove reports whether item could be dragged.
func (d *Drake) CanMove(item *dom.Node) bool {
	return d.runtime.CanMove(item)
}

// Dragging reports whether a session is live.
func (d *Drake) Dragging() bool {
	return d.runtime.Dragging()
}

// Phase returns the state of the machine.
func (d *Drake) Phase() domain.Phase {
	return d.runtime.Phase()
}

// Session returns a snapshot of the live session.
func (d *Drake) Session() (domain.Session, bool) {
	return d.runtime.Session()
}

// Destroy ends any live session and detaches every listener.
func (d *Drake) Destroy() error {
	return d.runtime.Destroy()
}
