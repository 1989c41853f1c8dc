package runtime

import (
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/drake/internal/logging"
	"github.com/aretw0/drake/pkg/dom"
	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/eligibility"
	"github.com/aretw0/drake/pkg/mirror"
	"github.com/aretw0/drake/pkg/registry"
	"github.com/google/uuid"
)

// TransitClass marks the element being previewed while a session is live.
const TransitClass = "transit"

// Config holds the behavioral switches of the engine. Predicates live in
// Eligibility.
type Config struct {
	Eligibility eligibility.Config

	Direction      domain.Direction
	CopySortSource bool
	RevertOnSpill  bool
	RemoveOnSpill  bool

	// SlideFactor is the distance the pointer may travel on each axis
	// before a press turns into a drag.
	SlideFactor dom.Point

	// MirrorContainer receives the mirror. Defaults to the document body.
	MirrorContainer *dom.Node
}

// Engine is the drag state machine. At most one session is live at a time.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	doc        *dom.Document
	cfg        Config
	containers *eligibility.ContainerSet
	eval       *eligibility.Evaluator
	mirror     *mirror.Manager
	events     *registry.Registry
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string

	grab      *grab
	session   *session
	destroyed bool
}

// EngineOption configures optional engine collaborators.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks subscribes the non-nil hooks to their events.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		for t, fn := range hooks.Listeners() {
			e.events.On(t, fn)
		}
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides how session ids are minted.
func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// NewEngine creates an idle engine over doc with the given initial containers.
func NewEngine(doc *dom.Document, containers []*dom.Node, cfg Config, opts ...EngineOption) *Engine {
	if cfg.Direction == "" {
		cfg.Direction = domain.Vertical
	}
	if cfg.MirrorContainer == nil {
		cfg.MirrorContainer = doc.Body()
	}
	set := eligibility.NewContainerSet(containers...)
	e := &Engine{
		doc:        doc,
		cfg:        cfg,
		containers: set,
		eval:       eligibility.New(cfg.Eligibility, set),
		events:     registry.NewRegistry(),
		logger:     logging.NewNop(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.mirror = mirror.New(cfg.MirrorContainer, mirror.WithLogger(e.logger))
	return e
}

// Containers returns the live container set. Changes take effect on the next
// eligibility check.
func (e *Engine) Containers() *eligibility.ContainerSet {
	return e.containers
}

// Document returns the tree the engine operates on.
func (e *Engine) Document() *dom.Document {
	return e.doc
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// On subscribes fn to events of type t.
func (e *Engine) On(t domain.EventType, fn domain.Listener) registry.Subscription {
	return e.events.On(t, fn)
}

// Off removes a subscription.
func (e *Engine) Off(id registry.Subscription) bool {
	return e.events.Off(id)
}

// Phase returns the current state of the machine.
func (e *Engine) Phase() domain.Phase {
	switch {
	case e.session != nil:
		return domain.PhaseDragging
	case e.grab != nil:
		return domain.PhaseGrabbed
	}
	return domain.PhaseIdle
}

// Dragging reports whether a session is live.
func (e *Engine) Dragging() bool {
	return e.session != nil
}

// Destroyed reports whether Destroy has been called.
func (e *Engine) Destroyed() bool {
	return e.destroyed
}

// Session returns a snapshot of the live session.
func (e *Engine) Session() (domain.Session, bool) {
	s := e.session
	if s == nil {
		return domain.Session{}, false
	}
	return domain.Session{
		ID:        s.id,
		Phase:     domain.PhaseDragging,
		Item:      s.item,
		Source:    s.source,
		Copy:      s.copy,
		Target:    s.lastDropTarget,
		Sibling:   s.currentSibling,
		Mirror:    e.mirror.Node(),
		Moved:     s.moved,
		StartedAt: s.started,
	}, true
}

// Destroy ends any live session gracefully, drops every subscription and
// makes the engine ignore further input.
func (e *Engine) Destroy() error {
	if e.destroyed {
		return nil
	}
	err := e.End()
	e.grab = nil
	e.events.Clear()
	e.destroyed = true
	e.logger.Debug("engine destroyed")
	return err
}

// emitter collects listener failures for the duration of one public call.
type emitter struct {
	e    *Engine
	errs []error
}

func (e *Engine) emitter() *emitter {
	return &emitter{e: e}
}

func (em *emitter) emit(s *session, ev domain.Event) {
	ev.SessionID = s.id
	ev.Timestamp = em.e.now()
	if ev.Source == nil && ev.Type != domain.EventCloned {
		ev.Source = s.source
	}
	em.e.logger.Debug("drag event", "event", ev)
	if err := em.e.events.Emit(ev); err != nil {
		em.errs = append(em.errs, err)
	}
}

func (em *emitter) err() error {
	return errors.Join(em.errs...)
}
