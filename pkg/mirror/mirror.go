// Package mirror manages the floating proxy that follows the pointer while an
// item is dragged.
package mirror

import (
	"log/slog"

	"github.com/aretw0/drake/internal/logging"
	"github.com/aretw0/drake/pkg/dom"
)

// ClassName is added to every mirror node.
const ClassName = "mirror"

// Manager owns at most one mirror at a time.
type Manager struct {
	host   *dom.Node
	mirror *dom.Node
	offset dom.Point
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for degraded-mode diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New creates a Manager that appends mirrors to host.
func New(host *dom.Node, opts ...Option) *Manager {
	m := &Manager{
		host:   host,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Host returns the node mirrors are appended to.
func (m *Manager) Host() *dom.Node {
	return m.host
}

// Create clones item into a mirror positioned so that the pointer keeps the
// given offset from the mirror's top-left corner. A live mirror is returned
// unchanged. When the host is no longer part of the document Create returns
// nil and the drag continues without a mirror.
func (m *Manager) Create(item *dom.Node, offset dom.Point) *dom.Node {
	if m.mirror != nil {
		return m.mirror
	}
	if item == nil || !m.host.Connected() {
		m.logger.Debug("mirror unavailable, dragging without one")
		return nil
	}
	rect := item.Rect()
	mirror := item.Clone(true)
	mirror.AddClass(ClassName)
	mirror.SetAbsolute(true).
		SetSize(rect.W, rect.H).
		SetPosition(rect.X, rect.Y)
	m.host.AppendChild(mirror)
	m.mirror = mirror
	m.offset = offset
	return mirror
}

// Reposition moves the mirror to pointer minus the grab offset.
func (m *Manager) Reposition(pointer dom.Point) {
	if m.mirror == nil || !m.mirror.Connected() {
		return
	}
	at := pointer.Sub(m.offset)
	m.mirror.SetPosition(at.X, at.Y)
}

// Destroy detaches the mirror. Calling it without a mirror is a no-op.
func (m *Manager) Destroy() {
	if m.mirror == nil {
		return
	}
	m.mirror.Remove()
	m.mirror = nil
	m.offset = dom.Point{}
}

// Node returns the live mirror, or nil.
func (m *Manager) Node() *dom.Node {
	return m.mirror
}

// Active reports whether a mirror exists.
func (m *Manager) Active() bool {
	return m.mirror != nil
}

// Offset returns the grab offset of the live mirror.
func (m *Manager) Offset() dom.Point {
	return m.offset
}
