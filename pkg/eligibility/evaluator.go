// Package eligibility answers whether an item may be grabbed and where it may
// be dropped. Every strategy is optional and defaults to permissive behavior.
package eligibility

import (
	"github.com/aretw0/drake/pkg/dom"
)

// ContainerFunc reports whether el should be treated as a container even
// though it is not in the container set.
type ContainerFunc func(el *dom.Node) bool

// MovesFunc decides whether item may be dragged. handle is the node that was
// pressed and sibling the node following item.
type MovesFunc func(item, source, handle, sibling *dom.Node) bool

// AcceptsFunc decides whether item may be dropped into target before sibling
// (nil sibling means the end of target).
type AcceptsFunc func(item, target, source, sibling *dom.Node) bool

// InvalidFunc marks items or handles that never start a drag.
type InvalidFunc func(item, handle *dom.Node) bool

// CopyFunc decides, once per drag, whether the item is copied instead of moved.
type CopyFunc func(item, source *dom.Node) bool

// Static returns a CopyFunc that always answers v.
func Static(v bool) CopyFunc {
	return func(_, _ *dom.Node) bool { return v }
}

// Config is the set of strategies consulted by the Evaluator.
type Config struct {
	IsContainer ContainerFunc
	Moves       MovesFunc
	Accepts     AcceptsFunc
	Invalid     InvalidFunc
	Copy        CopyFunc

	// IgnoreInputTextSelection keeps presses inside form fields and editable
	// content from turning into drags while the pointer stays there.
	IgnoreInputTextSelection bool
}

// Evaluator is a stateless predicate surface over a Config and a live
// container set.
type Evaluator struct {
	cfg        Config
	containers *ContainerSet
}

// New creates an Evaluator. A nil set is replaced by an empty one.
func New(cfg Config, containers *ContainerSet) *Evaluator {
	if containers == nil {
		containers = NewContainerSet()
	}
	return &Evaluator{cfg: cfg, containers: containers}
}

// Containers returns the live container set.
func (e *Evaluator) Containers() *ContainerSet {
	return e.containers
}

// IgnoresTextSelection reports whether presses in inputs are held back.
func (e *Evaluator) IgnoresTextSelection() bool {
	return e.cfg.IgnoreInputTextSelection
}

// IsContainer reports whether n is a drop container.
func (e *Evaluator) IsContainer(n *dom.Node) bool {
	if n == nil {
		return false
	}
	if e.containers.Contains(n) {
		return true
	}
	return e.cfg.IsContainer != nil && e.cfg.IsContainer(n)
}

// Locate finds the draggable item for a pressed handle: the top-most ancestor
// of handle whose parent is a container. Containers themselves are never
// draggable, and an invalid node on the way up aborts the search.
func (e *Evaluator) Locate(handle *dom.Node) (item, source *dom.Node, ok bool) {
	if handle == nil || e.IsContainer(handle) {
		return nil, nil, false
	}
	item = handle
	for item.Parent() != nil && !e.IsContainer(item.Parent()) {
		if e.invalid(item, handle) {
			return nil, nil, false
		}
		item = item.Parent()
	}
	source = item.Parent()
	if source == nil {
		return nil, nil, false
	}
	return item, source, true
}

// CanGrab reports whether a press on handle may drag item out of source.
// trigger is the node under the pointer when the drag would begin; it may be
// nil when unknown.
func (e *Evaluator) CanGrab(item, source, handle, trigger *dom.Node) bool {
	if item == nil || source == nil {
		return false
	}
	if e.invalid(item, handle) {
		return false
	}
	if e.cfg.Moves != nil && !e.cfg.Moves(item, source, handle, item.NextSibling()) {
		return false
	}
	if e.cfg.IgnoreInputTextSelection && dom.IsInput(trigger) {
		return false
	}
	return true
}

// CanAccept reports whether item may land in target before sibling.
func (e *Evaluator) CanAccept(item, target, source, sibling *dom.Node) bool {
	if e.cfg.Accepts == nil {
		return true
	}
	return e.cfg.Accepts(item, target, source, sibling)
}

// ShouldCopy resolves the copy flag for a drag that is about to start.
func (e *Evaluator) ShouldCopy(item, source *dom.Node) bool {
	return e.cfg.Copy != nil && e.cfg.Copy(item, source)
}

func (e *Evaluator) invalid(item, handle *dom.Node) bool {
	return e.cfg.Invalid != nil && e.cfg.Invalid(item, handle)
}
