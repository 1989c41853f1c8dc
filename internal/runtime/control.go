package runtime

import (
	"github.com/aretw0/drake/pkg/dom"
	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/geometry"
)

// Start begins a session for item without a pointer, as keyboard-driven
// drags do. Click eligibility is bypassed; item must still sit directly in a
// container. No mirror is created.
func (e *Engine) Start(item *dom.Node) error {
	if e.destroyed || e.session != nil || e.grab != nil {
		return nil
	}
	source := item.Parent()
	if source == nil || !e.eval.IsContainer(source) {
		return nil
	}
	em := e.emitter()
	s := e.start(em, item, source)
	if e.session == s {
		s.dragged().AddClass(TransitClass)
	}
	return em.err()
}

// CanMove reports whether a press on item would be allowed to drag it.
func (e *Engine) CanMove(item *dom.Node) bool {
	it, source, ok := e.eval.Locate(item)
	return ok && e.eval.CanGrab(it, source, item, nil)
}

// MoveTo relocates the preview of the live session into target before
// sibling (nil means the end). A sibling nested inside a child of target
// stands for that child. It reports whether the preview now sits there.
// Targets that are not containers or that reject the item are ignored.
func (e *Engine) MoveTo(target, sibling *dom.Node) (bool, error) {
	s := e.session
	if e.destroyed || s == nil || target == nil {
		return false, nil
	}
	item := s.dragged()
	if sibling != nil {
		if item.Contains(sibling) {
			sibling = e.nextSibling(item)
		} else if sibling = geometry.ImmediateChild(target, sibling); sibling == nil || sibling == target {
			return false, nil
		}
	}
	switch {
	case !e.eval.IsContainer(target), item.Contains(target):
		return false, nil
	case sibling != nil && sibling.Parent() != target:
		return false, nil
	case target == s.source && s.copy != nil && !e.cfg.CopySortSource:
		return false, nil
	case !e.initialPlacement(s, target, sibling) && !e.eval.CanAccept(s.item, target, s.source, sibling):
		return false, nil
	}
	if item.Parent() == target && sibling == e.nextSibling(item) {
		return true, nil
	}

	em := e.emitter()
	if target != s.lastDropTarget {
		if s.lastDropTarget != nil {
			em.emit(s, domain.Event{Type: domain.EventOut, Item: item, Container: s.lastDropTarget})
		}
		s.lastDropTarget = target
		em.emit(s, domain.Event{Type: domain.EventOver, Item: item, Container: target})
		if e.session != s {
			return false, em.err()
		}
	}
	target.InsertBefore(item, sibling)
	s.currentSibling = sibling
	s.moved = !e.atOrigin(s)
	em.emit(s, domain.Event{Type: domain.EventShadow, Item: item, Container: target})
	return true, em.err()
}

// End finishes the live session at its previewed position.
func (e *Engine) End() error {
	s := e.session
	if s == nil {
		e.grab = nil
		return nil
	}
	em := e.emitter()
	if parent := s.dragged().Parent(); parent != nil {
		e.drop(em, s, parent)
	} else {
		e.cancel(em, s, false)
	}
	return em.err()
}

// Cancel ends the live session, reverting when the engine is configured to
// revert on spill.
func (e *Engine) Cancel() error {
	return e.CancelWithRevert(e.cfg.RevertOnSpill)
}

// CancelWithRevert ends the live session. With revert the item goes back to
// where it started and a copy is discarded.
func (e *Engine) CancelWithRevert(revert bool) error {
	s := e.session
	if s == nil {
		e.grab = nil
		return nil
	}
	em := e.emitter()
	e.cancel(em, s, revert)
	return em.err()
}

// Remove ends the live session by detaching the dragged node from the tree.
func (e *Engine) Remove() error {
	s := e.session
	if s == nil {
		e.grab = nil
		return nil
	}
	em := e.emitter()
	e.remove(em, s)
	return em.err()
}

func (e *Engine) start(em *emitter, item, source *dom.Node) *session {
	s := &session{
		id:      e.newID(),
		item:    item,
		source:  source,
		started: e.now(),
	}
	s.initialSibling = e.nextSibling(item)
	s.currentSibling = s.initialSibling
	if e.eval.ShouldCopy(item, source) {
		s.copy = item.Clone(true)
	}
	e.session = s
	e.logger.Debug("drag started", "session_id", s.id, "item", item.ID, "source", source.ID, "copy", s.copy != nil)

	if s.copy != nil {
		em.emit(s, domain.Event{Type: domain.EventCloned, Item: s.copy, Original: item, Kind: domain.CloneCopy})
		if e.session != s {
			return s
		}
	}
	em.emit(s, domain.Event{Type: domain.EventDrag, Item: item})
	return s
}

func (e *Engine) spill(em *emitter, s *session) {
	switch {
	case e.cfg.RevertOnSpill:
		e.cancel(em, s, true)
	case e.cfg.RemoveOnSpill:
		e.remove(em, s)
	default:
		e.cancel(em, s, false)
	}
}

func (e *Engine) drop(em *emitter, s *session, target *dom.Node) {
	e.detach(s)
	item := s.dragged()
	if s.copy != nil && target == s.source {
		s.item.Remove()
	}
	if e.atOrigin(s) {
		em.emit(s, domain.Event{Type: domain.EventCancel, Item: item, Container: s.source})
		e.finish(em, s, domain.PhaseCanceled)
		return
	}
	em.emit(s, domain.Event{
		Type:      domain.EventDrop,
		Item:      item,
		Container: target,
		Sibling:   e.nextSibling(item),
		Moved:     true,
	})
	e.finish(em, s, domain.PhaseDropped)
}

func (e *Engine) cancel(em *emitter, s *session, revert bool) {
	e.detach(s)
	item := s.dragged()
	initial := e.atOrigin(s)
	switch {
	case s.copy != nil && (revert || initial):
		item.Remove()
	case revert && !initial:
		s.source.InsertBefore(item, s.initialSibling)
	}
	container := item.Parent()
	if container == nil {
		container = s.source
	}
	moved := !initial && !revert && item.Parent() != nil
	em.emit(s, domain.Event{Type: domain.EventCancel, Item: item, Container: container, Moved: moved})
	e.finish(em, s, domain.PhaseCanceled)
}

func (e *Engine) remove(em *emitter, s *session) {
	e.detach(s)
	item := s.dragged()
	parent := item.Parent()
	item.Remove()
	if s.copy != nil {
		em.emit(s, domain.Event{Type: domain.EventCancel, Item: item, Container: parent})
		e.finish(em, s, domain.PhaseCanceled)
		return
	}
	em.emit(s, domain.Event{Type: domain.EventRemove, Item: item, Container: parent})
	e.finish(em, s, domain.PhaseRemoved)
}

// detach returns the engine to idle before any terminal event is emitted, so
// listeners observe an idle engine and may start the next session.
func (e *Engine) detach(s *session) {
	if e.session == s {
		e.session = nil
	}
	e.grab = nil
	e.mirror.Destroy()
	s.dragged().RemoveClass(TransitClass)
}

func (e *Engine) finish(em *emitter, s *session, outcome domain.Phase) {
	item := s.dragged()
	if s.lastDropTarget != nil {
		em.emit(s, domain.Event{Type: domain.EventOut, Item: item, Container: s.lastDropTarget})
	}
	s.moved = item.Parent() != nil && !e.atOrigin(s)
	em.emit(s, domain.Event{Type: domain.EventDragEnd, Item: item, Outcome: outcome, Moved: s.moved})
	e.logger.Debug("drag ended", "session_id", s.id, "item", item.ID, "outcome", outcome)
}
