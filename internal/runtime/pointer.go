package runtime

import (
	"math"

	"github.com/aretw0/drake/pkg/dom"
	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/geometry"
)

// PointerDown records a press on a draggable item. Nothing is emitted until
// the pointer moves past the slide threshold.
func (e *Engine) PointerDown(ev domain.PointerEvent) error {
	if e.destroyed || e.session != nil || e.grab != nil {
		return nil
	}
	if ev.Button != domain.ButtonLeft || ev.Ctrl || ev.Meta {
		return nil
	}
	handle := ev.Target
	if handle == nil {
		handle = e.doc.ElementFromPoint(ev.Point)
	}
	item, source, ok := e.eval.Locate(handle)
	if !ok || !e.eval.CanGrab(item, source, handle, nil) {
		return nil
	}
	e.grab = &grab{item: item, source: source, handle: handle, origin: ev.Point}
	e.logger.Debug("item grabbed", "item", item.ID, "source", source.ID, "at", ev.Point)
	return nil
}

// PointerMove starts a session once a grab crosses the threshold, and moves
// the preview of a live session. A move without a held button is treated as
// a release.
func (e *Engine) PointerMove(ev domain.PointerEvent) error {
	if e.destroyed {
		return nil
	}
	if s := e.session; s != nil {
		if !s.pointer {
			return nil
		}
		if ev.Button == domain.ButtonNone {
			return e.PointerUp(ev)
		}
		em := e.emitter()
		e.drag(em, s, ev.Point)
		return em.err()
	}

	g := e.grab
	if g == nil {
		return nil
	}
	if ev.Button == domain.ButtonNone {
		e.grab = nil
		return nil
	}
	if math.Abs(ev.X-g.origin.X) <= e.cfg.SlideFactor.X &&
		math.Abs(ev.Y-g.origin.Y) <= e.cfg.SlideFactor.Y {
		return nil
	}
	if g.item.Parent() != g.source || !g.source.Connected() {
		e.logger.Debug("grabbed item moved away before drag", "item", g.item.ID)
		e.grab = nil
		return nil
	}
	if e.eval.IgnoresTextSelection() {
		trigger := e.doc.ElementFromPoint(ev.Point)
		if !e.eval.CanGrab(g.item, g.source, g.handle, trigger) {
			return nil
		}
	}
	e.grab = nil

	em := e.emitter()
	s := e.start(em, g.item, g.source)
	if e.session != s {
		return em.err()
	}
	s.pointer = true
	s.offset = ev.Point.Sub(g.item.Rect().Origin())
	s.dragged().AddClass(TransitClass)
	if m := e.mirror.Create(g.item, s.offset); m != nil {
		em.emit(s, domain.Event{Type: domain.EventCloned, Item: m, Original: g.item, Kind: domain.CloneMirror})
	}
	if e.session == s {
		e.drag(em, s, ev.Point)
	}
	return em.err()
}

// PointerUp finishes a pointer-driven session. The final position is
// previewed at the release point first, so the outcome never depends on
// whether a move was reported there.
func (e *Engine) PointerUp(ev domain.PointerEvent) error {
	if e.destroyed {
		return nil
	}
	if e.grab != nil {
		e.grab = nil
		return nil
	}
	s := e.session
	if s == nil || !s.pointer {
		return nil
	}
	em := e.emitter()
	e.drag(em, s, ev.Point)
	if e.session != s {
		return em.err()
	}
	target := s.lastDropTarget
	if target != nil && (s.copy == nil || e.cfg.CopySortSource || target != s.source) {
		e.drop(em, s, target)
	} else {
		e.spill(em, s)
	}
	return em.err()
}

// drag moves the mirror and previews the item at the position resolved under p.
func (e *Engine) drag(em *emitter, s *session, p dom.Point) {
	if !s.source.Connected() {
		e.logger.Warn("source container left the document, canceling drag", "source", s.source.ID)
		e.cancel(em, s, false)
		return
	}
	e.mirror.Reposition(p)

	item := s.dragged()
	behind := e.doc.ElementFromPoint(p, e.mirror.Node())
	target := e.findDropTarget(s, behind, p)
	changed := target != nil && target != s.lastDropTarget
	if changed || target == nil {
		if s.lastDropTarget != nil {
			em.emit(s, domain.Event{Type: domain.EventOut, Item: item, Container: s.lastDropTarget})
		}
		s.lastDropTarget = target
		if changed {
			em.emit(s, domain.Event{Type: domain.EventOver, Item: item, Container: target})
		}
		if e.session != s {
			return
		}
	}

	if target == s.source && s.copy != nil && !e.cfg.CopySortSource {
		if item.Parent() != nil {
			item.Remove()
			s.currentSibling = nil
			s.moved = false
		}
		return
	}

	var sibling *dom.Node
	switch {
	case target != nil:
		sibling = geometry.Resolve(target, p, e.cfg.Direction, item, e.mirror.Node())
	case e.cfg.RevertOnSpill && s.copy == nil:
		target, sibling = s.source, s.initialSibling
	default:
		if s.copy != nil && item.Parent() != nil {
			item.Remove()
			s.currentSibling = nil
			s.moved = false
		}
		return
	}

	if item.Parent() == target && (sibling == item || sibling == e.nextSibling(item)) {
		return
	}
	if target.InsertBefore(item, sibling) == nil {
		return
	}
	s.currentSibling = sibling
	s.moved = !e.atOrigin(s)
	e.logger.Debug("preview moved", "item", item.ID, "container", target.ID, "moved", s.moved)
	em.emit(s, domain.Event{Type: domain.EventShadow, Item: item, Container: target})
}

// findDropTarget walks up from the node behind the pointer to the first
// container that accepts the item. The initial placement is always accepted.
func (e *Engine) findDropTarget(s *session, behind *dom.Node, p dom.Point) *dom.Node {
	item := s.dragged()
	for cur := behind; cur != nil; cur = cur.Parent() {
		if item.Contains(cur) || !e.eval.IsContainer(cur) {
			continue
		}
		sibling := geometry.Resolve(cur, p, e.cfg.Direction, item, e.mirror.Node())
		if e.initialPlacement(s, cur, sibling) || e.eval.CanAccept(s.item, cur, s.source, sibling) {
			return cur
		}
	}
	return nil
}
