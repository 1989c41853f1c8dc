// Package geometry resolves where a dragged item lands inside a container.
package geometry

import (
	"github.com/aretw0/drake/pkg/dom"
	"github.com/aretw0/drake/pkg/domain"
)

// Midpoint returns the centre of r along the axis of dir.
func Midpoint(r dom.Rect, dir domain.Direction) float64 {
	if dir == domain.Horizontal {
		return r.MidX()
	}
	return r.MidY()
}

func coord(p dom.Point, dir domain.Direction) float64 {
	if dir == domain.Horizontal {
		return p.X
	}
	return p.Y
}

// Resolve returns the child of container that the dragged item should be
// inserted before, or nil for the end of the list.
//
// Children are scanned in order and the first one whose midpoint lies
// strictly beyond the pointer wins, so a pointer exactly on a midpoint places
// the item after that child. Excluded nodes (the dragged item, the mirror)
// are skipped. The result depends only on the pointer and the current child
// geometry.
func Resolve(container *dom.Node, p dom.Point, dir domain.Direction, exclude ...*dom.Node) *dom.Node {
	if container == nil {
		return nil
	}
	at := coord(p, dir)
	for _, child := range container.Children() {
		if excluded(child, exclude) {
			continue
		}
		if Midpoint(child.Rect(), dir) > at {
			return child
		}
	}
	return nil
}

func excluded(n *dom.Node, exclude []*dom.Node) bool {
	for _, e := range exclude {
		if e == n {
			return true
		}
	}
	return false
}

// ImmediateChild walks up from target to the ancestor that is a direct child
// of container. It returns container itself when target is the container and
// nil when target is outside it.
func ImmediateChild(container, target *dom.Node) *dom.Node {
	if container == nil {
		return nil
	}
	for cur := target; cur != nil; cur = cur.Parent() {
		if cur == container || cur.Parent() == container {
			return cur
		}
	}
	return nil
}
