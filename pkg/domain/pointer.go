package domain

import "github.com/aretw0/drake/pkg/dom"

// Button identifies the pointer button involved in an event.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// PointerEvent is a normalized mouse or touch sample.
type PointerEvent struct {
	dom.Point

	// Button is the button pressed (down) or held (move). ButtonNone on a
	// move means nothing is held anymore.
	Button Button
	Ctrl   bool
	Meta   bool

	// Target is the node under the pointer. When nil the engine resolves it
	// with ElementFromPoint.
	Target *dom.Node
}

// At builds a left-button pointer event at (x, y).
func At(x, y float64) PointerEvent {
	return PointerEvent{Point: dom.Point{X: x, Y: y}, Button: ButtonLeft}
}
