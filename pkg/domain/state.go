package domain

// Phase is a state of the drag state machine.
type Phase string

const (
	PhaseIdle     Phase = "idle"     // No active session
	PhaseGrabbed  Phase = "grabbed"  // Pointer pressed on a draggable item, threshold not yet crossed
	PhaseDragging Phase = "dragging" // Session live, item previewed under the pointer
	PhaseDropped  Phase = "dropped"  // Terminal: placed in an accepting container
	PhaseCanceled Phase = "canceled" // Terminal: spilled, reverted or released in place
	PhaseRemoved  Phase = "removed"  // Terminal: detached from the tree
)

// Terminal reports whether p ends a session.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseDropped, PhaseCanceled, PhaseRemoved:
		return true
	}
	return false
}

// Direction is the axis used to resolve drop positions.
type Direction string

const (
	Vertical   Direction = "vertical"
	Horizontal Direction = "horizontal"
)

// ParseDirection maps a textual direction to a Direction, defaulting to Vertical.
func ParseDirection(s string) Direction {
	if Direction(s) == Horizontal {
		return Horizontal
	}
	return Vertical
}
