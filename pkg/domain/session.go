package domain

import (
	"time"

	"github.com/aretw0/drake/pkg/dom"
)

// Session is a read-only snapshot of the active drag session.
type Session struct {
	ID        string
	Phase     Phase
	Item      *dom.Node // The grabbed element
	Source    *dom.Node
	Copy      *dom.Node // Non-nil in copy mode
	Target    *dom.Node // Last container the pointer hovered, if any
	Sibling   *dom.Node // Current candidate sibling
	Mirror    *dom.Node
	Moved     bool
	StartedAt time.Time
}
