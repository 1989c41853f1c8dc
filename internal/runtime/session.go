package runtime

import (
	"time"

	"github.com/aretw0/drake/pkg/dom"
)

// grab is a press on a draggable item that has not yet crossed the
// movement threshold.
type grab struct {
	item   *dom.Node
	source *dom.Node
	handle *dom.Node
	origin dom.Point
}

// session is the state of one live drag. The originating sibling is only
// meaningful while the session is live and is never exposed.
type session struct {
	id     string
	item   *dom.Node
	source *dom.Node
	copy   *dom.Node

	initialSibling *dom.Node
	currentSibling *dom.Node
	lastDropTarget *dom.Node

	pointer bool // Driven by pointer events rather than Start
	offset  dom.Point
	moved   bool
	started time.Time
}

// dragged is the node that travels through the tree: the copy in copy mode,
// the item otherwise.
func (s *session) dragged() *dom.Node {
	if s.copy != nil {
		return s.copy
	}
	return s.item
}

// nextSibling returns the live sibling after n, skipping the mirror.
func (e *Engine) nextSibling(n *dom.Node) *dom.Node {
	next := n.NextSibling()
	if next != nil && next == e.mirror.Node() {
		next = next.NextSibling()
	}
	return next
}

// initialPlacement reports whether dropping into target before sibling would
// leave the item exactly where the session began.
func (e *Engine) initialPlacement(s *session, target, sibling *dom.Node) bool {
	return target == s.source && sibling == s.initialSibling
}

// atOrigin reports whether the dragged node currently sits at the initial
// placement.
func (e *Engine) atOrigin(s *session) bool {
	item := s.dragged()
	return e.initialPlacement(s, item.Parent(), e.nextSibling(item))
}
