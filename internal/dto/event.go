// Package dto holds the wire shapes shared by the HTTP adapter and the replay
// runner.
package dto

import (
	"time"

	"github.com/aretw0/drake/pkg/dom"
	"github.com/aretw0/drake/pkg/domain"
)

// Event is the serialized form of a domain.Event. Nodes are referenced by id.
type Event struct {
	Type      string    `json:"type" mapstructure:"type"`
	SessionID string    `json:"session_id" mapstructure:"session_id"`
	Timestamp time.Time `json:"timestamp" mapstructure:"timestamp"`
	Item      string    `json:"item,omitempty" mapstructure:"item"`
	Container string    `json:"container,omitempty" mapstructure:"container"`
	Source    string    `json:"source,omitempty" mapstructure:"source"`
	Sibling   string    `json:"sibling,omitempty" mapstructure:"sibling"`
	Original  string    `json:"original,omitempty" mapstructure:"original"`
	Kind      string    `json:"kind,omitempty" mapstructure:"kind"`
	Outcome   string    `json:"outcome,omitempty" mapstructure:"outcome"`
	Moved     bool      `json:"moved,omitempty" mapstructure:"moved"`
}

// FromEvent flattens e into its wire form.
func FromEvent(e domain.Event) Event {
	return Event{
		Type:      string(e.Type),
		SessionID: e.SessionID,
		Timestamp: e.Timestamp,
		Item:      id(e.Item),
		Container: id(e.Container),
		Source:    id(e.Source),
		Sibling:   id(e.Sibling),
		Original:  id(e.Original),
		Kind:      string(e.Kind),
		Outcome:   string(e.Outcome),
		Moved:     e.Moved,
	}
}

func id(n *dom.Node) string {
	if n == nil {
		return ""
	}
	return n.ID
}

// Pointer is a pointer sample as sent by remote hosts and scripts.
type Pointer struct {
	Type   string  `json:"type" yaml:"type" mapstructure:"type"` // down, move or up
	X      float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y      float64 `json:"y" yaml:"y" mapstructure:"y"`
	Button *int    `json:"button,omitempty" yaml:"button,omitempty" mapstructure:"button"`
	Ctrl   bool    `json:"ctrl,omitempty" yaml:"ctrl,omitempty" mapstructure:"ctrl"`
	Meta   bool    `json:"meta,omitempty" yaml:"meta,omitempty" mapstructure:"meta"`
}

// PointerEvent converts p to a domain pointer event. The button defaults to
// left, except on up where nothing is held.
func (p Pointer) PointerEvent() domain.PointerEvent {
	ev := domain.PointerEvent{
		Point: dom.Point{X: p.X, Y: p.Y},
		Ctrl:  p.Ctrl,
		Meta:  p.Meta,
	}
	switch {
	case p.Button != nil:
		ev.Button = domain.Button(*p.Button)
	case p.Type != "up":
		ev.Button = domain.ButtonLeft
	}
	return ev
}
