package domain

import (
	"log/slog"
	"time"

	"github.com/aretw0/drake/pkg/dom"
)

// EventType defines the category of the event.
type EventType string

const (
	EventDrag    EventType = "drag"    // Session started: Item, Source
	EventDragEnd EventType = "dragend" // Session over, always last: Item, Outcome
	EventDrop    EventType = "drop"    // Item placed: Item, Container, Source, Sibling
	EventCancel  EventType = "cancel"  // Spilled or canceled: Item, Container, Source
	EventRemove  EventType = "remove"  // Item detached: Item, Container (former parent), Source
	EventShadow  EventType = "shadow"  // Preview relocated: Item, Container, Source
	EventOver    EventType = "over"    // Pointer entered a drop target: Item, Container, Source
	EventOut     EventType = "out"     // Pointer left a drop target: Item, Container, Source
	EventCloned  EventType = "cloned"  // Copy or mirror created: Item (clone), Original, Kind
)

// EventTypes lists every event the engine emits.
var EventTypes = []EventType{
	EventDrag, EventDragEnd, EventDrop, EventCancel, EventRemove,
	EventShadow, EventOver, EventOut, EventCloned,
}

// CloneKind distinguishes the two reasons the engine clones an item.
type CloneKind string

const (
	CloneCopy   CloneKind = "copy"
	CloneMirror CloneKind = "mirror"
)

// Event is a lifecycle notification. Fields that do not apply to the event
// type are left zero.
type Event struct {
	Type      EventType
	SessionID string
	Timestamp time.Time

	Item      *dom.Node // The element being dragged (the copy in copy mode), or the clone for EventCloned
	Container *dom.Node
	Source    *dom.Node
	Sibling   *dom.Node // Element the item now precedes; nil means end of container

	Original *dom.Node // EventCloned only
	Kind     CloneKind // EventCloned only

	Outcome Phase // EventDragEnd only
	Moved   bool  // True when the item left its original placement
}

// LogValue renders the event with node ids instead of pointers.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", string(e.Type)),
		slog.String("session_id", e.SessionID),
	}
	add := func(key string, n *dom.Node) {
		if n != nil {
			attrs = append(attrs, slog.String(key, n.ID))
		}
	}
	add("item", e.Item)
	add("container", e.Container)
	add("source", e.Source)
	add("sibling", e.Sibling)
	add("original", e.Original)
	if e.Kind != "" {
		attrs = append(attrs, slog.String("kind", string(e.Kind)))
	}
	if e.Outcome != "" {
		attrs = append(attrs, slog.String("outcome", string(e.Outcome)))
	}
	if e.Moved {
		attrs = append(attrs, slog.Bool("moved", true))
	}
	return slog.GroupValue(attrs...)
}

// Listener receives events. A returned error is reported to the caller that
// triggered the event; it never interrupts the state machine.
type Listener func(Event) error

// LifecycleHooks defines optional callbacks for each event type.
type LifecycleHooks struct {
	OnDrag    func(Event)
	OnDragEnd func(Event)
	OnDrop    func(Event)
	OnCancel  func(Event)
	OnRemove  func(Event)
	OnShadow  func(Event)
	OnOver    func(Event)
	OnOut     func(Event)
	OnCloned  func(Event)
}

// Listeners converts the non-nil hooks into listeners keyed by event type.
func (h LifecycleHooks) Listeners() map[EventType]Listener {
	out := make(map[EventType]Listener)
	bind := func(t EventType, fn func(Event)) {
		if fn == nil {
			return
		}
		out[t] = func(e Event) error {
			fn(e)
			return nil
		}
	}
	bind(EventDrag, h.OnDrag)
	bind(EventDragEnd, h.OnDragEnd)
	bind(EventDrop, h.OnDrop)
	bind(EventCancel, h.OnCancel)
	bind(EventRemove, h.OnRemove)
	bind(EventShadow, h.OnShadow)
	bind(EventOver, h.OnOver)
	bind(EventOut, h.OnOut)
	bind(EventCloned, h.OnCloned)
	return out
}
