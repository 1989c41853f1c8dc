/*
Package drake is a pointer-driven drag-and-drop engine for visual trees.

A Drake watches a set of containers inside a dom.Document. Pressing an item
that lives directly in a container and moving the pointer past a small
threshold starts a session: a mirror follows the pointer, the item itself (or
a copy of it) is previewed where it would land, and releasing the pointer
drops, cancels or removes it. Every step is reported as an event.

# Concept

The engine never renders anything. Hosts own the tree and feed normalized
pointer samples; a terminal UI, an HTTP endpoint and a script runner all drive
the same state machine. Reordering is decided purely from geometry: the
candidate sibling is the first child whose midpoint lies past the pointer on
the configured axis.

# Usage

	doc := dom.NewDocument(80, 24)
	todo := doc.CreateElement("todo", dom.TagDiv).SetFlow(dom.FlowVertical)
	done := doc.CreateElement("done", dom.TagDiv).SetFlow(dom.FlowVertical)
	// ... append items and place the columns in doc.Body()

	d, err := drake.New(doc, []*dom.Node{todo, done},
		drake.WithRevertOnSpill(true),
	)
	if err != nil {
		log.Fatal(err)
	}
	d.On(domain.EventDrop, func(e domain.Event) error {
		log.Printf("%s moved to %s", e.Item.ID, e.Container.ID)
		return nil
	})

	_ = d.PointerDown(domain.At(2, 1))
	_ = d.PointerMove(domain.At(40, 3))
	_ = d.PointerUp(domain.At(40, 3))

Listeners run synchronously. Their errors and panics never stop a
transition; they are joined and returned from the call that triggered them.
*/
package drake
