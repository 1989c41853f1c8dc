package runtime_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/drake/internal/runtime"
	"github.com/aretw0/drake/pkg/dom"
	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/eligibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// board lays out two columns: A at x 0..10 with a1..a3 and B at x 20..30
// with b1..b2. Items are 2 units tall, columns 12 units tall.
type board struct {
	doc *dom.Document
	a   *dom.Node
	b   *dom.Node
}

func newBoard() *board {
	doc := dom.NewDocument(40, 20)
	col := func(id string, x float64, items ...string) *dom.Node {
		c := doc.CreateElement(id, dom.TagDiv).SetFlow(dom.FlowVertical).SetPosition(x, 0).SetSize(10, 12)
		for _, it := range items {
			c.AppendChild(doc.CreateElement(it, dom.TagDiv).SetSize(10, 2))
		}
		doc.Body().AppendChild(c)
		return c
	}
	return &board{
		doc: doc,
		a:   col("A", 0, "a1", "a2", "a3"),
		b:   col("B", 20, "b1", "b2"),
	}
}

func (b *board) node(id string) *dom.Node {
	return b.doc.NodeByID(id)
}

func ids(n *dom.Node) []string {
	var out []string
	for _, c := range n.Children() {
		out = append(out, c.ID)
	}
	return out
}

// recorder captures every event the engine emits.
type recorder struct {
	events []domain.Event
}

func (r *recorder) attach(e *runtime.Engine) {
	for _, t := range domain.EventTypes {
		e.On(t, func(ev domain.Event) error {
			r.events = append(r.events, ev)
			return nil
		})
	}
}

func (r *recorder) types() []domain.EventType {
	out := make([]domain.EventType, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func (r *recorder) last(t domain.EventType) (domain.Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == t {
			return r.events[i], true
		}
	}
	return domain.Event{}, false
}

func (r *recorder) count(t domain.EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func newEngine(t *testing.T, b *board, cfg runtime.Config, opts ...runtime.EngineOption) (*runtime.Engine, *recorder) {
	t.Helper()
	seq := 0
	opts = append([]runtime.EngineOption{
		runtime.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("s%d", seq)
		}),
		runtime.WithClock(func() time.Time { return time.Unix(0, 0) }),
	}, opts...)
	e := runtime.NewEngine(b.doc, []*dom.Node{b.a, b.b}, cfg, opts...)
	r := &recorder{}
	r.attach(e)
	return e, r
}

func TestEngine_ReorderWithinContainer(t *testing.T) {
	b := newBoard()
	e, r := newEngine(t, b, runtime.Config{})

	require.NoError(t, e.PointerDown(domain.At(5, 1)))
	assert.Equal(t, domain.PhaseGrabbed, e.Phase())
	assert.Empty(t, r.events, "nothing is emitted before the threshold")

	require.NoError(t, e.PointerMove(domain.At(5, 3.5)))
	assert.Equal(t, domain.PhaseDragging, e.Phase())
	assert.Equal(t, []string{"a2", "a1", "a3"}, ids(b.a))

	sess, ok := e.Session()
	require.True(t, ok)
	assert.Equal(t, "s1", sess.ID)
	assert.Same(t, b.node("a1"), sess.Item)
	assert.NotNil(t, sess.Mirror)
	assert.True(t, sess.Moved)

	require.NoError(t, e.PointerUp(domain.At(5, 3.5)))
	assert.Equal(t, domain.PhaseIdle, e.Phase())
	assert.Equal(t, []string{"a2", "a1", "a3"}, ids(b.a))

	assert.Equal(t, []domain.EventType{
		domain.EventDrag, domain.EventCloned, domain.EventOver, domain.EventShadow,
		domain.EventDrop, domain.EventOut, domain.EventDragEnd,
	}, r.types())

	drop, _ := r.last(domain.EventDrop)
	assert.Same(t, b.a, drop.Container)
	assert.Same(t, b.a, drop.Source)
	assert.Same(t, b.node("a3"), drop.Sibling)
	assert.Equal(t, "s1", drop.SessionID)

	end, _ := r.last(domain.EventDragEnd)
	assert.Equal(t, domain.PhaseDropped, end.Outcome)
	assert.True(t, end.Moved)

	assert.False(t, b.node("a1").HasClass(runtime.TransitClass))
	for _, c := range b.doc.Body().Children() {
		assert.NotEqual(t, "a1", c.ID, "mirror is gone after the session")
	}
}

func TestEngine_DropIntoOtherContainer(t *testing.T) {
	b := newBoard()
	e, r := newEngine(t, b, runtime.Config{})

	require.NoError(t, e.PointerDown(domain.At(5, 1)))
	require.NoError(t, e.PointerMove(domain.At(25, 1)))
	assert.Equal(t, []string{"b1", "a1", "b2"}, ids(b.b))
	require.NoError(t, e.PointerUp(domain.At(25, 1)))

	assert.Equal(t, []string{"a2", "a3"}, ids(b.a))
	assert.Equal(t, []string{"b1", "a1", "b2"}, ids(b.b))

	drop, ok := r.last(domain.EventDrop)
	require.True(t, ok)
	assert.Same(t, b.b, drop.Container)
	assert.Same(t, b.a, drop.Source)
	assert.Same(t, b.node("b2"), drop.Sibling)
}

func TestEngine_ReleaseWithoutPrecedingMove(t *testing.T) {
	b := newBoard()
	e, r := newEngine(t, b, runtime.Config{})

	require.NoError(t, e.PointerDown(domain.At(5, 1)))
	require.NoError(t, e.PointerMove(domain.At(5, 1.5)))
	require.NoError(t, e.PointerUp(domain.At(25, 11)))

	assert.Equal(t, []string{"b1", "b2", "a1"}, ids(b.b))
	drop, ok := r.last(domain.EventDrop)
	require.True(t, ok)
	assert.Nil(t, drop.Sibling, "dropped at the end")
}

func TestEngine_Spill(t *testing.T) {
	t.Run("Revert on spill", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{RevertOnSpill: true})

		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(5, 3.5)))
		assert.Equal(t, []string{"a2", "a1", "a3"}, ids(b.a))

		require.NoError(t, e.PointerMove(domain.At(35, 15)))
		assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a), "preview snaps back while spilled")

		require.NoError(t, e.PointerUp(domain.At(35, 15)))
		assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))
		assert.Equal(t, 0, r.count(domain.EventDrop))

		cancel, ok := r.last(domain.EventCancel)
		require.True(t, ok)
		assert.Same(t, b.a, cancel.Container)
		assert.False(t, cancel.Moved)
	})

	t.Run("Remove on spill", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{RemoveOnSpill: true})
		a1 := b.node("a1")

		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(35, 15)))
		require.NoError(t, e.PointerUp(domain.At(35, 15)))

		assert.Equal(t, []string{"a2", "a3"}, ids(b.a))
		assert.Nil(t, a1.Parent())

		rm, ok := r.last(domain.EventRemove)
		require.True(t, ok)
		assert.Same(t, a1, rm.Item)
		assert.Same(t, b.a, rm.Container)
		end, _ := r.last(domain.EventDragEnd)
		assert.Equal(t, domain.PhaseRemoved, end.Outcome)
	})

	t.Run("Revert wins over remove", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{RevertOnSpill: true, RemoveOnSpill: true})

		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(35, 15)))
		require.NoError(t, e.PointerUp(domain.At(35, 15)))

		assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))
		assert.Equal(t, 0, r.count(domain.EventRemove))
		assert.Equal(t, 1, r.count(domain.EventCancel))
	})

	t.Run("Plain spill keeps the last preview", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{})

		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(25, 1)))
		require.NoError(t, e.PointerUp(domain.At(35, 15)))

		assert.Equal(t, []string{"b1", "a1", "b2"}, ids(b.b))
		cancel, ok := r.last(domain.EventCancel)
		require.True(t, ok)
		assert.Same(t, b.b, cancel.Container)
		assert.True(t, cancel.Moved)
	})
}

func TestEngine_ReleaseAtInitialPlacementCancels(t *testing.T) {
	b := newBoard()
	e, r := newEngine(t, b, runtime.Config{})

	require.NoError(t, e.PointerDown(domain.At(5, 1)))
	require.NoError(t, e.PointerMove(domain.At(25, 1)))
	require.NoError(t, e.PointerMove(domain.At(5, 0.5)))
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))
	require.NoError(t, e.PointerUp(domain.At(5, 0.5)))

	assert.Equal(t, 0, r.count(domain.EventDrop))
	assert.Equal(t, 1, r.count(domain.EventCancel))
	end, _ := r.last(domain.EventDragEnd)
	assert.Equal(t, domain.PhaseCanceled, end.Outcome)
	assert.False(t, end.Moved)
}

func TestEngine_DragEndIsLastAndUnique(t *testing.T) {
	scenarios := map[string]func(e *runtime.Engine) error{
		"drop":   func(e *runtime.Engine) error { return e.PointerUp(domain.At(25, 1)) },
		"cancel": func(e *runtime.Engine) error { return e.CancelWithRevert(true) },
		"remove": func(e *runtime.Engine) error { return e.Remove() },
		"end":    func(e *runtime.Engine) error { return e.End() },
	}
	for name, finish := range scenarios {
		t.Run(name, func(t *testing.T) {
			b := newBoard()
			e, r := newEngine(t, b, runtime.Config{})

			require.NoError(t, e.PointerDown(domain.At(5, 1)))
			require.NoError(t, e.PointerMove(domain.At(25, 1)))
			require.NoError(t, finish(e))
			require.NoError(t, finish(e), "second terminal call is a no-op")

			assert.Equal(t, 1, r.count(domain.EventDragEnd))
			assert.Equal(t, domain.EventDragEnd, r.events[len(r.events)-1].Type)
			assert.Equal(t, domain.EventDrag, r.events[0].Type)
			assert.Equal(t, domain.PhaseIdle, e.Phase())
		})
	}
}

func TestEngine_CancelWithRevert(t *testing.T) {
	b := newBoard()
	e, r := newEngine(t, b, runtime.Config{})

	require.NoError(t, e.PointerDown(domain.At(5, 3)))
	require.NoError(t, e.PointerMove(domain.At(25, 1)))
	assert.Equal(t, []string{"a1", "a3"}, ids(b.a))

	require.NoError(t, e.CancelWithRevert(true))
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))
	assert.Equal(t, []string{"b1", "b2"}, ids(b.b))

	cancel, ok := r.last(domain.EventCancel)
	require.True(t, ok)
	assert.Same(t, b.a, cancel.Container)
	assert.Equal(t, []domain.EventType{domain.EventCancel, domain.EventOut, domain.EventDragEnd}, r.types()[len(r.types())-3:])
}

func TestEngine_CancelUsesConfiguredRevert(t *testing.T) {
	b := newBoard()
	e, _ := newEngine(t, b, runtime.Config{RevertOnSpill: true})

	require.NoError(t, e.PointerDown(domain.At(5, 1)))
	require.NoError(t, e.PointerMove(domain.At(25, 1)))
	require.NoError(t, e.Cancel())
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))
}

func TestEngine_GrabRules(t *testing.T) {
	t.Run("Click without movement emits nothing", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{})
		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerUp(domain.At(5, 1)))
		assert.Empty(t, r.events)
		assert.Equal(t, domain.PhaseIdle, e.Phase())
	})

	t.Run("Modifiers and other buttons are ignored", func(t *testing.T) {
		b := newBoard()
		e, _ := newEngine(t, b, runtime.Config{})

		ev := domain.At(5, 1)
		ev.Ctrl = true
		require.NoError(t, e.PointerDown(ev))
		assert.Equal(t, domain.PhaseIdle, e.Phase())

		ev = domain.At(5, 1)
		ev.Button = domain.ButtonRight
		require.NoError(t, e.PointerDown(ev))
		assert.Equal(t, domain.PhaseIdle, e.Phase())
	})

	t.Run("Presses outside items are ignored", func(t *testing.T) {
		b := newBoard()
		e, _ := newEngine(t, b, runtime.Config{})
		require.NoError(t, e.PointerDown(domain.At(5, 10)))
		assert.Equal(t, domain.PhaseIdle, e.Phase(), "container background")
		require.NoError(t, e.PointerDown(domain.At(15, 10)))
		assert.Equal(t, domain.PhaseIdle, e.Phase(), "body")
	})

	t.Run("Release reported as a move", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{})
		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.PointerEvent{Point: dom.Point{X: 9, Y: 9}}))
		assert.Equal(t, domain.PhaseIdle, e.Phase())
		assert.Empty(t, r.events)
	})

	t.Run("Slide factor delays the drag", func(t *testing.T) {
		b := newBoard()
		e, _ := newEngine(t, b, runtime.Config{SlideFactor: dom.Point{X: 2, Y: 2}})
		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(6, 2.5)))
		assert.Equal(t, domain.PhaseGrabbed, e.Phase())
		require.NoError(t, e.PointerMove(domain.At(5, 3.5)))
		assert.Equal(t, domain.PhaseDragging, e.Phase())
	})

	t.Run("Invalid and moves predicates", func(t *testing.T) {
		b := newBoard()
		cfg := runtime.Config{Eligibility: eligibility.Config{
			Invalid: func(item, _ *dom.Node) bool { return item.ID == "a1" },
			Moves:   func(item, _, _, _ *dom.Node) bool { return item.ID != "a2" },
		}}
		e, _ := newEngine(t, b, cfg)

		assert.False(t, e.CanMove(b.node("a1")))
		assert.False(t, e.CanMove(b.node("a2")))
		assert.True(t, e.CanMove(b.node("a3")))
		assert.False(t, e.CanMove(b.a), "containers are not items")

		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		assert.Equal(t, domain.PhaseIdle, e.Phase())
		require.NoError(t, e.PointerDown(domain.At(5, 5)))
		assert.Equal(t, domain.PhaseGrabbed, e.Phase())
	})

	t.Run("Only one session at a time", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{})
		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(5, 3.5)))
		require.NoError(t, e.PointerDown(domain.At(25, 1)))
		require.NoError(t, e.Start(b.node("b1")))
		assert.Equal(t, 1, r.count(domain.EventDrag))
		sess, _ := e.Session()
		assert.Equal(t, "a1", sess.Item.ID)
	})
}

func TestEngine_IgnoreInputTextSelection(t *testing.T) {
	b := newBoard()
	a1 := b.node("a1")
	field := b.doc.CreateElement("field", dom.TagInput).SetPosition(0, 0).SetSize(3, 2)
	a1.AppendChild(field)

	cfg := runtime.Config{Eligibility: eligibility.Config{IgnoreInputTextSelection: true}}
	e, _ := newEngine(t, b, cfg)

	require.NoError(t, e.PointerDown(domain.At(1, 1)))
	assert.Equal(t, domain.PhaseGrabbed, e.Phase())

	require.NoError(t, e.PointerMove(domain.At(2, 1.5)))
	assert.Equal(t, domain.PhaseGrabbed, e.Phase(), "still selecting text")

	require.NoError(t, e.PointerMove(domain.At(5, 3.5)))
	assert.Equal(t, domain.PhaseDragging, e.Phase())
	sess, _ := e.Session()
	assert.Same(t, a1, sess.Item)
}

func TestEngine_CopyMode(t *testing.T) {
	copyAll := eligibility.Config{Copy: eligibility.Static(true)}

	t.Run("Drop a copy elsewhere", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{Eligibility: copyAll})
		a1 := b.node("a1")

		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(25, 1)))
		require.NoError(t, e.PointerUp(domain.At(25, 1)))

		assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))
		assert.Equal(t, []string{"b1", "a1", "b2"}, ids(b.b))
		assert.NotSame(t, a1, b.b.Children()[1])

		assert.Equal(t, domain.EventCloned, r.events[0].Type)
		assert.Equal(t, domain.CloneCopy, r.events[0].Kind)
		assert.Same(t, a1, r.events[0].Original)
		assert.Equal(t, 2, r.count(domain.EventCloned), "copy and mirror")

		drop, _ := r.last(domain.EventDrop)
		assert.Same(t, b.b.Children()[1], drop.Item)
	})

	t.Run("Hovering the source discards the copy", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{Eligibility: copyAll})

		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(25, 1)))
		require.NoError(t, e.PointerMove(domain.At(5, 3.5)))
		assert.Equal(t, []string{"b1", "b2"}, ids(b.b))
		assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))

		require.NoError(t, e.PointerUp(domain.At(5, 3.5)))
		assert.Equal(t, 0, r.count(domain.EventDrop))
		assert.Equal(t, 1, r.count(domain.EventCancel))
		assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))
	})

	t.Run("Sorting the source", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{Eligibility: copyAll, CopySortSource: true})
		a1 := b.node("a1")

		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(5, 5.5)))
		require.NoError(t, e.PointerUp(domain.At(5, 5.5)))

		assert.Equal(t, 1, r.count(domain.EventDrop))
		assert.Nil(t, a1.Parent(), "the original is replaced by its copy")
		assert.Equal(t, []string{"a2", "a3", "a1"}, ids(b.a))
	})

	t.Run("Remove on spill discards the copy", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{Eligibility: copyAll, RemoveOnSpill: true})

		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(25, 1)))
		require.NoError(t, e.Remove())

		assert.Equal(t, []string{"b1", "b2"}, ids(b.b))
		assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))
		assert.Equal(t, 0, r.count(domain.EventRemove))
		end, _ := r.last(domain.EventDragEnd)
		assert.Equal(t, domain.PhaseCanceled, end.Outcome)
	})
}

func TestEngine_Accepts(t *testing.T) {
	b := newBoard()
	cfg := runtime.Config{Eligibility: eligibility.Config{
		Accepts: func(_, target, _, _ *dom.Node) bool { return target.ID != "B" },
	}}
	e, r := newEngine(t, b, cfg)

	require.NoError(t, e.PointerDown(domain.At(5, 1)))
	require.NoError(t, e.PointerMove(domain.At(25, 1)))
	assert.Equal(t, []string{"b1", "b2"}, ids(b.b))
	assert.Equal(t, 0, r.count(domain.EventOver))

	require.NoError(t, e.PointerUp(domain.At(25, 1)))
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))
	assert.Equal(t, 1, r.count(domain.EventCancel))
}

func TestEngine_DegradedMirror(t *testing.T) {
	b := newBoard()
	host := b.doc.CreateElement("detached", "")
	e, r := newEngine(t, b, runtime.Config{MirrorContainer: host})

	require.NoError(t, e.PointerDown(domain.At(5, 1)))
	require.NoError(t, e.PointerMove(domain.At(25, 1)))
	sess, ok := e.Session()
	require.True(t, ok)
	assert.Nil(t, sess.Mirror)
	assert.Equal(t, 0, r.count(domain.EventCloned))

	require.NoError(t, e.PointerUp(domain.At(25, 1)))
	assert.Equal(t, 1, r.count(domain.EventDrop))
}

func TestEngine_SourceLeavesDocument(t *testing.T) {
	b := newBoard()
	e, r := newEngine(t, b, runtime.Config{RevertOnSpill: true})

	require.NoError(t, e.PointerDown(domain.At(5, 1)))
	require.NoError(t, e.PointerMove(domain.At(5, 3.5)))
	b.a.Remove()

	require.NoError(t, e.PointerMove(domain.At(25, 1)))
	assert.Equal(t, domain.PhaseIdle, e.Phase())
	assert.Equal(t, []string{"b1", "b2"}, ids(b.b))
	end, _ := r.last(domain.EventDragEnd)
	assert.Equal(t, domain.PhaseCanceled, end.Outcome)

	require.NoError(t, e.PointerUp(domain.At(25, 1)))
	assert.Equal(t, 1, r.count(domain.EventDragEnd))
}

func TestEngine_ListenerFailures(t *testing.T) {
	t.Run("Errors are returned and the machine keeps going", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{})
		boom := errors.New("boom")
		e.On(domain.EventDrag, func(domain.Event) error { return boom })

		err := e.PointerDown(domain.At(5, 1))
		require.NoError(t, err)
		err = e.PointerMove(domain.At(5, 3.5))
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, domain.PhaseDragging, e.Phase())
		assert.Equal(t, 1, r.count(domain.EventShadow), "later events still fire")
	})

	t.Run("Panics during drop leave the machine idle", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{})
		e.On(domain.EventDrop, func(domain.Event) error { panic("listener exploded") })

		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(25, 1)))
		err := e.PointerUp(domain.At(25, 1))
		assert.ErrorIs(t, err, domain.ErrListenerPanic)
		assert.Equal(t, domain.PhaseIdle, e.Phase())
		assert.Equal(t, 1, r.count(domain.EventDragEnd))
		assert.Equal(t, []string{"b1", "a1", "b2"}, ids(b.b))
	})
}

func TestEngine_Reentrancy(t *testing.T) {
	t.Run("Cancel from a drag listener", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{})
		e.On(domain.EventDrag, func(domain.Event) error { return e.CancelWithRevert(true) })

		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(25, 1)))

		assert.Equal(t, domain.PhaseIdle, e.Phase())
		assert.Equal(t, []domain.EventType{domain.EventDrag, domain.EventCancel, domain.EventDragEnd}, r.types())
		assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))
		assert.Equal(t, 2, b.doc.Body().ChildCount(), "no mirror left behind")
	})

	t.Run("Terminal calls from a drop listener are no-ops", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{})
		e.On(domain.EventDrop, func(domain.Event) error {
			assert.False(t, e.Dragging())
			return e.Remove()
		})

		require.NoError(t, e.PointerDown(domain.At(5, 1)))
		require.NoError(t, e.PointerMove(domain.At(25, 1)))
		require.NoError(t, e.PointerUp(domain.At(25, 1)))
		assert.Equal(t, 0, r.count(domain.EventRemove))
		assert.Equal(t, 1, r.count(domain.EventDragEnd))
	})

	t.Run("A new session may start from dragend", func(t *testing.T) {
		b := newBoard()
		e, r := newEngine(t, b, runtime.Config{})
		started := false
		e.On(domain.EventDragEnd, func(domain.Event) error {
			if started {
				return nil
			}
			started = true
			return e.Start(b.node("b1"))
		})

		require.NoError(t, e.Start(b.node("a1")))
		require.NoError(t, e.End())
		sess, ok := e.Session()
		require.True(t, ok)
		assert.Equal(t, "b1", sess.Item.ID)
		assert.Equal(t, "s2", sess.ID)
		assert.Equal(t, 2, r.count(domain.EventDrag))
	})
}

func TestEngine_KeyboardSession(t *testing.T) {
	b := newBoard()
	cfg := runtime.Config{Eligibility: eligibility.Config{
		Accepts: func(_, _, _, sibling *dom.Node) bool { return sibling == nil || sibling.ID != "b1" },
	}}
	e, r := newEngine(t, b, cfg)
	a1 := b.node("a1")

	require.NoError(t, e.Start(b.a), "containers cannot be started")
	assert.False(t, e.Dragging())

	require.NoError(t, e.Start(a1))
	assert.True(t, e.Dragging())
	assert.True(t, a1.HasClass(runtime.TransitClass))
	sess, _ := e.Session()
	assert.Nil(t, sess.Mirror)

	require.NoError(t, e.PointerMove(domain.At(25, 1)), "pointer moves do not drive keyboard sessions")
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))

	ok, err := e.MoveTo(b.b, b.node("b1"))
	require.NoError(t, err)
	assert.False(t, ok, "rejected by accepts")

	ok, err = e.MoveTo(b.b, b.node("a2"))
	require.NoError(t, err)
	assert.False(t, ok, "sibling outside target")

	ok, err = e.MoveTo(b.b, b.node("b2"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"b1", "a1", "b2"}, ids(b.b))

	ok, err = e.MoveTo(b.b, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"b1", "b2", "a1"}, ids(b.b))
	assert.Equal(t, 1, r.count(domain.EventOver))
	assert.Equal(t, 2, r.count(domain.EventShadow))

	require.NoError(t, e.End())
	drop, ok := r.last(domain.EventDrop)
	require.True(t, ok)
	assert.Same(t, b.b, drop.Container)
	assert.Nil(t, drop.Sibling)
	assert.False(t, a1.HasClass(runtime.TransitClass))
}

func TestEngine_MoveToNestedSibling(t *testing.T) {
	b := newBoard()
	e, _ := newEngine(t, b, runtime.Config{})
	handle := b.doc.CreateElement("b2-handle", dom.TagDiv).SetSize(2, 1)
	b.node("b2").AppendChild(handle)

	require.NoError(t, e.Start(b.node("a1")))
	ok, err := e.MoveTo(b.b, handle)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"b1", "a1", "b2"}, ids(b.b), "a nested node stands for its item")

	ok, err = e.MoveTo(b.a, b.a)
	require.NoError(t, err)
	assert.False(t, ok, "the container is not its own sibling")
	assert.Equal(t, []string{"b1", "a1", "b2"}, ids(b.b))

	ok, err = e.MoveTo(b.a, b.node("a1"))
	require.NoError(t, err)
	assert.False(t, ok, "the item sits in B so its next sibling is outside A")
	require.NoError(t, e.CancelWithRevert(true))
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(b.a))
}

func TestEngine_Destroy(t *testing.T) {
	b := newBoard()
	e, r := newEngine(t, b, runtime.Config{})

	require.NoError(t, e.PointerDown(domain.At(5, 1)))
	require.NoError(t, e.PointerMove(domain.At(25, 1)))
	require.NoError(t, e.Destroy())

	assert.True(t, e.Destroyed())
	assert.Equal(t, domain.PhaseIdle, e.Phase())
	assert.Equal(t, 1, r.count(domain.EventDrop))
	assert.Equal(t, domain.EventDragEnd, r.events[len(r.events)-1].Type)

	n := len(r.events)
	require.NoError(t, e.PointerDown(domain.At(5, 1)))
	require.NoError(t, e.PointerMove(domain.At(5, 3.5)))
	require.NoError(t, e.Start(b.node("a2")))
	assert.Equal(t, domain.PhaseIdle, e.Phase())
	assert.Len(t, r.events, n)
	require.NoError(t, e.Destroy())
}

func TestEngine_LifecycleHooks(t *testing.T) {
	b := newBoard()
	var seen []string
	hooks := domain.LifecycleHooks{
		OnDrag:    func(ev domain.Event) { seen = append(seen, "drag:"+ev.Item.ID) },
		OnDrop:    func(ev domain.Event) { seen = append(seen, "drop:"+ev.Container.ID) },
		OnDragEnd: func(ev domain.Event) { seen = append(seen, "end:"+string(ev.Outcome)) },
	}
	e, _ := newEngine(t, b, runtime.Config{}, runtime.WithLifecycleHooks(hooks))

	require.NoError(t, e.Start(b.node("a2")))
	_, err := e.MoveTo(b.b, nil)
	require.NoError(t, err)
	require.NoError(t, e.End())
	assert.Equal(t, []string{"drag:a2", "drop:B", "end:dropped"}, seen)
}

func TestEngine_HorizontalDirection(t *testing.T) {
	doc := dom.NewDocument(40, 10)
	row := doc.CreateElement("R", "").SetFlow(dom.FlowHorizontal).SetSize(0, 2)
	for _, id := range []string{"r1", "r2", "r3"} {
		row.AppendChild(doc.CreateElement(id, "").SetSize(4, 2))
	}
	doc.Body().AppendChild(row)

	e := runtime.NewEngine(doc, []*dom.Node{row}, runtime.Config{Direction: domain.Horizontal})
	require.NoError(t, e.PointerDown(domain.At(1, 1)))
	require.NoError(t, e.PointerMove(domain.At(11, 1)))
	require.NoError(t, e.PointerUp(domain.At(11, 1)))
	assert.Equal(t, []string{"r2", "r3", "r1"}, ids(row))
}
