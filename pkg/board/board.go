// Package board turns YAML board definitions into a visual tree and the drake
// options that govern it, and converts the tree to and from stored layouts.
package board

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/drake"
	"github.com/aretw0/drake/pkg/dom"
	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/mirror"
)

// Class names set on board nodes.
const (
	ClassContainer = "container"
	ClassItem      = "item"
	ClassLocked    = "locked"
)

// LabelAttr is the attribute holding the display text of a node.
const LabelAttr = "label"

const (
	defaultItemHeight = 1
	defaultItemWidth  = 8
)

// Board is a built board: a document, its containers and the rules the
// definition attached to them.
type Board struct {
	Name     string
	Settings Settings

	doc        *dom.Document
	spec       *Spec
	order      []*dom.Node
	containers map[string]*dom.Node
	items      map[string]*dom.Node
	accepts    map[string][]string
	copyFrom   map[string]bool
}

// Build validates spec and lays out its document.
func Build(spec *Spec) (*Board, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: nil spec", domain.ErrInvalidBoard)
	}
	settings, err := DecodeSettings(spec.Options)
	if err != nil {
		return nil, err
	}
	if err := Validate(spec); err != nil {
		return nil, err
	}

	b := &Board{
		Name:       spec.Name,
		Settings:   settings,
		doc:        dom.NewDocument(spec.Width, spec.Height),
		spec:       spec,
		containers: make(map[string]*dom.Node, len(spec.Containers)),
		items:      make(map[string]*dom.Node),
		accepts:    make(map[string][]string),
		copyFrom:   make(map[string]bool),
	}
	horizontal := domain.Direction(settings.Direction) == domain.Horizontal
	for _, cs := range spec.Containers {
		c := b.doc.CreateElement(cs.ID, dom.TagDiv).
			SetPosition(cs.X, cs.Y).
			SetSize(cs.Width, cs.Height).
			SetSpacing(cs.Padding, cs.Gap)
		if horizontal {
			c.SetFlow(dom.FlowHorizontal)
		} else {
			c.SetFlow(dom.FlowVertical)
		}
		c.AddClass(ClassContainer)
		c.SetAttr(LabelAttr, labelOr(cs.Label, cs.ID))

		for _, is := range cs.Items {
			w, h := is.Width, is.Height
			if horizontal {
				if w == 0 {
					w = defaultItemWidth
				}
				if h == 0 {
					h = cs.Height - 2*cs.Padding
				}
			} else {
				if w == 0 {
					w = cs.Width - 2*cs.Padding
				}
				if h == 0 {
					h = defaultItemHeight
				}
			}
			item := b.doc.CreateElement(is.ID, is.Tag).SetSize(w, h)
			item.AddClass(ClassItem)
			item.SetAttr(LabelAttr, labelOr(is.Label, is.ID))
			if is.Locked {
				item.AddClass(ClassLocked)
			}
			c.AppendChild(item)
			b.items[is.ID] = item
		}

		b.doc.Body().AppendChild(c)
		b.order = append(b.order, c)
		b.containers[cs.ID] = c
		if len(cs.Accepts) > 0 {
			b.accepts[cs.ID] = slices.Clone(cs.Accepts)
		}
		b.copyFrom[cs.ID] = cs.Copy
	}
	b.doc.Layout()
	return b, nil
}

func labelOr(label, id string) string {
	if label != "" {
		return label
	}
	return id
}

// Validate reports every structural problem of spec at once.
func Validate(spec *Spec) error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		addf("board size must be positive, got %gx%g", spec.Width, spec.Height)
	}
	if len(spec.Containers) == 0 {
		addf("board has no containers")
	}

	seen := make(map[string]string)
	claim := func(id, kind string) {
		if id == "" {
			addf("%s without id", kind)
			return
		}
		if prev, ok := seen[id]; ok {
			addf("duplicate id %q (%s and %s)", id, prev, kind)
			return
		}
		seen[id] = kind
	}
	for _, c := range spec.Containers {
		claim(c.ID, "container")
		if c.Width <= 0 || c.Height <= 0 {
			addf("container %q size must be positive", c.ID)
		}
		for _, it := range c.Items {
			claim(it.ID, "item")
			if it.Width < 0 || it.Height < 0 {
				addf("item %q size must not be negative", it.ID)
			}
		}
	}
	for _, c := range spec.Containers {
		for _, src := range c.Accepts {
			if seen[src] != "container" {
				addf("container %q accepts unknown container %q", c.ID, src)
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidBoard, strings.Join(problems, "; "))
	}
	return nil
}

// Document returns the board's visual tree.
func (b *Board) Document() *dom.Document {
	return b.doc
}

// Spec returns the definition the board was built from.
func (b *Board) Spec() *Spec {
	return b.spec
}

// Containers returns the containers in definition order.
func (b *Board) Containers() []*dom.Node {
	return slices.Clone(b.order)
}

// Container returns the container with the given id.
func (b *Board) Container(id string) *dom.Node {
	return b.containers[id]
}

// Node returns the node with the given id. Definition items are preferred
// over copies and mirrors sharing their id, and detached items are returned
// when nothing connected carries the id.
func (b *Board) Node(id string) *dom.Node {
	item, ok := b.items[id]
	if ok && item.Connected() {
		return item
	}
	if n := b.doc.NodeByID(id); n != nil {
		return n
	}
	return item
}

// Label returns the display text of a node, or its id.
func (b *Board) Label(id string) string {
	if n := b.Node(id); n != nil {
		if v, ok := n.Attr(LabelAttr); ok {
			return v
		}
	}
	return id
}

// Options returns the drake options described by the board: its settings,
// its containers, locked items and the per-container accept and copy rules.
func (b *Board) Options() []drake.Option {
	s := b.Settings
	return []drake.Option{
		drake.WithContainers(b.order...),
		drake.WithDirection(domain.Direction(s.Direction)),
		drake.WithRevertOnSpill(s.RevertOnSpill),
		drake.WithRemoveOnSpill(s.RemoveOnSpill),
		drake.WithCopySortSource(s.CopySortSource),
		drake.WithIgnoreInputTextSelection(s.IgnoreInputTextSelection),
		drake.WithSlideFactor(s.SlideFactorX, s.SlideFactorY),
		drake.WithMoves(func(item, _, _, _ *dom.Node) bool {
			return !item.HasClass(ClassLocked)
		}),
		drake.WithAccepts(b.accept),
		drake.WithCopyFunc(func(_, source *dom.Node) bool {
			return s.Copy || b.copyFrom[source.ID]
		}),
	}
}

func (b *Board) accept(_, target, source, _ *dom.Node) bool {
	rule, ok := b.accepts[target.ID]
	if !ok || target == source {
		return true
	}
	return slices.Contains(rule, source.ID)
}

// New builds a drake over the board with the board's options followed by opts.
func (b *Board) New(opts ...drake.Option) (*drake.Drake, error) {
	return drake.New(b.doc, nil, append(b.Options(), opts...)...)
}

// Snapshot captures the current arrangement of every container. Definition
// items that no container holds any more are listed as removed.
func (b *Board) Snapshot() *domain.Layout {
	l := &domain.Layout{Board: b.Name, UpdatedAt: time.Now().UTC()}
	held := make(map[*dom.Node]bool, len(b.items))
	for _, c := range b.order {
		col := domain.Column{ID: c.ID, Items: []string{}}
		for _, n := range c.Children() {
			if n.HasClass(mirror.ClassName) {
				continue
			}
			held[n] = true
			col.Items = append(col.Items, n.ID)
		}
		l.Columns = append(l.Columns, col)
	}
	for id, n := range b.items {
		if !held[n] {
			l.Removed = append(l.Removed, id)
		}
	}
	slices.Sort(l.Removed)
	return l
}

// Apply rearranges the board to match l. Listed items come first in the
// listed order, unlisted children keep their relative order after them, and
// unknown ids are skipped. Items the layout marks as removed are detached
// unless a column lists them. An id listed twice materializes a copy, so
// Apply is meant for freshly built boards.
func (b *Board) Apply(l *domain.Layout) error {
	if l == nil {
		return nil
	}
	if l.Board != "" && l.Board != b.Name {
		return fmt.Errorf("%w: layout of %q cannot be applied to %q", domain.ErrInvalidBoard, l.Board, b.Name)
	}
	used := make(map[string]bool)
	for _, col := range l.Columns {
		c := b.containers[col.ID]
		if c == nil {
			continue
		}
		listed := make(map[*dom.Node]bool, len(col.Items))
		for _, id := range col.Items {
			n, ok := b.items[id]
			if !ok {
				continue
			}
			if used[id] {
				n = n.Clone(true)
			}
			used[id] = true
			c.AppendChild(n)
			listed[n] = true
		}
		for _, n := range c.Children() {
			if !listed[n] {
				c.AppendChild(n)
			}
		}
	}
	for _, id := range l.Removed {
		if n, ok := b.items[id]; ok && !used[id] {
			n.Remove()
		}
	}
	return nil
}
