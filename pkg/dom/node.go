package dom

import "slices"

// Well-known tags.
const (
	TagHTML     = "html"
	TagBody     = "body"
	TagDiv      = "div"
	TagInput    = "input"
	TagTextArea = "textarea"
	TagSelect   = "select"
)

// Flow is the layout axis a node uses to place its children.
type Flow int

const (
	// FlowNone places each child at its own position relative to the parent origin.
	FlowNone Flow = iota
	// FlowVertical stacks children top to bottom.
	FlowVertical
	// FlowHorizontal stacks children left to right.
	FlowHorizontal
)

// Editable mirrors the tri-state contenteditable attribute.
type Editable int

const (
	EditableInherit Editable = iota
	EditableTrue
	EditableFalse
)

// Node is an element of the visual tree.
type Node struct {
	ID       string
	Tag      string
	Editable Editable

	flow     Flow
	gap      float64
	padding  float64
	absolute bool
	size     Size
	pos      Point

	classes []string
	attrs   map[string]string

	parent   *Node
	children []*Node
	doc      *Document
	origin   *Node

	rect     Rect
	measured Size
}

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Index returns the position of n among its siblings, or -1 when detached.
func (n *Node) Index() int {
	if n == nil || n.parent == nil {
		return -1
	}
	return slices.Index(n.parent.children, n)
}

// NextSibling returns the node immediately after n, or nil.
func (n *Node) NextSibling() *Node {
	i := n.Index()
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// PreviousSibling returns the node immediately before n, or nil.
func (n *Node) PreviousSibling() *Node {
	i := n.Index()
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// OwnerDocument returns the document that created n.
func (n *Node) OwnerDocument() *Document {
	return n.doc
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Connected reports whether n is attached to its document's root.
func (n *Node) Connected() bool {
	if n == nil || n.doc == nil {
		return false
	}
	return n.doc.root.Contains(n)
}

// AppendChild moves child to the end of n's children.
func (n *Node) AppendChild(child *Node) *Node {
	return n.InsertBefore(child, nil)
}

// InsertBefore moves child so that it sits immediately before ref.
// A nil ref, or a ref that is not a child of n, appends. Inserting a node
// into its own subtree is ignored and returns nil.
func (n *Node) InsertBefore(child, ref *Node) *Node {
	if child == nil || child == ref || child.Contains(n) {
		return nil
	}
	if child.parent != nil {
		child.parent.detach(child)
	}
	child.parent = n
	i := len(n.children)
	if ref != nil && ref.parent == n {
		i = slices.Index(n.children, ref)
	}
	n.children = slices.Insert(n.children, i, child)
	n.invalidate()
	return child
}

// RemoveChild detaches child from n. It returns nil when child is not a child of n.
func (n *Node) RemoveChild(child *Node) *Node {
	if child == nil || child.parent != n {
		return nil
	}
	n.detach(child)
	return child
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.detach(n)
	}
}

func (n *Node) detach(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	child.parent = nil
	n.invalidate()
}

// Clone copies n. A deep clone also copies the subtree. The clone belongs to
// the same document but is detached, keeps the id and remembers the node it
// was copied from.
func (n *Node) Clone(deep bool) *Node {
	c := &Node{
		origin:   n.Original(),
		ID:       n.ID,
		Tag:      n.Tag,
		Editable: n.Editable,
		flow:     n.flow,
		gap:      n.gap,
		padding:  n.padding,
		absolute: n.absolute,
		size:     n.size,
		pos:      n.pos,
		classes:  slices.Clone(n.classes),
		doc:      n.doc,
	}
	if n.attrs != nil {
		c.attrs = make(map[string]string, len(n.attrs))
		for k, v := range n.attrs {
			c.attrs[k] = v
		}
	}
	if deep {
		for _, child := range n.children {
			cc := child.Clone(true)
			cc.parent = c
			c.children = append(c.children, cc)
		}
	}
	return c
}

// Original returns the node n was cloned from, following clones of clones
// back to the first one. It returns n for nodes that are not clones.
func (n *Node) Original() *Node {
	if n.origin != nil {
		return n.origin
	}
	return n
}

// IsClone reports whether n was made by Clone.
func (n *Node) IsClone() bool {
	return n.origin != nil
}

// Walk visits n and its descendants in tree order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// SetSize sets the node's own size. Zero components of a flow container are
// computed from its content.
func (n *Node) SetSize(w, h float64) *Node {
	n.size = Size{W: w, H: h}
	n.invalidate()
	return n
}

// Size returns the declared size.
func (n *Node) Size() Size { return n.size }

// SetPosition sets the offset used outside of flow layout. Absolute nodes
// interpret it in document coordinates, others relative to the parent origin.
func (n *Node) SetPosition(x, y float64) *Node {
	n.pos = Point{X: x, Y: y}
	n.invalidate()
	return n
}

// Position returns the declared position.
func (n *Node) Position() Point { return n.pos }

// SetFlow sets how children are laid out.
func (n *Node) SetFlow(f Flow) *Node {
	n.flow = f
	n.invalidate()
	return n
}

// Flow returns the child layout axis.
func (n *Node) Flow() Flow { return n.flow }

// SetSpacing sets padding around and the gap between flowed children.
func (n *Node) SetSpacing(padding, gap float64) *Node {
	n.padding, n.gap = padding, gap
	n.invalidate()
	return n
}

// SetAbsolute takes the node out of its parent's flow.
func (n *Node) SetAbsolute(v bool) *Node {
	n.absolute = v
	n.invalidate()
	return n
}

// Absolute reports whether the node is positioned in document coordinates.
func (n *Node) Absolute() bool { return n.absolute }

// AddClass adds a class name if missing.
func (n *Node) AddClass(name string) {
	if !n.HasClass(name) {
		n.classes = append(n.classes, name)
	}
}

// RemoveClass removes a class name.
func (n *Node) RemoveClass(name string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool { return c == name })
}

// HasClass reports whether the class is set.
func (n *Node) HasClass(name string) bool {
	return slices.Contains(n.classes, name)
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// SetAttr stores an arbitrary attribute.
func (n *Node) SetAttr(key, value string) *Node {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
	return n
}

// Attr returns an attribute value.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Rect returns the laid-out bounding box of the node.
func (n *Node) Rect() Rect {
	if n.Connected() {
		n.doc.ensureLayout()
		return n.rect
	}
	top := n
	for top.parent != nil {
		top = top.parent
	}
	top.measure()
	top.place(top.pos)
	return n.rect
}

func (n *Node) invalidate() {
	if n.doc != nil {
		n.doc.dirty = true
	}
}

func (n *Node) measure() Size {
	var along, cross float64
	flowed := 0
	for _, c := range n.children {
		s := c.measure()
		if c.absolute || n.flow == FlowNone {
			continue
		}
		a, x := s.H, s.W
		if n.flow == FlowHorizontal {
			a, x = s.W, s.H
		}
		along += a
		cross = max(cross, x)
		flowed++
	}
	size := n.size
	if n.flow != FlowNone {
		if flowed > 1 {
			along += n.gap * float64(flowed-1)
		}
		along += 2 * n.padding
		cross += 2 * n.padding
		if n.flow == FlowVertical {
			if size.H == 0 {
				size.H = along
			}
			if size.W == 0 {
				size.W = cross
			}
		} else {
			if size.W == 0 {
				size.W = along
			}
			if size.H == 0 {
				size.H = cross
			}
		}
	}
	n.measured = size
	return size
}

func (n *Node) place(origin Point) {
	n.rect = Rect{X: origin.X, Y: origin.Y, W: n.measured.W, H: n.measured.H}
	cursor := Point{X: origin.X + n.padding, Y: origin.Y + n.padding}
	for _, c := range n.children {
		switch {
		case c.absolute:
			c.place(c.pos)
		case n.flow == FlowVertical:
			c.place(cursor)
			cursor.Y += c.measured.H + n.gap
		case n.flow == FlowHorizontal:
			c.place(cursor)
			cursor.X += c.measured.W + n.gap
		default:
			c.place(origin.Add(c.pos))
		}
	}
}
