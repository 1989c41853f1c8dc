package dom

// Document owns a visual tree rooted at an html node with a single body.
// It is not safe for concurrent use.
type Document struct {
	root  *Node
	body  *Node
	dirty bool
}

// NewDocument creates a document whose viewport is w by h.
func NewDocument(w, h float64) *Document {
	d := &Document{}
	d.root = d.CreateElement("", TagHTML)
	d.root.size = Size{W: w, H: h}
	d.body = d.CreateElement("", TagBody)
	d.body.size = Size{W: w, H: h}
	d.root.AppendChild(d.body)
	d.dirty = true
	return d
}

// CreateElement returns a detached node owned by d.
func (d *Document) CreateElement(id, tag string) *Node {
	if tag == "" {
		tag = TagDiv
	}
	return &Node{ID: id, Tag: tag, doc: d}
}

// Root returns the html node.
func (d *Document) Root() *Node { return d.root }

// Body returns the body node.
func (d *Document) Body() *Node { return d.body }

// Viewport returns the document size.
func (d *Document) Viewport() Size { return d.root.size }

// Layout recomputes every rect immediately.
func (d *Document) Layout() {
	d.root.measure()
	d.root.place(d.root.pos)
	d.dirty = false
}

func (d *Document) ensureLayout() {
	if d.dirty {
		d.Layout()
	}
}

// NodeByID returns the first connected node with the given id in tree order.
// Nodes built by CreateElement win over clones sharing their id.
func (d *Document) NodeByID(id string) *Node {
	var clone *Node
	var found *Node
	d.root.Walk(func(n *Node) bool {
		if n.ID != id {
			return true
		}
		if n.IsClone() {
			if clone == nil {
				clone = n
			}
			return true
		}
		found = n
		return false
	})
	if found != nil {
		return found
	}
	return clone
}

// ElementFromPoint returns the deepest node under p. Later siblings are
// treated as painted above earlier ones. Excluded nodes and their subtrees are
// transparent to the search.
func (d *Document) ElementFromPoint(p Point, exclude ...*Node) *Node {
	d.ensureLayout()
	var skip map[*Node]bool
	if len(exclude) > 0 {
		skip = make(map[*Node]bool, len(exclude))
		for _, n := range exclude {
			if n != nil {
				skip[n] = true
			}
		}
	}
	return hit(d.root, p, skip)
}

func hit(n *Node, p Point, skip map[*Node]bool) *Node {
	if skip[n] {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if h := hit(n.children[i], p, skip); h != nil {
			return h
		}
	}
	if n.rect.Contains(p) {
		return n
	}
	return nil
}

// IsInput reports whether n is a form field or editable content, the places
// where a press usually means text selection rather than a drag.
func IsInput(n *Node) bool {
	if n == nil {
		return false
	}
	switch n.Tag {
	case TagInput, TagTextArea, TagSelect:
		return true
	}
	return IsEditable(n)
}

// IsEditable resolves the inherited editable state of n.
func IsEditable(n *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		switch cur.Editable {
		case EditableTrue:
			return true
		case EditableFalse:
			return false
		}
	}
	return false
}
