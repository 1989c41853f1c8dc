package eligibility

import (
	"slices"

	"github.com/aretw0/drake/pkg/dom"
)

// ContainerSet is the live, ordered set of drake containers. It may be
// changed at any time between pointer events.
type ContainerSet struct {
	nodes []*dom.Node
}

// NewContainerSet creates a set holding the given containers.
func NewContainerSet(nodes ...*dom.Node) *ContainerSet {
	s := &ContainerSet{}
	s.Add(nodes...)
	return s
}

// Add appends containers that are not already members. Nil nodes are ignored.
func (s *ContainerSet) Add(nodes ...*dom.Node) {
	for _, n := range nodes {
		if n != nil && !s.Contains(n) {
			s.nodes = append(s.nodes, n)
		}
	}
}

// Remove drops a container and reports whether it was a member.
func (s *ContainerSet) Remove(n *dom.Node) bool {
	i := slices.Index(s.nodes, n)
	if i < 0 {
		return false
	}
	s.nodes = slices.Delete(s.nodes, i, i+1)
	return true
}

// Contains reports membership.
func (s *ContainerSet) Contains(n *dom.Node) bool {
	return n != nil && slices.Contains(s.nodes, n)
}

// List returns a copy of the members in insertion order.
func (s *ContainerSet) List() []*dom.Node {
	return slices.Clone(s.nodes)
}

// Len returns the number of members.
func (s *ContainerSet) Len() int {
	return len(s.nodes)
}
