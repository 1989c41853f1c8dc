package dsl

import (
	"fmt"

	"github.com/aretw0/drake/pkg/board"
)

// Builder manages the board construction.
type Builder struct {
	spec       board.Spec
	containers map[string]*ContainerBuilder
	order      []*ContainerBuilder
}

// New creates a new board builder with the given viewport.
func New(name string, width, height float64) *Builder {
	return &Builder{
		spec: board.Spec{
			Name:   name,
			Width:  width,
			Height: height,
		},
		containers: make(map[string]*ContainerBuilder),
	}
}

// Option sets one entry of the options block, using the YAML key names.
func (b *Builder) Option(key string, value any) *Builder {
	if b.spec.Options == nil {
		b.spec.Options = make(map[string]any)
	}
	b.spec.Options[key] = value
	return b
}

// Add creates a new container on the board.
// If the container already exists, it returns the existing builder.
func (b *Builder) Add(id string) *ContainerBuilder {
	if cb, ok := b.containers[id]; ok {
		return cb
	}
	cb := &ContainerBuilder{
		spec:    board.ContainerSpec{ID: id},
		builder: b,
	}
	b.containers[id] = cb
	b.order = append(b.order, cb)
	return cb
}

// Spec returns the board definition assembled so far.
func (b *Builder) Spec() *board.Spec {
	spec := b.spec
	spec.Containers = make([]board.ContainerSpec, 0, len(b.order))
	for _, cb := range b.order {
		spec.Containers = append(spec.Containers, cb.spec)
	}
	return &spec
}

// Build compiles the definition into a board.
func (b *Builder) Build() (*board.Board, error) {
	built, err := board.Build(b.Spec())
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}
	return built, nil
}
