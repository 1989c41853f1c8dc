package dsl

import "github.com/aretw0/drake/pkg/board"

// ContainerBuilder provides a fluent API for configuring a container.
type ContainerBuilder struct {
	spec    board.ContainerSpec
	builder *Builder
}

// Label sets the display text.
func (c *ContainerBuilder) Label(label string) *ContainerBuilder {
	c.spec.Label = label
	return c
}

// At places the container's top-left corner.
func (c *ContainerBuilder) At(x, y float64) *ContainerBuilder {
	c.spec.X, c.spec.Y = x, y
	return c
}

// Size sets the container extent.
func (c *ContainerBuilder) Size(w, h float64) *ContainerBuilder {
	c.spec.Width, c.spec.Height = w, h
	return c
}

// Spacing sets the padding around items and the gap between them.
func (c *ContainerBuilder) Spacing(padding, gap float64) *ContainerBuilder {
	c.spec.Padding, c.spec.Gap = padding, gap
	return c
}

// Accepts restricts drops to items coming from the given containers.
func (c *ContainerBuilder) Accepts(sources ...string) *ContainerBuilder {
	c.spec.Accepts = append(c.spec.Accepts, sources...)
	return c
}

// Copy makes drags out of this container copy their item.
func (c *ContainerBuilder) Copy() *ContainerBuilder {
	c.spec.Copy = true
	return c
}

// Item appends an item one unit tall.
func (c *ContainerBuilder) Item(id, label string) *ContainerBuilder {
	return c.ItemSpec(board.ItemSpec{ID: id, Label: label})
}

// Locked appends an item that cannot be dragged.
func (c *ContainerBuilder) Locked(id, label string) *ContainerBuilder {
	return c.ItemSpec(board.ItemSpec{ID: id, Label: label, Locked: true})
}

// ItemSpec appends a fully specified item.
func (c *ContainerBuilder) ItemSpec(item board.ItemSpec) *ContainerBuilder {
	c.spec.Items = append(c.spec.Items, item)
	return c
}

// Add starts the next container, allowing chains across containers.
func (c *ContainerBuilder) Add(id string) *ContainerBuilder {
	return c.builder.Add(id)
}

// Build returns the underlying container spec.
// This is primarily used by the Builder, but exposed for advanced usage.
func (c *ContainerBuilder) Build() board.ContainerSpec {
	return c.spec
}
