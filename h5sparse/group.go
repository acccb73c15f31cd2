package h5sparse

import (
	"fmt"

	"github.com/robert-malhotra/go-h5sparse/container"
)

// Group wraps a container group and classifies its children: child groups
// carrying the format attribute surface as sparse datasets, other groups
// stay plain nested groups, and arrays pass through unchanged.
type Group struct {
	raw *container.Group
}

// Wrap returns the sparse-aware view of a container group.
func Wrap(g *container.Group) *Group {
	return &Group{raw: g}
}

// Raw returns the underlying container group.
func (g *Group) Raw() *container.Group {
	return g.raw
}

// Path returns the full path to this group.
func (g *Group) Path() string {
	return g.raw.Path()
}

// Keys returns the sorted names of all children.
func (g *Group) Keys() []string {
	return g.raw.Keys()
}

// Get returns the named child as one of *Dataset (sparse dataset),
// *Group (plain nested group) or *container.Array (dense passthrough).
func (g *Group) Get(name string) (any, error) {
	if g.raw.IsGroup(name) {
		child, err := g.raw.OpenGroup(name)
		if err != nil {
			return nil, err
		}
		if child.HasAttr(FormatAttr) {
			return newDataset(child)
		}
		return Wrap(child), nil
	}
	arr, err := g.raw.OpenArray(name)
	if err != nil {
		return nil, err
	}
	return arr, nil
}

// OpenDataset returns the named child as a sparse dataset. A plain group
// fails with ErrNotSparseDataset.
func (g *Group) OpenDataset(name string) (*Dataset, error) {
	child, err := g.raw.OpenGroup(name)
	if err != nil {
		return nil, err
	}
	return newDataset(child)
}

// OpenGroup returns the named child group (sparse-aware).
func (g *Group) OpenGroup(name string) (*Group, error) {
	child, err := g.raw.OpenGroup(name)
	if err != nil {
		return nil, err
	}
	return Wrap(child), nil
}

// OpenArray returns the named child array.
func (g *Group) OpenArray(name string) (*container.Array, error) {
	return g.raw.OpenArray(name)
}

// Delete removes the named child.
func (g *Group) Delete(name string) error {
	return g.raw.Delete(name)
}

// readMetadata decodes a sparse dataset group's identifying attributes.
func readMetadata(g *container.Group) (Format, int, int, error) {
	tag, ok := g.AttrString(FormatAttr)
	if !ok {
		return 0, 0, 0, fmt.Errorf("group %s: %w", g.Path(), ErrNotSparseDataset)
	}
	format, err := ParseFormat(tag)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("group %s: %w", g.Path(), err)
	}
	shape, ok := g.AttrInts(ShapeAttr)
	if !ok || len(shape) != 2 {
		return 0, 0, 0, fmt.Errorf("group %s: missing or malformed shape attribute: %w", g.Path(), ErrNotSparseDataset)
	}
	return format, shape[0], shape[1], nil
}
