package h5sparse

import (
	"fmt"

	"github.com/robert-malhotra/go-h5sparse/container"
	"github.com/robert-malhotra/go-h5sparse/dtype"
)

// CreateGroup creates a plain nested child group.
func (g *Group) CreateGroup(name string) (*Group, error) {
	child, err := g.raw.CreateGroup(name)
	if err != nil {
		return nil, err
	}
	return Wrap(child), nil
}

// CreateArray creates a dense child array, passing straight through to the
// container.
func (g *Group) CreateArray(name string, data any, opts ...container.ArrayOption) (*container.Array, error) {
	return g.raw.CreateArray(name, data, opts...)
}

// CreateDataset persists a sparse matrix as a child group holding the
// format and shape attributes plus the data, indices and indptr arrays.
// Element kinds default to float64/uint32/uint64.
//
// Creation is not transactional at the container level; if any step fails
// the partially written child group is deleted before the error returns.
func (g *Group) CreateDataset(name string, m *Matrix, opts ...DatasetOption) (*Dataset, error) {
	if m == nil {
		return nil, fmt.Errorf("creating dataset %q: sparse datasets need backing data: %w", name, ErrNotImplemented)
	}
	format, err := formatOf(m)
	if err != nil {
		return nil, fmt.Errorf("creating dataset %q: %w", name, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("creating dataset %q: %w", name, err)
	}

	o := defaultDatasetOptions()
	for _, opt := range opts {
		opt(o)
	}
	elementKind, indicesKind, indptrKind := o.resolve(dtype.Float64, dtype.Uint32, dtype.Uint64)

	return g.writeDataset(name, format, m.Rows, m.Cols,
		m.Data, m.Indices, m.Indptr,
		elementKind, indicesKind, indptrKind, o.arrayOpts)
}

// CreateDatasetFrom copies an existing on-disk sparse dataset under a new
// name. Element kinds default to the source's kinds.
func (g *Group) CreateDatasetFrom(name string, src *Dataset, opts ...DatasetOption) (*Dataset, error) {
	o := defaultDatasetOptions()
	for _, opt := range opts {
		opt(o)
	}

	data, indices, indptr, err := src.rawArrays()
	if err != nil {
		return nil, fmt.Errorf("creating dataset %q: %w", name, err)
	}
	srcKinds, err := src.arrayKinds()
	if err != nil {
		return nil, fmt.Errorf("creating dataset %q: %w", name, err)
	}
	elementKind, indicesKind, indptrKind := o.resolve(srcKinds[0], srcKinds[1], srcKinds[2])

	rows, cols := src.Shape()
	return g.writeDataset(name, src.Format(), rows, cols,
		data, indices, indptr,
		elementKind, indicesKind, indptrKind, o.arrayOpts)
}

// writeDataset performs the group + attributes + three-array write
// sequence, deleting the child group on any failure.
func (g *Group) writeDataset(name string, format Format, rows, cols int,
	data []float64, indices, indptr []int64,
	elementKind, indicesKind, indptrKind dtype.Kind,
	arrayOpts []container.ArrayOption) (*Dataset, error) {

	child, err := g.raw.CreateGroup(name)
	if err != nil {
		return nil, fmt.Errorf("creating dataset %q: %w", name, err)
	}
	fail := func(err error) (*Dataset, error) {
		_ = g.raw.Delete(name)
		return nil, fmt.Errorf("creating dataset %q: %w", name, err)
	}

	if err := child.SetAttr(FormatAttr, format.Tag()); err != nil {
		return fail(err)
	}
	if err := child.SetAttr(ShapeAttr, []int{rows, cols}); err != nil {
		return fail(err)
	}

	withKind := func(k dtype.Kind) []container.ArrayOption {
		return append([]container.ArrayOption{container.WithKind(k)}, arrayOpts...)
	}
	if _, err := child.CreateArray(dataArray, data, withKind(elementKind)...); err != nil {
		return fail(err)
	}
	if _, err := child.CreateArray(indicesArray, indices, withKind(indicesKind)...); err != nil {
		return fail(err)
	}
	if _, err := child.CreateArray(indptrArray, indptr, withKind(indptrKind)...); err != nil {
		return fail(err)
	}

	return newDataset(child)
}
