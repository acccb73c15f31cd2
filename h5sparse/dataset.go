package h5sparse

import (
	"fmt"

	"github.com/robert-malhotra/go-h5sparse/container"
	"github.com/robert-malhotra/go-h5sparse/dtype"
)

// Dataset is a view over an on-disk sparse matrix: a container group with
// format/shape attributes and the data/indices/indptr arrays. Reads go
// through the indptr translation in Slice; rows append in place via Append.
type Dataset struct {
	group  *container.Group
	format Format
}

// newDataset validates the group's identifying attributes and wraps it.
func newDataset(g *container.Group) (*Dataset, error) {
	format, _, _, err := readMetadata(g)
	if err != nil {
		return nil, err
	}
	return &Dataset{group: g, format: format}, nil
}

// Raw returns the underlying container group.
func (d *Dataset) Raw() *container.Group {
	return d.group
}

// Path returns the full path to the dataset's group.
func (d *Dataset) Path() string {
	return d.group.Path()
}

// Format returns the dataset's sparse format.
func (d *Dataset) Format() Format {
	return d.format
}

// FormatTag returns the on-disk format tag.
func (d *Dataset) FormatTag() string {
	return d.format.Tag()
}

// Shape returns (rows, cols) from the shape attribute.
func (d *Dataset) Shape() (int, int) {
	shape, ok := d.group.AttrInts(ShapeAttr)
	if !ok || len(shape) != 2 {
		return 0, 0
	}
	return shape[0], shape[1]
}

// NNZ returns the number of stored entries.
func (d *Dataset) NNZ() (int, error) {
	arr, err := d.group.OpenArray(dataArray)
	if err != nil {
		return 0, fmt.Errorf("dataset %s: %w", d.Path(), err)
	}
	return arr.Len(), nil
}

func (d *Dataset) String() string {
	rows, cols := d.Shape()
	return fmt.Sprintf("<sparse dataset %s: format %q, shape (%d, %d)>", d.Path(), d.FormatTag(), rows, cols)
}

// arrays returns the three backing arrays.
func (d *Dataset) arrays() (data, indices, indptr *container.Array, err error) {
	if data, err = d.group.OpenArray(dataArray); err != nil {
		return nil, nil, nil, fmt.Errorf("dataset %s: %w", d.Path(), err)
	}
	if indices, err = d.group.OpenArray(indicesArray); err != nil {
		return nil, nil, nil, fmt.Errorf("dataset %s: %w", d.Path(), err)
	}
	if indptr, err = d.group.OpenArray(indptrArray); err != nil {
		return nil, nil, nil, fmt.Errorf("dataset %s: %w", d.Path(), err)
	}
	return data, indices, indptr, nil
}

// rawArrays reads all three arrays in full.
func (d *Dataset) rawArrays() (data []float64, indices, indptr []int64, err error) {
	dataArr, indicesArr, indptrArr, err := d.arrays()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := dataArr.Read(&data); err != nil {
		return nil, nil, nil, err
	}
	if err := indicesArr.Read(&indices); err != nil {
		return nil, nil, nil, err
	}
	if err := indptrArr.Read(&indptr); err != nil {
		return nil, nil, nil, err
	}
	return data, indices, indptr, nil
}

// arrayKinds returns the element kinds of data, indices and indptr.
func (d *Dataset) arrayKinds() ([3]dtype.Kind, error) {
	dataArr, indicesArr, indptrArr, err := d.arrays()
	if err != nil {
		return [3]dtype.Kind{}, err
	}
	return [3]dtype.Kind{dataArr.Kind(), indicesArr.Kind(), indptrArr.Kind()}, nil
}

// Load materializes the whole matrix.
func (d *Dataset) Load() (*Matrix, error) {
	data, indices, indptr, err := d.rawArrays()
	if err != nil {
		return nil, err
	}
	rows, cols := d.Shape()
	m, err := d.format.construct(data, indices, indptr, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", d.Path(), err)
	}
	return m, nil
}
