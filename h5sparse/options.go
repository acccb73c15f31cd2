package h5sparse

import (
	"github.com/robert-malhotra/go-h5sparse/container"
	"github.com/robert-malhotra/go-h5sparse/dtype"
)

// DatasetOption configures sparse dataset creation.
type DatasetOption func(*datasetOptions)

type datasetOptions struct {
	// dtype.Invalid means "use the default": float64/uint32/uint64 for a
	// fresh dataset, the source's kinds for a copy.
	elementKind dtype.Kind
	indicesKind dtype.Kind
	indptrKind  dtype.Kind

	arrayOpts []container.ArrayOption
}

func defaultDatasetOptions() *datasetOptions {
	return &datasetOptions{}
}

func (o *datasetOptions) resolve(element, indices, indptr dtype.Kind) (dtype.Kind, dtype.Kind, dtype.Kind) {
	e, i, p := o.elementKind, o.indicesKind, o.indptrKind
	if e == dtype.Invalid {
		e = element
	}
	if i == dtype.Invalid {
		i = indices
	}
	if p == dtype.Invalid {
		p = indptr
	}
	return e, i, p
}

// WithElementKind stores the data array's values as the given kind.
func WithElementKind(k dtype.Kind) DatasetOption {
	return func(o *datasetOptions) {
		o.elementKind = k
	}
}

// WithIndicesKind stores the indices array as the given kind. The default
// uint32 holds minor dimensions up to ~4 billion.
func WithIndicesKind(k dtype.Kind) DatasetOption {
	return func(o *datasetOptions) {
		o.indicesKind = k
	}
}

// WithIndptrKind stores the indptr array as the given kind. The default
// uint64 keeps cumulative entry counts exact across appends.
func WithIndptrKind(k dtype.Kind) DatasetOption {
	return func(o *datasetOptions) {
		o.indptrKind = k
	}
}

// WithArrayOptions passes container options (such as compression) through
// to all three backing arrays.
func WithArrayOptions(opts ...container.ArrayOption) DatasetOption {
	return func(o *datasetOptions) {
		o.arrayOpts = append(o.arrayOpts, opts...)
	}
}
