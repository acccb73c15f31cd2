// Package h5sparse stores CSR/CSC sparse matrices in a hierarchical
// container alongside dense arrays and nested groups.
//
// A sparse matrix persists as a child group carrying a "format" and a
// "shape" attribute plus three arrays: "data" (the stored values),
// "indices" (the minor-axis index of each value) and "indptr" (the offsets
// delimiting each major-axis slot). Contiguous major-axis ranges read back
// without touching the rest of the dataset, and CSR datasets grow in place
// by appending rows.
package h5sparse

import "errors"

// Common errors
var (
	ErrUnsupportedFormat = errors.New("unsupported sparse format")
	ErrNotSparseDataset  = errors.New("group is not a sparse dataset")
	ErrUnsupportedSlice  = errors.New("slicing is only supported along the compressed axis")
	ErrNotImplemented    = errors.New("not implemented")
	ErrFormatMismatch    = errors.New("sparse format mismatch")
	ErrOutOfRange        = errors.New("index out of range")
	ErrInvalidMatrix     = errors.New("invalid sparse matrix")
)

// Attribute names identifying a sparse dataset group. A child group is
// classified as a sparse dataset iff it carries FormatAttr.
const (
	FormatAttr = "format"
	ShapeAttr  = "shape"
)

// Array names inside a sparse dataset group.
const (
	dataArray    = "data"
	indicesArray = "indices"
	indptrArray  = "indptr"
)
