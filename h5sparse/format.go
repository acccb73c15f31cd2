package h5sparse

import "fmt"

// Format identifies the compressed axis of a sparse matrix.
type Format uint8

// The two supported formats. The zero value is invalid.
const (
	// CSR compresses along rows: indptr has one slot per row and indices
	// hold column positions.
	CSR Format = iota + 1
	// CSC compresses along columns: indptr has one slot per column and
	// indices hold row positions.
	CSC
)

// Tag returns the format's on-disk tag ("csr" or "csc").
func (f Format) Tag() string {
	switch f {
	case CSR:
		return "csr"
	case CSC:
		return "csc"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(f))
	}
}

// String returns the on-disk tag.
func (f Format) String() string {
	return f.Tag()
}

func (f Format) valid() bool {
	return f == CSR || f == CSC
}

// ParseFormat returns the format with the given tag.
func ParseFormat(tag string) (Format, error) {
	switch tag {
	case "csr":
		return CSR, nil
	case "csc":
		return CSC, nil
	default:
		return 0, fmt.Errorf("tag %q: %w", tag, ErrUnsupportedFormat)
	}
}

// formatOf returns the format of an in-memory matrix, rejecting
// representations outside the supported set.
func formatOf(m *Matrix) (Format, error) {
	if !m.Format.valid() {
		return 0, fmt.Errorf("matrix format %d: %w", uint8(m.Format), ErrUnsupportedFormat)
	}
	return m.Format, nil
}

// construct builds a matrix of this format from its three raw arrays and a
// shape. This is the registry's construction side: decoded datasets and
// slices come back through here.
func (f Format) construct(data []float64, indices, indptr []int64, rows, cols int) (*Matrix, error) {
	switch f {
	case CSR:
		return NewCSR(rows, cols, data, indices, indptr)
	case CSC:
		return NewCSC(rows, cols, data, indices, indptr)
	default:
		return nil, fmt.Errorf("format %d: %w", uint8(f), ErrUnsupportedFormat)
	}
}
