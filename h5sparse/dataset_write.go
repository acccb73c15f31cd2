package h5sparse

import "fmt"

// Append grows a CSR dataset with the rows of m: data and indices extend
// unchanged, incoming indptr offsets rebase by the current entry count
// (dropping the leading 0, which duplicates the existing last boundary),
// and the shape attribute becomes (rows+m.Rows, max(cols, m.Cols)).
//
// Only CSR append is supported; a CSC dataset fails with ErrNotImplemented
// and a format mismatch with ErrFormatMismatch.
//
// The three array mutations are not transactional. A failure partway
// leaves the dataset inconsistent; the caller must not keep using it.
func (d *Dataset) Append(m *Matrix) error {
	format, err := formatOf(m)
	if err != nil {
		return fmt.Errorf("appending to %s: %w", d.Path(), err)
	}
	if format != d.format {
		return fmt.Errorf("appending %s to %s dataset %s: %w", format.Tag(), d.FormatTag(), d.Path(), ErrFormatMismatch)
	}
	if d.format != CSR {
		return fmt.Errorf("append for format %s: %w", d.FormatTag(), ErrNotImplemented)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("appending to %s: %w", d.Path(), err)
	}

	dataArr, indicesArr, indptrArr, err := d.arrays()
	if err != nil {
		return err
	}

	// data
	oldData := dataArr.Len()
	if err := dataArr.Resize(oldData + len(m.Data)); err != nil {
		return fmt.Errorf("appending to %s: %w", d.Path(), err)
	}
	if err := dataArr.Write(oldData, m.Data); err != nil {
		return fmt.Errorf("appending to %s: %w", d.Path(), err)
	}

	// indptr
	oldIndptr := indptrArr.Len()
	var tailBoundary []int64
	if err := indptrArr.ReadRange(oldIndptr-1, oldIndptr, &tailBoundary); err != nil {
		return fmt.Errorf("appending to %s: %w", d.Path(), err)
	}
	offset := tailBoundary[0]
	rebased := make([]int64, len(m.Indptr)-1)
	for i := range rebased {
		rebased[i] = m.Indptr[i+1] + offset
	}
	if err := indptrArr.Resize(oldIndptr + len(rebased)); err != nil {
		return fmt.Errorf("appending to %s: %w", d.Path(), err)
	}
	if err := indptrArr.Write(oldIndptr, rebased); err != nil {
		return fmt.Errorf("appending to %s: %w", d.Path(), err)
	}

	// indices: minor-axis positions are axis-local, never rebased.
	oldIndices := indicesArr.Len()
	if err := indicesArr.Resize(oldIndices + len(m.Indices)); err != nil {
		return fmt.Errorf("appending to %s: %w", d.Path(), err)
	}
	if err := indicesArr.Write(oldIndices, m.Indices); err != nil {
		return fmt.Errorf("appending to %s: %w", d.Path(), err)
	}

	// shape: append never shrinks the minor dimension.
	rows, cols := d.Shape()
	if err := d.group.SetAttr(ShapeAttr, []int{rows + m.Rows, max(cols, m.Cols)}); err != nil {
		return fmt.Errorf("appending to %s: %w", d.Path(), err)
	}
	return nil
}
