package h5sparse

import "fmt"

// Sel selects positions along one axis. Bounds follow the usual slicing
// rules: either may be absent ("to the edge"), negative values count from
// the end, and out-of-range bounds clamp.
type Sel struct {
	start, stop, step          int
	hasStart, hasStop, hasStep bool
	scalar                     bool
}

// All selects the whole axis. It is the only selector a dataset accepts on
// its minor axis.
func All() Sel {
	return Sel{}
}

// At selects the single position i (negative counts from the end).
func At(i int) Sel {
	return Sel{start: i, hasStart: true, scalar: true}
}

// Span selects the half-open range [start, stop).
func Span(start, stop int) Sel {
	return Sel{start: start, stop: stop, hasStart: true, hasStop: true}
}

// From selects [start, end-of-axis).
func From(start int) Sel {
	return Sel{start: start, hasStart: true}
}

// To selects [0, stop).
func To(stop int) Sel {
	return Sel{stop: stop, hasStop: true}
}

// Stride is Span with an explicit step. Steps other than 1 are not
// supported by compressed storage and fail at slice time.
func Stride(start, stop, step int) Sel {
	return Sel{start: start, stop: stop, step: step, hasStart: true, hasStop: true, hasStep: true}
}

func (s Sel) isAll() bool {
	return !s.scalar && !s.hasStart && !s.hasStop && !s.hasStep
}

// resolve maps the possibly negative, possibly absent bounds onto [0, n],
// clamping like a Python slice with unit step.
func (s Sel) resolve(n int) (lo, hi int) {
	lo = 0
	if s.hasStart {
		lo = s.start
		if lo < 0 {
			lo += n
		}
		lo = min(max(lo, 0), n)
	}
	hi = n
	if s.hasStop {
		hi = s.stop
		if hi < 0 {
			hi += n
		}
		hi = min(max(hi, 0), n)
	}
	return lo, hi
}

// Slice reads the sub-matrix selected by (rows, cols). Compressed storage
// only slices contiguously along the major axis, so the minor-axis
// selector must be All and the major-axis step must be 1.
//
// Only the indptr window plus the data/indices range it brackets is read
// from the backing arrays; the returned matrix's indptr is rebased to
// start at 0.
func (d *Dataset) Slice(rows, cols Sel) (*Matrix, error) {
	major, minor := rows, cols
	if d.format == CSC {
		major, minor = cols, rows
	}
	if !minor.isAll() {
		return nil, fmt.Errorf("dataset %s (%s): %w", d.Path(), d.FormatTag(), ErrUnsupportedSlice)
	}
	if major.hasStep && major.step != 1 {
		return nil, fmt.Errorf("dataset %s: step %d: %w", d.Path(), major.step, ErrNotImplemented)
	}

	nrows, ncols := d.Shape()
	majorDim := nrows
	if d.format == CSC {
		majorDim = ncols
	}

	if major.scalar {
		k := major.start
		if k < 0 {
			k += majorDim
		}
		if k < 0 || k >= majorDim {
			return nil, fmt.Errorf("dataset %s: index %d of %d: %w", d.Path(), major.start, majorDim, ErrOutOfRange)
		}
		major = Span(k, k+1)
	}

	// One extra indptr boundary is needed to bracket the last requested
	// slot, hence the off-by-one adjustment before resolving against the
	// indptr length. A negative stop needs none: indptr is one longer than
	// the major axis, which shifts the from-the-end position by itself.
	if major.hasStop && major.stop > 0 {
		major.stop++
	}
	if major.hasStart && major.start < 0 {
		major.start--
	}

	dataArr, indicesArr, indptrArr, err := d.arrays()
	if err != nil {
		return nil, err
	}
	lo, hi := major.resolve(indptrArr.Len())

	var indptr []int64
	if hi > lo {
		if err := indptrArr.ReadRange(lo, hi, &indptr); err != nil {
			return nil, err
		}
	} else {
		// Empty selection (start at or past stop): no slots, no entries.
		indptr = []int64{0}
	}

	first := int(indptr[0])
	last := int(indptr[len(indptr)-1])

	var data []float64
	if err := dataArr.ReadRange(first, last, &data); err != nil {
		return nil, err
	}
	var indices []int64
	if err := indicesArr.ReadRange(first, last, &indices); err != nil {
		return nil, err
	}

	for i := range indptr {
		indptr[i] -= int64(first)
	}

	majorOut := len(indptr) - 1
	outRows, outCols := majorOut, ncols
	if d.format == CSC {
		outRows, outCols = nrows, majorOut
	}
	m, err := d.format.construct(data, indices, indptr, outRows, outCols)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", d.Path(), err)
	}
	return m, nil
}

// Row materializes a single row. On a CSC dataset this fails with
// ErrUnsupportedSlice like any other row selection.
func (d *Dataset) Row(i int) (*Matrix, error) {
	return d.Slice(At(i), All())
}
