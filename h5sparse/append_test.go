package h5sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendScenario(t *testing.T) {
	ds := newCSRDataset(t, testCSR(t))

	row, err := NewCSR(1, 3, []float64{9}, []int64{0}, []int64{0, 1})
	require.NoError(t, err)
	require.NoError(t, ds.Append(row))

	got, err := ds.Load()
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 8, 3, 6, 9}, got.Data)
	assert.Equal(t, []int64{0, 2, 1, 2, 0}, got.Indices)
	assert.Equal(t, []int64{0, 1, 3, 4, 5}, got.Indptr)
	rows, cols := got.Shape()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 3, cols)
}

func TestAppendMatchesVerticalStack(t *testing.T) {
	a := [][]float64{
		{0, 1, 0},
		{2, 0, 3},
	}
	b := [][]float64{
		{0, 0, 4},
		{5, 6, 0},
		{0, 7, 0},
	}
	ds := newCSRDataset(t, CSRFromDense(a))
	require.NoError(t, ds.Append(CSRFromDense(b)))

	rows, cols := ds.Shape()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 3, cols)

	got, err := ds.Slice(Span(0, 5), All())
	require.NoError(t, err)
	assert.Equal(t, append(append([][]float64{}, a...), b...), got.Dense())
	require.NoError(t, got.Validate())
}

func TestAppendWiderMatrix(t *testing.T) {
	ds := newCSRDataset(t, testCSR(t)) // shape (3, 3)

	wide, err := NewCSR(1, 5, []float64{1}, []int64{4}, []int64{0, 1})
	require.NoError(t, err)
	require.NoError(t, ds.Append(wide))

	rows, cols := ds.Shape()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 5, cols, "minor dimension grows to the wider matrix")
}

func TestAppendNarrowerMatrix(t *testing.T) {
	ds := newCSRDataset(t, testCSR(t)) // shape (3, 3)

	narrow, err := NewCSR(1, 2, []float64{1}, []int64{1}, []int64{0, 1})
	require.NoError(t, err)
	require.NoError(t, ds.Append(narrow))

	rows, cols := ds.Shape()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 3, cols, "minor dimension never shrinks")
}

func TestAppendEmptyMatrix(t *testing.T) {
	ds := newCSRDataset(t, testCSR(t))

	empty, err := NewCSR(0, 3, nil, nil, []int64{0})
	require.NoError(t, err)
	require.NoError(t, ds.Append(empty))

	got, err := ds.Load()
	require.NoError(t, err)
	assert.Equal(t, testCSR(t).Dense(), got.Dense())

	// Appending rows with no stored entries still adds slots.
	blank, err := NewCSR(2, 3, nil, nil, []int64{0, 0, 0})
	require.NoError(t, err)
	require.NoError(t, ds.Append(blank))

	got, err = ds.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rows)
	assert.Equal(t, []int64{0, 1, 3, 4, 4, 4}, got.Indptr)
}

func TestAppendRepeated(t *testing.T) {
	ds := newCSRDataset(t, testCSR(t))
	row, err := NewCSR(1, 3, []float64{1}, []int64{1}, []int64{0, 1})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, ds.Append(row))
	}

	got, err := ds.Load()
	require.NoError(t, err)
	require.NoError(t, got.Validate())
	assert.Equal(t, 13, got.Rows)
	assert.Equal(t, 14, got.NNZ())
	assert.Equal(t, int64(14), got.Indptr[len(got.Indptr)-1])
}

func TestAppendFormatMismatch(t *testing.T) {
	ds := newCSRDataset(t, testCSR(t))

	csc, err := NewCSC(3, 3, []float64{1}, []int64{0}, []int64{0, 1, 1, 1})
	require.NoError(t, err)
	err = ds.Append(csc)
	assert.ErrorIs(t, err, ErrFormatMismatch)

	bad := &Matrix{Format: Format(9), Indptr: []int64{0}}
	err = ds.Append(bad)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestAppendCSCNotImplemented(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	csc, err := NewCSC(2, 2, []float64{1}, []int64{0}, []int64{0, 1, 1})
	require.NoError(t, err)
	ds, err := f.CreateDataset("mat", csc)
	require.NoError(t, err)

	err = ds.Append(csc)
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestAppendThenSlice(t *testing.T) {
	ds := newCSRDataset(t, testCSR(t))

	row, err := NewCSR(1, 3, []float64{9}, []int64{0}, []int64{0, 1})
	require.NoError(t, err)
	require.NoError(t, ds.Append(row))

	got, err := ds.Slice(Span(2, 4), All())
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0, 6}, {9, 0, 0}}, got.Dense())
}
