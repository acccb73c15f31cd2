package h5sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCSR returns the 3x3 row-compressed fixture
//
//	5 0 0
//	0 8 3
//	0 0 6
func testCSR(t *testing.T) *Matrix {
	t.Helper()
	m, err := NewCSR(3, 3,
		[]float64{5, 8, 3, 6},
		[]int64{0, 2, 1, 2},
		[]int64{0, 1, 3, 4})
	require.NoError(t, err)
	return m
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csr")
	require.NoError(t, err)
	assert.Equal(t, CSR, f)
	assert.Equal(t, "csr", f.Tag())

	f, err = ParseFormat("csc")
	require.NoError(t, err)
	assert.Equal(t, CSC, f)
	assert.Equal(t, "csc", f.Tag())

	_, err = ParseFormat("coo")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestMatrixValidate(t *testing.T) {
	_, err := NewCSR(3, 3, []float64{1}, []int64{0}, []int64{0, 1, 1})
	assert.ErrorIs(t, err, ErrInvalidMatrix, "indptr too short")

	_, err = NewCSR(1, 3, []float64{1}, []int64{0, 1}, []int64{0, 1})
	assert.ErrorIs(t, err, ErrInvalidMatrix, "indices longer than data")

	_, err = NewCSR(2, 3, []float64{1, 2}, []int64{0, 1}, []int64{0, 2, 1})
	assert.ErrorIs(t, err, ErrInvalidMatrix, "indptr decreases")

	_, err = NewCSR(2, 3, []float64{1, 2}, []int64{0, 1}, []int64{1, 1, 2})
	assert.ErrorIs(t, err, ErrInvalidMatrix, "indptr does not start at 0")

	_, err = NewCSR(2, 3, []float64{1, 2}, []int64{0, 1}, []int64{0, 1, 1})
	assert.ErrorIs(t, err, ErrInvalidMatrix, "indptr does not end at nnz")

	_, err = NewCSR(2, 3, []float64{1}, []int64{3}, []int64{0, 1, 1})
	assert.ErrorIs(t, err, ErrInvalidMatrix, "column index out of range")

	_, err = NewCSC(3, 2, []float64{1}, []int64{3}, []int64{0, 1, 1})
	assert.ErrorIs(t, err, ErrInvalidMatrix, "row index out of range for CSC")

	bad := &Matrix{Format: Format(9), Indptr: []int64{0}}
	assert.ErrorIs(t, bad.Validate(), ErrUnsupportedFormat)
}

func TestEmptyMatrix(t *testing.T) {
	m, err := NewCSR(0, 0, nil, nil, []int64{0})
	require.NoError(t, err)
	assert.Equal(t, 0, m.NNZ())
	assert.Empty(t, m.Dense())

	m, err = NewCSR(2, 3, nil, nil, []int64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, m.Dense())
}

func TestDense(t *testing.T) {
	m := testCSR(t)
	assert.Equal(t, [][]float64{
		{5, 0, 0},
		{0, 8, 3},
		{0, 0, 6},
	}, m.Dense())
}

func TestFromDenseRoundTrip(t *testing.T) {
	dense := [][]float64{
		{0, 1, 0, 2},
		{3, 0, 0, 0},
		{0, 0, 0, 0},
		{4, 5, 6, 7},
	}

	csr := CSRFromDense(dense)
	require.NoError(t, csr.Validate())
	assert.Equal(t, CSR, csr.Format)
	assert.Equal(t, dense, csr.Dense())

	csc := CSCFromDense(dense)
	require.NoError(t, csc.Validate())
	assert.Equal(t, CSC, csc.Format)
	assert.Equal(t, dense, csc.Dense())
}
