package h5sparse

import "fmt"

// Matrix is an in-memory sparse matrix in compressed-sparse form. For CSR
// the major axis is rows; for CSC it is columns. Entries of major slot i
// occupy the half-open range Data[Indptr[i]:Indptr[i+1]], with Indices
// holding each entry's position along the minor axis.
type Matrix struct {
	Format Format
	Rows   int
	Cols   int

	Data    []float64
	Indices []int64
	Indptr  []int64
}

// NewCSR builds a validated row-compressed matrix.
func NewCSR(rows, cols int, data []float64, indices, indptr []int64) (*Matrix, error) {
	return newMatrix(CSR, rows, cols, data, indices, indptr)
}

// NewCSC builds a validated column-compressed matrix.
func NewCSC(rows, cols int, data []float64, indices, indptr []int64) (*Matrix, error) {
	return newMatrix(CSC, rows, cols, data, indices, indptr)
}

func newMatrix(f Format, rows, cols int, data []float64, indices, indptr []int64) (*Matrix, error) {
	m := &Matrix{Format: f, Rows: rows, Cols: cols, Data: data, Indices: indices, Indptr: indptr}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Shape returns (rows, cols).
func (m *Matrix) Shape() (int, int) {
	return m.Rows, m.Cols
}

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int {
	return len(m.Data)
}

// majorDim returns the length of the compressed axis.
func (m *Matrix) majorDim() int {
	if m.Format == CSC {
		return m.Cols
	}
	return m.Rows
}

// minorDim returns the length of the uncompressed axis.
func (m *Matrix) minorDim() int {
	if m.Format == CSC {
		return m.Rows
	}
	return m.Cols
}

// Validate checks the compressed-sparse invariants: indptr brackets the
// whole entry range, never decreases, and every index fits the minor axis.
func (m *Matrix) Validate() error {
	if !m.Format.valid() {
		return fmt.Errorf("format %d: %w", uint8(m.Format), ErrUnsupportedFormat)
	}
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("%w: negative shape (%d, %d)", ErrInvalidMatrix, m.Rows, m.Cols)
	}
	if len(m.Indices) != len(m.Data) {
		return fmt.Errorf("%w: %d indices for %d values", ErrInvalidMatrix, len(m.Indices), len(m.Data))
	}
	if len(m.Indptr) != m.majorDim()+1 {
		return fmt.Errorf("%w: indptr length %d, want %d", ErrInvalidMatrix, len(m.Indptr), m.majorDim()+1)
	}
	if m.Indptr[0] != 0 {
		return fmt.Errorf("%w: indptr starts at %d", ErrInvalidMatrix, m.Indptr[0])
	}
	for i := 1; i < len(m.Indptr); i++ {
		if m.Indptr[i] < m.Indptr[i-1] {
			return fmt.Errorf("%w: indptr decreases at slot %d", ErrInvalidMatrix, i)
		}
	}
	if m.Indptr[len(m.Indptr)-1] != int64(len(m.Data)) {
		return fmt.Errorf("%w: indptr ends at %d, want %d", ErrInvalidMatrix, m.Indptr[len(m.Indptr)-1], len(m.Data))
	}
	minor := int64(m.minorDim())
	for i, idx := range m.Indices {
		if idx < 0 || idx >= minor {
			return fmt.Errorf("%w: entry %d has index %d outside minor dimension %d", ErrInvalidMatrix, i, idx, minor)
		}
	}
	return nil
}

// Dense materializes the matrix as a row-major [rows][cols] table.
// Duplicate entries in a slot sum, matching the usual sparse convention.
func (m *Matrix) Dense() [][]float64 {
	dense := make([][]float64, m.Rows)
	for i := range dense {
		dense[i] = make([]float64, m.Cols)
	}
	for slot := 0; slot < m.majorDim(); slot++ {
		for p := m.Indptr[slot]; p < m.Indptr[slot+1]; p++ {
			if m.Format == CSC {
				dense[m.Indices[p]][slot] += m.Data[p]
			} else {
				dense[slot][m.Indices[p]] += m.Data[p]
			}
		}
	}
	return dense
}

// CSRFromDense builds a row-compressed matrix holding the nonzero entries
// of a dense table. All rows must have the same length.
func CSRFromDense(dense [][]float64) *Matrix {
	rows := len(dense)
	cols := 0
	if rows > 0 {
		cols = len(dense[0])
	}
	m := &Matrix{Format: CSR, Rows: rows, Cols: cols, Indptr: make([]int64, 1, rows+1)}
	for _, row := range dense {
		for j, v := range row {
			if v != 0 {
				m.Data = append(m.Data, v)
				m.Indices = append(m.Indices, int64(j))
			}
		}
		m.Indptr = append(m.Indptr, int64(len(m.Data)))
	}
	return m
}

// CSCFromDense builds a column-compressed matrix holding the nonzero
// entries of a dense table.
func CSCFromDense(dense [][]float64) *Matrix {
	rows := len(dense)
	cols := 0
	if rows > 0 {
		cols = len(dense[0])
	}
	m := &Matrix{Format: CSC, Rows: rows, Cols: cols, Indptr: make([]int64, 1, cols+1)}
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			if v := dense[i][j]; v != 0 {
				m.Data = append(m.Data, v)
				m.Indices = append(m.Indices, int64(i))
			}
		}
		m.Indptr = append(m.Indptr, int64(len(m.Data)))
	}
	return m
}
