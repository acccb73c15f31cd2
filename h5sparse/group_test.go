package h5sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-h5sparse/container"
	"github.com/robert-malhotra/go-h5sparse/dtype"
)

func TestCreateDatasetRoundTrip(t *testing.T) {
	for _, build := range []func(*testing.T) *Matrix{
		testCSR,
		func(t *testing.T) *Matrix {
			m, err := NewCSC(3, 3,
				[]float64{5, 8, 3, 6},
				[]int64{0, 1, 1, 2},
				[]int64{0, 1, 2, 4})
			require.NoError(t, err)
			return m
		},
	} {
		m := build(t)
		t.Run(m.Format.Tag(), func(t *testing.T) {
			f := NewMemory()
			defer f.Close()

			ds, err := f.CreateDataset("mat", m)
			require.NoError(t, err)
			assert.Equal(t, m.Format, ds.Format())

			got, err := ds.Load()
			require.NoError(t, err)
			assert.Equal(t, m.Format, got.Format)
			assert.Equal(t, m.Data, got.Data)
			assert.Equal(t, m.Indices, got.Indices)
			assert.Equal(t, m.Indptr, got.Indptr)
			assert.Equal(t, m.Dense(), got.Dense())
		})
	}
}

func TestCreateDatasetEmptyMatrix(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	m, err := NewCSR(0, 4, nil, nil, []int64{0})
	require.NoError(t, err)

	ds, err := f.CreateDataset("empty", m)
	require.NoError(t, err)

	got, err := ds.Load()
	require.NoError(t, err)
	rows, cols := got.Shape()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, 0, got.NNZ())
	assert.Equal(t, []int64{0}, got.Indptr)
}

func TestCreateDatasetWithoutData(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	_, err := f.CreateDataset("shape-only", nil)
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Empty(t, f.Keys(), "failed create leaves nothing behind")
}

func TestCreateDatasetUnsupportedFormat(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	bad := &Matrix{Format: Format(7), Indptr: []int64{0}}
	_, err := f.CreateDataset("bad", bad)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Empty(t, f.Keys())
}

func TestCreateDatasetCleansUpOnFailure(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	// 300 does not fit int8, so the data array write fails after the
	// group and attributes are already in place.
	m := testCSR(t)
	m.Data = []float64{300, 8, 3, 6}
	_, err := f.CreateDataset("doomed", m, WithElementKind(dtype.Int8))
	require.Error(t, err)
	assert.Empty(t, f.Keys(), "partially created group is deleted")
}

func TestDetectionByAttribute(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	_, err := f.CreateDataset("sparse", testCSR(t))
	require.NoError(t, err)

	plain, err := f.CreateGroup("plain")
	require.NoError(t, err)
	// Arbitrary attributes without "format" keep a group plain.
	require.NoError(t, plain.Raw().SetAttr("shape", []int{9, 9}))
	require.NoError(t, plain.Raw().SetAttr("note", "hello"))

	_, err = f.CreateArray("dense", []float64{1, 2, 3})
	require.NoError(t, err)

	obj, err := f.Get("sparse")
	require.NoError(t, err)
	assert.IsType(t, &Dataset{}, obj)

	obj, err = f.Get("plain")
	require.NoError(t, err)
	assert.IsType(t, &Group{}, obj)

	obj, err = f.Get("dense")
	require.NoError(t, err)
	assert.IsType(t, &container.Array{}, obj)

	_, err = f.Get("missing")
	assert.ErrorIs(t, err, container.ErrNotFound)
}

func TestOpenDatasetOnPlainGroup(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	_, err := f.CreateGroup("plain")
	require.NoError(t, err)

	_, err = f.OpenDataset("plain")
	assert.ErrorIs(t, err, ErrNotSparseDataset)
}

func TestDatasetKinds(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	ds, err := f.CreateDataset("mat", testCSR(t))
	require.NoError(t, err)

	kinds, err := ds.arrayKinds()
	require.NoError(t, err)
	assert.Equal(t, [3]dtype.Kind{dtype.Float64, dtype.Uint32, dtype.Uint64}, kinds)

	ds2, err := f.CreateDataset("mat32", testCSR(t),
		WithElementKind(dtype.Float32),
		WithIndicesKind(dtype.Uint16),
		WithIndptrKind(dtype.Int64))
	require.NoError(t, err)

	kinds, err = ds2.arrayKinds()
	require.NoError(t, err)
	assert.Equal(t, [3]dtype.Kind{dtype.Float32, dtype.Uint16, dtype.Int64}, kinds)

	got, err := ds2.Load()
	require.NoError(t, err)
	assert.Equal(t, testCSR(t).Dense(), got.Dense())
}

func TestCreateDatasetFrom(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	src, err := f.CreateDataset("src", testCSR(t), WithElementKind(dtype.Float32))
	require.NoError(t, err)

	dup, err := f.CreateDatasetFrom("dup", src)
	require.NoError(t, err)

	// The copy inherits the source's element kinds unless overridden.
	kinds, err := dup.arrayKinds()
	require.NoError(t, err)
	assert.Equal(t, [3]dtype.Kind{dtype.Float32, dtype.Uint32, dtype.Uint64}, kinds)

	got, err := dup.Load()
	require.NoError(t, err)
	assert.Equal(t, testCSR(t).Dense(), got.Dense())

	wide, err := f.CreateDatasetFrom("wide", src, WithElementKind(dtype.Float64))
	require.NoError(t, err)
	kinds, err = wide.arrayKinds()
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64, kinds[0])
}

func TestDensePassthrough(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	arr, err := f.CreateArray("vec", []int64{4, 5, 6})
	require.NoError(t, err)

	var out []int64
	require.NoError(t, arr.Read(&out))
	assert.Equal(t, []int64{4, 5, 6}, out)

	got, err := f.OpenArray("vec")
	require.NoError(t, err)
	assert.Same(t, arr, got)
}

func TestDatasetCompression(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	ds, err := f.CreateDataset("packed", testCSR(t),
		WithArrayOptions(container.WithCompression(container.Zstd)))
	require.NoError(t, err)

	got, err := ds.Load()
	require.NoError(t, err)
	assert.Equal(t, testCSR(t).Dense(), got.Dense())

	slice, err := ds.Slice(Span(1, 3), All())
	require.NoError(t, err)
	assert.Equal(t, testCSR(t).Dense()[1:3], slice.Dense())
}

func TestDeleteDataset(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	_, err := f.CreateDataset("mat", testCSR(t))
	require.NoError(t, err)
	require.NoError(t, f.Delete("mat"))
	_, err = f.OpenDataset("mat")
	assert.ErrorIs(t, err, container.ErrNotFound)
}
