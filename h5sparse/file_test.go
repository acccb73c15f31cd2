package h5sparse

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-h5sparse/container"
)

func TestFileReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")

	f, err := Create(dir)
	require.NoError(t, err)
	_, err = f.CreateDataset("mat", testCSR(t))
	require.NoError(t, err)
	nested, err := f.CreateGroup("nested")
	require.NoError(t, err)
	_, err = nested.CreateArray("vec", []float64{1, 2})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f2, err := Open(dir)
	require.NoError(t, err)
	defer f2.Close()

	ds, err := f2.OpenDataset("mat")
	require.NoError(t, err)
	assert.Equal(t, CSR, ds.Format())

	got, err := ds.Load()
	require.NoError(t, err)
	assert.Equal(t, testCSR(t).Dense(), got.Dense())

	// Ranged reads and appends keep working on a reopened store.
	slice, err := ds.Slice(Span(1, 3), All())
	require.NoError(t, err)
	assert.Equal(t, testCSR(t).Dense()[1:3], slice.Dense())

	row, err := NewCSR(1, 3, []float64{9}, []int64{0}, []int64{0, 1})
	require.NoError(t, err)
	require.NoError(t, ds.Append(row))

	rows, _ := ds.Shape()
	assert.Equal(t, 4, rows)
}

func TestFileAppendSurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")

	f, err := Create(dir)
	require.NoError(t, err)
	ds, err := f.CreateDataset("mat", testCSR(t))
	require.NoError(t, err)
	row, err := NewCSR(1, 3, []float64{9}, []int64{0}, []int64{0, 1})
	require.NoError(t, err)
	require.NoError(t, ds.Append(row))
	require.NoError(t, f.Close())

	f2, err := Open(dir)
	require.NoError(t, err)
	defer f2.Close()

	ds2, err := f2.OpenDataset("mat")
	require.NoError(t, err)
	got, err := ds2.Load()
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 8, 3, 6, 9}, got.Data)
	assert.Equal(t, []int64{0, 1, 3, 4, 5}, got.Indptr)
	rows, cols := got.Shape()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 3, cols)
}

func TestWalk(t *testing.T) {
	f := NewMemory()
	defer f.Close()

	_, err := f.CreateDataset("mat", testCSR(t))
	require.NoError(t, err)
	nested, err := f.CreateGroup("nested")
	require.NoError(t, err)
	_, err = nested.CreateDataset("inner", testCSR(t))
	require.NoError(t, err)
	_, err = f.CreateArray("vec", []float64{1})
	require.NoError(t, err)

	visited := map[string]string{}
	err = Walk(f.Group, func(p string, obj any) error {
		switch obj.(type) {
		case *Group:
			visited[p] = "group"
		case *Dataset:
			visited[p] = "dataset"
		case *container.Array:
			visited[p] = "array"
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"/":             "group",
		"/mat":          "dataset",
		"/nested":       "group",
		"/nested/inner": "dataset",
		"/vec":          "array",
	}, visited)
}

func TestWalkStopsOnError(t *testing.T) {
	f := NewMemory()
	defer f.Close()
	_, err := f.CreateGroup("a")
	require.NoError(t, err)

	calls := 0
	sentinel := assert.AnError
	err = Walk(f.Group, func(p string, obj any) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}
