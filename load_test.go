package nbhtml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/nbhtml"
)

const datasetYAML = `kind: dataset
items:
  zeta: {dims: [x], unit: counts, values: [1, 2, 3], variances: [1, 2, 3]}
  alpha: {dims: [x], dtype: float64, values: [1, 2, 3]}
  temperature: {unit: K, value: 295.15}
  image: {dims: [x, y], shape: [3, 2], values: [1, 2, 3, 4, 5, 6]}
coords:
  x: {dims: [x], unit: m, values: [0.1, 0.2, 0.3]}
attrs:
  run: {dtype: string, value: 1234}
`

func TestLoadDataset(t *testing.T) {
	t.Parallel()
	in, err := nbhtml.Load(strings.NewReader(datasetYAML))
	require.NoError(t, err)

	ds, ok := in.(*nbhtml.Dataset)
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "temperature", "image"}, ds.Items.Keys())

	zeta, _ := ds.Items.Get("zeta")
	assert.Equal(t, []int{3}, zeta.Shape)
	assert.Equal(t, "int64", zeta.DType)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, zeta.Values)
	assert.True(t, zeta.HasVariances())

	alpha, _ := ds.Items.Get("alpha")
	assert.Equal(t, []any{1.0, 2.0, 3.0}, alpha.Values)

	temp, _ := ds.Items.Get("temperature")
	assert.Equal(t, 0, temp.Ndim())
	v, err := temp.Value()
	require.NoError(t, err)
	assert.Equal(t, 295.15, v)

	run, _ := ds.Attrs.Get("run")
	assert.Equal(t, []any{"1234"}, run.Values)

	coord, ok := ds.Coord("x")
	require.True(t, ok)
	assert.Equal(t, "m", coord.Unit)
}

func TestLoadDataArray(t *testing.T) {
	t.Parallel()
	doc := `{"name": "counts", "data": {"dims": ["x"], "values": [1.5, 2.5]}, "coords": {"x": {"dims": ["x"], "values": [0, 1, 2]}}}`
	in, err := nbhtml.Load(strings.NewReader(doc))
	require.NoError(t, err)

	a, ok := in.(*nbhtml.DataArray)
	require.True(t, ok)
	assert.Equal(t, "counts", a.Name)
	assert.Equal(t, []any{1.5, 2.5}, a.Data.Values)
	coord, ok := a.Coord("x")
	require.True(t, ok)
	assert.Equal(t, []int{3}, coord.Shape)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "ds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(datasetYAML), 0o600))

	in, err := nbhtml.LoadFile(path)
	require.NoError(t, err)
	assert.IsType(t, &nbhtml.Dataset{}, in)

	_, err = nbhtml.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"not yaml", "items: [unclosed"},
		{"unknown kind", "kind: cube"},
		{"data array without data", "kind: dataarray"},
		{"items in data array", "data: {value: 1}\nitems: {a: {value: 2}}"},
		{"items not a mapping", "items: [1, 2]"},
		{"shape mismatch", "items: {a: {dims: [x, y], shape: [2, 2], values: [1, 2, 3]}}"},
		{"missing shape", "items: {a: {dims: [x, y], values: [1, 2]}}"},
		{"bad float", "items: {a: {dims: [x], dtype: float64, values: [one]}}"},
		{"bad int", "items: {a: {dims: [x], dtype: int64, values: [1.5]}}"},
		{"value and values", "items: {a: {value: 1, values: [1]}}"},
		{"duplicate dims", "items: {a: {dims: [x, x], shape: [1, 1], values: [1]}}"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := nbhtml.Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, nbhtml.ErrInvalidInput)
		})
	}
}

func TestLoadedDatasetRenders(t *testing.T) {
	t.Parallel()
	doc := `
items:
  zeta: {dims: [x], unit: counts, values: [1, 2, 3]}
  temperature: {unit: K, value: 295.15}
coords:
  x: {dims: [x], unit: m, values: [0.1, 0.2, 0.3]}
`
	in, err := nbhtml.Load(strings.NewReader(doc))
	require.NoError(t, err)

	out, err := nbhtml.Table(in)
	require.NoError(t, err)
	assert.Contains(t, out, ">Coord: x [m]</th>")
	assert.Contains(t, out, ">zeta [counts]</th>")
	assert.Contains(t, out, ">temperature [K]</th>")
}
