package nbhtml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortFloat(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1.0", shortFloat(1, 64))
	assert.Equal(t, "0.25", shortFloat(0.25, 64))
	assert.Equal(t, "1e-05", shortFloat(0.00001, 64))
	assert.Equal(t, "1e+16", shortFloat(1e16, 64))
	assert.Equal(t, "123456789.0", shortFloat(123456789, 64))
	assert.Equal(t, "0.1", shortFloat(float64(float32(0.1)), 32))
}

func TestFormatBlock(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "2.5", formatBlock([]any{2.5}, 3, false))
	assert.Equal(t, "[2.5]", formatBlock([]any{2.5}, 3, true))
	assert.Equal(t, "[1, 3.142]", formatBlock([]any{1, 3.14159}, 3, true))
	assert.Equal(t, "[]", formatBlock(nil, 3, true))
}

func TestAlignCell(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "  ab", alignCell("ab", 4, false))
	assert.Equal(t, " ab  ", alignCell("ab", 5, true))
	assert.Equal(t, "abc", alignCell("abc", 2, true))
	// "你" occupies two columns.
	assert.Equal(t, "  你", alignCell("你", 4, false))
}

func TestTableInnerWidth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, tableInnerWidth(nil))
	assert.Equal(t, 5, tableInnerWidth([]int{3}))
	assert.Equal(t, 12, tableInnerWidth([]int{3, 4}))
}

func TestDataExtents(t *testing.T) {
	t.Parallel()
	data := []namedVar{{"a", &Variable{Dims: []Dim{"x", "y"}, Shape: []int{2, Sparse}}}}
	var coords Map
	coords.Set("x", Vector("x", "", 1, 2, 3))
	coords.Set("z", Vector("z", "", 1))

	order, extents := dataExtents(data, &coords)
	assert.Equal(t, []Dim{"x", "y", "z"}, order)
	assert.Equal(t, map[Dim]int{"x": 2, "y": Sparse, "z": 1}, extents)
}

func TestPreview(t *testing.T) {
	t.Parallel()
	o := newOptions([]Option{WithPreviewLength(2)})
	assert.Equal(t, "1, 2, ...", preview([]any{1, 2, 3}, o))
	assert.Equal(t, "1", preview([]any{1}, o))
	assert.Equal(t, "", preview(nil, o))
}

func TestNewOptionsIgnoresInvalidValues(t *testing.T) {
	t.Parallel()
	o := newOptions([]Option{WithPrecision(-2), WithPreviewLength(0), WithLabeler(nil), WithIDGenerator(nil)})
	assert.Equal(t, DefaultPrecision, o.precision)
	assert.Equal(t, DefaultPreviewLength, o.previewSize)
	assert.NotNil(t, o.label)
	assert.NotEmpty(t, o.newID())
}

func TestRowCount(t *testing.T) {
	t.Parallel()
	n, scalar, err := rowCount(Entry{Name: "s", Var: Scalar(1, "")})
	assert.NoError(t, err)
	assert.True(t, scalar)
	assert.Equal(t, 1, n)

	n, scalar, err = rowCount(Entry{Name: "v", Var: Vector("x", "", 1, 2, 3)})
	assert.NoError(t, err)
	assert.False(t, scalar)
	assert.Equal(t, 3, n)

	_, _, err = rowCount(Entry{Name: "nil"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = rowCount(Entry{Name: "neg", Var: &Variable{Dims: []Dim{"x"}, Shape: []int{-2}}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSlabRejectsNegativeInnerExtent(t *testing.T) {
	t.Parallel()
	v := &Variable{Dims: []Dim{"x", "y"}, Shape: []int{2, -3}, Values: []any{1, 2, 3}}
	_, err := v.slab(v.Values, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
