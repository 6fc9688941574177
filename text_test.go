package nbhtml_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/nbhtml"
)

func TestPlainTextDataArray(t *testing.T) {
	t.Parallel()
	a := nbhtml.NewDataArray("a", nbhtml.Vector("x", "m", 1.0, 2.5))
	out, err := nbhtml.PlainText(a)
	require.NoError(t, err)

	line := strings.Repeat("─", 11)
	want := "╭" + line + "╮\n" +
		"│ DataArray │\n" +
		"├" + line + "┤\n" +
		"│   a [m]   │\n" +
		"├" + line + "┤\n" +
		"│       1.0 │\n" +
		"│       2.5 │\n" +
		"╰" + line + "╯\n"
	assert.Equal(t, want, out)
}

func TestPlainTextSections(t *testing.T) {
	t.Parallel()
	out, err := nbhtml.PlainText(mixedDataset())
	require.NoError(t, err)

	assert.Contains(t, out, "0D Variables")
	assert.Contains(t, out, "1D Variables: x")
	assert.Contains(t, out, "1D Variables: y")
	assert.Less(t, strings.Index(out, "1D Variables: x"), strings.Index(out, "1D Variables: y"))
	assert.Contains(t, out, "a [m] (variances)")
	assert.Contains(t, out, "Coord: x [m]")
	assert.Equal(t, 3, strings.Count(out, "╭"))
	assert.Equal(t, 2, strings.Count(out, "\n\n"))
}

func TestPlainTextErrors(t *testing.T) {
	t.Parallel()
	a := nbhtml.NewDataArray("h", nbhtml.Vector("x", "", 1)).SetCoord("x", nbhtml.Vector("x", "", 0.0, 1.0))
	_, err := nbhtml.PlainText(a)
	assert.ErrorIs(t, err, nbhtml.ErrBinEdges)
}
