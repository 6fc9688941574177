package nbhtml_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/bjaus/nbhtml"
	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		value     any
		precision int
		want      string
	}{
		{"zero", 0.0, 3, "0.0"},
		{"negative zero", math.Copysign(0, -1), 3, "-0.0"},
		{"int", 1, 3, "1"},
		{"large int", int64(1234567890), 3, "1234567890"},
		{"string", "abc", 3, "abc"},
		{"bool", true, 3, "true"},
		{"short float", 1.5, 3, "1.5"},
		{"integral float", 42.0, 3, "42.0"},
		{"long float rounded", 3.14159, 3, "3.142"},
		{"long float truncated", 1.2345, 3, "1.234"},
		{"negative short", -2.5, 3, "-2.5"},
		{"negative long", -1.23456, 3, "-1.235"},
		{"fixed point widened", 1000.0, 3, "1000.000"},
		{"below scientific bound", 9999.5, 3, "9999.500"},
		{"large scientific", 123456.0, 3, "1.235e+05"},
		{"small scientific", 0.00001, 3, "1.000e-05"},
		{"negative scientific", -250000.0, 3, "-2.500e+05"},
		{"precision one", 12.34, 1, "12.3"},
		{"precision one scientific", 100.0, 1, "1.0e+02"},
		{"precision five", 123456.0, 5, "123456.00000"},
		{"float32", float32(1.5), 3, "1.5"},
		{"float32 short form", float32(0.1), 3, "0.1"},
		{"nan", math.NaN(), 3, "nan"},
		{"inf", math.Inf(1), 3, "inf"},
		{"negative inf", math.Inf(-1), 3, "-inf"},
		{"negative precision uses default", 3.14159, -1, "3.142"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, nbhtml.FormatValue(tt.value, tt.precision))
		})
	}
}

func TestFormatValueScientificBounds(t *testing.T) {
	t.Parallel()
	for p := 0; p <= 6; p++ {
		for _, v := range []float64{
			math.Pow(10, float64(p+1)) * 1.5,
			-math.Pow(10, float64(p+2)),
			math.Pow(10, float64(-p-1)) / 3,
			-math.Pow(10, float64(-p-2)),
		} {
			got := nbhtml.FormatValue(v, p)
			assert.Contains(t, got, "e", "precision %d value %g", p, v)
		}
	}
}

func TestFormatValueNeverScientificForZero(t *testing.T) {
	t.Parallel()
	for p := 0; p <= 8; p++ {
		assert.Equal(t, "0.0", nbhtml.FormatValue(0.0, p))
	}
}

func TestFormatValueWidthBounded(t *testing.T) {
	t.Parallel()
	const p = 3
	for _, v := range []float64{1.0 / 3, 2.0 / 3, 12.3456, 99.999, 0.0012345, -7.777777} {
		got := nbhtml.FormatValue(v, p)
		assert.NotContains(t, got, "e")
		frac := got[strings.Index(got, ".")+1:]
		assert.LessOrEqual(t, len(frac), p, "value %g rendered as %q", v, got)
	}
}

func TestFormatValueNonFloatMatchesSprint(t *testing.T) {
	t.Parallel()
	type named struct{ A int }
	for _, v := range []any{7, int32(-3), uint8(200), "x y", false, named{A: 1}, nil} {
		assert.Equal(t, fmt.Sprint(v), nbhtml.FormatValue(v, 3))
	}
}
