package nbhtml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatValue renders a single scalar for a table cell.
//
// Floats with a magnitude of at least 10^(precision+1), or at most
// 10^-(precision+1), use scientific notation with precision fractional
// digits. Other floats keep their shortest representation unless it is longer
// than precision+2 characters (one more for a leading minus), in which case
// they are rounded to precision fractional digits. Zero and every non-float
// value are rendered as-is.
func FormatValue(v any, precision int) string {
	var (
		f    float64
		bits int
	)
	switch x := v.(type) {
	case float64:
		f, bits = x, 64
	case float32:
		f, bits = float64(x), 32
	default:
		return fmt.Sprint(v)
	}
	if precision < 0 {
		precision = DefaultPrecision
	}
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		return shortFloat(f, bits)
	}

	abs := math.Abs(f)
	if abs >= math.Pow(10, float64(precision+1)) || abs <= math.Pow(10, float64(-precision-1)) {
		return strconv.FormatFloat(f, 'e', precision, bits)
	}
	text := shortFloat(f, bits)
	limit := precision + 2
	if f < 0 {
		limit++
	}
	if len(text) > limit {
		text = strconv.FormatFloat(f, 'f', precision, bits)
	}
	return text
}

// shortFloat is the shortest round-trip form of f. Integral values keep a
// trailing ".0" so floats stay distinguishable from integers.
func shortFloat(f float64, bits int) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, bits)
	}
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// formatBlock renders the values below one index of the leading dimension:
// a bare scalar when nested is false and a bracketed list otherwise. nested
// is true for variables of two or more dimensions, whatever their inner extent.
func formatBlock(vals []any, precision int, nested bool) string {
	if !nested && len(vals) == 1 {
		return FormatValue(vals[0], precision)
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = FormatValue(v, precision)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
