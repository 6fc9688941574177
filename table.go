package nbhtml

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
)

// Background colors of the coordinate column, cycled by row parity.
var coordColors = [2]string{"#ADF3E0", "#B9FFEC"}

const (
	cellBorder   = "border: 1px solid black;"
	headingStyle = "font-weight: normal; color: grey"
)

// tableData is a group resolved into header and body cells.
type tableData struct {
	coordLabel string
	coordVars  bool
	columns    []column
	coordCells [][]string // per row: value[, variance]
	cells      [][]string // per row: value[, variance] for every column
}

type column struct {
	label     string
	variances bool
}

// Table renders in as HTML tables, one per display group.
func Table(in Input, opts ...Option) (string, error) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, in, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteTable writes the HTML tables for in to w: a title, the default group,
// the 0-D group and then every 1-D group in dimension order. Empty groups are
// skipped.
func WriteTable(w io.Writer, in Input, opts ...Option) error {
	if err := checkInput(in); err != nil {
		return err
	}
	o := newOptions(opts)
	groups := Classify(in)

	// Resolve every group first so a bad variable leaves w untouched.
	var (
		def, zero *tableData
		oneD      []*tableData
		err       error
	)
	if !groups.Default.Empty() {
		if def, err = resolveGroup(groups.Default, o); err != nil {
			return err
		}
	}
	if !groups.ZeroD.Empty() {
		if zero, err = resolveGroup(groups.ZeroD, o); err != nil {
			return fmt.Errorf("0D variables: %w", err)
		}
	}
	for _, dg := range groups.OneD {
		td, err := resolveGroup(dg.Group, o)
		if err != nil {
			return fmt.Errorf("dimension %s: %w", dg.Dim, err)
		}
		oneD = append(oneD, td)
	}

	if _, err := fmt.Fprintf(w, "<h3>%s</h3>\n", typeName(in)); err != nil {
		return err
	}
	if def != nil {
		if err := writeHTMLTable(w, def, o); err != nil {
			return err
		}
	}
	if zero != nil {
		if _, err := fmt.Fprintf(w, "<h6 style=\"%s\">0D Variables</h6>\n", headingStyle); err != nil {
			return err
		}
		if err := writeHTMLTable(w, zero, o); err != nil {
			return err
		}
	}
	if len(oneD) > 0 {
		if _, err := fmt.Fprintf(w, "<h6 style=\"%s\">1D Variables</h6>\n", headingStyle); err != nil {
			return err
		}
		for _, td := range oneD {
			if err := writeHTMLTable(w, td, o); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderGroup renders a single group as one HTML table.
func RenderGroup(g Group, opts ...Option) (string, error) {
	var buf bytes.Buffer
	if err := WriteGroup(&buf, g, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteGroup writes a single group as one HTML table. An empty group writes
// nothing.
func WriteGroup(w io.Writer, g Group, opts ...Option) error {
	if g.Empty() {
		return nil
	}
	o := newOptions(opts)
	td, err := resolveGroup(g, o)
	if err != nil {
		return err
	}
	return writeHTMLTable(w, td, o)
}

// rowCount is the extent of the leading dimension of the first variable, or 1
// when it is 0-D.
func rowCount(first Entry) (n int, scalar bool, err error) {
	v := first.Var
	if v == nil {
		return 0, false, fmt.Errorf("%w: %q is nil", ErrInvalidInput, first.Name)
	}
	if err := v.checkShape(); err != nil {
		return 0, false, fmt.Errorf("%q: %w", first.Name, err)
	}
	if v.Ndim() == 0 {
		return 1, true, nil
	}
	if v.Shape[0] == Sparse {
		return 0, false, fmt.Errorf("%w: %q is sparse along %s", ErrSparse, first.Name, v.Dims[0])
	}
	return v.Shape[0], false, nil
}

func resolveGroup(g Group, o options) (*tableData, error) {
	rows, scalar, err := rowCount(g.entries[0])
	if err != nil {
		return nil, err
	}
	td := &tableData{
		columns: make([]column, len(g.entries)),
		cells:   make([][]string, rows),
	}
	for i, e := range g.entries {
		if err := checkColumn(e, rows, scalar); err != nil {
			return nil, err
		}
		td.columns[i] = column{label: o.label(e.Var, e.Name), variances: e.Var.HasVariances()}
	}
	if g.coord != nil {
		td.coordLabel = "Coord: " + o.label(g.coord, string(g.coordDim))
		td.coordVars = g.coord.HasVariances()
		if td.coordCells, err = coordCells(g.coord, g.coordDim, rows, o); err != nil {
			return nil, err
		}
	}
	for r := 0; r < rows; r++ {
		row := make([]string, 0, 2*len(g.entries))
		for _, e := range g.entries {
			val, vr, err := dataCell(e.Var, r, scalar, o.precision)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", e.Name, err)
			}
			row = append(row, val)
			if e.Var.HasVariances() {
				row = append(row, vr)
			}
		}
		td.cells[r] = row
	}
	return td, nil
}

func checkColumn(e Entry, rows int, scalar bool) error {
	v := e.Var
	if v == nil {
		return fmt.Errorf("%w: %q is nil", ErrInvalidInput, e.Name)
	}
	if err := v.checkShape(); err != nil {
		return fmt.Errorf("%q: %w", e.Name, err)
	}
	switch {
	case scalar && v.Ndim() != 0:
		return fmt.Errorf("%w: %q is %d-D in a table of 0-D variables", ErrShapeMismatch, e.Name, v.Ndim())
	case !scalar && v.Ndim() == 0:
		return fmt.Errorf("%w: %q is 0-D in a table of %d rows", ErrShapeMismatch, e.Name, rows)
	case !scalar && v.Shape[0] != rows:
		return fmt.Errorf("%w: %q has length %d along %s, table has %d rows", ErrShapeMismatch, e.Name, v.Shape[0], v.Dims[0], rows)
	}
	return nil
}

func dataCell(v *Variable, row int, scalar bool, precision int) (val, variance string, err error) {
	if scalar {
		x, err := v.Value()
		if err != nil {
			return "", "", err
		}
		val = FormatValue(x, precision)
		if v.HasVariances() {
			x, err := v.Variance()
			if err != nil {
				return "", "", err
			}
			variance = FormatValue(x, precision)
		}
		return val, variance, nil
	}
	block, err := v.At(row)
	if err != nil {
		return "", "", err
	}
	val = formatBlock(block, precision, v.Ndim() > 1)
	if v.HasVariances() {
		block, err := v.VarianceAt(row)
		if err != nil {
			return "", "", err
		}
		variance = formatBlock(block, precision, v.Ndim() > 1)
	}
	return val, variance, nil
}

func coordCells(c *Variable, dim Dim, rows int, o options) ([][]string, error) {
	if c.Ndim() == 0 {
		return nil, fmt.Errorf("%w: coordinate %s is 0-D", ErrShapeMismatch, dim)
	}
	if err := c.checkShape(); err != nil {
		return nil, fmt.Errorf("coordinate %s: %w", dim, err)
	}
	if c.Shape[0] == Sparse {
		return nil, fmt.Errorf("%w: coordinate %s", ErrSparse, dim)
	}
	edges := false
	switch c.Shape[0] {
	case rows:
	case rows + 1:
		if o.binEdges == nil {
			return nil, fmt.Errorf("%w: %s has %d edges for %d rows", ErrBinEdges, dim, c.Shape[0], rows)
		}
		edges = true
	default:
		return nil, fmt.Errorf("%w: coordinate %s has length %d, table has %d rows", ErrShapeMismatch, dim, c.Shape[0], rows)
	}

	nested := c.Ndim() > 1
	cell := func(at func(int) ([]any, error), i int) (string, error) {
		lo, err := at(i)
		if err != nil {
			return "", err
		}
		if !edges {
			return formatBlock(lo, o.precision, nested), nil
		}
		hi, err := at(i + 1)
		if err != nil {
			return "", err
		}
		return o.binEdges(formatBlock(lo, o.precision, nested), formatBlock(hi, o.precision, nested)), nil
	}

	out := make([][]string, rows)
	for i := 0; i < rows; i++ {
		val, err := cell(c.At, i)
		if err != nil {
			return nil, fmt.Errorf("coordinate %s: %w", dim, err)
		}
		out[i] = []string{val}
		if c.HasVariances() {
			vr, err := cell(c.VarianceAt, i)
			if err != nil {
				return nil, fmt.Errorf("coordinate %s: %w", dim, err)
			}
			out[i] = append(out[i], vr)
		}
	}
	return out, nil
}

func coordStyle(i int) string {
	return cellBorder + " background-color: " + coordColors[i%2] + ";"
}

func dataStyle(o options) string {
	if o.dataColor == "" {
		return cellBorder
	}
	return cellBorder + " background-color: " + o.dataColor + ";"
}

func colspan(variances bool) int {
	if variances {
		return 2
	}
	return 1
}

func writeHTMLTable(w io.Writer, td *tableData, o options) error {
	ds := dataStyle(o)

	if _, err := fmt.Fprintln(w, `<table style="border-collapse: collapse;">`); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <tr>"); err != nil {
		return err
	}
	if td.coordLabel != "" {
		if _, err := fmt.Fprintf(w, "    <th style=\"text-align: center; %s\" colspan=\"%d\">%s</th>\n",
			coordStyle(0), colspan(td.coordVars), html.EscapeString(td.coordLabel)); err != nil {
			return err
		}
	}
	for _, c := range td.columns {
		if _, err := fmt.Fprintf(w, "    <th style=\"text-align: center; %s\" colspan=\"%d\">%s</th>\n",
			ds, colspan(c.variances), html.EscapeString(c.label)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tr>"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <tr>"); err != nil {
		return err
	}
	if td.coordLabel != "" {
		if err := writeSubHeaders(w, coordStyle(1), td.coordVars); err != nil {
			return err
		}
	}
	for _, c := range td.columns {
		if err := writeSubHeaders(w, ds, c.variances); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tr>"); err != nil {
		return err
	}

	for i, row := range td.cells {
		if _, err := fmt.Fprintln(w, "  <tr>"); err != nil {
			return err
		}
		if td.coordLabel != "" {
			if err := writeCells(w, coordStyle(i), td.coordCells[i]); err != nil {
				return err
			}
		}
		if err := writeCells(w, ds, row); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "  </tr>"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func writeSubHeaders(w io.Writer, style string, variances bool) error {
	if _, err := fmt.Fprintf(w, "    <th style=\"%s\">Values</th>\n", style); err != nil {
		return err
	}
	if variances {
		if _, err := fmt.Fprintf(w, "    <th style=\"%s\">Variances</th>\n", style); err != nil {
			return err
		}
	}
	return nil
}

func writeCells(w io.Writer, style string, cells []string) error {
	var sb strings.Builder
	for _, c := range cells {
		fmt.Fprintf(&sb, "    <td style=\"%s\">%s</td>\n", style, html.EscapeString(c))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
