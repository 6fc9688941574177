package nbhtml

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Rounded box-drawing characters.
const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
	boxTopTee      = "┬"
	boxBottomTee   = "┴"
	boxLeftTee     = "├"
	boxRightTee    = "┤"
	boxCross       = "┼"
)

// PlainText renders in as box-drawn text tables.
func PlainText(in Input, opts ...Option) (string, error) {
	var buf bytes.Buffer
	if err := WriteText(&buf, in, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteText writes the same groups as [WriteTable] as text tables. Each table
// carries its section name as a title; variance columns are suffixed with
// "(variances)".
func WriteText(w io.Writer, in Input, opts ...Option) error {
	if err := checkInput(in); err != nil {
		return err
	}
	o := newOptions(opts)
	groups := Classify(in)

	type section struct {
		title string
		td    *tableData
	}
	var sections []section
	if !groups.Default.Empty() {
		td, err := resolveGroup(groups.Default, o)
		if err != nil {
			return err
		}
		sections = append(sections, section{typeName(in), td})
	}
	if !groups.ZeroD.Empty() {
		td, err := resolveGroup(groups.ZeroD, o)
		if err != nil {
			return fmt.Errorf("0D variables: %w", err)
		}
		sections = append(sections, section{"0D Variables", td})
	}
	for _, dg := range groups.OneD {
		td, err := resolveGroup(dg.Group, o)
		if err != nil {
			return fmt.Errorf("dimension %s: %w", dg.Dim, err)
		}
		sections = append(sections, section{"1D Variables: " + string(dg.Dim), td})
	}

	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		header, rows := textCells(s.td)
		if err := renderBoxTable(w, s.title, header, rows); err != nil {
			return err
		}
	}
	return nil
}

func textCells(td *tableData) (header []string, rows [][]string) {
	if td.coordLabel != "" {
		header = append(header, td.coordLabel)
		if td.coordVars {
			header = append(header, td.coordLabel+" (variances)")
		}
	}
	for _, c := range td.columns {
		header = append(header, c.label)
		if c.variances {
			header = append(header, c.label+" (variances)")
		}
	}
	rows = make([][]string, len(td.cells))
	for i, cells := range td.cells {
		var row []string
		if td.coordLabel != "" {
			row = append(row, td.coordCells[i]...)
		}
		rows[i] = append(row, cells...)
	}
	return header, rows
}

func computeWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func renderBoxTable(w io.Writer, title string, header []string, rows [][]string) error {
	widths := computeWidths(header, rows)

	// Widen the last column when the title does not fit.
	if len(widths) > 0 {
		if need := runewidth.StringWidth(title) - (tableInnerWidth(widths) - 2); need > 0 {
			widths[len(widths)-1] += need
		}
	}

	if title != "" {
		if err := drawHLine(w, widths, boxTopLeft, boxHorizontal, boxHorizontal, boxTopRight); err != nil {
			return err
		}
		padded := alignCell(title, tableInnerWidth(widths)-2, true)
		if _, err := fmt.Fprintf(w, "%s %s %s\n", boxVertical, padded, boxVertical); err != nil {
			return err
		}
		if err := drawHLine(w, widths, boxLeftTee, boxHorizontal, boxTopTee, boxRightTee); err != nil {
			return err
		}
	} else {
		if err := drawHLine(w, widths, boxTopLeft, boxHorizontal, boxTopTee, boxTopRight); err != nil {
			return err
		}
	}

	if err := drawRow(w, header, widths, true); err != nil {
		return err
	}
	if err := drawHLine(w, widths, boxLeftTee, boxHorizontal, boxCross, boxRightTee); err != nil {
		return err
	}
	for _, row := range rows {
		if err := drawRow(w, row, widths, false); err != nil {
			return err
		}
	}
	return drawHLine(w, widths, boxBottomLeft, boxHorizontal, boxBottomTee, boxBottomRight)
}

// tableInnerWidth returns the total character width between the outer vertical
// borders. Each cell contributes its width plus 2 for padding, and cells are
// separated by a single vertical border character.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// drawRow centers header cells and right-aligns values.
func drawRow(w io.Writer, cells []string, widths []int, center bool) error {
	var sb strings.Builder
	sb.WriteString(boxVertical)
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(alignCell(cell, width, center))
		sb.WriteString(" ")
		sb.WriteString(boxVertical)
	}
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func alignCell(s string, width int, center bool) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	if center {
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	}
	return strings.Repeat(" ", pad) + s
}
