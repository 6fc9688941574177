package nbhtml

import (
	"fmt"
	"slices"
	"strings"
)

// Entry is one named variable inside a [Group].
type Entry struct {
	Name string
	Var  *Variable
}

// Group is a set of variables rendered as one table, optionally led by a
// coordinate column.
type Group struct {
	entries  []Entry
	coord    *Variable
	coordDim Dim
}

// Entries returns the variables of g in insertion order.
func (g Group) Entries() []Entry { return slices.Clone(g.entries) }

// Coord returns the coordinate column and its dimension, if any.
func (g Group) Coord() (*Variable, Dim, bool) {
	return g.coord, g.coordDim, g.coord != nil
}

// Len returns the number of variables.
func (g Group) Len() int { return len(g.entries) }

// Empty reports whether g has no variables.
func (g Group) Empty() bool { return len(g.entries) == 0 }

// Names returns the variable names in order.
func (g Group) Names() []string {
	out := make([]string, len(g.entries))
	for i, e := range g.entries {
		out[i] = e.Name
	}
	return out
}

// NewGroup builds a group from entries with an optional coordinate.
func NewGroup(entries []Entry, coordDim Dim, coord *Variable) Group {
	g := Group{entries: slices.Clone(entries)}
	if coord != nil {
		g.coord, g.coordDim = coord, coordDim
	}
	return g
}

// DimGroup is the group of 1-D variables along Dim.
type DimGroup struct {
	Dim Dim
	Group
}

// Groups is the display partition of an [Input].
type Groups struct {
	// Default holds a single data array.
	Default Group
	// ZeroD holds dataset variables that do not have exactly one dimension.
	ZeroD Group
	// OneD holds dataset variables with one dimension, sorted by dimension.
	OneD []DimGroup
}

// OneDFor returns the 1-D group for dim.
func (g Groups) OneDFor(dim Dim) (DimGroup, bool) {
	i, ok := slices.BinarySearchFunc(g.OneD, dim, func(dg DimGroup, d Dim) int {
		return strings.Compare(string(dg.Dim), string(d))
	})
	if !ok {
		return DimGroup{}, false
	}
	return g.OneD[i], true
}

// Classify partitions in into display groups.
func Classify(in Input) Groups {
	var out Groups
	switch x := in.(type) {
	case *DataArray:
		if x == nil {
			return out
		}
		unnamed := 0
		name := x.Name
		if name == "" {
			unnamed++
			name = fmt.Sprintf("Unnamed variable %d", unnamed)
		}
		var (
			coord *Variable
			dim   Dim
		)
		if x.Data != nil && x.Data.Ndim() > 0 && x.Coords.Len() > 0 {
			dim = x.Data.Dims[0]
			coord, _ = x.Coord(dim)
		}
		out.Default = NewGroup([]Entry{{Name: name, Var: x.Data}}, dim, coord)
	case *Dataset:
		if x == nil {
			return out
		}
		var zero []Entry
		byDim := make(map[Dim]*DimGroup)
		x.Items.Each(func(name string, v *Variable) {
			if v == nil || v.Ndim() != 1 {
				zero = append(zero, Entry{Name: name, Var: v})
				return
			}
			dim := v.Dims[0]
			dg, ok := byDim[dim]
			if !ok {
				dg = &DimGroup{Dim: dim}
				if c, ok := x.Coord(dim); ok {
					dg.coord, dg.coordDim = c, dim
				}
				byDim[dim] = dg
			}
			dg.entries = append(dg.entries, Entry{Name: name, Var: v})
		})
		out.ZeroD = Group{entries: zero}
		for _, dg := range byDim {
			out.OneD = append(out.OneD, *dg)
		}
		slices.SortFunc(out.OneD, func(a, b DimGroup) int {
			return strings.Compare(string(a.Dim), string(b.Dim))
		})
	}
	return out
}
