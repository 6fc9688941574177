package nbhtml

import (
	"fmt"
	"slices"
)

// Dim names a dimension.
type Dim string

// Sparse marks a dimension whose extent is data-dependent.
const Sparse = -1

// Variable is a labeled n-dimensional array. Values are stored row-major.
// Variances, when present, have the same layout as Values.
type Variable struct {
	Dims      []Dim
	Shape     []int
	Unit      string
	DType     string
	Values    []any
	Variances []any
}

// Scalar returns a 0-D variable holding v.
func Scalar(v any, unit string) *Variable {
	return &Variable{Unit: unit, DType: dtypeOf(v), Values: []any{v}}
}

// Vector returns a 1-D variable along dim.
func Vector(dim Dim, unit string, values ...any) *Variable {
	v := &Variable{
		Dims:   []Dim{dim},
		Shape:  []int{len(values)},
		Unit:   unit,
		Values: values,
	}
	if len(values) > 0 {
		v.DType = dtypeOf(values[0])
	}
	return v
}

// WithVariances sets the variances and returns v.
func (v *Variable) WithVariances(variances ...any) *Variable {
	v.Variances = variances
	return v
}

// Ndim returns the number of dimensions.
func (v *Variable) Ndim() int { return len(v.Dims) }

// HasVariances reports whether v carries variances.
func (v *Variable) HasVariances() bool { return v.Variances != nil }

// IsSparse reports whether any dimension of v is sparse.
func (v *Variable) IsSparse() bool {
	return slices.Contains(v.Shape, Sparse)
}

// Len returns the extent of dim, or false if v does not have it.
func (v *Variable) Len(dim Dim) (int, bool) {
	i := slices.Index(v.Dims, dim)
	if i < 0 || i >= len(v.Shape) {
		return 0, false
	}
	return v.Shape[i], true
}

// Value returns the sole value of a 0-D variable.
func (v *Variable) Value() (any, error) {
	if v.Ndim() != 0 {
		return nil, fmt.Errorf("%w: value of %d-D variable", ErrShapeMismatch, v.Ndim())
	}
	if len(v.Values) == 0 {
		return nil, fmt.Errorf("%w: scalar has no value", ErrIndexOutOfRange)
	}
	return v.Values[0], nil
}

// Variance returns the sole variance of a 0-D variable.
func (v *Variable) Variance() (any, error) {
	if v.Ndim() != 0 {
		return nil, fmt.Errorf("%w: variance of %d-D variable", ErrShapeMismatch, v.Ndim())
	}
	if len(v.Variances) == 0 {
		return nil, fmt.Errorf("%w: scalar has no variance", ErrIndexOutOfRange)
	}
	return v.Variances[0], nil
}

// At returns the values at index i of the leading dimension. For a 1-D
// variable that is a single element; for higher dimensions it is the
// row-major block below i.
func (v *Variable) At(i int) ([]any, error) {
	return v.slab(v.Values, i)
}

// VarianceAt is At for variances.
func (v *Variable) VarianceAt(i int) ([]any, error) {
	return v.slab(v.Variances, i)
}

func (v *Variable) slab(data []any, i int) ([]any, error) {
	if v.Ndim() == 0 {
		return nil, fmt.Errorf("%w: index %d into 0-D variable", ErrIndexOutOfRange, i)
	}
	if err := v.checkShape(); err != nil {
		return nil, err
	}
	if v.IsSparse() {
		return nil, fmt.Errorf("%w: cannot index %v", ErrSparse, v.Dims)
	}
	n := v.Shape[0]
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: index %d, %s has length %d", ErrIndexOutOfRange, i, v.Dims[0], n)
	}
	stride := 1
	for _, s := range v.Shape[1:] {
		stride *= s
	}
	lo, hi := i*stride, (i+1)*stride
	if hi > len(data) {
		return nil, fmt.Errorf("%w: index %d, only %d elements stored", ErrIndexOutOfRange, i, len(data))
	}
	return data[lo:hi], nil
}

// checkShape reports whether the shape can be indexed: one extent per
// dimension, each non-negative or Sparse.
func (v *Variable) checkShape() error {
	if len(v.Dims) != len(v.Shape) {
		return fmt.Errorf("%w: %d dims but shape %v", ErrInvalidInput, len(v.Dims), v.Shape)
	}
	for _, s := range v.Shape {
		if s < 0 && s != Sparse {
			return fmt.Errorf("%w: negative extent in shape %v", ErrInvalidInput, v.Shape)
		}
	}
	return nil
}

// Validate checks that dims, shape and stored values agree.
func (v *Variable) Validate() error {
	if err := v.checkShape(); err != nil {
		return err
	}
	seen := make(map[Dim]bool, len(v.Dims))
	for _, d := range v.Dims {
		if seen[d] {
			return fmt.Errorf("%w: duplicate dimension %q", ErrInvalidInput, d)
		}
		seen[d] = true
	}
	if v.IsSparse() {
		return nil
	}
	n := 1
	for _, s := range v.Shape {
		n *= s
	}
	if len(v.Values) != n {
		return fmt.Errorf("%w: shape %v needs %d values, got %d", ErrInvalidInput, v.Shape, n, len(v.Values))
	}
	if v.HasVariances() && len(v.Variances) != n {
		return fmt.Errorf("%w: shape %v needs %d variances, got %d", ErrInvalidInput, v.Shape, n, len(v.Variances))
	}
	return nil
}

func dtypeOf(v any) string {
	switch v.(type) {
	case float64:
		return "float64"
	case float32:
		return "float32"
	case int, int64:
		return "int64"
	case int32:
		return "int32"
	case bool:
		return "bool"
	case string:
		return "string"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Map is an insertion-ordered mapping from name to variable.
type Map struct {
	keys []string
	vars map[string]*Variable
}

// Set adds or replaces name. Replacing keeps the original position.
func (m *Map) Set(name string, v *Variable) {
	if m.vars == nil {
		m.vars = make(map[string]*Variable)
	}
	if _, ok := m.vars[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.vars[name] = v
}

// Get returns the variable stored under name.
func (m *Map) Get(name string) (*Variable, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.vars[name]
	return v, ok
}

// Keys returns names in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Each calls fn for every entry in insertion order.
func (m *Map) Each(fn func(name string, v *Variable)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.vars[k])
	}
}

// Input is what the renderers accept: a *DataArray or a *Dataset.
type Input interface {
	input()
}

// DataArray is a single named variable with its own metadata.
type DataArray struct {
	Name   string
	Data   *Variable
	Coords Map
	Labels Map
	Masks  Map
	Attrs  Map
}

func (*DataArray) input() {}

// NewDataArray wraps data under name. An empty name is allowed.
func NewDataArray(name string, data *Variable) *DataArray {
	return &DataArray{Name: name, Data: data}
}

// Coord returns the coordinate for dim.
func (a *DataArray) Coord(dim Dim) (*Variable, bool) { return a.Coords.Get(string(dim)) }

// SetCoord sets the coordinate for dim and returns a.
func (a *DataArray) SetCoord(dim Dim, v *Variable) *DataArray {
	a.Coords.Set(string(dim), v)
	return a
}

// Dataset is an ordered collection of named variables sharing coordinates.
type Dataset struct {
	Items  Map
	Coords Map
	Labels Map
	Masks  Map
	Attrs  Map
}

func (*Dataset) input() {}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset { return &Dataset{} }

// Set adds a data item and returns d.
func (d *Dataset) Set(name string, v *Variable) *Dataset {
	d.Items.Set(name, v)
	return d
}

// Coord returns the coordinate for dim.
func (d *Dataset) Coord(dim Dim) (*Variable, bool) { return d.Coords.Get(string(dim)) }

// SetCoord sets the coordinate for dim and returns d.
func (d *Dataset) SetCoord(dim Dim, v *Variable) *Dataset {
	d.Coords.Set(string(dim), v)
	return d
}

// Validate checks every variable in in.
func Validate(in Input) error {
	var maps []*Map
	switch x := in.(type) {
	case *DataArray:
		if x.Data == nil {
			return fmt.Errorf("%w: data array %q has no data", ErrInvalidInput, x.Name)
		}
		if err := x.Data.Validate(); err != nil {
			return fmt.Errorf("data array %q: %w", x.Name, err)
		}
		maps = []*Map{&x.Coords, &x.Labels, &x.Masks, &x.Attrs}
	case *Dataset:
		maps = []*Map{&x.Items, &x.Coords, &x.Labels, &x.Masks, &x.Attrs}
	default:
		return fmt.Errorf("%w: %T", ErrInvalidInput, in)
	}
	for _, m := range maps {
		for _, k := range m.keys {
			v := m.vars[k]
			if v == nil {
				return fmt.Errorf("%w: %q is nil", ErrInvalidInput, k)
			}
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%q: %w", k, err)
			}
		}
	}
	return nil
}

func checkInput(in Input) error {
	switch x := in.(type) {
	case *DataArray:
		if x == nil || x.Data == nil {
			return fmt.Errorf("%w: data array without data", ErrInvalidInput)
		}
	case *Dataset:
		if x == nil {
			return fmt.Errorf("%w: nil dataset", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: %T", ErrInvalidInput, in)
	}
	return nil
}

func typeName(in Input) string {
	switch in.(type) {
	case *DataArray:
		return "DataArray"
	case *Dataset:
		return "Dataset"
	default:
		return fmt.Sprintf("%T", in)
	}
}
