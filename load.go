package nbhtml

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File kinds accepted by [Load].
const (
	KindDataset   = "dataset"
	KindDataArray = "dataarray"
)

type fileDoc struct {
	Kind   string    `yaml:"kind"`
	Name   string    `yaml:"name"`
	Data   *varDoc   `yaml:"data"`
	Items  yaml.Node `yaml:"items"`
	Coords yaml.Node `yaml:"coords"`
	Labels yaml.Node `yaml:"labels"`
	Masks  yaml.Node `yaml:"masks"`
	Attrs  yaml.Node `yaml:"attrs"`
}

type varDoc struct {
	Dims      []string `yaml:"dims"`
	Shape     []int    `yaml:"shape"`
	Unit      string   `yaml:"unit"`
	DType     string   `yaml:"dtype"`
	Values    []any    `yaml:"values"`
	Variances []any    `yaml:"variances"`
	Value     any      `yaml:"value"`
	Variance  any      `yaml:"variance"`
}

// LoadFile reads a dataset or data array from a YAML or JSON file.
func LoadFile(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a dataset or data array document:
//
//	kind: dataset
//	items:
//	  counts: {dims: [x], unit: counts, values: [1, 2, 3], variances: [1, 2, 3]}
//	coords:
//	  x: {dims: [x], unit: m, dtype: float64, values: [0.1, 0.2, 0.3]}
//
// A data array uses "data" and an optional "name" instead of "items". Mapping
// order is preserved. JSON is accepted as well.
func Load(r io.Reader) (Input, error) {
	var doc fileDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	kind := strings.ToLower(doc.Kind)
	if kind == "" {
		kind = KindDataset
		if doc.Data != nil {
			kind = KindDataArray
		}
	}

	var (
		in   Input
		maps []*Map
	)
	switch kind {
	case KindDataArray:
		if doc.Data == nil {
			return nil, fmt.Errorf("%w: data array without data", ErrInvalidInput)
		}
		data, err := doc.Data.variable()
		if err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
		a := NewDataArray(doc.Name, data)
		in, maps = a, []*Map{nil, &a.Coords, &a.Labels, &a.Masks, &a.Attrs}
	case KindDataset:
		d := NewDataset()
		in, maps = d, []*Map{&d.Items, &d.Coords, &d.Labels, &d.Masks, &d.Attrs}
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, doc.Kind)
	}

	nodes := []struct {
		section string
		node    *yaml.Node
	}{{"items", &doc.Items}, {"coords", &doc.Coords}, {"labels", &doc.Labels}, {"masks", &doc.Masks}, {"attrs", &doc.Attrs}}
	for i, n := range nodes {
		if maps[i] == nil {
			if n.node.Kind != 0 {
				return nil, fmt.Errorf("%w: %s in a data array", ErrInvalidInput, n.section)
			}
			continue
		}
		if err := decodeMap(n.node, maps[i]); err != nil {
			return nil, fmt.Errorf("%s: %w", n.section, err)
		}
	}
	if err := Validate(in); err != nil {
		return nil, err
	}
	return in, nil
}

func decodeMap(node *yaml.Node, m *Map) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: expected a mapping", ErrInvalidInput, node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var vd varDoc
		if err := val.Decode(&vd); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidInput, key.Value, err)
		}
		v, err := vd.variable()
		if err != nil {
			return fmt.Errorf("%q: %w", key.Value, err)
		}
		m.Set(key.Value, v)
	}
	return nil
}

func (d *varDoc) variable() (*Variable, error) {
	v := &Variable{Unit: d.Unit, DType: d.DType, Values: d.Values, Variances: d.Variances}
	for _, dim := range d.Dims {
		v.Dims = append(v.Dims, Dim(dim))
	}
	if d.Value != nil {
		if len(d.Values) > 0 {
			return nil, fmt.Errorf("%w: both value and values", ErrInvalidInput)
		}
		v.Values = []any{d.Value}
	}
	if d.Variance != nil {
		v.Variances = []any{d.Variance}
	}

	switch {
	case d.Shape != nil:
		v.Shape = d.Shape
	case len(v.Dims) == 1:
		v.Shape = []int{len(v.Values)}
	case len(v.Dims) > 1:
		return nil, fmt.Errorf("%w: %d-D variable needs a shape", ErrInvalidInput, len(v.Dims))
	}

	if v.DType == "" && len(v.Values) > 0 {
		v.DType = dtypeOf(v.Values[0])
	}
	var err error
	if v.Values, err = convert(v.Values, v.DType); err != nil {
		return nil, err
	}
	if v.Variances, err = convert(v.Variances, v.DType); err != nil {
		return nil, err
	}
	return v, nil
}

// convert coerces decoded YAML scalars to dtype.
func convert(vals []any, dtype string) ([]any, error) {
	if vals == nil {
		return nil, nil
	}
	out := make([]any, len(vals))
	for i, x := range vals {
		c, err := convertOne(x, dtype)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidInput, i, err)
		}
		out[i] = c
	}
	return out, nil
}

func convertOne(x any, dtype string) (any, error) {
	switch dtype {
	case "float64", "float32":
		var f float64
		switch n := x.(type) {
		case float64:
			f = n
		case int:
			f = float64(n)
		case string:
			switch strings.ToLower(n) {
			case "nan", ".nan":
				f = math.NaN()
			case "inf", ".inf", "+inf":
				f = math.Inf(1)
			case "-inf", "-.inf":
				f = math.Inf(-1)
			default:
				return nil, fmt.Errorf("%q is not a number", n)
			}
		default:
			return nil, fmt.Errorf("%v (%T) is not a number", x, x)
		}
		if dtype == "float32" {
			return float32(f), nil
		}
		return f, nil
	case "int64", "int32":
		switch n := x.(type) {
		case int:
			if dtype == "int32" {
				return int32(n), nil
			}
			return int64(n), nil
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("%v is not an integer", n)
			}
			if dtype == "int32" {
				return int32(n), nil
			}
			return int64(n), nil
		default:
			return nil, fmt.Errorf("%v (%T) is not an integer", x, x)
		}
	case "bool":
		b, ok := x.(bool)
		if !ok {
			return nil, fmt.Errorf("%v (%T) is not a bool", x, x)
		}
		return b, nil
	case "string":
		return fmt.Sprint(x), nil
	default:
		return x, nil
	}
}
