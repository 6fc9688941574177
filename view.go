package nbhtml

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
)

// Section names of the collapsible view, in display order.
const (
	SectionDimensions  = "Dimensions"
	SectionCoordinates = "Coordinates"
	SectionLabels      = "Labels"
	SectionData        = "Data"
	SectionMasks       = "Masks"
	SectionAttributes  = "Attributes"
)

type viewDim struct {
	Name    string
	Length  string
	Indexed bool
}

type viewVar struct {
	Name      string
	Dims      string
	DType     string
	Unit      string
	Preview   string
	Variances string
	BinEdges  bool
	Sparse    bool
}

type viewSection struct {
	ID    string
	Name  string
	Count int
	Open  bool
	Dims  []viewDim
	Vars  []viewVar
}

type viewData struct {
	Type     string
	Sections []viewSection
}

var viewTemplate = template.Must(template.New("view").Parse(`<div class="xr-wrap">
<style>
.xr-sections { list-style: none; padding: 0; margin: 0; }
.xr-section-item { display: contents; }
.xr-section-summary-in { display: none; }
.xr-section-summary { font-weight: 500; cursor: pointer; }
.xr-section-details { display: none; }
.xr-section-summary-in:checked ~ .xr-section-details { display: block; }
.xr-var-list { list-style: none; padding-left: 1em; }
.xr-var-item > div { display: inline-block; margin-right: 1em; }
.xr-var-name span, .xr-has-index { font-weight: bold; }
.xr-var-preview, .xr-var-variances { color: grey; }
</style>
<div class="xr-header"><div class="xr-obj-type">{{.Type}}</div></div>
<ul class="xr-sections">
{{- range .Sections}}
<li class="xr-section-item">
<input id="section-{{.ID}}" class="xr-section-summary-in" type="checkbox"{{if .Open}} checked{{end}}{{if not .Count}} disabled{{end}}>
<label for="section-{{.ID}}" class="xr-section-summary">{{.Name}}: <span>({{.Count}})</span></label>
{{- if .Dims}}
<div class="xr-section-inline-details"><ul class="xr-dim-list">
{{- range .Dims}}<li><span{{if .Indexed}} class="xr-has-index"{{end}}>{{.Name}}</span>: {{.Length}}</li>{{end -}}
</ul></div>
{{- end}}
<div class="xr-section-details"><ul class="xr-var-list">
{{- range .Vars}}
<li class="xr-var-item"><div class="xr-var-name"><span>{{.Name}}</span></div><div class="xr-var-dims">{{.Dims}}</div><div class="xr-var-dtype">{{.DType}}</div><div class="xr-var-unit">{{.Unit}}</div>
{{- if .BinEdges}}<div class="xr-var-bin-edges">bin-edges</div>{{end}}
{{- if .Sparse}}<div class="xr-var-sparse">sparse</div>{{end -}}
<div class="xr-var-preview">{{.Preview}}</div>
{{- if .Variances}}<div class="xr-var-variances">σ² = {{.Variances}}</div>{{end -}}
</li>
{{- end}}
</ul></div>
</li>
{{- end}}
</ul>
</div>
`))

// View renders in as a collapsible HTML document.
func View(in Input, opts ...Option) (string, error) {
	var buf bytes.Buffer
	if err := WriteView(&buf, in, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteView writes a collapsible HTML view of in to w. The sections are
// Dimensions, Coordinates, Labels, Data, Masks and Attributes, always in that
// order and always present; empty sections are disabled.
func WriteView(w io.Writer, in Input, opts ...Option) error {
	if err := checkInput(in); err != nil {
		return err
	}
	o := newOptions(opts)
	data := buildView(in, o)
	return viewTemplate.Execute(w, data)
}

func buildView(in Input, o options) viewData {
	var (
		data                         []namedVar
		coords, labels, masks, attrs *Map
	)
	switch x := in.(type) {
	case *DataArray:
		data = []namedVar{{"", x.Data}}
		coords, labels, masks, attrs = &x.Coords, &x.Labels, &x.Masks, &x.Attrs
	case *Dataset:
		x.Items.Each(func(name string, v *Variable) {
			data = append(data, namedVar{name, v})
		})
		coords, labels, masks, attrs = &x.Coords, &x.Labels, &x.Masks, &x.Attrs
	}

	order, extents := dataExtents(data, coords, labels, masks, attrs)
	indexed := make(map[Dim]bool)
	coords.Each(func(name string, _ *Variable) { indexed[Dim(name)] = true })

	dims := make([]viewDim, len(order))
	for i, d := range order {
		dims[i] = viewDim{Name: string(d), Length: extentString(extents[d]), Indexed: indexed[d]}
	}

	mapVars := func(m *Map, edges, coordNames bool) []viewVar {
		var out []viewVar
		m.Each(func(name string, v *Variable) {
			if coordNames && v != nil && len(v.Dims) > 0 && len(v.Shape) == len(v.Dims) && v.Shape[len(v.Shape)-1] == Sparse {
				name = string(v.Dims[len(v.Dims)-1])
			}
			out = append(out, summarize(name, v, edges, extents, o))
		})
		return out
	}
	var dataVars []viewVar
	for _, nv := range data {
		dataVars = append(dataVars, summarize(nv.name, nv.v, false, extents, o))
	}

	sections := []viewSection{
		{Name: SectionDimensions, Count: len(dims), Dims: dims},
		{Name: SectionCoordinates, Vars: mapVars(coords, true, true)},
		{Name: SectionLabels, Vars: mapVars(labels, true, false)},
		{Name: SectionData, Vars: dataVars, Open: true},
		{Name: SectionMasks, Vars: mapVars(masks, true, false)},
		{Name: SectionAttributes, Vars: mapVars(attrs, false, false)},
	}
	for i := range sections {
		sections[i].ID = o.newID()
		if sections[i].Name != SectionDimensions {
			sections[i].Count = len(sections[i].Vars)
		}
	}
	return viewData{Type: "nbhtml." + typeName(in), Sections: sections}
}

type namedVar struct {
	name string
	v    *Variable
}

// dataExtents returns the dimensions in order of first appearance and their
// extents. Data variables define the extents; metadata only contributes
// dimensions the data does not have.
func dataExtents(data []namedVar, meta ...*Map) ([]Dim, map[Dim]int) {
	var order []Dim
	extents := make(map[Dim]int)
	add := func(v *Variable) {
		if v == nil {
			return
		}
		for i, d := range v.Dims {
			if _, ok := extents[d]; ok || i >= len(v.Shape) {
				continue
			}
			order = append(order, d)
			extents[d] = v.Shape[i]
		}
	}
	for _, nv := range data {
		add(nv.v)
	}
	for _, m := range meta {
		m.Each(func(_ string, v *Variable) { add(v) })
	}
	return order, extents
}

func extentString(n int) string {
	if n == Sparse {
		return "Sparse"
	}
	return strconv.Itoa(n)
}

func summarize(name string, v *Variable, edges bool, extents map[Dim]int, o options) viewVar {
	if v == nil {
		return viewVar{Name: name}
	}
	dims := make([]string, len(v.Dims))
	for i, d := range v.Dims {
		dims[i] = string(d)
		if i < len(v.Shape) && v.Shape[i] == Sparse {
			dims[i] += " [sparse]"
		}
	}
	vv := viewVar{
		Name:   name,
		Dims:   "(" + strings.Join(dims, ", ") + ")",
		DType:  v.DType,
		Unit:   v.Unit,
		Sparse: v.IsSparse(),
	}
	if vv.Unit == "" {
		vv.Unit = "dimensionless"
	}
	if edges {
		for i, d := range v.Dims {
			if n, ok := extents[d]; ok && n != Sparse && i < len(v.Shape) && v.Shape[i] == n+1 {
				vv.BinEdges = true
				break
			}
		}
	}
	if vv.Sparse {
		vv.Preview = fmt.Sprintf("%d values in sparse storage", len(v.Values))
		return vv
	}
	vv.Preview = preview(v.Values, o)
	if v.HasVariances() {
		vv.Variances = preview(v.Variances, o)
	}
	return vv
}

func preview(vals []any, o options) string {
	n := min(len(vals), o.previewSize)
	parts := make([]string, n, n+1)
	for i := 0; i < n; i++ {
		parts[i] = FormatValue(vals[i], o.precision)
	}
	if len(vals) > n {
		parts = append(parts, "...")
	}
	return strings.Join(parts, ", ")
}
