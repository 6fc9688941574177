package nbhtml

import (
	"io"

	"gopkg.in/yaml.v3"
)

type groupSummary struct {
	Dim       string   `yaml:"dim,omitempty"`
	Coord     string   `yaml:"coord,omitempty"`
	Variables []string `yaml:"variables"`
}

type summary struct {
	Type    string         `yaml:"type"`
	Default *groupSummary  `yaml:"default,omitempty"`
	ZeroD   *groupSummary  `yaml:"zero_d,omitempty"`
	OneD    []groupSummary `yaml:"one_d,omitempty"`
}

func summarizeGroup(g Group) groupSummary {
	s := groupSummary{Variables: g.Names()}
	if _, dim, ok := g.Coord(); ok {
		s.Coord = string(dim)
	}
	return s
}

// WriteSummary writes the display groups of in as YAML.
func WriteSummary(w io.Writer, in Input) error {
	if err := checkInput(in); err != nil {
		return err
	}
	groups := Classify(in)
	s := summary{Type: typeName(in)}
	if !groups.Default.Empty() {
		g := summarizeGroup(groups.Default)
		s.Default = &g
	}
	if !groups.ZeroD.Empty() {
		g := summarizeGroup(groups.ZeroD)
		s.ZeroD = &g
	}
	for _, dg := range groups.OneD {
		g := summarizeGroup(dg.Group)
		g.Dim = string(dg.Dim)
		s.OneD = append(s.OneD, g)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
