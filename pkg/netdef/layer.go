package netdef

import "github.com/aretw0/strata/pkg/schema"

// Field is one named entry of an ordered structure.
type Field struct {
	Name  string
	Shape schema.Template
}

// Structure is an ordered name → shape mapping. Declaration order is
// significant: it fixes the declared index of every endpoint and the
// internal order of forced-order groups.
type Structure []Field

// Get returns the shape for name.
func (s Structure) Get(name string) (schema.Template, bool) {
	for _, f := range s {
		if f.Name == name {
			return f.Shape, true
		}
	}
	return schema.Template{}, false
}

// Names returns the field names in declaration order.
func (s Structure) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Wire connects a layer output port to a layer input port.
type Wire struct {
	SrcLayer string `json:"src_layer" yaml:"src_layer"`
	Output   string `json:"output" yaml:"output"`
	DstLayer string `json:"dst_layer" yaml:"dst_layer"`
	Input    string `json:"input" yaml:"input"`
}

// Layer is one node of the network definition. All structures are
// read-only facts for the planner; Strata never evaluates a layer.
type Layer struct {
	Name      string
	Inputs    Structure
	Outputs   Structure
	Params    Structure
	Internals Structure
	Outgoing  []Wire
}
