package netdef

import (
	"fmt"

	"github.com/aretw0/strata/pkg/schema"
)

// Builder provides a fluent API for constructing network definitions
// in code, mostly for tests and examples.
//
// Usage:
//
//	b := netdef.NewBuilder()
//	b.Add("input").Output("out", schema.PerBatch(4))
//	b.Add("dense").
//		Input("x", schema.PerBatch(4)).
//		Param("W", schema.Of(4, 8)).
//		Param("b", schema.Of(8)).
//		Output("out", schema.PerBatch(8))
//	b.Connect("input", "out", "dense", "x")
//	reg, err := b.Build()
type Builder struct {
	order []string
	nodes map[string]*LayerBuilder
	wires []Wire
	errs  []error
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{nodes: make(map[string]*LayerBuilder)}
}

// Add starts the definition of a new layer and returns its builder.
func (b *Builder) Add(name string) *LayerBuilder {
	if _, exists := b.nodes[name]; exists {
		b.errs = append(b.errs, fmt.Errorf("duplicate layer %q", name))
	} else {
		b.order = append(b.order, name)
		b.nodes[name] = &LayerBuilder{layer: &Layer{Name: name}}
	}
	return b.nodes[name]
}

// Connect wires srcLayer.output to dstLayer.input.
func (b *Builder) Connect(srcLayer, output, dstLayer, input string) *Builder {
	b.wires = append(b.wires, Wire{
		SrcLayer: srcLayer,
		Output:   output,
		DstLayer: dstLayer,
		Input:    input,
	})
	return b
}

// Build assembles the registry. Wires are attached to their source
// layer, matching how definitions declare outgoing connections.
func (b *Builder) Build() (*Registry, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	reg := NewRegistry()
	for _, name := range b.order {
		if err := reg.Add(b.nodes[name].layer); err != nil {
			return nil, err
		}
	}
	for _, w := range b.wires {
		src, ok := reg.Get(w.SrcLayer)
		if !ok {
			return nil, fmt.Errorf("wire references unknown layer %q", w.SrcLayer)
		}
		src.Outgoing = append(src.Outgoing, w)
	}
	return reg, nil
}

// LayerBuilder accumulates the ordered structures of one layer.
type LayerBuilder struct {
	layer *Layer
}

// Input declares an input port.
func (lb *LayerBuilder) Input(name string, shape schema.Template) *LayerBuilder {
	lb.layer.Inputs = append(lb.layer.Inputs, Field{Name: name, Shape: shape})
	return lb
}

// Output declares an output port.
func (lb *LayerBuilder) Output(name string, shape schema.Template) *LayerBuilder {
	lb.layer.Outputs = append(lb.layer.Outputs, Field{Name: name, Shape: shape})
	return lb
}

// Param declares a parameter endpoint. Declaration order is the forced
// order of the layer's parameter block.
func (lb *LayerBuilder) Param(name string, shape schema.Template) *LayerBuilder {
	lb.layer.Params = append(lb.layer.Params, Field{Name: name, Shape: shape})
	return lb
}

// Internal declares an internal-state endpoint. Declaration order is
// the forced order of the layer's internal block.
func (lb *LayerBuilder) Internal(name string, shape schema.Template) *LayerBuilder {
	lb.layer.Internals = append(lb.layer.Internals, Field{Name: name, Shape: shape})
	return lb
}
