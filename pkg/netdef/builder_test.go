package netdef

import (
	"testing"

	"github.com/aretw0/strata/pkg/schema"
)

func TestBuilder_SimpleChain(t *testing.T) {
	b := NewBuilder()

	b.Add("input").Output("out", schema.PerBatch(4))
	b.Add("dense").
		Input("x", schema.PerBatch(4)).
		Param("W", schema.Of(4, 8)).
		Param("b", schema.Of(8)).
		Output("out", schema.PerBatch(8))
	b.Connect("input", "out", "dense", "x")

	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if reg.Len() != 2 {
		t.Fatalf("expected 2 layers, got %d", reg.Len())
	}

	// Registration order must be preserved.
	layers := reg.Layers()
	if layers[0].Name != "input" || layers[1].Name != "dense" {
		t.Errorf("unexpected layer order: %s, %s", layers[0].Name, layers[1].Name)
	}

	// Wire attached to its source layer.
	input := layers[0]
	if len(input.Outgoing) != 1 {
		t.Fatalf("expected 1 outgoing wire on input, got %d", len(input.Outgoing))
	}
	w := input.Outgoing[0]
	if w.DstLayer != "dense" || w.Input != "x" {
		t.Errorf("unexpected wire target: %+v", w)
	}

	// Parameter declaration order must survive.
	dense := layers[1]
	names := dense.Params.Names()
	if len(names) != 2 || names[0] != "W" || names[1] != "b" {
		t.Errorf("param order = %v, want [W b]", names)
	}
	if shape, ok := dense.Params.Get("W"); !ok || shape.ElementCount() != 32 {
		t.Errorf("Params.Get(W) = %v, %v", shape, ok)
	}
}

func TestBuilder_DuplicateLayer(t *testing.T) {
	b := NewBuilder()
	b.Add("a").Output("out", schema.PerBatch(1))
	b.Add("a").Output("out", schema.PerBatch(1))

	if _, err := b.Build(); err == nil {
		t.Error("Build() should reject duplicate layer names")
	}
}

func TestBuilder_UnknownWireSource(t *testing.T) {
	b := NewBuilder()
	b.Add("a").Output("out", schema.PerBatch(1))
	b.Connect("ghost", "out", "a", "x")

	if _, err := b.Build(); err == nil {
		t.Error("Build() should reject wires from unknown layers")
	}
}
