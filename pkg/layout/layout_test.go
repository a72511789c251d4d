package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/netdef"
	"github.com/aretw0/strata/pkg/schema"
)

// fanNetwork wires producer layers a(2), b(3), c(4) into consumers
// x <- {a,b} and y <- {b,c}.
func fanNetwork(t *testing.T) *netdef.Registry {
	t.Helper()
	b := netdef.NewBuilder()
	b.Add("a").Output("out", schema.PerBatch(2))
	b.Add("b").Output("out", schema.PerBatch(3))
	b.Add("c").Output("out", schema.PerBatch(4))
	b.Add("x").Input("in", schema.PerBatch(5))
	b.Add("y").Input("in", schema.PerBatch(7))
	b.Connect("a", "out", "x", "in")
	b.Connect("b", "out", "x", "in")
	b.Connect("b", "out", "y", "in")
	b.Connect("c", "out", "y", "in")

	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	return reg
}

func mustSlice(t *testing.T, tree *Node, path string) domain.Slice {
	t.Helper()
	leaf, err := tree.Resolve(path)
	if err != nil {
		t.Fatalf("Resolve(%s) failed: %v", path, err)
	}
	if leaf.Slice == nil {
		t.Fatalf("endpoint %s has no slice", path)
	}
	return *leaf.Slice
}

func TestCreate_FanNetworkSlices(t *testing.T) {
	plan, err := Create(fanNetwork(t))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	want := map[string]domain.Slice{
		"a.outputs.out": {Start: 0, Stop: 2},
		"b.outputs.out": {Start: 2, Stop: 5},
		"c.outputs.out": {Start: 5, Stop: 9},
		"x.inputs.in":   {Start: 0, Stop: 5},
		"y.inputs.in":   {Start: 2, Stop: 9},
	}
	for path, slice := range want {
		if got := mustSlice(t, plan.Tree, path); got != slice {
			t.Errorf("%s: slice = %v, want %v", path, got, slice)
		}
	}
}

func TestCreate_HubInvariants(t *testing.T) {
	plan, err := Create(fanNetwork(t))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	for _, hub := range plan.Hubs {
		// Producer slices exactly tile [0, hub.Size).
		total := 0
		for _, s := range hub.Sizes {
			total += s
		}
		if total != hub.Size {
			t.Errorf("hub size %d != sum of source sizes %d", hub.Size, total)
		}

		next := 0
		for _, p := range hub.Indices()[:len(hub.Sources)] {
			if p.Slice.Start != next {
				t.Errorf("source %s starts at %d, want %d (gap or overlap)", p.Path, p.Slice.Start, next)
			}
			next = p.Slice.Stop
		}
		if next != hub.Size {
			t.Errorf("sources tile up to %d, want %d", next, hub.Size)
		}

		// Each sink's slice covers exactly its connected sources.
		offsets := make([]int, len(hub.Sizes)+1)
		for i, s := range hub.Sizes {
			offsets[i+1] = offsets[i] + s
		}
		for col, sink := range hub.Sinks {
			var slice domain.Slice
			for _, p := range hub.Indices() {
				if p.Path == sink {
					slice = p.Slice
				}
			}
			for row := range hub.Table {
				inside := offsets[row] >= slice.Start && offsets[row+1] <= slice.Stop
				if (hub.Table[row][col] == 1) != inside {
					t.Errorf("sink %s slice %v disagrees with connectivity at row %d", sink, slice, row)
				}
			}
		}
	}
}

func TestCreate_UnsatisfiablePairwiseOverlap(t *testing.T) {
	// x <- {a,b}, y <- {b,c}, z <- {a,c}: every ordering of three
	// producers splits exactly one pair.
	b := netdef.NewBuilder()
	b.Add("a").Output("out", schema.PerBatch(1))
	b.Add("b").Output("out", schema.PerBatch(1))
	b.Add("c").Output("out", schema.PerBatch(1))
	b.Add("x").Input("in", schema.PerBatch(2))
	b.Add("y").Input("in", schema.PerBatch(2))
	b.Add("z").Input("in", schema.PerBatch(2))
	b.Connect("a", "out", "x", "in")
	b.Connect("b", "out", "x", "in")
	b.Connect("b", "out", "y", "in")
	b.Connect("c", "out", "y", "in")
	b.Connect("a", "out", "z", "in")
	b.Connect("c", "out", "z", "in")
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	_, err = Create(reg)
	var unsat *domain.UnsatisfiableLayoutError
	if !errors.As(err, &unsat) {
		t.Fatalf("Create() error = %v, want UnsatisfiableLayoutError", err)
	}
	if len(unsat.Sources) != 3 || len(unsat.Sinks) != 3 {
		t.Errorf("error context has %d sources / %d sinks, want 3 / 3", len(unsat.Sources), len(unsat.Sinks))
	}
}

func TestCreate_ParameterAggregation(t *testing.T) {
	// Two layers with parameter element counts 5 and 7: the synthetic
	// parameters leaf must total 12, wherever the endpoints land.
	b := netdef.NewBuilder()
	b.Add("first").
		Param("W", schema.Of(5)).
		Output("out", schema.PerBatch(3))
	b.Add("second").
		Param("W", schema.Of(4)).
		Param("b", schema.Of(3)).
		Input("in", schema.PerBatch(3)).
		Output("out", schema.PerBatch(2))
	b.Connect("first", "out", "second", "in")
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	plan, err := Create(reg)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if plan.ParamCount != 12 {
		t.Errorf("ParamCount = %d, want 12", plan.ParamCount)
	}

	leaf, err := plan.Tree.Resolve(domain.GlobalParameters)
	if err != nil {
		t.Fatalf("Resolve(parameters) failed: %v", err)
	}
	if leaf.Shape == nil || leaf.Shape.ElementCount() != 12 {
		t.Errorf("parameters leaf shape = %v, want element count 12", leaf.Shape)
	}
}

func TestCreate_ForcedOrderAdjacency(t *testing.T) {
	b := netdef.NewBuilder()
	b.Add("dense").
		Param("W", schema.Of(4, 4)).
		Param("bias", schema.Of(4)).
		Output("out", schema.PerBatch(4))
	b.Add("out").Input("in", schema.PerBatch(4))
	b.Connect("dense", "out", "out", "in")
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	plan, err := Create(reg)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	w := mustSlice(t, plan.Tree, "dense.parameters.W")
	bias := mustSlice(t, plan.Tree, "dense.parameters.bias")
	if w.Stop != bias.Start {
		t.Errorf("forced-order members not adjacent in declared order: W=%v bias=%v", w, bias)
	}

	wLeaf, _ := plan.Tree.Resolve("dense.parameters.W")
	biasLeaf, _ := plan.Tree.Resolve("dense.parameters.bias")
	if wLeaf.Hub != biasLeaf.Hub {
		t.Errorf("forced-order members split across hubs %d and %d", wLeaf.Hub, biasLeaf.Hub)
	}
}

func TestCreate_HubsSortedByBufferType(t *testing.T) {
	b := netdef.NewBuilder()
	b.Add("dense").
		Param("W", schema.Of(8)).
		Output("out", schema.PerBatch(4))
	b.Add("out").Input("in", schema.PerBatch(4))
	b.Connect("dense", "out", "out", "in")
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	plan, err := Create(reg)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	for i := 1; i < len(plan.Hubs); i++ {
		if plan.Hubs[i-1].BType > plan.Hubs[i].BType {
			t.Errorf("hubs not sorted by buffer type at %d: %v > %v", i, plan.Hubs[i-1].BType, plan.Hubs[i].BType)
		}
	}
}

func TestCreate_ContextSizePropagates(t *testing.T) {
	b := netdef.NewBuilder()
	b.Add("rec").
		Internal("state", schema.PerStep(6).WithContext(2)).
		Internal("gates", schema.PerStep(3)).
		Output("out", schema.PerBatch(6))
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	plan, err := Create(reg)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	leaf, err := plan.Tree.Resolve("rec.internals.state")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	hub := plan.Hubs[leaf.Hub]
	if hub.ContextSize != 2 {
		t.Errorf("hub context size = %d, want max declared 2", hub.ContextSize)
	}
	if hub.BType != domain.BufferSequence {
		t.Errorf("hub buffer type = %v, want sequence", hub.BType)
	}
}

func TestCreate_InconsistentBufferType(t *testing.T) {
	// Internal endpoints of one layer share a forced order, hence a
	// hub; mixing batch and sequence scaling there is fatal.
	b := netdef.NewBuilder()
	b.Add("bad").
		Internal("s1", schema.PerStep(4)).
		Internal("s2", schema.PerBatch(4)).
		Output("out", schema.PerBatch(4))
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	_, err = Create(reg)
	var mixed *domain.InconsistentBufferTypeError
	if !errors.As(err, &mixed) {
		t.Fatalf("Create() error = %v, want InconsistentBufferTypeError", err)
	}
}

func TestCreate_Deterministic(t *testing.T) {
	first, err := Create(fanNetwork(t))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	second, err := Create(fanNetwork(t))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two runs on the same network produced different plans")
	}
	if first.Fingerprint != second.Fingerprint {
		t.Errorf("fingerprints differ: %s vs %s", first.Fingerprint, second.Fingerprint)
	}
}
