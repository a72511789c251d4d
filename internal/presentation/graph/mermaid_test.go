package graph

import (
	"strings"
	"testing"

	"github.com/aretw0/strata/pkg/layout"
	"github.com/aretw0/strata/pkg/netdef"
	"github.com/aretw0/strata/pkg/schema"
)

func TestGenerateMermaid(t *testing.T) {
	b := netdef.NewBuilder()
	b.Add("input").Output("out", schema.PerBatch(4))
	b.Add("dense").
		Input("x", schema.PerBatch(4)).
		Param("W", schema.Of(4, 4)).
		Output("out", schema.PerBatch(4))
	b.Connect("input", "out", "dense", "x")
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	out := GenerateMermaid(reg, nil)

	if !strings.HasPrefix(out, "graph TD") {
		t.Errorf("output should start with graph TD, got %q", out[:20])
	}
	// Source layer drawn as circle, parameterized layer as subroutine.
	if !strings.Contains(out, `input(("input"))`) {
		t.Errorf("source layer not rendered as circle:\n%s", out)
	}
	if !strings.Contains(out, `dense[["dense"]]`) {
		t.Errorf("parameterized layer not rendered as subroutine:\n%s", out)
	}
	if !strings.Contains(out, "input --") || !strings.Contains(out, "--> dense") {
		t.Errorf("wire not rendered:\n%s", out)
	}
	if strings.Contains(out, "subgraph") {
		t.Error("hub subgraphs should only render with a plan")
	}
}

func TestGenerateMermaid_WithPlan(t *testing.T) {
	b := netdef.NewBuilder()
	b.Add("input").Output("out", schema.PerBatch(4))
	b.Add("sink").Input("x", schema.PerBatch(4))
	b.Connect("input", "out", "sink", "x")
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	plan, err := layout.Create(reg)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	out := GenerateMermaid(reg, plan)
	if !strings.Contains(out, "subgraph hub0") {
		t.Errorf("expected hub subgraph:\n%s", out)
	}
	if !strings.Contains(out, "input_outputs_out") {
		t.Errorf("expected sanitized endpoint id in hub subgraph:\n%s", out)
	}
}
