package layout

import (
	"errors"
	"testing"

	"github.com/aretw0/strata/pkg/domain"
)

func TestSingleBufferConnectable(t *testing.T) {
	tests := []struct {
		name  string
		table [][]int
		want  bool
	}{
		{"empty", nil, true},
		{"single run", [][]int{{1}, {1}, {0}}, true},
		{"run touching both ends", [][]int{{1}, {1}, {1}}, true},
		{"empty column", [][]int{{0}, {0}}, true},
		{"split run", [][]int{{1}, {0}, {1}}, false},
		{"two columns ok", [][]int{{1, 0}, {1, 1}, {0, 1}}, true},
		{"second column split", [][]int{{1, 1}, {1, 0}, {0, 1}}, false},
	}

	for _, tt := range tests {
		if got := singleBufferConnectable(tt.table); got != tt.want {
			t.Errorf("%s: singleBufferConnectable() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNextPerm(t *testing.T) {
	p := identityPerm(3)
	var seen [][3]int
	for {
		seen = append(seen, [3]int{p[0], p[1], p[2]})
		if !nextPerm(p) {
			break
		}
	}
	if len(seen) != 6 {
		t.Fatalf("expected 6 permutations of 3 elements, got %d", len(seen))
	}
	if seen[0] != [3]int{0, 1, 2} || seen[5] != [3]int{2, 1, 0} {
		t.Errorf("unexpected enumeration bounds: first %v, last %v", seen[0], seen[5])
	}
	// Lexicographic order.
	if seen[1] != [3]int{0, 2, 1} {
		t.Errorf("second permutation = %v, want [0 2 1]", seen[1])
	}
}

func TestOverlappingForcedOrders(t *testing.T) {
	orders := []domain.ForcedOrder{
		{ID: 0, Paths: []string{"a.parameters.W", "a.parameters.b"}},
		{ID: 1, Paths: []string{"b.parameters.W", "a.parameters.b"}},
	}
	shared := overlapping(orders)
	if len(shared) != 1 || shared[0] != "a.parameters.b" {
		t.Fatalf("overlapping() = %v, want [a.parameters.b]", shared)
	}

	err := error(&domain.OverlappingForcedOrderError{Paths: shared})
	var target *domain.OverlappingForcedOrderError
	if !errors.As(err, &target) {
		t.Error("error should unwrap as OverlappingForcedOrderError")
	}
}

func TestForwardClosure(t *testing.T) {
	cons := []domain.Connection{
		{Source: "a", Sink: "x"},
		{Source: "b", Sink: "x"},
		{Source: "b", Sink: "y"},
		{Source: "c", Sink: "y"},
		{Source: "d", Sink: "z"},
	}

	sources, sinks := forwardClosure("a", cons)

	for _, s := range []string{"a", "b", "c"} {
		if !sources[s] {
			t.Errorf("closure from a should contain source %q", s)
		}
	}
	if sources["d"] {
		t.Error("closure from a must not reach the independent source d")
	}
	if !sinks["x"] || !sinks["y"] || sinks["z"] {
		t.Errorf("unexpected sink set: %v", sinks)
	}

	// A source with no outgoing connections forms its own component.
	lone, loneSinks := forwardClosure("e", cons)
	if len(lone) != 1 || !lone["e"] || len(loneSinks) != 0 {
		t.Errorf("lone closure = %v / %v, want {e} / {}", lone, loneSinks)
	}
}
