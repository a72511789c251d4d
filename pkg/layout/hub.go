package layout

import (
	"github.com/aretw0/strata/pkg/domain"
)

// Hub is a maximal, mutually-closed set of producer and consumer
// endpoints realized through one contiguous buffer. After construction
// Sources holds the final, solved producer order; Table rows follow
// Sources and columns follow Sinks.
type Hub struct {
	Sources     []string          `json:"sources"`
	Sinks       []string          `json:"sinks"`
	BType       domain.BufferType `json:"btype"`
	ContextSize int               `json:"context_size"`
	Sizes       []int             `json:"sizes"`
	Size        int               `json:"size"`
	Table       [][]int           `json:"table"`
}

// newHub validates the source set, builds the incidence matrix, and
// solves for a producer order under which every sink reads one
// contiguous run.
func newHub(units []orderUnit, sinks []string, tree *Node, cons []domain.Connection) (*Hub, error) {
	var flat []string
	for _, u := range units {
		flat = append(flat, u.Paths...)
	}

	// All producers must agree on one buffer type; context size is the
	// maximum declared among them.
	types := make([]domain.BufferType, len(flat))
	contextSize := 0
	for i, path := range flat {
		leaf, err := tree.Resolve(path)
		if err != nil {
			return nil, err
		}
		types[i] = leaf.Shape.BufferType()
		if c := leaf.Shape.Context(); c > contextSize {
			contextSize = c
		}
	}
	for _, t := range types {
		if t != types[0] {
			return nil, &domain.InconsistentBufferTypeError{Sources: flat, Types: types}
		}
	}

	h := &Hub{
		Sinks:       sinks,
		BType:       types[0],
		ContextSize: contextSize,
		Table:       incidence(flat, sinks, cons),
	}

	ordered, err := h.solve(units, flat)
	if err != nil {
		return nil, err
	}
	h.Sources = ordered

	h.Sizes = make([]int, len(ordered))
	for i, path := range ordered {
		leaf, err := tree.Resolve(path)
		if err != nil {
			return nil, err
		}
		h.Sizes[i] = leaf.Shape.ElementCount()
		h.Size += h.Sizes[i]
	}
	return h, nil
}

// incidence builds the 0/1 matrix with one row per flat source and one
// column per sink.
func incidence(sources, sinks []string, cons []domain.Connection) [][]int {
	srcIdx := make(map[string]int, len(sources))
	for i, s := range sources {
		srcIdx[s] = i
	}
	sinkIdx := make(map[string]int, len(sinks))
	for i, s := range sinks {
		sinkIdx[s] = i
	}

	table := make([][]int, len(sources))
	for i := range table {
		table[i] = make([]int, len(sinks))
	}
	for _, c := range cons {
		if row, ok := srcIdx[c.Source]; ok {
			if col, ok := sinkIdx[c.Sink]; ok {
				table[row][col] = 1
			}
		}
	}
	return table
}

// solve searches the permutations of the order-preserving units for one
// under which every column of the incidence matrix has a single
// contiguous run of ones. Permutations are enumerated in lexicographic
// index order, so the accepted ordering is the canonically smallest
// valid one. Fails with UnsatisfiableLayoutError when the search space
// is exhausted.
func (h *Hub) solve(units []orderUnit, flat []string) ([]string, error) {
	// Row offsets of each unit's block in the unpermuted table.
	starts := make([]int, len(units))
	row := 0
	for i, u := range units {
		starts[i] = row
		row += len(u.Paths)
	}

	perm := identityPerm(len(units))
	for {
		rows := make([]int, 0, len(flat))
		for _, ui := range perm {
			for k := 0; k < len(units[ui].Paths); k++ {
				rows = append(rows, starts[ui]+k)
			}
		}
		permuted := permuteRows(h.Table, rows)
		if singleBufferConnectable(permuted) {
			h.Table = permuted
			ordered := make([]string, len(rows))
			for i, r := range rows {
				ordered[i] = flat[r]
			}
			return ordered, nil
		}
		if !nextPerm(perm) {
			return nil, &domain.UnsatisfiableLayoutError{Sources: flat, Sinks: h.Sinks}
		}
	}
}

// singleBufferConnectable checks the consecutive-ones property: padding
// each column with a zero above and below, the number of value changes
// between adjacent rows must not exceed two, i.e. the ones form at most
// one contiguous run.
func singleBufferConnectable(table [][]int) bool {
	if len(table) == 0 {
		return true
	}
	for col := 0; col < len(table[0]); col++ {
		changes := 0
		prev := 0
		for row := 0; row < len(table); row++ {
			if table[row][col] != prev {
				changes++
				prev = table[row][col]
			}
		}
		if prev != 0 {
			changes++
		}
		if changes > 2 {
			return false
		}
	}
	return true
}

func permuteRows(table [][]int, rows []int) [][]int {
	out := make([][]int, len(rows))
	for i, r := range rows {
		out[i] = table[r]
	}
	return out
}

func identityPerm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// nextPerm advances p to its lexicographic successor in place,
// returning false once the last permutation has been consumed.
func nextPerm(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
