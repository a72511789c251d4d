package layout

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/netdef"
	"github.com/aretw0/strata/pkg/schema"
)

// Placement assigns one endpoint its element range within a hub.
type Placement struct {
	Path  string
	Slice domain.Slice
}

// Indices computes the element ranges of every endpoint of the hub:
// sources tile [0, Size) in their final order, and each sink covers the
// contiguous run from its first to its last connected source.
func (h *Hub) Indices() []Placement {
	offsets := make([]int, len(h.Sizes)+1)
	for i, s := range h.Sizes {
		offsets[i+1] = offsets[i] + s
	}

	out := make([]Placement, 0, len(h.Sources)+len(h.Sinks))
	for i, src := range h.Sources {
		out = append(out, Placement{src, domain.Slice{Start: offsets[i], Stop: offsets[i+1]}})
	}
	for col, sink := range h.Sinks {
		first, last := -1, -1
		for row := range h.Table {
			if h.Table[row][col] == 1 {
				if first < 0 {
					first = row
				}
				last = row
			}
		}
		if first < 0 {
			// A sink with no connected source cannot appear in a hub:
			// it only joined via some connection.
			continue
		}
		out = append(out, Placement{sink, domain.Slice{Start: offsets[first], Stop: offsets[last+1]}})
	}
	return out
}

// layoutHubs writes every endpoint's slice and hub index into the tree.
func layoutHubs(hubs []*Hub, tree *Node) error {
	for hubNr, hub := range hubs {
		for _, p := range hub.Indices() {
			leaf, err := tree.Resolve(p.Path)
			if err != nil {
				return err
			}
			s := p.Slice
			leaf.Slice = &s
			leaf.Hub = hubNr
		}
	}
	return nil
}

// Plan is the finished layout: the ordered hub list, the laid-out
// endpoint tree, the total parameter element count, and a deterministic
// fingerprint usable as a cache key.
type Plan struct {
	Hubs        []*Hub `json:"hubs"`
	Tree        *Node  `json:"layout"`
	ParamCount  int    `json:"parameter_count"`
	Fingerprint string `json:"fingerprint"`
}

// Create computes the full buffer layout for a network definition.
func Create(reg *netdef.Registry) (*Plan, error) {
	orders, err := forcedOrdersOf(reg)
	if err != nil {
		return nil, err
	}
	cons := connectionsOf(reg)

	tree := newTreeStub(reg)
	units := sourceUnits(tree, cons, orders)

	hubs, err := partition(units, orders, cons, tree)
	if err != nil {
		return nil, err
	}
	// Group same-typed hubs together. The sort is stable, so hubs keep
	// their discovery order within one buffer type.
	sort.SliceStable(hubs, func(i, j int) bool { return hubs[i].BType < hubs[j].BType })

	if err := layoutHubs(hubs, tree); err != nil {
		return nil, err
	}

	plan := &Plan{Hubs: hubs, Tree: tree}
	if err := plan.finalizeParameters(); err != nil {
		return nil, err
	}
	if err := plan.fingerprint(); err != nil {
		return nil, err
	}
	return plan, nil
}

// finalizeParameters sets the synthetic parameters leaf's shape to the
// width of its assigned slice: the flat aggregate of every layer
// parameter across all hubs.
func (p *Plan) finalizeParameters() error {
	leaf, err := p.Tree.Resolve(domain.GlobalParameters)
	if err != nil {
		return err
	}
	if leaf.Slice != nil {
		p.ParamCount = leaf.Slice.Len()
	}
	shape := schema.Of(p.ParamCount)
	leaf.Shape = &shape
	return nil
}

func (p *Plan) fingerprint() error {
	data, err := json.Marshal(p.Tree)
	if err != nil {
		return fmt.Errorf("failed to fingerprint layout: %w", err)
	}
	sum := sha256.Sum256(data)
	p.Fingerprint = hex.EncodeToString(sum[:])
	return nil
}
