package layout

import (
	"sort"
	"strconv"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/netdef"
)

// connectionsOf derives the sorted producer/consumer pairs of the
// network: one per declared wire, plus one synthetic pair per layer
// parameter into the global parameters consumer.
func connectionsOf(reg *netdef.Registry) []domain.Connection {
	var cons []domain.Connection
	for _, layer := range reg.Layers() {
		for _, w := range layer.Outgoing {
			cons = append(cons, domain.Connection{
				Source: domain.PortPath(w.SrcLayer, domain.SectionOutputs, w.Output),
				Sink:   domain.PortPath(w.DstLayer, domain.SectionInputs, w.Input),
			})
		}
	}
	for _, layer := range reg.Layers() {
		for _, f := range layer.Params {
			cons = append(cons, domain.Connection{
				Source: domain.PortPath(layer.Name, domain.SectionParameters, f.Name),
				Sink:   domain.GlobalParameters,
			})
		}
	}
	return sortConnections(cons)
}

func sortConnections(cons []domain.Connection) []domain.Connection {
	sort.Slice(cons, func(i, j int) bool { return cons[i].Less(cons[j]) })
	// Drop duplicate wires so the incidence matrix stays 0/1.
	out := cons[:0]
	for i, c := range cons {
		if i == 0 || c != cons[i-1] {
			out = append(out, c)
		}
	}
	return out
}

// forcedOrdersOf collects, per layer, one group for its parameter paths
// and one for its internal-state paths, dropping empties. Groups must be
// pairwise disjoint.
func forcedOrdersOf(reg *netdef.Registry) ([]domain.ForcedOrder, error) {
	var orders []domain.ForcedOrder
	add := func(layer string, section string, s netdef.Structure) {
		if len(s) == 0 {
			return
		}
		paths := make([]string, len(s))
		for i, f := range s {
			paths[i] = domain.PortPath(layer, section, f.Name)
		}
		orders = append(orders, domain.ForcedOrder{ID: len(orders), Paths: paths})
	}
	for _, layer := range reg.Layers() {
		add(layer.Name, domain.SectionParameters, layer.Params)
	}
	for _, layer := range reg.Layers() {
		add(layer.Name, domain.SectionInternals, layer.Internals)
	}

	if shared := overlapping(orders); len(shared) > 0 {
		return nil, &domain.OverlappingForcedOrderError{Paths: shared}
	}
	return orders, nil
}

// overlapping returns the endpoints claimed by more than one group.
func overlapping(orders []domain.ForcedOrder) []string {
	owner := make(map[string]int)
	var shared []string
	for _, fo := range orders {
		for _, p := range fo.Paths {
			if prev, seen := owner[p]; seen && prev != fo.ID {
				shared = append(shared, p)
				continue
			}
			owner[p] = fo.ID
		}
	}
	sort.Strings(shared)
	return shared
}

// newTreeStub builds the unplanned endpoint tree: the synthetic
// parameters leaf at index 0, then one view per layer in registration
// order with its inputs/outputs/parameters/internals sections.
func newTreeStub(reg *netdef.Registry) *Node {
	root := NewView(0)
	root.Put(domain.GlobalParameters, &Node{Kind: KindArray, Index: 0, Hub: -1})

	for i, layer := range reg.Layers() {
		view := NewView(i + 1)
		view.Put(domain.SectionInputs, sectionView(0, layer.Inputs, true))
		view.Put(domain.SectionOutputs, sectionView(1, layer.Outputs, true))
		view.Put(domain.SectionParameters, sectionView(2, layer.Params, false))
		view.Put(domain.SectionInternals, sectionView(3, layer.Internals, false))
		root.Put(layer.Name, view)
	}
	return root
}

// sectionView builds one section of a layer view. Input and output
// ports are indexed by sorted name; parameters and internals keep their
// declaration order.
func sectionView(index int, s netdef.Structure, sortNames bool) *Node {
	view := NewView(index)
	names := s.Names()
	if sortNames {
		sort.Strings(names)
	}
	for i, name := range names {
		shape, _ := s.Get(name)
		view.Put(name, NewArray(i, shape))
	}
	return view
}

// orderUnit is one atomic unit of the source ordering: a whole
// forced-order group, or a single free endpoint. ForcedID is the
// group's stable ID, or -1 for singletons.
type orderUnit struct {
	ForcedID int
	Paths    []string
}

// key returns the collapsed node identity used during forward closure,
// where a forced-order group acts as one atomic endpoint.
func (u orderUnit) key() string {
	if u.ForcedID >= 0 {
		return forcedKey(u.ForcedID)
	}
	return u.Paths[0]
}

// The NUL prefix keeps group keys out of the endpoint path namespace.
func forcedKey(id int) string {
	return "\x00order:" + strconv.Itoa(id)
}

// sourceUnits enumerates all leaf endpoints in canonical tree order,
// skips those already claimed as consumers, and groups forced-order
// members into atomic units while preserving enumeration order.
func sourceUnits(tree *Node, cons []domain.Connection, orders []domain.ForcedOrder) []orderUnit {
	sinks := make(map[string]bool)
	for _, c := range cons {
		sinks[c.Sink] = true
	}
	member := make(map[string]int) // path -> forced order id
	for _, fo := range orders {
		for _, p := range fo.Paths {
			member[p] = fo.ID
		}
	}

	var units []orderUnit
	claimed := make(map[int]bool) // forced order ids already emitted
	for _, path := range tree.LeafPaths() {
		if sinks[path] {
			continue
		}
		if id, ok := member[path]; ok {
			if !claimed[id] {
				claimed[id] = true
				units = append(units, orderUnit{ForcedID: id, Paths: orders[id].Paths})
			}
			continue
		}
		units = append(units, orderUnit{ForcedID: -1, Paths: []string{path}})
	}
	return units
}
