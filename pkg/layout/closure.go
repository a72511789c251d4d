package layout

import (
	"sort"

	"github.com/aretw0/strata/pkg/domain"
)

// mergeConnections rewrites the connection list onto collapsed node
// keys, replacing every endpoint that belongs to a forced-order group
// with the group's key. The closure then treats each group as one
// atomic node.
func mergeConnections(cons []domain.Connection, orders []domain.ForcedOrder) []domain.Connection {
	member := make(map[string]string)
	for _, fo := range orders {
		for _, p := range fo.Paths {
			member[p] = forcedKey(fo.ID)
		}
	}
	collapse := func(path string) string {
		if key, ok := member[path]; ok {
			return key
		}
		return path
	}

	merged := make([]domain.Connection, 0, len(cons))
	for _, c := range cons {
		merged = append(merged, domain.Connection{
			Source: collapse(c.Source),
			Sink:   collapse(c.Sink),
		})
	}
	return sortConnections(merged)
}

// forwardClosure expands from a seed source node to the smallest pair
// of sets (sources, sinks) that is simultaneously closed under
// "consumers of my producers" and "producers of my consumers" -- the
// connected component of the bipartite producer/consumer graph.
//
// Each iteration only adds elements from a finite universe, so the
// fixed point is always reached.
func forwardClosure(seed string, cons []domain.Connection) (sources, sinks map[string]bool) {
	sources = map[string]bool{seed: true}
	sinks = sinksOf(sources, cons)
	for {
		newSources := sourcesOf(sinks, cons)
		newSinks := sinksOf(sources, cons)
		if len(newSources) <= len(sources) && len(newSinks) <= len(sinks) {
			return sources, sinks
		}
		sources = newSources
		sinks = newSinks
	}
}

func sinksOf(sources map[string]bool, cons []domain.Connection) map[string]bool {
	out := make(map[string]bool)
	for _, c := range cons {
		if sources[c.Source] {
			out[c.Sink] = true
		}
	}
	return out
}

func sourcesOf(sinks map[string]bool, cons []domain.Connection) map[string]bool {
	out := make(map[string]bool)
	for _, c := range cons {
		if sinks[c.Sink] {
			out[c.Source] = true
		}
	}
	return out
}

// partition peels hubs off the source pool until every unit is claimed.
// Units are visited in canonical enumeration order; each seed's forward
// closure over the merged connection view determines one hub.
func partition(units []orderUnit, orders []domain.ForcedOrder, cons []domain.Connection, tree *Node) ([]*Hub, error) {
	merged := mergeConnections(cons, orders)
	claimed := make([]bool, len(units))

	var hubs []*Hub
	for i := range units {
		if claimed[i] {
			continue
		}
		srcKeys, sinkKeys := forwardClosure(units[i].key(), merged)

		var hubUnits []orderUnit
		for j := i; j < len(units); j++ {
			if !claimed[j] && srcKeys[units[j].key()] {
				claimed[j] = true
				hubUnits = append(hubUnits, units[j])
			}
		}

		sinks := make([]string, 0, len(sinkKeys))
		for s := range sinkKeys {
			sinks = append(sinks, s)
		}
		sort.Strings(sinks)

		hub, err := newHub(hubUnits, sinks, tree, cons)
		if err != nil {
			return nil, err
		}
		hubs = append(hubs, hub)
	}
	return hubs, nil
}
