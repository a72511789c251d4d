/*
Package strata plans contiguous buffer layouts for layered dataflow
networks.

Given a network definition — layers with typed endpoint arrays, wires
between layer ports, parameter and internal-state structures — the
planner assigns every endpoint a half-open element range inside one of
several hub buffers, such that every consumer reads its producers
through one plain slice: no gather, no scatter, no per-element
indirection.

Planning is a batch, single-threaded computation performed once per
graph, and it is fully deterministic: the same definition always yields
a byte-identical plan, which makes the plan fingerprint a sound cache
key.

# Quick Start

	b := netdef.NewBuilder()
	b.Add("input").Output("out", schema.PerBatch(4))
	b.Add("dense").
		Input("x", schema.PerBatch(4)).
		Param("W", schema.Of(4, 8)).
		Param("b", schema.Of(8)).
		Output("out", schema.PerBatch(8))
	b.Connect("input", "out", "dense", "x")

	reg, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	plan, err := strata.Plan(reg)
	if err != nil {
		log.Fatal(err)
	}
	for _, hub := range plan.Hubs {
		fmt.Println(hub.Size, hub.Sources)
	}

Layout failures (overlapping forced orders, mixed buffer types,
unsatisfiable connectivity) are configuration errors in the network
definition; the caller must change the wiring, not retry.
*/
package strata
