/*
Package layout computes the buffer layout plan for a network definition.

The planner assigns every endpoint of the network a contiguous element
range inside one of several hub buffers, such that endpoints sharing a
hub can be read via plain slicing. The pipeline:

 1. extract connections and forced-order groups from the layer registry
 2. build the endpoint tree stub and enumerate source endpoints
 3. partition sources into hubs via forward closure
 4. per hub, find a producer ordering giving every consumer one
    contiguous run (the consecutive-ones property)
 5. write element slices back into the tree and finalize the synthetic
    parameters leaf

The whole computation is single-threaded and deterministic: the same
registry always yields a byte-identical plan.
*/
package layout
