/*
Package netdef models the network definition consumed by the planner:
layers with ordered input/output shapes, parameter and internal-state
structures, and the wires connecting layer ports.

Definitions are built either programmatically through the fluent
Builder or loaded from a YAML/JSON document by the file adapter.
*/
package netdef
