// Package circuit provides the immutable dependency-graph model for
// digital circuit netlists.
//
// A [Circuit] is built once from a node list (usually by pkg/netlist),
// validated eagerly, and then only queried. Construction resolves every
// input reference, rejects duplicates and unknown component types, and
// proves the graph acyclic, so downstream analysis can assume a valid DAG.
//
// # Representation
//
// Nodes are stored in a dense arena in declaration order. Adjacency in
// both directions (declared inputs and derived consumers) is kept as
// index slices, making traversals linear array walks:
//
//	c, err := circuit.New(nodes, circuit.DefaultDelays())
//	for i := range c.Nodes() {
//	    for _, j := range c.InputsOf(i) { ... }
//	}
//
// # Delay Configuration
//
// Component delays come from a [DelayTable], injectable per circuit and
// loadable from TOML via [LoadDelays]. A table may carry a default delay
// for types without an explicit entry; without one, unknown types fail
// construction with UNKNOWN_COMPONENT_TYPE.
//
// # Concurrency
//
// Circuits are immutable after New returns; all methods are safe for
// concurrent use.
package circuit
