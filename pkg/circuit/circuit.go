package circuit

import (
	"github.com/matzehuels/critpath/pkg/errors"
)

// Well-known component types. The type set is open - any type with a
// delay table entry is accepted - but INPUT and OUTPUT carry structural
// meaning (sources and designated sinks).
const (
	TypeInput  = "INPUT"
	TypeOutput = "OUTPUT"
)

// Node is a single circuit component: a typed, uniquely named vertex
// with ordered input dependencies.
//
// Inputs preserve declaration order; the order matters for deterministic
// tie-breaking during analysis, not for the dependency edges themselves.
// Line is the 1-based source line the node was declared on (0 when the
// node was constructed programmatically).
type Node struct {
	ID     string
	Type   string
	Inputs []string
	Line   int
}

// Circuit is an immutable dependency graph over circuit components.
//
// Nodes live in a dense arena indexed by declaration order, with input
// and consumer adjacency stored as index slices. This keeps topological
// sort and critical-path relaxation O(V+E) array walks instead of
// repeated map lookups. A Circuit is fully validated at construction
// (references resolved, acyclic, all delays known) and never mutated
// afterwards, so concurrent reads need no synchronization.
type Circuit struct {
	nodes     []*Node
	index     map[string]int
	inputs    [][]int // arena index -> input arena indexes, declaration order
	consumers [][]int // arena index -> consumer arena indexes, declaration order
	delays    DelayTable
}

// New builds a validated Circuit from nodes in declaration order.
//
// Validation is eager and fails on the first structural error:
//
//   - ErrCodeDuplicateNode: an ID appears more than once
//   - ErrCodeUndefinedReference: an input names an ID never defined
//   - ErrCodeUnknownComponentType: a type has no delay table entry and
//     the table carries no default
//   - ErrCodeGraphCycle: a node (transitively) depends on itself
//
// Forward references are fine - resolution happens over the complete
// node set. On error no Circuit is returned.
func New(nodes []Node, delays DelayTable) (*Circuit, error) {
	c := &Circuit{
		nodes:     make([]*Node, 0, len(nodes)),
		index:     make(map[string]int, len(nodes)),
		inputs:    make([][]int, len(nodes)),
		consumers: make([][]int, len(nodes)),
		delays:    delays,
	}

	for i := range nodes {
		n := nodes[i]
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node ID must not be empty")
		}
		if prev, exists := c.index[n.ID]; exists {
			return nil, errors.New(errors.ErrCodeDuplicateNode,
				"node %q defined twice (lines %d and %d)", n.ID, c.nodes[prev].Line, n.Line)
		}
		if _, ok := delays.Lookup(n.Type); !ok {
			return nil, errors.New(errors.ErrCodeUnknownComponentType,
				"node %q has type %q with no delay table entry", n.ID, n.Type)
		}
		c.index[n.ID] = len(c.nodes)
		c.nodes = append(c.nodes, &n)
	}

	for i, n := range c.nodes {
		for _, in := range n.Inputs {
			j, ok := c.index[in]
			if !ok {
				return nil, errors.New(errors.ErrCodeUndefinedReference,
					"node %q references undefined input %q", n.ID, in)
			}
			c.inputs[i] = append(c.inputs[i], j)
			c.consumers[j] = append(c.consumers[j], i)
		}
	}

	if err := c.detectCycles(); err != nil {
		return nil, err
	}

	return c, nil
}

// detectCycles runs a white/gray/black DFS over the input->consumer
// edges. A gray node reached again is on a directed cycle.
func (c *Circuit) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(c.nodes))
	var cycleAt int = -1

	var dfs func(i int)
	dfs = func(i int) {
		color[i] = gray
		for _, j := range c.consumers[i] {
			switch color[j] {
			case white:
				dfs(j)
			case gray:
				if cycleAt < 0 {
					cycleAt = j
				}
			}
			if cycleAt >= 0 {
				return
			}
		}
		color[i] = black
	}

	for i := range c.nodes {
		if color[i] == white {
			dfs(i)
			if cycleAt >= 0 {
				return errors.New(errors.ErrCodeGraphCycle,
					"node %q is part of a dependency cycle", c.nodes[cycleAt].ID)
			}
		}
	}
	return nil
}

// Nodes returns all nodes in declaration order.
// The returned slice must not be modified.
func (c *Circuit) Nodes() []*Node { return c.nodes }

// Node returns the node with the given ID and true, or nil and false.
func (c *Circuit) Node(id string) (*Node, bool) {
	if i, ok := c.index[id]; ok {
		return c.nodes[i], true
	}
	return nil, false
}

// Index returns the arena index of id, or -1 if unknown.
func (c *Circuit) Index(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// At returns the node at arena index i.
func (c *Circuit) At(i int) *Node { return c.nodes[i] }

// NodeCount returns the number of nodes in the circuit.
func (c *Circuit) NodeCount() int { return len(c.nodes) }

// EdgeCount returns the number of input->consumer edges.
func (c *Circuit) EdgeCount() int {
	total := 0
	for _, in := range c.inputs {
		total += len(in)
	}
	return total
}

// InputsOf returns the arena indexes of node i's declared inputs,
// in declaration order. The returned slice must not be modified.
func (c *Circuit) InputsOf(i int) []int { return c.inputs[i] }

// ConsumersOf returns the arena indexes of the nodes reading from node i.
// The returned slice must not be modified.
func (c *Circuit) ConsumersOf(i int) []int { return c.consumers[i] }

// InDegree returns the number of declared inputs of node i.
func (c *Circuit) InDegree(i int) int { return len(c.inputs[i]) }

// Sources returns the nodes with no declared inputs, in declaration order.
func (c *Circuit) Sources() []*Node {
	var sources []*Node
	for i, n := range c.nodes {
		if len(c.inputs[i]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns the circuit's designated sink nodes in declaration order.
//
// When the circuit declares at least one OUTPUT-typed node, those are
// authoritative. Otherwise any node never referenced as an input counts
// as a sink. Both conventions appear in the wild; OUTPUT wins because a
// declared output is an explicit statement of intent.
func (c *Circuit) Sinks() []*Node {
	var outputs []*Node
	for _, n := range c.nodes {
		if n.Type == TypeOutput {
			outputs = append(outputs, n)
		}
	}
	if len(outputs) > 0 {
		return outputs
	}

	var sinks []*Node
	for i, n := range c.nodes {
		if len(c.consumers[i]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Delays returns the delay table the circuit was built against.
func (c *Circuit) Delays() DelayTable { return c.delays }

// DelayOf returns the propagation delay of the node's type.
// Construction guarantees every present type resolves.
func (c *Circuit) DelayOf(n *Node) float64 {
	d, _ := c.delays.Lookup(n.Type)
	return d
}
