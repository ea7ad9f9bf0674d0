package analysis

import (
	"container/heap"

	"github.com/matzehuels/critpath/pkg/circuit"
	"github.com/matzehuels/critpath/pkg/errors"
)

// TopoSort returns a topological order over all node IDs: for every
// dependency edge u -> v, u appears before v. Nodes with no ordering
// constraint between them come out in declaration order, so the result
// is deterministic for a given netlist.
//
// Circuit construction already proves acyclicity; the leftover-node
// check here guards against circuits built through other paths and
// returns ErrCodeGraphCycle naming a node on the cycle.
func TopoSort(c *circuit.Circuit) ([]string, error) {
	order, err := topoIndexes(c)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(order))
	for i, idx := range order {
		ids[i] = c.At(idx).ID
	}
	return ids, nil
}

// topoIndexes is Kahn's algorithm over arena indexes. The zero-indegree
// frontier is a min-heap on declaration index, which gives the
// file-order tie-break without the O(V^2) of rescanning.
func topoIndexes(c *circuit.Circuit) ([]int, error) {
	n := c.NodeCount()
	indegree := make([]int, n)
	for i := 0; i < n; i++ {
		indegree[i] = c.InDegree(i)
	}

	frontier := &intHeap{}
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			heap.Push(frontier, i)
		}
	}

	order := make([]int, 0, n)
	for frontier.Len() > 0 {
		i := heap.Pop(frontier).(int)
		order = append(order, i)
		for _, j := range c.ConsumersOf(i) {
			indegree[j]--
			if indegree[j] == 0 {
				heap.Push(frontier, j)
			}
		}
	}

	if len(order) < n {
		for i := 0; i < n; i++ {
			if indegree[i] > 0 {
				return nil, errors.New(errors.ErrCodeGraphCycle,
					"node %q is part of a dependency cycle", c.At(i).ID)
			}
		}
	}
	return order, nil
}

// intHeap is a min-heap of arena indexes.
type intHeap []int

func (h intHeap) Len() int            { return len(h) }
func (h intHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x any)         { *h = append(*h, x.(int)) }
func (h *intHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
