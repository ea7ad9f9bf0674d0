// Package analysis implements the graph algorithms over parsed
// circuits: topological ordering and critical-path (longest path in a
// DAG) computation.
//
// Both run in O(V+E) over the circuit's dense arena. All results are
// deterministic: ordering ties and path ties break toward declaration
// order, so the same netlist always produces the same output.
//
//	order, err := analysis.TopoSort(c)
//	result, err := analysis.CriticalPath(c)
//	fmt.Printf("%s (%.2f time units)\n", strings.Join(result.Path, " -> "), result.TotalDelay)
//
// The computations are pure and side-effect free; analyzing distinct
// circuits concurrently needs no synchronization.
package analysis
