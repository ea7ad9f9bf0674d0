// Package pkg provides the core libraries for critpath circuit analysis.
//
// # Overview
//
// Critpath parses digital circuit netlists, builds the signal dependency
// graph, and computes the critical path: the longest-delay route from an
// input to an output. The pkg directory is organized into:
//
//   - [circuit] - Domain model (components, wiring, delay tables, validation)
//   - [netlist] - Text format parser (one component per line)
//   - [analysis] - Topological ordering and critical path computation
//   - [graph] - JSON serialization of analyzed circuits
//   - [render] - DOT generation and Graphviz rendering (SVG, PNG)
//   - [pipeline] - Orchestration (parse → analyze → render) shared by CLI and API
//   - [cache] - Artifact caching (file, Redis, null backends)
//   - [store] - MongoDB archive for analyzed circuits
//   - [observability] - Hooks for metrics collection
//   - [errors] - Structured error codes shared across entry points
//
// # Architecture
//
// The typical data flow:
//
//	netlist text
//	     ↓
//	[netlist] package (parse + line-level validation)
//	     ↓
//	[circuit] package (structural validation, adjacency, delays)
//	     ↓
//	[analysis] package (topological sort + critical path)
//	     ↓
//	[graph] / [render] output (JSON, DOT, SVG, PNG)
//
// # Quick Start
//
// Parse a netlist and compute its critical path:
//
//	c, err := netlist.ParseString(text, circuit.DefaultDelays())
//	if err != nil {
//	    return err
//	}
//	result, err := analysis.CriticalPath(c)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(strings.Join(result.Path, " -> "), result.TotalDelay)
//
// Or run the full pipeline with rendering and caching:
//
//	runner := pipeline.NewRunner(cache, logger)
//	defer runner.Close()
//	res, err := runner.Execute(ctx, text, pipeline.Options{
//	    Formats:   []string{pipeline.FormatSVG},
//	    Highlight: true,
//	})
//
// [circuit]: https://pkg.go.dev/github.com/matzehuels/critpath/pkg/circuit
// [netlist]: https://pkg.go.dev/github.com/matzehuels/critpath/pkg/netlist
// [analysis]: https://pkg.go.dev/github.com/matzehuels/critpath/pkg/analysis
// [graph]: https://pkg.go.dev/github.com/matzehuels/critpath/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/critpath/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/critpath/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/critpath/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/critpath/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/critpath/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/critpath/pkg/errors
package pkg
