package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/critpath/pkg/circuit"
)

// Options configures circuit diagram generation.
type Options struct {
	// Highlight is the critical-path node sequence to draw in red.
	// Nil or empty leaves the diagram unhighlighted.
	Highlight []string

	// Detailed appends the per-type delay to each node label.
	Detailed bool
}

// ToDOT converts a circuit to Graphviz DOT format.
//
// The layout flows left to right with INPUT and OUTPUT components drawn
// as ellipses and everything else as boxes. Nodes and edges on the
// highlight path are colored red, matching the classic critical-path
// diagram convention. The resulting DOT can be rendered with
// [RenderSVG] or [RenderPNG], or processed with external Graphviz tools.
func ToDOT(c *circuit.Circuit, opts Options) string {
	onPath := make(map[string]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		onPath[id] = true
	}
	pathEdges := make(map[[2]string]bool, len(opts.Highlight))
	for i := 0; i+1 < len(opts.Highlight); i++ {
		pathEdges[[2]string{opts.Highlight[i], opts.Highlight[i+1]}] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph circuit {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range c.Nodes() {
		// %q turns the newline into the \n escape Graphviz expects.
		label := fmt.Sprintf("%s\n%s", n.ID, n.Type)
		if opts.Detailed {
			label = fmt.Sprintf("%s\n%s (%.2f)", n.ID, n.Type, c.DelayOf(n))
		}
		attrs := fmt.Sprintf("label=%q, shape=%s", label, nodeShape(n))
		if onPath[n.ID] {
			attrs += ", color=red, fontcolor=red"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, attrs)
	}

	buf.WriteString("\n")
	for _, n := range c.Nodes() {
		for _, in := range n.Inputs {
			if pathEdges[[2]string{in, n.ID}] {
				fmt.Fprintf(&buf, "  %q -> %q [color=red, penwidth=2];\n", in, n.ID)
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", in, n.ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeShape(n *circuit.Node) string {
	if n.Type == circuit.TypeInput || n.Type == circuit.TypeOutput {
		return "ellipse"
	}
	return "box"
}
