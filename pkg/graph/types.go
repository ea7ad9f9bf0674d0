package graph

import (
	"github.com/matzehuels/critpath/pkg/analysis"
	"github.com/matzehuels/critpath/pkg/circuit"
)

// Document is the canonical serialization format for analyzed circuits.
// Used for JSON files, API responses, and archive storage.
//
// Node and edge order is declaration order, so export is deterministic:
// the same netlist always serializes to the same bytes.
type Document struct {
	Name     string            `json:"name,omitempty" bson:"name,omitempty"`
	Nodes    []Node            `json:"nodes" bson:"nodes"`
	Edges    []Edge            `json:"edges" bson:"edges"`
	Analysis *analysis.Result  `json:"analysis,omitempty" bson:"analysis,omitempty"`
}

// Node is the serialized form of a circuit component.
type Node struct {
	ID     string   `json:"id" bson:"id"`
	Type   string   `json:"type" bson:"type"`
	Inputs []string `json:"inputs,omitempty" bson:"inputs,omitempty"`
	Delay  float64  `json:"delay" bson:"delay"`
}

// Edge represents a directed dependency: From feeds To.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// FromCircuit converts a circuit (and an optional analysis result) to
// its serialization format.
func FromCircuit(c *circuit.Circuit, result *analysis.Result) Document {
	doc := Document{
		Nodes:    make([]Node, 0, c.NodeCount()),
		Edges:    make([]Edge, 0, c.EdgeCount()),
		Analysis: result,
	}

	for _, n := range c.Nodes() {
		doc.Nodes = append(doc.Nodes, Node{
			ID:     n.ID,
			Type:   n.Type,
			Inputs: n.Inputs,
			Delay:  c.DelayOf(n),
		})
		for _, in := range n.Inputs {
			doc.Edges = append(doc.Edges, Edge{From: in, To: n.ID})
		}
	}

	return doc
}

// ToCircuit rebuilds a validated circuit from a document.
// The document's per-node delays are reconstructed into a delay table;
// structural violations surface as the usual construction errors.
func ToCircuit(doc Document) (*circuit.Circuit, error) {
	nodes := make([]circuit.Node, len(doc.Nodes))
	entries := make(map[string]float64, len(doc.Nodes))
	for i, n := range doc.Nodes {
		nodes[i] = circuit.Node{ID: n.ID, Type: n.Type, Inputs: n.Inputs}
		entries[n.Type] = n.Delay
	}
	return circuit.New(nodes, circuit.DelayTable{Entries: entries})
}
