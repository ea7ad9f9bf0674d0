// Package graph provides serialization types for circuits and their
// analysis results.
//
// This package defines the wire format used for JSON files, API
// responses, and archive storage. It sits at the boundary between the
// internal representation (pkg/circuit, pkg/analysis) and external
// consumers such as renderers and the HTTP API.
//
// Documents use a node-link JSON format:
//
//	{
//	  "nodes": [{"id": "A", "type": "INPUT", "delay": 0}],
//	  "edges": [{"from": "A", "to": "C"}],
//	  "analysis": {"critical_path": ["A", "C"], "total_delay": 1.0, ...}
//	}
//
// Common operations:
//
//	doc := graph.FromCircuit(c, result)       // Circuit → Document
//	graph.WriteFile(doc, "circuit.json")      // Document → file
//	doc, _ := graph.ReadFile("circuit.json")  // file → Document
//	c, _ := graph.ToCircuit(doc)              // Document → Circuit
//
// The struct tags carry both json and bson so the same types serve the
// file format and the Mongo-backed archive (pkg/store).
package graph
