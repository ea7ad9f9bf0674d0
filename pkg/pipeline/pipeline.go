// Package pipeline provides the core analysis pipeline for critpath.
//
// This package implements the complete parse → analyze → render flow
// shared by the CLI and the HTTP API. Centralizing it keeps behavior
// consistent across entry points and gives both the same caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: netlist text → validated circuit
//  2. Analyze: topological order + critical path
//  3. Render: artifacts in the requested formats (SVG, PNG, DOT, JSON)
//
// Each stage can run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	defer runner.Close()
//	result, err := runner.Execute(ctx, netlistText, pipeline.Options{
//	    Name:    "circuit1",
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"github.com/matzehuels/critpath/pkg/circuit"
	"github.com/matzehuels/critpath/pkg/errors"
)

// Output format constants.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Options contains all configuration for the analysis pipeline.
type Options struct {
	// Name labels the circuit in reports and artifacts.
	Name string

	// Delays overrides the delay table. Zero value means DefaultDelays.
	Delays *circuit.DelayTable

	// Formats selects the artifacts Execute produces. Empty skips the
	// render stage entirely.
	Formats []string

	// Highlight draws the critical path in red on rendered diagrams.
	Highlight bool

	// Detailed appends per-type delays to diagram labels.
	Detailed bool
}

// delayTable resolves the effective delay table.
func (o Options) delayTable() circuit.DelayTable {
	if o.Delays != nil {
		return *o.Delays
	}
	return circuit.DefaultDelays()
}

// ValidateFormats checks that all requested formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %s (must be 'svg', 'png', 'dot', or 'json')", f)
		}
	}
	return nil
}
