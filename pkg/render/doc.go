// Package render draws circuits as directed-graph diagrams.
//
// # Overview
//
// This package produces left-to-right Graphviz diagrams of a circuit's
// dependency structure: ellipses for INPUT/OUTPUT components, boxes for
// everything else, with an optional critical path highlighted in red.
//
// # Usage
//
// Convert a circuit to DOT format, then render:
//
//	dot := render.ToDOT(c, render.Options{Highlight: result.Path})
//	svg, err := render.RenderSVG(ctx, dot)
//	png, err := render.RenderPNG(ctx, dot)
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG output; no external graphviz installation is required.
package render
