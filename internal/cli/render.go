package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/critpath/pkg/analysis"
	"github.com/matzehuels/critpath/pkg/errors"
	"github.com/matzehuels/critpath/pkg/graph"
	"github.com/matzehuels/critpath/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file (single format) or base path (multiple)
	formats   string // comma-separated output formats
	delays    string // path to a TOML delay table
	name      string // circuit name override
	highlight bool   // draw the critical path in red
	detailed  bool   // include per-type delays in node labels
	noCache   bool   // disable artifact caching
	fromJSON  bool   // input is graph JSON instead of a netlist
}

// renderCommand creates the render command for generating circuit diagrams.
//
// Default settings:
//   - format: svg
//   - highlight: true (critical path drawn in red)
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{highlight: true}

	cmd := &cobra.Command{
		Use:   "render [netlist]",
		Short: "Render a circuit diagram",
		Long: `Render a circuit diagram.

The netlist is parsed, analyzed, and drawn as a left-to-right dataflow
diagram. The critical path is highlighted in red unless --highlight=false.
SVG and PNG results are cached locally for faster subsequent runs.

With --from-json the input is graph JSON produced by 'critpath parse'
(or 'analyze --json') instead of a netlist; delays come from the graph
itself, so --delays does not apply.

Examples:
  critpath render circuit1.txt                       # circuit1.svg
  critpath render circuit1.txt -f png -o out.png
  critpath render circuit1.txt -f svg,dot --detailed
  critpath render circuit1.json --from-json -f dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.delays, "delays", "", "TOML delay table (built-in defaults if empty)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "circuit name (defaults to the input file name)")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", opts.highlight, "highlight the critical path")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include per-type delays in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.fromJSON, "from-json", false, "treat the input as graph JSON instead of a netlist")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	if opts.fromJSON {
		return c.runRenderFromJSON(ctx, input, formats, opts)
	}

	text, err := readNetlist(input)
	if err != nil {
		return err
	}
	delays, err := loadDelays(opts.delays)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	name := circuitName(opts.name, input)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", name))
	spinner.Start()

	result, err := runner.Execute(ctx, text, pipeline.Options{
		Name:      name,
		Delays:    delays,
		Formats:   formats,
		Highlight: opts.highlight,
		Detailed:  opts.detailed,
	})
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s", name)
	return writeArtifacts(result, formats, input, opts.output)
}

// runRenderFromJSON renders from a previously exported graph document,
// skipping the parse stage. Delays travel inside the document, and the
// stored analysis is reused when present.
func (c *CLI) runRenderFromJSON(ctx context.Context, input string, formats []string, opts renderOpts) error {
	if opts.delays != "" {
		return errors.New(errors.ErrCodeInvalidInput,
			"--delays has no effect with --from-json: the graph JSON carries its own delays")
	}

	raw, err := os.ReadFile(input)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", input)
	}
	if err != nil {
		return err
	}
	doc, err := graph.Read(bytes.NewReader(raw))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode graph %s", input)
	}
	circ, err := graph.ToCircuit(doc)
	if err != nil {
		return err
	}
	res := doc.Analysis
	if res == nil {
		if res, err = analysis.CriticalPath(circ); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	name := opts.name
	if name == "" {
		name = doc.Name
	}
	name = circuitName(name, input)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", name))
	spinner.Start()

	artifacts, hits, err := runner.Render(ctx, string(raw), circ, res, pipeline.Options{
		Name:      name,
		Formats:   formats,
		Highlight: opts.highlight,
		Detailed:  opts.detailed,
	})
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s", name)
	result := &pipeline.Result{Circuit: circ, Analysis: res, Artifacts: artifacts, CacheHits: hits}
	return writeArtifacts(result, formats, input, opts.output)
}
