package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/critpath/pkg/analysis"
	"github.com/matzehuels/critpath/pkg/circuit"
	"github.com/matzehuels/critpath/pkg/graph"
	"github.com/matzehuels/critpath/pkg/pipeline"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	delays  string // path to a TOML delay table (built-in defaults if empty)
	output  string // write graph JSON here instead of printing a report
	name    string // circuit name (defaults to the input file name)
	noCache bool   // disable artifact caching
	asJSON  bool   // print graph JSON to stdout instead of the report
}

// analyzeCommand creates the analyze command, the primary entry point:
// parse a netlist, compute its critical path, and report it.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze [netlist]",
		Short: "Compute the critical path of a circuit netlist",
		Long: `Compute the critical path of a circuit netlist.

The netlist is parsed into a dependency graph, validated (duplicates,
dangling references, cycles), and analyzed: the critical path is the
longest-delay route from any input to any output.

Examples:
  critpath analyze circuit1.txt
  critpath analyze circuit1.txt --delays delays.toml
  critpath analyze circuit1.txt --json > circuit1.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.delays, "delays", "", "TOML delay table (built-in defaults if empty)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write graph JSON to file")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "circuit name (defaults to the input file name)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print graph JSON instead of the report")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, input string, opts analyzeOpts) error {
	logger := loggerFromContext(ctx)

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
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, text, pipeline.Options{Name: name, Delays: delays})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d components with %d connections",
		result.Circuit.NodeCount(), result.Circuit.EdgeCount()))

	if opts.asJSON || opts.output != "" {
		doc := graph.FromCircuit(result.Circuit, result.Analysis)
		doc.Name = name

		out, err := openOutput(opts.output)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := graph.Write(doc, out); err != nil {
			return err
		}
		if opts.output != "" {
			printSuccess("Analyzed %s", name)
			printFile(opts.output)
		}
		return nil
	}

	printReport(name, result.Circuit, result.Analysis)
	return nil
}

// printReport prints the critical path report for a circuit.
func printReport(name string, c *circuit.Circuit, res *analysis.Result) {
	printNewline()
	fmt.Println(StyleTitle.Render(name))
	printKeyValue("Critical Path", strings.Join(res.Path, " -> "))
	printKeyValue("Total Delay", fmt.Sprintf("%.2f time units", res.TotalDelay))
	printNewline()

	for _, comp := range res.Components {
		componentType := ""
		if n, ok := c.Node(comp.ID); ok {
			componentType = n.Type
		}
		printDetail("%-12s %-8s %6.2f", comp.ID, componentType, comp.Delay)
	}
	printNewline()
	printStats(c.NodeCount(), c.EdgeCount(), false)
}
