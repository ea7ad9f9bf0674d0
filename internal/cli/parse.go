package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/critpath/pkg/graph"
	"github.com/matzehuels/critpath/pkg/netlist"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	delays string // path to a TOML delay table
	output string // output file path (stdout if empty)
	name   string // circuit name override
}

// parseCommand creates the parse command: netlist text in, graph JSON out.
// No analysis runs; this is the structural half of the pipeline, useful for
// feeding other tools or inspecting what the parser saw.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse [netlist]",
		Short: "Parse a netlist into graph JSON",
		Long: `Parse a netlist into graph JSON.

The netlist is parsed and validated (duplicates, dangling references,
cycles) but not analyzed. The resulting graph JSON can be inspected or
fed back to 'render --from-json' without re-reading the netlist.

Examples:
  critpath parse circuit1.txt                  # JSON to stdout
  critpath parse circuit1.txt -o circuit1.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.delays, "delays", "", "TOML delay table (built-in defaults if empty)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "circuit name (defaults to the input file name)")

	return cmd
}

func (c *CLI) runParse(ctx context.Context, input string, opts parseOpts) error {
	logger := loggerFromContext(ctx)

	text, err := readNetlist(input)
	if err != nil {
		return err
	}
	delays, err := loadDelays(opts.delays)
	if err != nil {
		return err
	}
	table := delayTableOrDefault(delays)

	prog := newProgress(logger)
	circ, err := netlist.ParseString(text, table)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d components with %d connections", circ.NodeCount(), circ.EdgeCount()))

	doc := graph.FromCircuit(circ, nil)
	doc.Name = circuitName(opts.name, input)

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := graph.Write(doc, out); err != nil {
		return err
	}
	if opts.output != "" {
		logger.Infof("Wrote graph to %s", opts.output)
	}
	return nil
}
