// Package cli implements the critpath command-line interface.
//
// This package provides commands for parsing circuit netlists, computing
// critical paths, rendering circuit diagrams, serving the HTTP API, and
// managing the artifact cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - analyze: Parse a netlist and report its critical path
//   - parse: Convert a netlist into graph JSON
//   - render: Generate SVG, PNG, or DOT circuit diagrams
//   - serve: Run the HTTP API
//   - cache: Manage the rendered artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/critpath/pkg/buildinfo"
	"github.com/matzehuels/critpath/pkg/cache"
	"github.com/matzehuels/critpath/pkg/circuit"
	"github.com/matzehuels/critpath/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "critpath"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "critpath",
		Short:        "Critpath finds the slowest signal path through a circuit",
		Long:         `Critpath parses digital circuit netlists, builds the signal dependency graph, and computes the critical path: the longest-delay route from an input to an output, which bounds the circuit's clock speed.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/critpath/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadDelays resolves the --delays flag into a delay table.
// An empty path means built-in defaults.
func loadDelays(path string) (*circuit.DelayTable, error) {
	if path == "" {
		return nil, nil
	}
	table, err := circuit.LoadDelays(path)
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// delayTableOrDefault resolves an optional override to a concrete table.
func delayTableOrDefault(t *circuit.DelayTable) circuit.DelayTable {
	if t != nil {
		return *t
	}
	return circuit.DefaultDelays()
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// circuitName derives a display name from the --name flag or the input path.
func circuitName(flag, input string) string {
	if flag != "" {
		return flag
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
