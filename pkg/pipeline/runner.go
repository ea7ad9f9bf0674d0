package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/critpath/pkg/analysis"
	"github.com/matzehuels/critpath/pkg/cache"
	"github.com/matzehuels/critpath/pkg/circuit"
	"github.com/matzehuels/critpath/pkg/graph"
	"github.com/matzehuels/critpath/pkg/netlist"
	"github.com/matzehuels/critpath/pkg/observability"
	"github.com/matzehuels/critpath/pkg/render"
)

// artifactTTL bounds how long rendered artifacts stay cached.
const artifactTTL = 7 * 24 * time.Hour

// Result is the outcome of a full pipeline execution.
type Result struct {
	Circuit   *circuit.Circuit
	Analysis  *analysis.Result
	Artifacts map[string][]byte
	CacheHits map[string]bool
}

// Runner executes pipeline stages with shared caching and logging.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables artifact
// caching; a nil logger falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, logger: logger}
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// Execute runs the complete parse → analyze → render pipeline.
func (r *Runner) Execute(ctx context.Context, netlistText string, opts Options) (*Result, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	c, err := r.Parse(ctx, netlistText, opts)
	if err != nil {
		return nil, err
	}

	res, err := r.Analyze(ctx, c, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Circuit: c, Analysis: res}
	if len(opts.Formats) > 0 {
		result.Artifacts, result.CacheHits, err = r.Render(ctx, netlistText, c, res, opts)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Parse turns netlist text into a validated circuit.
func (r *Runner) Parse(ctx context.Context, netlistText string, opts Options) (*circuit.Circuit, error) {
	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, opts.Name)

	c, err := netlist.ParseString(netlistText, opts.delayTable())

	nodeCount := 0
	if c != nil {
		nodeCount = c.NodeCount()
	}
	observability.Pipeline().OnParseComplete(ctx, opts.Name, nodeCount, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.logger.Debugf("parsed %d nodes, %d edges (%s)", c.NodeCount(), c.EdgeCount(), time.Since(start).Round(time.Millisecond))
	return c, nil
}

// Analyze computes the circuit's critical path.
func (r *Runner) Analyze(ctx context.Context, c *circuit.Circuit, opts Options) (*analysis.Result, error) {
	start := time.Now()
	observability.Pipeline().OnAnalyzeStart(ctx, opts.Name, c.NodeCount())

	res, err := analysis.CriticalPath(c)

	total := 0.0
	if res != nil {
		total = res.TotalDelay
	}
	observability.Pipeline().OnAnalyzeComplete(ctx, opts.Name, total, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.logger.Debugf("critical path through %d components, total delay %.2f", len(res.Path), res.TotalDelay)
	return res, nil
}

// Render produces the requested artifacts, consulting the cache per
// format. The returned hit map records which formats were served from
// cache; DOT and JSON are cheap enough to always regenerate.
func (r *Runner) Render(ctx context.Context, netlistText string, c *circuit.Circuit, res *analysis.Result, opts Options) (map[string][]byte, map[string]bool, error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts := make(map[string][]byte, len(opts.Formats))
	hits := make(map[string]bool, len(opts.Formats))

	var highlight []string
	if opts.Highlight {
		highlight = res.Path
	}
	dot := render.ToDOT(c, render.Options{Highlight: highlight, Detailed: opts.Detailed})

	var renderErr error
	for _, format := range opts.Formats {
		data, hit, err := r.renderFormat(ctx, netlistText, format, dot, c, res, opts)
		if err != nil {
			renderErr = err
			break
		}
		artifacts[format] = data
		hits[format] = hit
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), renderErr)
	if renderErr != nil {
		return nil, nil, renderErr
	}

	r.logger.Debugf("rendered %d artifact(s) (%s)", len(artifacts), time.Since(start).Round(time.Millisecond))
	return artifacts, hits, nil
}

func (r *Runner) renderFormat(ctx context.Context, netlistText, format, dot string, c *circuit.Circuit, res *analysis.Result, opts Options) ([]byte, bool, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), false, nil
	case FormatJSON:
		data, err := graph.Marshal(graph.FromCircuit(c, res))
		return data, false, err
	}

	// The effective delay table is part of the key: a different table can
	// shift the highlighted path and the detailed labels, so it must never
	// reuse another table's bytes.
	key := cache.Key(format, netlistText, opts.Name, opts.Highlight, opts.Detailed, opts.delayTable())
	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, format)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, format)

	var data []byte
	var err error
	switch format {
	case FormatSVG:
		data, err = render.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = render.RenderPNG(ctx, dot)
	}
	if err != nil {
		return nil, false, err
	}

	if err := r.cache.Set(ctx, key, data, artifactTTL); err != nil {
		r.logger.Warnf("cache write failed: %v", err)
	} else {
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}
	return data, false, nil
}
