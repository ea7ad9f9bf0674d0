package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/critpath/pkg/cache"
	"github.com/matzehuels/critpath/pkg/circuit"
	"github.com/matzehuels/critpath/pkg/errors"
)

const sampleNetlist = "INPUT A\nINPUT B\nADD C A B\nMUL D C A\nOUTPUT E D\n"

func specDelays() *circuit.DelayTable {
	return &circuit.DelayTable{Entries: map[string]float64{
		"INPUT":  0.0,
		"OUTPUT": 0.5,
		"ADD":    1.0,
		"MUL":    0.2,
	}}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), sampleNetlist, Options{
		Name:      "sample",
		Delays:    specDelays(),
		Formats:   []string{FormatDOT, FormatJSON},
		Highlight: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Circuit.NodeCount() != 5 {
		t.Errorf("nodes = %d, want 5", result.Circuit.NodeCount())
	}
	if got := strings.Join(result.Analysis.Path, " -> "); got != "A -> C -> D -> E" {
		t.Errorf("path = %s, want A -> C -> D -> E", got)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, "digraph circuit") {
		t.Error("DOT artifact missing")
	}
	if !strings.Contains(dot, "color=red") {
		t.Error("highlight not applied to DOT artifact")
	}

	jsonData := string(result.Artifacts[FormatJSON])
	if !strings.Contains(jsonData, `"critical_path"`) {
		t.Error("JSON artifact missing analysis block")
	}
}

func TestExecuteNoFormats(t *testing.T) {
	runner := NewRunner(nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), sampleNetlist, Options{Name: "sample"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Artifacts != nil {
		t.Error("render stage ran with no formats requested")
	}
	if result.Analysis == nil {
		t.Error("analysis missing")
	}
}

func TestExecutePropagatesParseErrors(t *testing.T) {
	runner := NewRunner(nil, nil)
	defer runner.Close()

	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
	}{
		{name: "Malformed", input: "ADD\n", wantCode: errors.ErrCodeMalformedLine},
		{name: "Cycle", input: "ADD A B\nADD B A\n", wantCode: errors.ErrCodeGraphCycle},
		{name: "Empty", input: "", wantCode: errors.ErrCodeNoPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Execute(context.Background(), tt.input, Options{})
			if err == nil {
				t.Fatalf("Execute succeeded, want %s", tt.wantCode)
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

// memoryCache is a minimal in-process cache for exercising key behavior.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) Close() error { return nil }

func TestRenderCacheKeyedByDelayTable(t *testing.T) {
	mc := newMemoryCache()
	runner := NewRunner(mc, nil)
	defer runner.Close()

	// Which branch of the diamond is critical depends entirely on the
	// delay table, so reusing the first table's artifact would draw the
	// wrong path in red.
	input := "INPUT A\nADD B A\nMUL C A\nOUTPUT D B C\n"
	addHeavy := &circuit.DelayTable{Entries: map[string]float64{
		"INPUT": 0.0, "OUTPUT": 0.5, "ADD": 2.0, "MUL": 1.0,
	}}
	mulHeavy := &circuit.DelayTable{Entries: map[string]float64{
		"INPUT": 0.0, "OUTPUT": 0.5, "ADD": 1.0, "MUL": 2.0,
	}}

	first, err := runner.Execute(context.Background(), input, Options{
		Delays: addHeavy, Formats: []string{FormatSVG}, Highlight: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheHits[FormatSVG] {
		t.Fatal("first render reported a cache hit on an empty cache")
	}

	second, err := runner.Execute(context.Background(), input, Options{
		Delays: mulHeavy, Formats: []string{FormatSVG}, Highlight: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if second.CacheHits[FormatSVG] {
		t.Fatal("render with a different delay table served the previous table's artifact")
	}
	if len(mc.entries) != 2 {
		t.Errorf("cache entries = %d, want 2 distinct keys", len(mc.entries))
	}

	third, err := runner.Execute(context.Background(), input, Options{
		Delays: addHeavy, Formats: []string{FormatSVG}, Highlight: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !third.CacheHits[FormatSVG] {
		t.Error("repeat render with identical options missed the cache")
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{FormatSVG, FormatPNG, FormatDOT, FormatJSON}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	err := ValidateFormats([]string{"pdf"})
	if err == nil {
		t.Fatal("invalid format accepted")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeInvalidFormat {
		t.Errorf("error code = %s, want INVALID_FORMAT", got)
	}
}

func TestExecuteRejectsInvalidFormat(t *testing.T) {
	runner := NewRunner(nil, nil)
	defer runner.Close()

	if _, err := runner.Execute(context.Background(), sampleNetlist, Options{Formats: []string{"gif"}}); err == nil {
		t.Fatal("Execute accepted an invalid format")
	}
}
