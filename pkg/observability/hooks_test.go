package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	parses   int
	analyzes int
	renders  int
}

func (h *recordingPipelineHooks) OnParseStart(context.Context, string)        { h.parses++ }
func (h *recordingPipelineHooks) OnAnalyzeStart(context.Context, string, int) { h.analyzes++ }
func (h *recordingPipelineHooks) OnRenderStart(context.Context, []string)     { h.renders++ }

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestHookRegistration(t *testing.T) {
	defer Reset()
	ctx := context.Background()

	ph := &recordingPipelineHooks{}
	ch := &recordingCacheHooks{}
	SetPipelineHooks(ph)
	SetCacheHooks(ch)

	Pipeline().OnParseStart(ctx, "circuit1")
	Pipeline().OnAnalyzeStart(ctx, "circuit1", 5)
	Pipeline().OnRenderStart(ctx, []string{"svg"})
	Cache().OnCacheHit(ctx, "svg")
	Cache().OnCacheMiss(ctx, "png")

	if ph.parses != 1 || ph.analyzes != 1 || ph.renders != 1 {
		t.Errorf("pipeline hooks = %d/%d/%d, want 1/1/1", ph.parses, ph.analyzes, ph.renders)
	}
	if ch.hits != 1 || ch.misses != 1 {
		t.Errorf("cache hooks = %d hits, %d misses; want 1, 1", ch.hits, ch.misses)
	}
}

func TestReset(t *testing.T) {
	ph := &recordingPipelineHooks{}
	SetPipelineHooks(ph)
	Reset()

	Pipeline().OnParseStart(context.Background(), "x")
	if ph.parses != 0 {
		t.Error("Reset did not restore no-op hooks")
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	defer Reset()

	ph := &recordingPipelineHooks{}
	SetPipelineHooks(ph)
	SetPipelineHooks(nil)

	Pipeline().OnParseStart(context.Background(), "x")
	if ph.parses != 1 {
		t.Error("SetPipelineHooks(nil) replaced the registered hooks")
	}
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	defer Reset()
	ctx := context.Background()

	Pipeline().OnParseComplete(ctx, "c", 3, time.Millisecond, nil)
	Pipeline().OnAnalyzeComplete(ctx, "c", 1.7, time.Millisecond, nil)
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	Cache().OnCacheSet(ctx, "svg", 1024)
}
