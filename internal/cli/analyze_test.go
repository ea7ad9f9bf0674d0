package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/critpath/pkg/graph"
)

const sampleNetlist = `# reference circuit
INPUT A
INPUT B
ADD C A B
REG D C
OUTPUT E D
`

func writeNetlist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circuit1.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write netlist: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestAnalyzeCommandWritesGraphJSON(t *testing.T) {
	input := writeNetlist(t, sampleNetlist)
	output := filepath.Join(t.TempDir(), "circuit1.json")

	if err := runCommand(t, "analyze", input, "-o", output, "--no-cache"); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	doc, err := graph.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if doc.Name != "circuit1" {
		t.Errorf("name = %q, want circuit1", doc.Name)
	}
	if len(doc.Nodes) != 5 {
		t.Errorf("nodes = %d, want 5", len(doc.Nodes))
	}
	if doc.Analysis == nil {
		t.Fatal("analysis missing from exported graph")
	}
	if got := strings.Join(doc.Analysis.Path, " -> "); got != "A -> C -> D -> E" {
		t.Errorf("path = %s, want A -> C -> D -> E", got)
	}
	if doc.Analysis.TotalDelay != 1.7 {
		t.Errorf("total delay = %v, want 1.7", doc.Analysis.TotalDelay)
	}
}

func TestAnalyzeCommandRejectsMalformedNetlist(t *testing.T) {
	input := writeNetlist(t, "ADD\n")

	err := runCommand(t, "analyze", input, "--no-cache")
	if err == nil {
		t.Fatal("analyze accepted a malformed netlist")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("error should name the offending line: %v", err)
	}
}

func TestAnalyzeCommandMissingFile(t *testing.T) {
	if err := runCommand(t, "analyze", "no-such-circuit.txt"); err == nil {
		t.Fatal("analyze accepted a missing file")
	}
}

func TestAnalyzeCommandCustomDelays(t *testing.T) {
	input := writeNetlist(t, "INPUT A\nADD B A\nOUTPUT C B\n")
	delays := filepath.Join(t.TempDir(), "delays.toml")
	if err := os.WriteFile(delays, []byte("[delays]\nINPUT = 0.0\nADD = 4.0\nOUTPUT = 1.0\n"), 0644); err != nil {
		t.Fatalf("write delays: %v", err)
	}
	output := filepath.Join(t.TempDir(), "out.json")

	if err := runCommand(t, "analyze", input, "--delays", delays, "-o", output, "--no-cache"); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	doc, err := graph.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if doc.Analysis.TotalDelay != 5.0 {
		t.Errorf("total delay = %v, want 5.0", doc.Analysis.TotalDelay)
	}
}

func TestParseCommandWritesGraphJSON(t *testing.T) {
	input := writeNetlist(t, sampleNetlist)
	output := filepath.Join(t.TempDir(), "parsed.json")

	if err := runCommand(t, "parse", input, "-o", output); err != nil {
		t.Fatalf("parse: %v", err)
	}

	doc, err := graph.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(doc.Nodes) != 5 || len(doc.Edges) != 4 {
		t.Errorf("graph = %d nodes, %d edges; want 5, 4", len(doc.Nodes), len(doc.Edges))
	}
	if doc.Analysis != nil {
		t.Error("parse should not run analysis")
	}
}

func TestRenderCommandWritesDOT(t *testing.T) {
	input := writeNetlist(t, sampleNetlist)
	output := filepath.Join(t.TempDir(), "circuit1.dot")

	if err := runCommand(t, "render", input, "-f", "dot", "-o", output, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	dot := string(data)
	if !strings.Contains(dot, "digraph circuit") {
		t.Errorf("output is not DOT: %s", dot)
	}
	if !strings.Contains(dot, "color=red") {
		t.Error("critical path not highlighted by default")
	}
}

func TestRenderCommandFromJSON(t *testing.T) {
	input := writeNetlist(t, sampleNetlist)
	exported := filepath.Join(t.TempDir(), "circuit1.json")
	if err := runCommand(t, "parse", input, "-o", exported); err != nil {
		t.Fatalf("parse: %v", err)
	}

	output := filepath.Join(t.TempDir(), "circuit1.dot")
	if err := runCommand(t, "render", exported, "--from-json", "-f", "dot", "-o", output, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	dot := string(data)
	if !strings.Contains(dot, "digraph circuit") {
		t.Errorf("output is not DOT: %s", dot)
	}
	// The exported graph has no stored analysis, so the critical path is
	// recomputed from the embedded delays before highlighting.
	if !strings.Contains(dot, "color=red") {
		t.Error("critical path not highlighted when rendering from JSON")
	}
}

func TestRenderCommandFromJSONRejectsDelays(t *testing.T) {
	input := writeNetlist(t, sampleNetlist)
	exported := filepath.Join(t.TempDir(), "circuit1.json")
	if err := runCommand(t, "parse", input, "-o", exported); err != nil {
		t.Fatalf("parse: %v", err)
	}

	delays := filepath.Join(t.TempDir(), "delays.toml")
	if err := os.WriteFile(delays, []byte("[delays]\nADD = 4.0\n"), 0644); err != nil {
		t.Fatalf("write delays: %v", err)
	}

	err := runCommand(t, "render", exported, "--from-json", "-f", "dot", "--delays", delays, "--no-cache")
	if err == nil {
		t.Fatal("render accepted --delays together with --from-json")
	}
}

func TestRenderCommandRejectsInvalidFormat(t *testing.T) {
	input := writeNetlist(t, sampleNetlist)

	if err := runCommand(t, "render", input, "-f", "pdf"); err == nil {
		t.Fatal("render accepted an unsupported format")
	}
}
