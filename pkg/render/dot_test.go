package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/critpath/pkg/circuit"
	"github.com/matzehuels/critpath/pkg/netlist"
)

func sample(t *testing.T) *circuit.Circuit {
	t.Helper()
	c, err := netlist.ParseString("INPUT A\nINPUT B\nADD C A B\nOUTPUT E C\n", circuit.DefaultDelays())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return c
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(t), Options{})

	for _, want := range []string{
		"digraph circuit {",
		"rankdir=LR;",
		`"A" [label="A\nINPUT", shape=ellipse];`,
		`"C" [label="C\nADD", shape=box];`,
		`"E" [label="E\nOUTPUT", shape=ellipse];`,
		`"A" -> "C";`,
		`"B" -> "C";`,
		`"C" -> "E";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTHighlight(t *testing.T) {
	dot := ToDOT(sample(t), Options{Highlight: []string{"A", "C", "E"}})

	for _, want := range []string{
		`"A" [label="A\nINPUT", shape=ellipse, color=red, fontcolor=red];`,
		`"A" -> "C" [color=red, penwidth=2];`,
		`"C" -> "E" [color=red, penwidth=2];`,
		// B is off the path and stays plain.
		`"B" [label="B\nINPUT", shape=ellipse];`,
		`"B" -> "C";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sample(t), Options{Detailed: true})

	if !strings.Contains(dot, `label="C\nADD (1.00)"`) {
		t.Errorf("detailed label missing delay:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	first := ToDOT(sample(t), Options{Highlight: []string{"A", "C", "E"}})
	for i := 0; i < 5; i++ {
		if got := ToDOT(sample(t), Options{Highlight: []string{"A", "C", "E"}}); got != first {
			t.Fatal("DOT output is not deterministic")
		}
	}
}
