package netlist

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/critpath/pkg/circuit"
	"github.com/matzehuels/critpath/pkg/errors"
)

// Parse reads a netlist from r and returns a validated circuit.
//
// The grammar is one statement per line:
//
//	TYPE ID [INPUT_ID ...]
//
// Tokens are whitespace-separated. Blank lines and lines whose first
// non-whitespace character is '#' are skipped. Input references may
// point forward - resolution runs after the whole text is read.
//
// Parse never returns a partial circuit: the first structural error
// (malformed line, duplicate ID, undefined reference, unknown component
// type, dependency cycle) aborts with a coded error carrying the
// offending line or identifier. The caller owns all file I/O; Parse
// takes text, not a path.
func Parse(r io.Reader, delays circuit.DelayTable) (*circuit.Circuit, error) {
	var nodes []circuit.Node
	seen := make(map[string]int) // id -> line of first definition

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) < 2 {
			return nil, errors.New(errors.ErrCodeMalformedLine,
				"line %d: expected TYPE ID [INPUT ...], got %q", lineNo, line)
		}

		nodeType, id := tokens[0], tokens[1]
		if first, dup := seen[id]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateNode,
				"node %q defined twice (lines %d and %d)", id, first, lineNo)
		}
		seen[id] = lineNo

		nodes = append(nodes, circuit.Node{
			ID:     id,
			Type:   nodeType,
			Inputs: tokens[2:],
			Line:   lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read netlist")
	}

	return circuit.New(nodes, delays)
}

// ParseString parses a netlist held in memory.
func ParseString(text string, delays circuit.DelayTable) (*circuit.Circuit, error) {
	return Parse(strings.NewReader(text), delays)
}
