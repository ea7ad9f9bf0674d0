// Package netlist parses textual circuit descriptions into validated
// circuit graphs.
//
// The format is line-oriented plain text, one component per line:
//
//	# full adder stage
//	INPUT  A
//	INPUT  B
//	ADD    C  A B
//	MUL    D  C A
//	OUTPUT E  D
//
// The first token is the component type, the second its unique ID, and
// any remaining tokens name the components it reads from. Declaration
// order is preserved end to end - it is the deterministic tie-break for
// topological ordering and critical-path reconstruction downstream.
//
// Parsing is strict and two-phase: lines are tokenized first, then all
// input references are resolved against the complete node set, so a
// node may reference one defined later in the file. Any violation
// aborts with a typed error from pkg/errors; there is no best-effort
// partial result.
package netlist
