package analysis

import (
	"github.com/matzehuels/critpath/pkg/circuit"
	"github.com/matzehuels/critpath/pkg/errors"
)

// ComponentDelay pairs a node on the critical path with the propagation
// delay of its component type.
type ComponentDelay struct {
	ID    string  `json:"id" bson:"id"`
	Delay float64 `json:"delay" bson:"delay"`
}

// Result is the outcome of a critical-path computation.
//
// TotalDelay carries full float64 precision; callers round at
// presentation time only. It always equals the sum of the Components
// delays exactly, since it is accumulated from the same values.
type Result struct {
	Path       []string         `json:"critical_path" bson:"critical_path"`
	TotalDelay float64          `json:"total_delay" bson:"total_delay"`
	Components []ComponentDelay `json:"components" bson:"components"`
}

// CriticalPath computes the maximal cumulative-delay path from any
// source to any designated sink.
//
// It is a single longest-path relaxation over the topological order:
// each node's arrival time is its own delay plus the largest arrival
// among its declared inputs. Ties break toward the first-declared input
// (and, for the terminal node, the first-declared sink), keeping the
// result byte-for-byte reproducible.
//
// An empty circuit, or one without designated sinks, fails with
// ErrCodeNoPath rather than returning a misleading empty result.
func CriticalPath(c *circuit.Circuit) (*Result, error) {
	if c.NodeCount() == 0 {
		return nil, errors.New(errors.ErrCodeNoPath, "circuit has no nodes")
	}

	order, err := topoIndexes(c)
	if err != nil {
		return nil, err
	}

	arrival := make([]float64, c.NodeCount())
	pred := make([]int, c.NodeCount())

	for _, i := range order {
		best := -1
		maxIn := 0.0
		for _, j := range c.InputsOf(i) {
			// Strict > keeps the first declared input on ties.
			if best < 0 || arrival[j] > maxIn {
				best = j
				maxIn = arrival[j]
			}
		}
		arrival[i] = maxIn + c.DelayOf(c.At(i))
		pred[i] = best
	}

	sinks := c.Sinks()
	if len(sinks) == 0 {
		return nil, errors.New(errors.ErrCodeNoPath, "circuit has no sink nodes")
	}

	terminal := -1
	for _, s := range sinks {
		i := c.Index(s.ID)
		if terminal < 0 || arrival[i] > arrival[terminal] {
			terminal = i
		}
	}

	var path []string
	for i := terminal; i >= 0; i = pred[i] {
		path = append(path, c.At(i).ID)
	}
	reverse(path)

	components := make([]ComponentDelay, len(path))
	for i, id := range path {
		n, _ := c.Node(id)
		components[i] = ComponentDelay{ID: id, Delay: c.DelayOf(n)}
	}

	return &Result{
		Path:       path,
		TotalDelay: arrival[terminal],
		Components: components,
	}, nil
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
