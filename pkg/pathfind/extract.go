package pathfind

import (
	"fmt"
	"slices"

	"github.com/matzehuels/pathfinder/pkg/graph"
)

// PathResult is the shortest path found by a run.
type PathResult struct {
	Outcome  Outcome `json:"outcome" toml:"outcome" yaml:"outcome"`
	Path     []int   `json:"path,omitempty" toml:"path,omitempty" yaml:"path,omitempty"`
	Distance float64 `json:"distance" toml:"distance" yaml:"distance"`
}

// Extract walks the predecessor chain of st from the end node back to the
// start and returns the path in start-to-end order with its summed distance.
//
// An Unreachable state yields a result without a path. A chain that is
// broken, loops, or does not end at the start returns [ErrInconsistentPath].
func Extract(g *graph.Graph, st *State) (PathResult, error) {
	switch st.Outcome {
	case Unreachable:
		return PathResult{Outcome: Unreachable}, nil
	case Pending:
		return PathResult{}, fmt.Errorf("%w: run did not finish", ErrInconsistentPath)
	}

	path := []int{st.End}
	seen := map[int]bool{st.End: true}
	total := 0.0
	cur := st.End
	for {
		prev := st.Previous(cur)
		if prev == graph.NoNode {
			break
		}
		if seen[prev] {
			return PathResult{}, fmt.Errorf("%w: cycle at node %d", ErrInconsistentPath, prev)
		}
		l, ok := hop(g, prev, cur)
		if !ok {
			return PathResult{}, fmt.Errorf("%w: no link from %d to %d", ErrInconsistentPath, prev, cur)
		}
		total += l.Distance
		seen[prev] = true
		path = append(path, prev)
		cur = prev
	}
	if cur != st.Start {
		return PathResult{}, fmt.Errorf("%w: chain ends at %d, not at start %d", ErrInconsistentPath, cur, st.Start)
	}

	slices.Reverse(path)
	return PathResult{Outcome: Solved, Path: path, Distance: total}, nil
}

// hop returns the link the search would have used to step from a to b: the
// shorter traversable one when links exist in both orientations.
func hop(g *graph.Graph, a, b int) (graph.Link, bool) {
	var best graph.Link
	found := false
	for _, l := range [][2]int{{a, b}, {b, a}} {
		cand, ok := g.Link(l[0], l[1])
		if !ok || !graph.Traversable(cand, a) {
			continue
		}
		if !found || cand.Distance < best.Distance {
			best, found = cand, true
		}
	}
	return best, found
}
