package pathfind

import (
	"math"

	"github.com/matzehuels/pathfinder/pkg/graph"
)

// Outcome is the terminal status of a run.
type Outcome int

const (
	// Pending means the run has not finished. It is the outcome of a state
	// that was only reset.
	Pending Outcome = iota
	// Solved means a finite path from start to end was found.
	Solved
	// Unreachable means the search exhausted every reachable node without
	// reaching the end.
	Unreachable
)

// String returns "pending", "solved" or "unreachable".
func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case Unreachable:
		return "unreachable"
	}
	return "pending"
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "solved":
		*o = Solved
	case "unreachable":
		*o = Unreachable
	default:
		*o = Pending
	}
	return nil
}

// Entry is the per-node scratch of a run.
type Entry struct {
	Visited  bool
	Score    float64 // best known distance from the start; legacy A* adds heuristics
	Key      float64 // selection key: Score, plus the heuristic for A*
	Previous int     // predecessor on the best known path, or graph.NoNode
}

// State holds everything a run writes. A State describes the graph as it was
// when the run started; reuse after mutating the graph is meaningless.
type State struct {
	Algorithm  Algorithm
	Start      int
	End        int
	Outcome    Outcome
	Iterations int

	entries map[int]*Entry
	rank    map[int]int // node id -> insertion rank, for tie-breaking
}

// NewState returns a freshly reset state for g: every node unvisited, with an
// infinite score and no predecessor. The markers are copied from g.
func NewState(g *graph.Graph) *State {
	ids := g.NodeIDs()
	st := &State{
		Start:   g.Start(),
		End:     g.End(),
		entries: make(map[int]*Entry, len(ids)),
		rank:    make(map[int]int, len(ids)),
	}
	for i, id := range ids {
		st.entries[id] = &Entry{Score: math.Inf(1), Key: math.Inf(1), Previous: graph.NoNode}
		st.rank[id] = i
	}
	return st
}

// Ready reports whether both the start and the end node are defined.
func (s *State) Ready() bool {
	_, a := s.entries[s.Start]
	_, b := s.entries[s.End]
	return a && b
}

// Entry returns a copy of the scratch for id.
func (s *State) Entry(id int) (Entry, bool) {
	e, ok := s.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Score returns the best known distance from the start to id, or +Inf.
func (s *State) Score(id int) float64 {
	if e, ok := s.entries[id]; ok {
		return e.Score
	}
	return math.Inf(1)
}

// Previous returns the predecessor of id, or graph.NoNode.
func (s *State) Previous(id int) int {
	if e, ok := s.entries[id]; ok {
		return e.Previous
	}
	return graph.NoNode
}

// Visited reports whether id was finalized by the run.
func (s *State) Visited(id int) bool {
	e, ok := s.entries[id]
	return ok && e.Visited
}

// VisitedCount returns the number of finalized nodes.
func (s *State) VisitedCount() int {
	n := 0
	for _, e := range s.entries {
		if e.Visited {
			n++
		}
	}
	return n
}

// Len returns the number of nodes the state covers.
func (s *State) Len() int { return len(s.entries) }
