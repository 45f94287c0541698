package pathfind

import (
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/pathfinder/pkg/geom"
	"github.com/matzehuels/pathfinder/pkg/graph"
)

// Intent is an explicit user request against a session's graph.
type Intent interface {
	apply(g *graph.Graph) error
}

// ConnectIntent links every node in From to To.
type ConnectIntent struct {
	From          []int
	To            int
	Bidirectional bool
}

func (c ConnectIntent) apply(g *graph.Graph) error {
	if !g.HasNode(c.To) {
		return fmt.Errorf("%w: %d", graph.ErrUnknownNode, c.To)
	}
	for _, id := range c.From {
		if !g.HasNode(id) {
			return fmt.Errorf("%w: %d", graph.ErrUnknownNode, id)
		}
	}
	dir := graph.Unidirectional
	if c.Bidirectional {
		dir = graph.Bidirectional
	}
	for _, id := range c.From {
		if id == c.To {
			continue
		}
		if err := g.AddLink(id, c.To, dir); err != nil {
			return err
		}
	}
	return nil
}

// MoveIntent repositions a node.
type MoveIntent struct {
	ID  int
	Pos geom.Point
}

func (m MoveIntent) apply(g *graph.Graph) error {
	if !g.HasNode(m.ID) {
		return fmt.Errorf("%w: %d", graph.ErrUnknownNode, m.ID)
	}
	g.MoveNode(m.ID, m.Pos)
	return nil
}

// Session is the surface an editor talks to: graph edits, marker selection,
// user intents and algorithm runs. It keeps the state of the last run so a
// view can show visited nodes and scores.
//
// A Session is not safe for concurrent use.
type Session struct {
	g    *graph.Graph
	opts []Option
	last *State
}

// NewSession wraps g. A nil graph starts an empty one. opts apply to every
// run started from the session.
func NewSession(g *graph.Graph, opts ...Option) *Session {
	if g == nil {
		g = graph.New()
	}
	return &Session{g: g, opts: opts}
}

// Graph returns the underlying graph.
func (s *Session) Graph() *graph.Graph { return s.g }

// Last returns the state of the most recent run, or nil.
func (s *Session) Last() *State { return s.last }

// CreateNode adds a node at p and returns its id.
func (s *Session) CreateNode(p geom.Point) int { return s.g.AddNode(p) }

// DeleteNode removes id and its links. Unknown ids are ignored.
func (s *Session) DeleteNode(id int) { s.g.RemoveNode(id) }

// MoveNode repositions id and refreshes its Auto links. Unknown ids are
// ignored.
func (s *Session) MoveNode(id int, p geom.Point) { s.g.MoveNode(id, p) }

// CreateLink adds or overwrites the link from start to end. A non-nil
// userDistance makes the link UserDefined regardless of typ.
func (s *Session) CreateLink(start, end int, dir graph.Direction, typ graph.DistanceType, userDistance *float64) error {
	opts := []graph.LinkOption{graph.WithDistanceType(typ)}
	if userDistance != nil {
		opts = append(opts, graph.WithUserDistance(*userDistance))
	}
	return s.g.AddLink(start, end, dir, opts...)
}

// DeleteLink removes the link stored for (start, end), if any.
func (s *Session) DeleteLink(start, end int) { s.g.RemoveLink(start, end) }

// DeleteAllLinksOf removes every link touching id. Unknown ids are ignored.
func (s *Session) DeleteAllLinksOf(id int) { s.g.RemoveLinksFor(id) }

// ClearGraph empties the graph and forgets the last run.
func (s *Session) ClearGraph() {
	s.g.Clear()
	s.last = nil
}

// SetStart marks id as the start node. Unknown ids are ignored.
func (s *Session) SetStart(id int) { s.g.SetStart(id) }

// SetEnd marks id as the end node. Unknown ids are ignored.
func (s *Session) SetEnd(id int) { s.g.SetEnd(id) }

// RunDijkstra runs Dijkstra and extracts the path.
func (s *Session) RunDijkstra(ctx context.Context) (PathResult, error) {
	return s.run(ctx, AlgorithmDijkstra)
}

// RunAStar runs A* and extracts the path.
func (s *Session) RunAStar(ctx context.Context) (PathResult, error) {
	return s.run(ctx, AlgorithmAStar)
}

func (s *Session) run(ctx context.Context, alg Algorithm) (PathResult, error) {
	st, err := Run(ctx, s.g, alg, s.opts...)
	s.last = st
	if err != nil {
		return PathResult{}, err
	}
	return Extract(s.g, st)
}

// Apply executes an intent. Ids are checked before anything changes.
func (s *Session) Apply(in Intent) error {
	if in == nil {
		return errors.New("nil intent")
	}
	return in.apply(s.g)
}

// RequestConnect links every node in fromIDs to toID. Unknown ids reject the
// whole request. A source equal to toID is skipped.
func (s *Session) RequestConnect(fromIDs []int, toID int, bidirectional bool) error {
	return s.Apply(ConnectIntent{From: fromIDs, To: toID, Bidirectional: bidirectional})
}

// RequestMove repositions id and refreshes its Auto distances.
func (s *Session) RequestMove(id int, p geom.Point) error {
	return s.Apply(MoveIntent{ID: id, Pos: p})
}
