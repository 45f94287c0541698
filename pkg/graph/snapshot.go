package graph

import (
	"fmt"

	"github.com/matzehuels/pathfinder/pkg/geom"
)

// Snapshot is the flat, format independent form of a graph used for
// persistence, caching and the HTTP API.
type Snapshot struct {
	Nodes []NodeRecord `json:"nodes" toml:"nodes" yaml:"nodes" bson:"nodes"`
	Links []LinkRecord `json:"links" toml:"links" yaml:"links" bson:"links"`
	Start *int         `json:"start,omitempty" toml:"start,omitempty" yaml:"start,omitempty" bson:"start,omitempty"`
	End   *int         `json:"end,omitempty" toml:"end,omitempty" yaml:"end,omitempty" bson:"end,omitempty"`
}

// NodeRecord is the persisted form of a [Node].
type NodeRecord struct {
	ID int     `json:"id" toml:"id" yaml:"id" bson:"id"`
	X  float64 `json:"x" toml:"x" yaml:"x" bson:"x"`
	Y  float64 `json:"y" toml:"y" yaml:"y" bson:"y"`
}

// LinkRecord is the persisted form of a [Link].
type LinkRecord struct {
	Start        int          `json:"start" toml:"start" yaml:"start" bson:"start"`
	End          int          `json:"end" toml:"end" yaml:"end" bson:"end"`
	Direction    Direction    `json:"direction" toml:"direction" yaml:"direction" bson:"direction"`
	DistanceType DistanceType `json:"distance_type" toml:"distance_type" yaml:"distance_type" bson:"distance_type"`
	Distance     float64      `json:"distance" toml:"distance" yaml:"distance" bson:"distance"`
}

// Policy selects how [FromSnapshot] treats links with a missing endpoint.
type Policy int

const (
	// PolicyReject fails the whole load with ErrDataIntegrity.
	PolicyReject Policy = iota
	// PolicyDrop skips the offending links and reports them.
	PolicyDrop
)

// ParsePolicy converts "reject" or "drop" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "reject", "":
		return PolicyReject, nil
	case "drop":
		return PolicyDrop, nil
	}
	return PolicyReject, fmt.Errorf("invalid integrity policy %q (want reject or drop)", s)
}

// String returns "reject" or "drop".
func (p Policy) String() string {
	if p == PolicyDrop {
		return "drop"
	}
	return "reject"
}

// LoadReport describes what [FromSnapshot] had to discard under PolicyDrop.
type LoadReport struct {
	DroppedLinks   []LinkRecord
	DroppedMarkers int
}

// Snapshot exports nodes in insertion order and links in creation order.
func (g *Graph) Snapshot() Snapshot {
	s := Snapshot{
		Nodes: make([]NodeRecord, 0, len(g.order)),
		Links: make([]LinkRecord, 0, len(g.byPair)),
	}
	for _, id := range g.order {
		n := g.nodes[id]
		s.Nodes = append(s.Nodes, NodeRecord{ID: n.ID, X: n.Pos.X, Y: n.Pos.Y})
	}
	for _, l := range g.All() {
		s.Links = append(s.Links, LinkRecord{
			Start:        l.Start,
			End:          l.End,
			Direction:    l.Direction,
			DistanceType: l.Type,
			Distance:     l.Distance,
		})
	}
	if g.HasNode(g.start) {
		v := g.start
		s.Start = &v
	}
	if g.HasNode(g.end) {
		v := g.end
		s.End = &v
	}
	return s
}

// MaxID bounds the node ids a snapshot may carry so that ids handed out by
// [Graph.AddNode] after a load stay positive.
const MaxID = 1 << 30

// FromSnapshot rebuilds a graph from s, keeping the recorded node ids.
//
// Node records must have unique ids in [0, MaxID); a violation is always
// ErrDataIntegrity. Links and markers that reference a missing node are
// rejected or dropped according to policy. Auto and Blocking distances are
// recomputed from the node positions; UserDefined distances are kept.
func FromSnapshot(s Snapshot, policy Policy) (*Graph, LoadReport, error) {
	var report LoadReport
	g := New()

	for _, n := range s.Nodes {
		if n.ID < 0 {
			return nil, report, fmt.Errorf("node %d: negative id: %w", n.ID, ErrDataIntegrity)
		}
		if n.ID >= MaxID {
			return nil, report, fmt.Errorf("node %d: id out of range: %w", n.ID, ErrDataIntegrity)
		}
		if g.HasNode(n.ID) {
			return nil, report, fmt.Errorf("node %d: duplicate id: %w", n.ID, ErrDataIntegrity)
		}
		g.insert(n.ID, geom.Pt(n.X, n.Y))
	}

	for _, l := range s.Links {
		if !g.HasNode(l.Start) || !g.HasNode(l.End) {
			if policy == PolicyDrop {
				report.DroppedLinks = append(report.DroppedLinks, l)
				continue
			}
			return nil, report, fmt.Errorf("link %d->%d: dangling endpoint: %w", l.Start, l.End, ErrDataIntegrity)
		}
		var opts []LinkOption
		switch l.DistanceType {
		case UserDefined:
			opts = append(opts, WithUserDistance(l.Distance))
		default:
			opts = append(opts, WithDistanceType(l.DistanceType))
		}
		if err := g.AddLink(l.Start, l.End, l.Direction, opts...); err != nil {
			return nil, report, fmt.Errorf("%w: %w", ErrDataIntegrity, err)
		}
	}

	for _, m := range []struct {
		id  *int
		set func(int)
	}{{s.Start, g.SetStart}, {s.End, g.SetEnd}} {
		if m.id == nil {
			continue
		}
		if !g.HasNode(*m.id) {
			if policy == PolicyDrop {
				report.DroppedMarkers++
				continue
			}
			return nil, report, fmt.Errorf("marker node %d: missing: %w", *m.id, ErrDataIntegrity)
		}
		m.set(*m.id)
	}

	return g, report, nil
}

// Validate checks s without building a graph and returns the first
// integrity violation found.
func (s Snapshot) Validate() error {
	_, _, err := FromSnapshot(s, PolicyReject)
	return err
}
