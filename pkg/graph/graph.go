package graph

import (
	"iter"
	"slices"

	"github.com/matzehuels/pathfinder/pkg/geom"
)

// pair is the ordered endpoint key of a link.
type pair struct{ start, end int }

// slot is one entry of the link arena. Dead slots are left in place so that
// the indices held by adjacency lists stay valid until the next compaction.
type slot struct {
	link Link
	dead bool
}

// Graph holds nodes and links and the start/end markers.
//
// The zero value is not usable - use New to create a Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes  map[int]*Node
	order  []int         // live node ids in insertion order
	adj    map[int][]int // node id -> arena indices of incident links
	links  []slot
	byPair map[pair]int // ordered endpoints -> arena index
	dead   int
	nextID int
	start  int
	end    int
}

// New creates an empty graph with no start or end marker.
func New() *Graph {
	g := &Graph{}
	g.reset()
	return g
}

func (g *Graph) reset() {
	g.nodes = make(map[int]*Node)
	g.order = nil
	g.adj = make(map[int][]int)
	g.links = nil
	g.byPair = make(map[pair]int)
	g.dead = 0
	g.nextID = 0
	g.start = NoNode
	g.end = NoNode
}

// Clear removes every node and link, clears both markers and restarts id
// allocation from zero.
func (g *Graph) Clear() { g.reset() }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links in the graph.
func (g *Graph) LinkCount() int { return len(g.byPair) }

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// HasNode reports whether id is a live node.
func (g *Graph) HasNode(id int) bool {
	_, ok := g.nodes[id]
	return ok
}

// Position returns the position of id, or the zero point when absent.
func (g *Graph) Position(id int) geom.Point {
	if n, ok := g.nodes[id]; ok {
		return n.Pos
	}
	return geom.Point{}
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.nodes[id])
	}
	return out
}

// NodeIDs returns all node ids in insertion order. This order is the
// tie-break order used by the path search.
func (g *Graph) NodeIDs() []int { return slices.Clone(g.order) }

// Links returns all links in creation order.
func (g *Graph) Links() []Link {
	out := make([]Link, 0, len(g.byPair))
	for _, l := range g.All() {
		out = append(out, l)
	}
	return out
}

// All iterates over live links in creation order, yielding each link with
// its arena index.
func (g *Graph) All() iter.Seq2[int, Link] {
	return func(yield func(int, Link) bool) {
		for i, s := range g.links {
			if s.dead {
				continue
			}
			if !yield(i, s.link) {
				return
			}
		}
	}
}

// Start returns the start node id, or NoNode.
func (g *Graph) Start() int { return g.start }

// End returns the end node id, or NoNode.
func (g *Graph) End() int { return g.end }

// IsStart reports whether id carries the start marker.
func (g *Graph) IsStart(id int) bool { return id != NoNode && g.start == id }

// IsEnd reports whether id carries the end marker.
func (g *Graph) IsEnd(id int) bool { return id != NoNode && g.end == id }

// HasEndpoints reports whether both a start and an end node are defined.
// This is the precondition of every search run.
func (g *Graph) HasEndpoints() bool {
	return g.HasNode(g.start) && g.HasNode(g.end)
}

// SetStart moves the start marker to id. The previous holder loses it.
// Unknown ids are ignored.
func (g *Graph) SetStart(id int) {
	if g.HasNode(id) {
		g.start = id
	}
}

// SetEnd moves the end marker to id. The previous holder loses it.
// Unknown ids are ignored.
func (g *Graph) SetEnd(id int) {
	if g.HasNode(id) {
		g.end = id
	}
}

// ClearMarkers removes both the start and end markers.
func (g *Graph) ClearMarkers() {
	g.start = NoNode
	g.end = NoNode
}
