package graph

import (
	"slices"

	"github.com/matzehuels/pathfinder/pkg/geom"
)

// AddNode stores a node at p and returns its id. Ids are allocated
// monotonically and never reused within the lifetime of the graph (until
// Clear).
func (g *Graph) AddNode(p geom.Point) int {
	id := g.nextID
	g.insert(id, p)
	return id
}

// insert stores a node under an explicit id, advancing the allocator past it.
func (g *Graph) insert(id int, p geom.Point) {
	g.nodes[id] = &Node{ID: id, Pos: p}
	g.order = append(g.order, id)
	if id >= g.nextID {
		g.nextID = id + 1
	}
}

// RemoveNode deletes id together with every link that references it.
// A marker held by id is cleared. Removing an unknown id is a no-op.
func (g *Graph) RemoveNode(id int) {
	if !g.HasNode(id) {
		return
	}
	g.RemoveLinksFor(id)
	delete(g.nodes, id)
	delete(g.adj, id)
	g.order = slices.DeleteFunc(g.order, func(v int) bool { return v == id })
	if g.start == id {
		g.start = NoNode
	}
	if g.end == id {
		g.end = NoNode
	}
}

// MoveNode sets the position of id and refreshes the distance of every
// incident Auto link. Unknown ids are ignored.
func (g *Graph) MoveNode(id int, p geom.Point) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	n.Pos = p
	g.RecalcDistances(id)
}
