package graph

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/pathfinder/pkg/geom"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

// triangle builds A(0,0), B(3,4), C(6,8) with bidirectional links A-B and B-C.
func triangle(t *testing.T) (*Graph, int, int, int) {
	t.Helper()
	g := New()
	a := g.AddNode(geom.Pt(0, 0))
	b := g.AddNode(geom.Pt(3, 4))
	c := g.AddNode(geom.Pt(6, 8))
	if err := g.AddLink(a, b, Bidirectional); err != nil {
		t.Fatalf("AddLink(a, b): %v", err)
	}
	if err := g.AddLink(b, c, Bidirectional); err != nil {
		t.Fatalf("AddLink(b, c): %v", err)
	}
	return g, a, b, c
}

func TestAddNodeAssignsMonotonicIDs(t *testing.T) {
	g := New()
	ids := []int{g.AddNode(geom.Pt(0, 0)), g.AddNode(geom.Pt(1, 1)), g.AddNode(geom.Pt(2, 2))}
	if !slices.Equal(ids, []int{0, 1, 2}) {
		t.Fatalf("ids = %v, want [0 1 2]", ids)
	}

	g.RemoveNode(2)
	if id := g.AddNode(geom.Pt(5, 5)); id != 3 {
		t.Errorf("id after removal = %d, want 3 (ids are never reused)", id)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
}

func TestClearRestartsIDs(t *testing.T) {
	g, a, _, c := triangle(t)
	g.SetStart(a)
	g.SetEnd(c)
	g.Clear()

	if g.NodeCount() != 0 || g.LinkCount() != 0 {
		t.Fatalf("Clear left %d nodes, %d links", g.NodeCount(), g.LinkCount())
	}
	if g.Start() != NoNode || g.End() != NoNode {
		t.Errorf("markers not cleared: start=%d end=%d", g.Start(), g.End())
	}
	if id := g.AddNode(geom.Pt(0, 0)); id != 0 {
		t.Errorf("first id after Clear = %d, want 0", id)
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New()
	for i := range 5 {
		g.AddNode(geom.Pt(float64(i), 0))
	}
	g.RemoveNode(1)
	g.AddNode(geom.Pt(9, 9))

	want := []int{0, 2, 3, 4, 5}
	if got := g.NodeIDs(); !slices.Equal(got, want) {
		t.Errorf("NodeIDs = %v, want %v", got, want)
	}
	nodes := g.Nodes()
	if len(nodes) != 5 || nodes[4].Pos != geom.Pt(9, 9) {
		t.Errorf("Nodes = %v", nodes)
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	g, a, b, c := triangle(t)
	g.SetStart(b)

	g.RemoveNode(b)

	if g.HasNode(b) {
		t.Fatal("node b still present")
	}
	if g.LinkCount() != 0 {
		t.Errorf("LinkCount = %d, want 0", g.LinkCount())
	}
	if _, ok := g.LinkBetween(a, b); ok {
		t.Error("link a-b survived")
	}
	if _, ok := g.LinkBetween(b, c); ok {
		t.Error("link b-c survived")
	}
	if g.Start() != NoNode {
		t.Errorf("start marker = %d, want cleared", g.Start())
	}
	if g.Degree(a) != 0 || g.Degree(c) != 0 {
		t.Errorf("stale adjacency: deg(a)=%d deg(c)=%d", g.Degree(a), g.Degree(c))
	}
}

func TestRemoveUnknownNodeIsNoop(t *testing.T) {
	g, _, _, _ := triangle(t)
	g.RemoveNode(42)
	if g.NodeCount() != 3 || g.LinkCount() != 2 {
		t.Errorf("graph changed: %d nodes, %d links", g.NodeCount(), g.LinkCount())
	}
}

func TestMarkersAreExclusive(t *testing.T) {
	g, a, b, c := triangle(t)

	g.SetStart(a)
	g.SetStart(b)
	if g.IsStart(a) || !g.IsStart(b) {
		t.Errorf("start marker did not move: start=%d", g.Start())
	}

	g.SetEnd(c)
	g.SetEnd(99)
	if g.End() != c {
		t.Errorf("SetEnd(unknown) changed end to %d", g.End())
	}
	if !g.HasEndpoints() {
		t.Error("HasEndpoints = false with both markers set")
	}

	g.ClearMarkers()
	if g.HasEndpoints() {
		t.Error("HasEndpoints = true after ClearMarkers")
	}
}

func TestMoveNodeRecalculatesAutoOnly(t *testing.T) {
	g := New()
	a := g.AddNode(geom.Pt(0, 0))
	b := g.AddNode(geom.Pt(3, 4))
	c := g.AddNode(geom.Pt(0, 10))
	d := g.AddNode(geom.Pt(0, 20))
	mustLink(t, g, a, b, Bidirectional)
	mustLink(t, g, a, c, Bidirectional, WithUserDistance(2))
	mustLink(t, g, a, d, Bidirectional, WithDistanceType(Blocking))

	g.MoveNode(a, geom.Pt(3, 0))

	if l, _ := g.Link(a, b); !approx(l.Distance, 4) {
		t.Errorf("auto distance = %v, want 4", l.Distance)
	}
	if l, _ := g.Link(a, c); l.Distance != 2 {
		t.Errorf("user distance = %v, want 2 (immutable on move)", l.Distance)
	}
	if l, _ := g.Link(a, d); !approx(l.Distance, math.Hypot(3, 20)) {
		t.Errorf("blocking nominal distance = %v", l.Distance)
	}
	if g.Position(a) != geom.Pt(3, 0) {
		t.Errorf("position = %v", g.Position(a))
	}
}

func TestMoveUnknownNodeIsNoop(t *testing.T) {
	g := New()
	g.MoveNode(3, geom.Pt(1, 1))
	if g.NodeCount() != 0 {
		t.Error("MoveNode created a node")
	}
}

func mustLink(t *testing.T, g *Graph, a, b int, dir Direction, opts ...LinkOption) {
	t.Helper()
	if err := g.AddLink(a, b, dir, opts...); err != nil {
		t.Fatalf("AddLink(%d, %d): %v", a, b, err)
	}
}

func TestErrorsAreSentinels(t *testing.T) {
	g := New()
	a := g.AddNode(geom.Pt(0, 0))
	err := g.AddLink(a, 7, Bidirectional)
	if !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("AddLink to missing node: %v, want ErrUnknownNode", err)
	}
	if g.LinkCount() != 0 {
		t.Error("failed AddLink mutated graph")
	}
}
