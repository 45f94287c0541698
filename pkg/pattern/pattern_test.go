package pattern

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pathfinder/pkg/geom"
	"github.com/matzehuels/pathfinder/pkg/graph"
)

func TestGrid(t *testing.T) {
	g, err := Grid(225, 150)
	require.NoError(t, err)

	assert.Equal(t, 6, g.NodeCount())
	assert.Equal(t, 7, g.LinkCount())

	first, ok := g.Node(0)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(37, 37), first.Pos)

	for _, l := range g.Links() {
		assert.Equal(t, graph.Bidirectional, l.Direction)
		assert.Equal(t, graph.Auto, l.Type)
		assert.InDelta(t, 75, l.Distance, 1e-9)
	}
}

func TestGridCustomSpacing(t *testing.T) {
	g, err := Grid(100, 100, WithNodeSize(10), WithPadding(0))
	require.NoError(t, err)
	assert.Equal(t, 100, g.NodeCount())
	assert.Equal(t, 2*10*9, g.LinkCount())
}

func TestCircular(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		nodes int
		links int
	}{
		{"default", nil, 21, 21},
		{"open rings", []Option{WithOpenRings()}, 21, 19},
		{"single ring", []Option{WithRings(1)}, 14, 14},
		{"rings stop when too small", []Option{WithRings(10)}, 14 + 7 + 3, 14 + 7 + 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Circular(400, 400, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.nodes, g.NodeCount())
			assert.Equal(t, tt.links, g.LinkCount())
		})
	}
}

func TestCircularRadius(t *testing.T) {
	g, err := Circular(400, 400, WithRings(1))
	require.NoError(t, err)
	centre := geom.Pt(200, 200)
	for _, n := range g.Nodes() {
		d := geom.Distance(centre, n.Pos)
		assert.True(t, math.Abs(d-175) < 1.5, "node %d at distance %v", n.ID, d)
	}
}

func TestCanvasTooSmall(t *testing.T) {
	_, err := Grid(50, 500)
	assert.ErrorIs(t, err, ErrCanvasTooSmall)

	_, err = Circular(100, 100)
	assert.ErrorIs(t, err, ErrCanvasTooSmall)
}

func TestWithGraphAppends(t *testing.T) {
	g := graph.New()
	g.AddNode(geom.Pt(0, 0))

	out, err := Grid(225, 150, WithGraph(g))
	require.NoError(t, err)
	assert.Same(t, g, out)
	assert.Equal(t, 7, g.NodeCount())

	_, err = Circular(400, 400, WithGraph(g), WithRings(1))
	require.NoError(t, err)
	assert.Equal(t, 7+14, g.NodeCount())
}
