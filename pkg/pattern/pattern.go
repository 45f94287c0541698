package pattern

import (
	"errors"
	"fmt"
	"math"

	"github.com/matzehuels/pathfinder/pkg/geom"
	"github.com/matzehuels/pathfinder/pkg/graph"
)

const (
	// DefaultNodeSize is the diameter of a node on the canvas.
	DefaultNodeSize = 25
	// DefaultRings is the number of rings Circular lays out.
	DefaultRings = 2

	minRingNodes = 3
)

// ErrCanvasTooSmall is returned when not even one row, column or ring fits.
var ErrCanvasTooSmall = errors.New("canvas too small for pattern")

type config struct {
	nodeSize int
	padding  int
	rings    int
	open     bool
	g        *graph.Graph
}

// Option configures a generator.
type Option func(*config)

// WithNodeSize sets the node diameter. Padding defaults to twice this value.
func WithNodeSize(n int) Option { return func(c *config) { c.nodeSize = n } }

// WithPadding sets the gap between neighbouring nodes.
func WithPadding(n int) Option { return func(c *config) { c.padding = n } }

// WithRings sets how many rings Circular generates.
func WithRings(n int) Option { return func(c *config) { c.rings = n } }

// WithOpenRings leaves the last and first node of every ring unlinked.
func WithOpenRings() Option { return func(c *config) { c.open = true } }

// WithGraph makes the generator add to g instead of a new graph.
func WithGraph(g *graph.Graph) Option { return func(c *config) { c.g = g } }

func newConfig(opts []Option) config {
	c := config{nodeSize: DefaultNodeSize, padding: -1, rings: DefaultRings}
	for _, opt := range opts {
		opt(&c)
	}
	if c.nodeSize <= 0 {
		c.nodeSize = DefaultNodeSize
	}
	if c.padding < 0 {
		c.padding = 2 * c.nodeSize
	}
	if c.g == nil {
		c.g = graph.New()
	}
	return c
}

func (c config) pitch() int { return c.nodeSize + c.padding }

// Grid lays out as many nodes as fit into a width x height canvas, centred,
// in row-major order.
func Grid(width, height int, opts ...Option) (*graph.Graph, error) {
	c := newConfig(opts)
	p := c.pitch()
	cols, rows := width/p, height/p
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("grid %dx%d with pitch %d: %w", width, height, p, ErrCanvasTooSmall)
	}
	xoff := (width - (p*cols - c.padding)) / 2
	yoff := (height - (p*rows - c.padding)) / 2

	ids := make([][]int, rows)
	for r := range rows {
		ids[r] = make([]int, cols)
		for col := range cols {
			x := col*p + c.nodeSize/2 + xoff
			y := r*p + c.nodeSize/2 + yoff
			ids[r][col] = c.g.AddNode(geom.Pt(float64(x), float64(y)))
		}
	}

	for r := range rows {
		for col := range cols {
			if col+1 < cols {
				if err := c.g.AddLink(ids[r][col], ids[r][col+1], graph.Bidirectional); err != nil {
					return nil, err
				}
			}
			if r+1 < rows {
				if err := c.g.AddLink(ids[r][col], ids[r+1][col], graph.Bidirectional); err != nil {
					return nil, err
				}
			}
		}
	}
	return c.g, nil
}

// Circular lays out rings around the canvas centre. The outer ring keeps one
// node size of margin to the shorter canvas edge; each further ring has half
// the radius of the one outside it. A ring stops the pattern once fewer than
// three nodes fit on it.
func Circular(width, height int, opts ...Option) (*graph.Graph, error) {
	c := newConfig(opts)
	p := float64(c.pitch())
	centre := geom.Pt(float64(width/2), float64(height/2))
	radius := min(width, height)/2 - c.nodeSize

	placed := 0
	for range c.rings {
		count := int(2 * math.Pi * float64(radius) / p)
		if radius <= 0 || count < minRingNodes {
			break
		}
		delta := 2 * math.Pi / float64(count)
		first, prev := graph.NoNode, graph.NoNode
		for n := range count {
			a := delta * float64(n+1)
			pos := geom.Pt(math.Trunc(math.Cos(a)*float64(radius)), math.Trunc(math.Sin(a)*float64(radius)))
			id := c.g.AddNode(centre.Add(pos))
			if prev != graph.NoNode {
				if err := c.g.AddLink(prev, id, graph.Bidirectional); err != nil {
					return nil, err
				}
			} else {
				first = id
			}
			prev = id
		}
		if !c.open {
			if err := c.g.AddLink(prev, first, graph.Bidirectional); err != nil {
				return nil, err
			}
		}
		placed++
		radius /= 2
	}
	if placed == 0 {
		return nil, fmt.Errorf("circle %dx%d with pitch %d: %w", width, height, c.pitch(), ErrCanvasTooSmall)
	}
	return c.g, nil
}
