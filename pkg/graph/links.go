package graph

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/matzehuels/pathfinder/pkg/geom"
)

// compactThreshold is the number of dead arena slots tolerated before the
// arena is rebuilt.
const compactThreshold = 64

// LinkOption configures a link created by [Graph.AddLink].
type LinkOption func(*linkConfig)

type linkConfig struct {
	typ      DistanceType
	distance float64
	hasDist  bool
}

// WithDistanceType sets the distance mode of the new link. The default is Auto.
func WithDistanceType(t DistanceType) LinkOption {
	return func(c *linkConfig) { c.typ = t }
}

// WithUserDistance makes the link UserDefined with the given distance.
func WithUserDistance(d float64) LinkOption {
	return func(c *linkConfig) {
		c.typ = UserDefined
		c.distance = d
		c.hasDist = true
	}
}

func validDistance(d float64) bool {
	return d >= 0 && !math.IsInf(d, 0) && !math.IsNaN(d)
}

// AddLink connects start to end. Both nodes must exist, otherwise
// ErrUnknownNode is returned and the graph is left untouched. Adding a link
// for an ordered pair that already has one replaces it.
//
// Auto and Blocking links get the Euclidean distance between the endpoints.
// A UserDefined link without an explicit distance starts from that value too.
func (g *Graph) AddLink(start, end int, dir Direction, opts ...LinkOption) error {
	if !g.HasNode(start) {
		return fmt.Errorf("link %d->%d: start %d: %w", start, end, start, ErrUnknownNode)
	}
	if !g.HasNode(end) {
		return fmt.Errorf("link %d->%d: end %d: %w", start, end, end, ErrUnknownNode)
	}

	cfg := linkConfig{typ: Auto}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.hasDist && !validDistance(cfg.distance) {
		return fmt.Errorf("link %d->%d: %v: %w", start, end, cfg.distance, ErrInvalidDistance)
	}

	l := Link{Start: start, End: end, Direction: dir, Type: cfg.typ}
	if cfg.typ == UserDefined && cfg.hasDist {
		l.Distance = cfg.distance
	} else {
		l.Distance = g.span(start, end)
	}

	key := pair{start, end}
	if i, ok := g.byPair[key]; ok {
		g.links[i].link = l
		return nil
	}

	i := len(g.links)
	g.links = append(g.links, slot{link: l})
	g.byPair[key] = i
	g.adj[start] = append(g.adj[start], i)
	if end != start {
		g.adj[end] = append(g.adj[end], i)
	}
	return nil
}

// span is the Euclidean distance between two live nodes.
func (g *Graph) span(a, b int) float64 {
	return geom.Distance(g.nodes[a].Pos, g.nodes[b].Pos)
}

// Link returns the link stored for the ordered pair (start, end).
func (g *Graph) Link(start, end int) (Link, bool) {
	i, ok := g.byPair[pair{start, end}]
	if !ok {
		return Link{}, false
	}
	return g.links[i].link, true
}

// LinkBetween returns a link joining a and b in either orientation, preferring
// the one stored as (a, b).
func (g *Graph) LinkBetween(a, b int) (Link, bool) {
	if l, ok := g.Link(a, b); ok {
		return l, true
	}
	return g.Link(b, a)
}

// RemoveLink deletes the link stored for the ordered pair (start, end), if any.
func (g *Graph) RemoveLink(start, end int) {
	i, ok := g.byPair[pair{start, end}]
	if !ok {
		return
	}
	g.kill(i)
	g.maybeCompact()
}

// RemoveLinksFor deletes every link where id is either endpoint.
func (g *Graph) RemoveLinksFor(id int) {
	for _, i := range slices.Clone(g.adj[id]) {
		if !g.links[i].dead {
			g.kill(i)
		}
	}
	g.maybeCompact()
}

func (g *Graph) kill(i int) {
	l := g.links[i].link
	g.links[i].dead = true
	g.dead++
	delete(g.byPair, pair{l.Start, l.End})
	drop := func(v int) bool { return v == i }
	g.adj[l.Start] = slices.DeleteFunc(g.adj[l.Start], drop)
	if l.End != l.Start {
		g.adj[l.End] = slices.DeleteFunc(g.adj[l.End], drop)
	}
}

// maybeCompact rebuilds the arena once dead slots dominate it. Creation
// order of live links is preserved.
func (g *Graph) maybeCompact() {
	if g.dead < compactThreshold || g.dead*2 < len(g.links) {
		return
	}
	live := make([]slot, 0, len(g.links)-g.dead)
	g.byPair = make(map[pair]int, len(live))
	g.adj = make(map[int][]int, len(g.nodes))
	for _, s := range g.links {
		if s.dead {
			continue
		}
		i := len(live)
		live = append(live, s)
		l := s.link
		g.byPair[pair{l.Start, l.End}] = i
		g.adj[l.Start] = append(g.adj[l.Start], i)
		if l.End != l.Start {
			g.adj[l.End] = append(g.adj[l.End], i)
		}
	}
	g.links = live
	g.dead = 0
}

// RecalcDistances recomputes the distance of every Auto or Blocking link
// incident to id from the current endpoint positions. UserDefined links are
// left untouched. Blocking links keep a nominal value for display only.
func (g *Graph) RecalcDistances(id int) {
	for _, i := range g.adj[id] {
		g.refresh(i)
	}
}

// RefreshDistances recomputes every Auto and Blocking link in the graph.
func (g *Graph) RefreshDistances() {
	for i := range g.links {
		if !g.links[i].dead {
			g.refresh(i)
		}
	}
}

func (g *Graph) refresh(i int) {
	l := &g.links[i].link
	if l.Type == UserDefined {
		return
	}
	l.Distance = g.span(l.Start, l.End)
}

// SetLinkDistance changes the distance mode of the link stored for
// (start, end). For UserDefined the given distance is applied; for Auto and
// Blocking the distance is recomputed and the argument ignored.
func (g *Graph) SetLinkDistance(start, end int, t DistanceType, distance float64) error {
	i, ok := g.byPair[pair{start, end}]
	if !ok {
		return fmt.Errorf("link %d->%d: %w", start, end, ErrUnknownLink)
	}
	l := &g.links[i].link
	switch t {
	case UserDefined:
		if !validDistance(distance) {
			return fmt.Errorf("link %d->%d: %v: %w", start, end, distance, ErrInvalidDistance)
		}
		l.Type = UserDefined
		l.Distance = distance
	default:
		l.Type = t
		l.Distance = g.span(start, end)
	}
	return nil
}

// SetLinkDirection changes the direction of the link stored for (start, end).
func (g *Graph) SetLinkDirection(start, end int, dir Direction) error {
	i, ok := g.byPair[pair{start, end}]
	if !ok {
		return fmt.Errorf("link %d->%d: %w", start, end, ErrUnknownLink)
	}
	g.links[i].link.Direction = dir
	return nil
}

// Degree returns the number of links incident to id.
func (g *Graph) Degree(id int) int { return len(g.adj[id]) }

// Neighbors iterates over every link incident to id together with the
// endpoint on the other side. The sequence is lazy, finite and may be ranged
// over any number of times. It does not filter by traversability; combine it
// with [Traversable].
//
// The graph must not be modified while the sequence is being consumed.
func (g *Graph) Neighbors(id int) iter.Seq2[Link, int] {
	return func(yield func(Link, int) bool) {
		for _, i := range g.adj[id] {
			l := g.links[i].link
			if !yield(l, l.Other(id)) {
				return
			}
		}
	}
}
