// Package graph provides the positioned, weighted link graph that the path
// search operates on.
//
// # Overview
//
// A [Graph] owns two collections: nodes, each with a unique integer id and a
// 2D position, and links, each joining two existing nodes with a direction and
// a distance mode. It plays the role of both the node store and the link store:
// node operations live in nodes.go, link operations in links.go.
//
// # Basic Usage
//
//	g := graph.New()
//	a := g.AddNode(geom.Pt(0, 0))
//	b := g.AddNode(geom.Pt(3, 4))
//	if err := g.AddLink(a, b, graph.Bidirectional); err != nil {
//	    return err
//	}
//	g.SetStart(a)
//	g.SetEnd(b)
//
// # Distances
//
// Every link carries a [DistanceType]:
//
//   - [Auto]: the Euclidean distance between the endpoints, recomputed
//     whenever either endpoint moves.
//   - [UserDefined]: a caller supplied value that never changes on movement.
//   - [Blocking]: the link stays in the graph (and keeps a nominal Auto value
//     for display) but is never traversed by the search.
//
// # Storage Layout
//
// Links live in a single arena and each node keeps a list of arena indices for
// its incident links, so [Graph.Neighbors] runs in O(degree) rather than
// scanning every link. Links are keyed by their ordered endpoint pair: adding
// (a, b) twice overwrites the first link, while (a, b) and (b, a) are two
// distinct links.
//
// # Persistence
//
// [Graph.Snapshot] exports the logical state as flat node and link records and
// [FromSnapshot] rebuilds a graph from them. A record set that references a
// missing node is a data integrity violation; the caller picks whether to
// reject it ([PolicyReject]) or drop the offending links ([PolicyDrop]).
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. The path search never
// mutates the graph, so several searches may read the same graph at once as
// long as no goroutine modifies it.
package graph
