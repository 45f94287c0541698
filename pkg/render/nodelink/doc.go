// Package nodelink draws a graph as a node-link diagram.
//
// # Usage
//
// Convert a graph to DOT, optionally highlighting a solved path, then render:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Path: res.Path})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Or in one step:
//
//	png, err := nodelink.Render(ctx, g, render.FormatPNG, nodelink.Options{})
//
// # Layout
//
// Nodes keep their canvas positions: each carries a pinned pos attribute and
// the graph is laid out with neato at 72 points per unit, so one canvas unit
// is one SVG pixel. Graphviz only routes the links.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
