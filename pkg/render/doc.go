// Package render turns graphs into images.
//
// The [nodelink] subpackage writes a graph as Graphviz DOT with every node
// pinned to its canvas position and renders it to SVG in-process. This
// package holds what is shared between renderers: the output [Formats] and
// the SVG to PDF/PNG conversion.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/pathfinder/pkg/render/nodelink
package render
