package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pathfinder/pkg/graph"
	"github.com/matzehuels/pathfinder/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Path is a node sequence to highlight, as returned by pathfind.Extract.
	Path []int

	// Distances labels every link with its distance.
	Distances bool
}

// Colors used for markers and highlighting.
const (
	startColor = "#2e7d32"
	endColor   = "#c62828"
	pathColor  = "#1565c0"
	mutedColor = "#9e9e9e"
)

// ToDOT converts g to Graphviz DOT. Nodes are pinned to their canvas
// positions; the canvas y axis points down, so it is flipped for Graphviz.
// The result can be rendered with [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Start and end nodes are filled green and red. Nodes and links on
// opts.Path are drawn in blue. Blocking links are dashed and grey, and
// unidirectional links carry an arrowhead at their end node.
func ToDOT(g *graph.Graph, opts Options) string {
	onPath := make(map[int]bool, len(opts.Path))
	steps := make(map[[2]int]bool, len(opts.Path))
	for i, id := range opts.Path {
		onPath[id] = true
		if i > 0 {
			a, b := opts.Path[i-1], id
			steps[[2]int{a, b}] = true
			steps[[2]int{b, a}] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fixedsize=true, width=0.35, fontsize=10];\n")
	buf.WriteString("  edge [arrowsize=0.6, fontsize=9];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{
			fmt.Sprintf("label=%q", strconv.Itoa(n.ID)),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(n.Pos.X), fmtFloat(-n.Pos.Y)),
		}
		attrs = append(attrs, nodeAttrs(g, n.ID, onPath[n.ID])...)
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links() {
		attrs := linkAttrs(l, steps[[2]int{l.Start, l.End}], opts.Distances)
		fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", l.Start, l.End, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(g *graph.Graph, id int, onPath bool) []string {
	switch {
	case g.IsStart(id):
		return []string{"fillcolor=\"" + startColor + "\"", "fontcolor=white"}
	case g.IsEnd(id):
		return []string{"fillcolor=\"" + endColor + "\"", "fontcolor=white"}
	case onPath:
		return []string{"color=\"" + pathColor + "\"", "penwidth=2"}
	}
	return nil
}

func linkAttrs(l graph.Link, onPath, distances bool) []string {
	attrs := []string{"dir=none"}
	if l.Direction == graph.Unidirectional {
		attrs[0] = "dir=forward"
	}
	switch {
	case l.Type == graph.Blocking:
		attrs = append(attrs, "style=dashed", "color=\""+mutedColor+"\"")
	case onPath:
		attrs = append(attrs, "color=\""+pathColor+"\"", "penwidth=2.5")
	}
	if distances && l.Type != graph.Blocking {
		attrs = append(attrs, fmt.Sprintf("label=%q", strconv.FormatFloat(l.Distance, 'f', 1, 64)))
	}
	return attrs
}

func fmtFloat(f float64) string {
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz with the neato engine,
// which honors pinned node positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root tag with one that scales.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// Render produces format from g. DOT output skips Graphviz entirely.
func Render(ctx context.Context, g *graph.Graph, format string, opts Options) ([]byte, error) {
	dot := ToDOT(g, opts)
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		return RenderSVG(ctx, dot)
	case render.FormatPNG:
		return RenderPNG(ctx, dot, 2.0)
	case render.FormatPDF:
		return RenderPDF(ctx, dot)
	}
	return nil, fmt.Errorf("%w: %q", render.ErrUnknownFormat, format)
}
