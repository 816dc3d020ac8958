package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/iisrank/pkg/errors"
	"github.com/matzehuels/iisrank/pkg/network"
	"github.com/matzehuels/iisrank/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// KeyNodes are 1-based vertex identifiers drawn highlighted.
	KeyNodes []int

	// Detailed adds in/out degree to each node label.
	Detailed bool

	// Title is drawn above the diagram when non-empty.
	Title string
}

// ToDOT converts a network to Graphviz DOT format.
// Vertices are labelled with their 1-based identifier. The resulting DOT
// string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(g *network.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.35, fixedsize=true];\n")
	buf.WriteString("  edge [arrowsize=0.5, color=\"#555555\"];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	for v := 0; v < g.Order(); v++ {
		attrs := fmtAttrs(g, v, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(v), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(e.From), nodeID(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(v int) string { return strconv.Itoa(v + 1) }

func fmtLabel(g *network.Graph, v int, detailed bool) string {
	if !detailed {
		return nodeID(v)
	}
	return fmt.Sprintf("%s\nin: %d\nout: %d", nodeID(v), g.InDegree(v), g.OutDegree(v))
}

func fmtAttrs(g *network.Graph, v int, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(g, v, opts.Detailed))}
	if opts.Detailed {
		attrs = append(attrs, "fixedsize=false", "shape=box", "style=\"rounded,filled\"")
	}
	if slices.Contains(opts.KeyNodes, v+1) {
		attrs = append(attrs, "fillcolor=\"#ff7f0e\"", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
