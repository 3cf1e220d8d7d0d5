package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/routemap/pkg/graph"
	"github.com/matzehuels/routemap/pkg/route"
)

// Options configures node-link diagram generation.
type Options struct {
	// Engine is the Graphviz layout engine written into the DOT source.
	// Defaults to "circo".
	Engine string
	// PathColor is the colour of highlighted path edges. Defaults to "red".
	PathColor string
}

func (o Options) withDefaults() Options {
	if o.Engine == "" {
		o.Engine = "circo"
	}
	if o.PathColor == "" {
		o.PathColor = "red"
	}
	return o
}

// ToDOT converts g to an undirected Graphviz graph with path highlighted.
// Nodes appear in first-seen order and edges in record order, each labelled
// with its weight.
func ToDOT(g *graph.Graph, path []string, opts Options) string {
	opts = opts.withDefaults()
	onPath := route.OnPath(g, path)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", opts.Engine)
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [color=grey, fontcolor=blue];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		if slices.Contains(path, n) {
			fmt.Fprintf(&buf, "  %q [fillcolor=mistyrose, penwidth=2];\n", n)
		} else {
			fmt.Fprintf(&buf, "  %q;\n", n)
		}
	}

	buf.WriteString("\n")
	for i, e := range g.Edges() {
		attrs := fmt.Sprintf("label=%q", strconv.Itoa(e.Weight))
		if onPath[i] {
			attrs += fmt.Sprintf(", color=%q, penwidth=3", opts.PathColor)
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.From, e.To, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg element with one sized
// in pixels from its viewBox.
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
