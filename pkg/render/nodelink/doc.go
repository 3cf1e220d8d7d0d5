// Package nodelink renders the graph and its shortest path as a Graphviz
// node-link diagram.
//
// # Overview
//
// This is the vector companion of the raster renderer. The same graph and
// path are emitted as an undirected DOT graph laid out by Graphviz's circo
// engine, so the picture is circular like the raster output but edge
// routing and label placement are left to Graphviz.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, res.Path, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Highlighting
//
// Path nodes are filled and path edges are drawn red and thicker. When
// parallel records join two path nodes, only the cheapest one is
// highlighted, matching the edge the route actually travels.
//
// Graphviz runs in-process through go-graphviz (WebAssembly); no system
// installation is needed.
package nodelink
