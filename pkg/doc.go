// Package pkg provides the libraries behind routemap, a tool that finds the
// cheapest route through a weighted, undirected graph and draws it.
//
// # Overview
//
// Data flows through the packages in one direction:
//
//	CSV or JSON edge list
//	         ↓
//	    [io] (parse records, validate weights)
//	         ↓
//	    [graph] (adjacency in record order)
//	         ↓
//	    [route] (cheapest path, distances from one node)
//	         ↓
//	    [render] (circle layout, 4-pass drawing)
//	         ↓
//	    PNG / SVG / DOT / JSON
//
// [pipeline] runs these stages for the CLI and the HTTP server, with timing
// reported through [observability] hooks. [config] loads TOML render
// settings and [errors] carries the codes every stage reports with.
//
// # Quick Start
//
//	g, _ := io.Import("cities.csv")
//	res := route.Find(g, "A", "D")
//	fmt.Println(res.CostString(), res) // 9 A --> B --> C --> D
//
//	opts := render.DefaultOptions()
//	c, _ := sink.NewCanvas(opts.Width, opts.Height)
//	_ = render.Render(c, "graph.png", g, res.Path, rand.New(rand.NewPCG(1, 2)), opts)
//
// # Packages
//
// [graph] stores labels, adjacency sequences and the original records.
// Nodes keep first-seen order, which is also the order they are placed on
// the circle.
//
// [route] implements Dijkstra's search over [graph.Graph] with a binary
// heap. Ties are broken by insertion sequence so results are reproducible.
//
// [render/layout] places nodes evenly on a circle. [render] draws edges,
// the highlighted path, nodes and weights onto a [render.Surface]; the
// [render/sink] canvas implements it with gg. [render/nodelink] emits the
// same graph as Graphviz DOT and renders it to SVG.
//
// [io] reads CSV (header row skipped) and JSON edge lists and writes JSON.
package pkg
