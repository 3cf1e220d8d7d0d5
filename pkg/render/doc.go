// Package render draws a graph and a highlighted shortest path onto a
// drawing surface.
//
// # Overview
//
// Rendering is split between this package and its collaborators:
//
//   - [layout]: circular node placement
//   - [sink]: concrete surfaces (raster PNG canvas) and the JSON layout export
//   - [nodelink]: Graphviz DOT output of the same graph and path
//
// This package knows nothing about files or image formats. It computes a
// layout, assigns each node a random colour, issues line, rectangle and text
// primitives against a [Surface], and finally hands the target name to
// [Output.Save].
//
// # Drawing Order
//
// Later passes paint over earlier ones:
//
//  1. every edge as a thin line
//  2. the path as thick lines between consecutive path nodes
//  3. every node as a filled, outlined box with its label
//  4. every edge weight at the edge midpoint
//
// Weights go last so neither boxes nor the path highlight hide them.
//
// # Randomness
//
// Node colours come from the *rand.Rand passed to [Draw] or [Render]. Seed it
// to get reproducible images:
//
//	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
//	canvas, _ := sink.NewCanvas(opts.Width, opts.Height)
//	err := render.Render(canvas, "graph.png", g, res.Path, rng, opts)
//
// [layout]: github.com/matzehuels/routemap/pkg/render/layout
// [sink]: github.com/matzehuels/routemap/pkg/render/sink
// [nodelink]: github.com/matzehuels/routemap/pkg/render/nodelink
package render
