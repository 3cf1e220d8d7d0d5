// Package sink provides output collaborators for the renderer.
//
// # Overview
//
// A "sink" turns what the renderer produced into bytes on disk or on the
// wire. This package provides:
//
//   - [Canvas]: a raster [render.Output] backed by fogleman/gg, saved as PNG
//   - [WriteLayoutJSON]: the circular layout and path as JSON for external tools
//
// # Raster Output
//
// Create a canvas of the render size, draw into it, then save or encode it:
//
//	canvas, err := sink.NewCanvas(opts.Width, opts.Height,
//	    sink.WithBackground(opts.Palette.Background),
//	)
//	err = render.Render(canvas, "graph.png", g, res.Path, rng, opts)
//
//	// or, for an HTTP response
//	err = render.Draw(canvas, g, res.Path, rng, opts)
//	err = canvas.EncodePNG(w)
//
// # JSON Output
//
// [WriteLayoutJSON] recomputes the deterministic layout and writes node
// positions, edges (flagged when on the path) and the route outcome. Node
// colours are per-render and never exported.
//
// [render.Output]: github.com/matzehuels/routemap/pkg/render.Output
package sink
