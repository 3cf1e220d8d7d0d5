package render

import (
	"image"
	"image/color"
	"math/rand/v2"
	"strconv"

	"github.com/matzehuels/routemap/pkg/errors"
	"github.com/matzehuels/routemap/pkg/graph"
	"github.com/matzehuels/routemap/pkg/render/layout"
)

// Surface is a canvas that accepts drawing primitives. Coordinates are
// integer pixels with the origin at the top-left corner.
type Surface interface {
	// Line strokes a straight line of the given width.
	Line(from, to image.Point, c color.Color, width float64)
	// Rect fills r and strokes its outline.
	Rect(r image.Rectangle, fill, outline color.Color)
	// Text draws s with its top-left corner at at.
	Text(at image.Point, s string, c color.Color)
}

// Output is a Surface that can persist what was drawn under a target name.
// Implementations decide what the name means (a file path, an object key).
type Output interface {
	Surface
	Save(target string) error
}

// Render draws g and path onto out and saves the result as target.
// See [Draw] for the drawing semantics.
func Render(out Output, target string, g *graph.Graph, path []string, rng *rand.Rand, opts Options) error {
	if err := Draw(out, g, path, rng, opts); err != nil {
		return err
	}
	if err := out.Save(target); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "save %s", target)
	}
	return nil
}

// Draw lays out every node of g on a circle and paints four passes onto s:
// edges, path highlight, node boxes with labels, edge weights.
//
// A path with fewer than two nodes draws no highlight. An empty graph
// draws nothing. When rng is nil a randomly seeded generator is used.
func Draw(s Surface, g *graph.Graph, path []string, rng *rand.Rand, opts Options) error {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	l := layout.Circular(g.Nodes(), opts.LayoutOptions())
	colors := assignColors(l.Order, rng)
	edges := g.Edges()
	p := opts.Palette

	for _, e := range edges {
		s.Line(l.Positions[e.From], l.Positions[e.To], p.Edge, opts.EdgeWidth)
	}

	for i := 0; i+1 < len(path); i++ {
		from, okFrom := l.Position(path[i])
		to, okTo := l.Position(path[i+1])
		if !okFrom || !okTo {
			continue
		}
		s.Line(from, to, p.Path, opts.PathWidth)
	}

	halfW, halfH := opts.BoxWidth/2, opts.BoxHeight/2
	for _, node := range l.Order {
		c := l.Positions[node]
		box := image.Rect(c.X-halfW, c.Y-halfH, c.X+halfW, c.Y+halfH)
		s.Rect(box, colors[node], p.Outline)
		s.Text(image.Pt(box.Min.X+labelInset, c.Y-halfH/2), node, p.Label)
	}

	for _, e := range edges {
		mid, _ := l.Midpoint(e.From, e.To)
		s.Text(mid, strconv.Itoa(e.Weight), p.Weight)
	}
	return nil
}

// assignColors draws one independent RGB triple per node, each channel
// uniform over [0, 255].
func assignColors(nodes []string, rng *rand.Rand) map[string]color.RGBA {
	out := make(map[string]color.RGBA, len(nodes))
	for _, n := range nodes {
		out[n] = color.RGBA{
			R: uint8(rng.IntN(256)),
			G: uint8(rng.IntN(256)),
			B: uint8(rng.IntN(256)),
			A: 255,
		}
	}
	return out
}
