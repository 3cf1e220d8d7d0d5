// Package layout places graph nodes on a canvas.
//
// [Circular] distributes nodes evenly on a circle centered in the canvas,
// in the order they are given. The result depends only on that order and on
// the options, so repeated calls return identical coordinates. The layout
// does not try to reduce edge crossings or reflect weights spatially.
package layout

import (
	"image"
	"math"
)

// Options configures the canvas the layout is computed for.
type Options struct {
	Width  int // canvas width in pixels
	Height int // canvas height in pixels
	Radius int // circle radius in pixels
}

// Layout maps node labels to integer pixel coordinates.
type Layout struct {
	Width     int
	Height    int
	Center    image.Point
	Radius    int
	Order     []string               // nodes in placement order
	Positions map[string]image.Point // node -> center of its box
}

// Circular places nodes[i] at angle i*2π/N on a circle of opts.Radius around
// the canvas center, rounded to the nearest pixel.
//
// With no nodes the layout is empty. A single node sits at angle 0, directly
// to the right of the center.
func Circular(nodes []string, opts Options) Layout {
	l := Layout{
		Width:     opts.Width,
		Height:    opts.Height,
		Center:    image.Pt(opts.Width/2, opts.Height/2),
		Radius:    opts.Radius,
		Order:     append([]string(nil), nodes...),
		Positions: make(map[string]image.Point, len(nodes)),
	}

	n := len(nodes)
	if n == 0 {
		return l
	}
	step := 0.0
	if n > 1 {
		step = 2 * math.Pi / float64(n)
	}

	r := float64(opts.Radius)
	for i, node := range nodes {
		theta := float64(i) * step
		l.Positions[node] = image.Pt(
			l.Center.X+int(math.Round(r*math.Cos(theta))),
			l.Center.Y+int(math.Round(r*math.Sin(theta))),
		)
	}
	return l
}

// Position returns the coordinate of node.
func (l Layout) Position(node string) (image.Point, bool) {
	p, ok := l.Positions[node]
	return p, ok
}

// Midpoint returns the integer midpoint between the positions of a and b.
func (l Layout) Midpoint(a, b string) (image.Point, bool) {
	pa, okA := l.Positions[a]
	pb, okB := l.Positions[b]
	if !okA || !okB {
		return image.Point{}, false
	}
	return image.Pt((pa.X+pb.X)/2, (pa.Y+pb.Y)/2), true
}
