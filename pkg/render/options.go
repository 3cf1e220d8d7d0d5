package render

import (
	"image/color"

	"github.com/matzehuels/routemap/pkg/errors"
	"github.com/matzehuels/routemap/pkg/render/layout"
)

// Default canvas and drawing values.
const (
	DefaultWidth     = 1200
	DefaultHeight    = 800
	DefaultRadius    = 300
	DefaultBoxWidth  = 80
	DefaultBoxHeight = 40
	DefaultEdgeWidth = 2.0
	DefaultPathWidth = 6.0

	// labelInset is the offset of a node label from its box's top-left corner.
	labelInset = 5
)

// Palette holds the fixed colours of a render. Node fills are random and
// not part of the palette.
type Palette struct {
	Background color.Color
	Edge       color.Color
	Path       color.Color
	Outline    color.Color
	Label      color.Color
	Weight     color.Color
}

// DefaultPalette returns white background, grey edges, red path, black
// outlines and labels, and blue weights.
func DefaultPalette() Palette {
	return Palette{
		Background: color.White,
		Edge:       color.RGBA{128, 128, 128, 255},
		Path:       color.RGBA{255, 0, 0, 255},
		Outline:    color.Black,
		Label:      color.Black,
		Weight:     color.RGBA{0, 0, 255, 255},
	}
}

// Options configures a render.
type Options struct {
	Width     int     // canvas width in pixels
	Height    int     // canvas height in pixels
	Radius    int     // layout circle radius in pixels
	BoxWidth  int     // node box width
	BoxHeight int     // node box height
	EdgeWidth float64 // stroke width of plain edges
	PathWidth float64 // stroke width of the highlighted path
	Palette   Palette
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Radius:    DefaultRadius,
		BoxWidth:  DefaultBoxWidth,
		BoxHeight: DefaultBoxHeight,
		EdgeWidth: DefaultEdgeWidth,
		PathWidth: DefaultPathWidth,
		Palette:   DefaultPalette(),
	}
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	d := DefaultOptions()
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.Radius == 0 {
		o.Radius = d.Radius
	}
	if o.BoxWidth == 0 {
		o.BoxWidth = d.BoxWidth
	}
	if o.BoxHeight == 0 {
		o.BoxHeight = d.BoxHeight
	}
	if o.EdgeWidth == 0 {
		o.EdgeWidth = d.EdgeWidth
	}
	if o.PathWidth == 0 {
		o.PathWidth = d.PathWidth
	}
	p := &o.Palette
	if p.Background == nil {
		p.Background = d.Palette.Background
	}
	if p.Edge == nil {
		p.Edge = d.Palette.Edge
	}
	if p.Path == nil {
		p.Path = d.Palette.Path
	}
	if p.Outline == nil {
		p.Outline = d.Palette.Outline
	}
	if p.Label == nil {
		p.Label = d.Palette.Label
	}
	if p.Weight == nil {
		p.Weight = d.Palette.Weight
	}
}

// Validate rejects sizes that cannot produce an image.
func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "canvas size must be positive, got %dx%d", o.Width, o.Height)
	case o.Radius < 0:
		return errors.New(errors.ErrCodeInvalidInput, "radius must not be negative, got %d", o.Radius)
	case o.BoxWidth <= 0 || o.BoxHeight <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "node box size must be positive, got %dx%d", o.BoxWidth, o.BoxHeight)
	case o.EdgeWidth <= 0 || o.PathWidth <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "line widths must be positive")
	}
	return nil
}

// LayoutOptions returns the layout parameters for these options.
func (o Options) LayoutOptions() layout.Options {
	return layout.Options{Width: o.Width, Height: o.Height, Radius: o.Radius}
}
