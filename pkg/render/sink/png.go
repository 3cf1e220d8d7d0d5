package sink

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/fogleman/gg"

	"github.com/matzehuels/routemap/pkg/errors"
	"github.com/matzehuels/routemap/pkg/fonts"
)

// outlineWidth is the stroke width of node box outlines.
const outlineWidth = 1.0

// CanvasOption configures a raster canvas.
type CanvasOption func(*canvasConfig)

type canvasConfig struct {
	background color.Color
	fontSize   float64
}

// WithBackground sets the colour the canvas is cleared to (default white).
func WithBackground(c color.Color) CanvasOption {
	return func(cfg *canvasConfig) {
		if c != nil {
			cfg.background = c
		}
	}
}

// WithFontSize sets the label size in points (default [fonts.DefaultSize]).
func WithFontSize(pt float64) CanvasOption {
	return func(cfg *canvasConfig) { cfg.fontSize = pt }
}

// Canvas is an in-memory raster surface. It implements render.Output; Save
// writes the image as a PNG file at the target path.
type Canvas struct {
	dc *gg.Context
}

// NewCanvas creates a canvas of width x height pixels cleared to the
// background colour.
func NewCanvas(width, height int, opts ...CanvasOption) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas size must be positive, got %dx%d", width, height)
	}
	cfg := canvasConfig{background: color.White, fontSize: fonts.DefaultSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	face, err := fonts.Face(cfg.fontSize)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load label font")
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(cfg.background)
	dc.Clear()
	dc.SetFontFace(face)
	return &Canvas{dc: dc}, nil
}

// Line strokes a line from one point to another.
func (c *Canvas) Line(from, to image.Point, col color.Color, width float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(float64(from.X), float64(from.Y), float64(to.X), float64(to.Y))
	c.dc.Stroke()
}

// Rect fills r and strokes a one-pixel outline around it.
func (c *Canvas) Rect(r image.Rectangle, fill, outline color.Color) {
	c.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	c.dc.SetColor(fill)
	c.dc.FillPreserve()
	c.dc.SetColor(outline)
	c.dc.SetLineWidth(outlineWidth)
	c.dc.Stroke()
}

// Text draws s with its top-left corner at at.
func (c *Canvas) Text(at image.Point, s string, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(s, float64(at.X), float64(at.Y), 0, 1)
}

// Save writes the canvas to target as a PNG file.
func (c *Canvas) Save(target string) error {
	return c.dc.SavePNG(target)
}

// EncodePNG writes the canvas to w as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.dc.Image())
}

// Image returns the current canvas contents.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}
