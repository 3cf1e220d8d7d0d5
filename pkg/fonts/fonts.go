// Package fonts provides the font faces used for raster labels.
//
// The Go Regular typeface ships inside golang.org/x/image, so labels render
// identically on every machine without system font lookups.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultSize is the label size in points at 72 DPI.
const DefaultSize = 12.0

// Parsed once on first access.
var (
	regular     *opentype.Font
	regularErr  error
	regularOnce sync.Once
)

func parsed() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a Go Regular face of the given size in points.
// A non-positive size selects DefaultSize.
func Face(size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultSize
	}
	f, err := parsed()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
