// Package config loads render settings from a TOML file.
//
// A config file may set any subset of the canvas, node, line and colour
// values; omitted values keep their defaults:
//
//	[canvas]
//	width = 1600
//	height = 1000
//	radius = 400
//
//	[node]
//	width = 100
//	height = 40
//
//	[line]
//	edge_width = 2
//	path_width = 8
//
//	[colors]
//	background = "#ffffff"
//	edge = "#808080"
//	path = "#ff0000"
//	outline = "#000000"
//	label = "#000000"
//	weight = "#0000ff"
//
// Unknown sections or keys are rejected so that typos do not go unnoticed.
package config

import (
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/routemap/pkg/errors"
	"github.com/matzehuels/routemap/pkg/render"
)

// File mirrors the TOML document. Zero values mean "not set".
type File struct {
	Canvas Canvas `toml:"canvas"`
	Node   Node   `toml:"node"`
	Line   Line   `toml:"line"`
	Colors Colors `toml:"colors"`
}

type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Radius int `toml:"radius"`
}

type Node struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Line struct {
	EdgeWidth float64 `toml:"edge_width"`
	PathWidth float64 `toml:"path_width"`
}

// Colors holds hex colour strings such as "#ff0000".
type Colors struct {
	Background string `toml:"background"`
	Edge       string `toml:"edge"`
	Path       string `toml:"path"`
	Outline    string `toml:"outline"`
	Label      string `toml:"label"`
	Weight     string `toml:"weight"`
}

// Load reads and decodes the config file at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open config %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a TOML config from r.
func Decode(r io.Reader) (*File, error) {
	var cfg File
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// Apply overlays the values set in f onto opts and validates the result.
func (f *File) Apply(opts *render.Options) error {
	setInt(&opts.Width, f.Canvas.Width)
	setInt(&opts.Height, f.Canvas.Height)
	setInt(&opts.Radius, f.Canvas.Radius)
	setInt(&opts.BoxWidth, f.Node.Width)
	setInt(&opts.BoxHeight, f.Node.Height)
	if f.Line.EdgeWidth != 0 {
		opts.EdgeWidth = f.Line.EdgeWidth
	}
	if f.Line.PathWidth != 0 {
		opts.PathWidth = f.Line.PathWidth
	}

	colors := []struct {
		name string
		hex  string
		dst  *color.Color
	}{
		{"background", f.Colors.Background, &opts.Palette.Background},
		{"edge", f.Colors.Edge, &opts.Palette.Edge},
		{"path", f.Colors.Path, &opts.Palette.Path},
		{"outline", f.Colors.Outline, &opts.Palette.Outline},
		{"label", f.Colors.Label, &opts.Palette.Label},
		{"weight", f.Colors.Weight, &opts.Palette.Weight},
	}
	for _, c := range colors {
		if c.hex == "" {
			continue
		}
		parsed, err := ParseColor(c.hex)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "colors.%s", c.name)
		}
		*c.dst = parsed
	}

	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid render settings")
	}
	return nil
}

// ParseColor converts a hex colour string to an opaque RGBA value.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
