package pipeline

import (
	"bytes"
	"context"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/routemap/pkg/errors"
	"github.com/matzehuels/routemap/pkg/graph"
	"github.com/matzehuels/routemap/pkg/render"
	"github.com/matzehuels/routemap/pkg/render/nodelink"
	"github.com/matzehuels/routemap/pkg/render/sink"
	"github.com/matzehuels/routemap/pkg/route"
)

// NewRand returns the colour generator for seed. A zero seed draws a fresh
// seed so that colours differ between runs.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// RenderArtifact renders g with the path of res highlighted in a single
// format and returns the encoded bytes.
func RenderArtifact(ctx context.Context, g *graph.Graph, res route.Result, format string, opts Options) ([]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	switch format {
	case FormatPNG:
		c, err := newCanvas(opts.Render)
		if err != nil {
			return nil, err
		}
		if err := render.Draw(c, g, res.Path, NewRand(opts.Seed), opts.Render); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := c.EncodePNG(&buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode png")
		}
		return buf.Bytes(), nil

	case FormatSVG:
		out, err := nodelink.RenderSVG(ctx, toDOT(g, res, opts))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render svg")
		}
		return out, nil

	case FormatDOT:
		return []byte(toDOT(g, res, opts)), nil

	case FormatJSON:
		var buf bytes.Buffer
		if err := sink.WriteLayoutJSON(&buf, g, res, opts.Render.LayoutOptions()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode layout")
		}
		return buf.Bytes(), nil
	}
	return nil, ValidateFormat(format)
}

func newCanvas(opts render.Options) (*sink.Canvas, error) {
	return sink.NewCanvas(opts.Width, opts.Height, sink.WithBackground(opts.Palette.Background))
}

func toDOT(g *graph.Graph, res route.Result, opts Options) string {
	return nodelink.ToDOT(g, res.Path, nodelink.Options{
		Engine:    opts.Engine,
		PathColor: hexColor(opts.Render),
	})
}

// hexColor converts the path colour for Graphviz, which accepts "#rrggbb".
func hexColor(opts render.Options) string {
	c, ok := colorful.MakeColor(opts.Palette.Path)
	if !ok {
		return ""
	}
	return c.Hex()
}

// WritePathFile writes the path of res as "A --> B --> C" to target.
// Nothing is written when res has no path.
func WritePathFile(target string, res route.Result) error {
	if !res.Found {
		return nil
	}
	if err := os.WriteFile(target, []byte(res.String()), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write path file %s", target)
	}
	return nil
}

// ReadPathFile reads a path written by [WritePathFile].
func ReadPathFile(target string) ([]string, error) {
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open path file %s", target)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return []string{}, nil
	}
	parts := strings.Split(text, strings.TrimSpace(route.PathSeparator))
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, nil
}
