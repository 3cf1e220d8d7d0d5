package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/routemap/pkg/errors"
	"github.com/matzehuels/routemap/pkg/graph"
	rio "github.com/matzehuels/routemap/pkg/io"
	"github.com/matzehuels/routemap/pkg/observability"
	"github.com/matzehuels/routemap/pkg/render"
	"github.com/matzehuels/routemap/pkg/route"
)

// Runner executes pipeline stages and reports them to the registered
// observability hooks.
//
// The Runner is stateless except for the logger; it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner that logs to logger, or to the default logger
// when logger is nil.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → query → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	g, err := r.Load(ctx, opts.Input)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	// Stage 2: Query
	queryStart := time.Now()
	result.Route = r.Query(ctx, g, opts.From, opts.To)
	result.Stats.QueryTime = time.Since(queryStart)

	if opts.PathFile != "" {
		if err := WritePathFile(opts.PathFile, result.Route); err != nil {
			return nil, err
		}
		if result.Route.Found {
			r.Logger.Debug("wrote path file", "path", opts.PathFile)
		}
	}

	// Stage 3: Render
	renderStart := time.Now()
	files, err := r.Render(ctx, g, result.Route, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Files = files
	result.Stats.RenderTime = time.Since(renderStart)

	return result, nil
}

// Load reads the edge list at path.
func (r *Runner) Load(ctx context.Context, path string) (*graph.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	g, err := rio.Import(path)
	if err != nil {
		hooks.OnLoadComplete(ctx, path, 0, 0, time.Since(start), err)
		return nil, err
	}
	duration := time.Since(start)
	hooks.OnLoadComplete(ctx, path, g.NodeCount(), g.EdgeCount(), duration, nil)

	r.Logger.Info("loaded graph",
		"source", path,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", duration)
	return g, nil
}

// Query finds the cheapest path from from to to. Labels that are not in
// the graph are logged as warnings and still queried, which yields no path.
func (r *Runner) Query(ctx context.Context, g *graph.Graph, from, to string) route.Result {
	for _, n := range []string{from, to} {
		if !g.Has(n) {
			r.Logger.Warn("node not in graph", "node", n)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnQueryStart(ctx, from, to)
	start := time.Now()
	res := route.Find(g, from, to)
	duration := time.Since(start)
	hooks.OnQueryComplete(ctx, from, to, res.Found, res.Cost, duration)

	if res.Found {
		r.Logger.Info("found path", "from", from, "to", to, "cost", res.Cost, "hops", len(res.Path)-1, "duration", duration)
	} else {
		r.Logger.Info("no path", "from", from, "to", to, "duration", duration)
	}
	return res
}

// Render writes one file per requested format, named by [Options.Target],
// and returns the written paths in format order.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, res route.Result, opts Options) (files []string, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	rng := NewRand(opts.Seed)
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		target := opts.Target(format)
		if err := r.renderFile(ctx, g, res, format, target, rng, opts); err != nil {
			return files, err
		}
		r.Logger.Debug("wrote output", "format", format, "path", target)
		files = append(files, target)
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", time.Since(start))
	return files, nil
}

func (r *Runner) renderFile(ctx context.Context, g *graph.Graph, res route.Result, format, target string, rng *rand.Rand, opts Options) error {
	if format == FormatPNG {
		c, err := newCanvas(opts.Render)
		if err != nil {
			return err
		}
		return render.Render(c, target, g, res.Path, rng, opts.Render)
	}

	data, err := RenderArtifact(ctx, g, res, format, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", target)
	}
	return nil
}
