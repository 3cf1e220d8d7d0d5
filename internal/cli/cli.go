// Package cli implements the routemap command-line interface.
//
// # Commands
//
//   - route: find the cheapest path between two nodes and render it
//   - distances: list the cheapest cost from one node to every other
//   - nodes: list the nodes of an edge list
//   - draw: render an edge list with a previously saved path
//   - convert: rewrite a CSV edge list as JSON
//   - serve: expose route rendering over HTTP
//   - version: print build information
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// owned by [CLI] and handed to the pipeline runner and the HTTP server.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/routemap/pkg/buildinfo"
	"github.com/matzehuels/routemap/pkg/config"
	"github.com/matzehuels/routemap/pkg/pipeline"
	"github.com/matzehuels/routemap/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "routemap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w at level. Command output goes
// to each command's stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Routemap finds and draws shortest routes in weighted graphs",
		Long:         `Routemap loads a weighted, undirected edge list, computes the cheapest route between two nodes and draws the graph on a circle with the route highlighted.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.routeCommand())
	root.AddCommand(c.distancesCommand())
	root.AddCommand(c.nodesCommand())
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Shared Flags
// =============================================================================

// renderFlags holds the flags shared by every command that draws.
type renderFlags struct {
	output  string
	formats string
	config  string
	seed    uint64
	width   int
	height  int
	radius  int
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", pipeline.DefaultOutput, "output path stem (extension added per format)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", pipeline.FormatPNG, "output formats: png, svg, dot, json (comma-separated)")
	cmd.Flags().StringVar(&f.config, "config", "", "TOML render configuration file")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "node colour seed (0 for random)")
	cmd.Flags().IntVar(&f.width, "width", 0, "canvas width in pixels")
	cmd.Flags().IntVar(&f.height, "height", 0, "canvas height in pixels")
	cmd.Flags().IntVar(&f.radius, "radius", 0, "layout radius in pixels")
}

// options builds pipeline options: defaults, then the config file, then
// explicit flags.
func (f *renderFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.Options{
		Output:  f.output,
		Formats: parseFormats(f.formats),
		Seed:    f.seed,
		Render:  render.DefaultOptions(),
	}

	if f.config != "" {
		cfg, err := config.Load(f.config)
		if err != nil {
			return opts, err
		}
		if err := cfg.Apply(&opts.Render); err != nil {
			return opts, err
		}
	}

	if cmd.Flags().Changed("width") {
		opts.Render.Width = f.width
	}
	if cmd.Flags().Changed("height") {
		opts.Render.Height = f.height
	}
	if cmd.Flags().Changed("radius") {
		opts.Render.Radius = f.radius
	}

	if err := opts.ValidateForRender(); err != nil {
		return opts, err
	}
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{pipeline.FormatPNG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
