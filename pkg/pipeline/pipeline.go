// Package pipeline provides the load → query → render pipeline for routemap.
//
// The CLI and the HTTP server both drive this package so that an edge list
// is interpreted, searched and drawn the same way regardless of entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read an edge list (CSV or JSON) into a [graph.Graph]
//  2. Query: Find the cheapest path between two nodes with [route.Find]
//  3. Render: Draw the graph with the path highlighted in each requested
//     format (png, svg, dot, json)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "cities.csv",
//	    From:    "A",
//	    To:      "D",
//	    Formats: []string{"png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Route, result.Files)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/routemap/pkg/errors"
	"github.com/matzehuels/routemap/pkg/graph"
	"github.com/matzehuels/routemap/pkg/render"
	"github.com/matzehuels/routemap/pkg/route"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultOutput is the output path stem; each format appends its extension.
const DefaultOutput = "graph"

// DefaultEngine is the Graphviz engine used for svg output.
const DefaultEngine = "circo"

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// DefaultFormats is the format list used when none is requested.
var DefaultFormats = []string{FormatPNG}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Input string // edge list path (.csv or .json)

	// Query options
	From string
	To   string

	// Render options
	Output   string   // output path stem, "graph" by default
	Formats  []string // png, svg, dot, json
	PathFile string   // when set and a path exists, the path is written here
	Seed     uint64   // node colour seed; 0 picks a fresh one each run
	Engine   string   // Graphviz engine for svg
	Render   render.Options

	// Runtime options
	Logger *log.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded edge list.
	Graph *graph.Graph

	// Route is the query outcome. Route.Found is false when no path exists.
	Route route.Result

	// Files lists the written output files in format order.
	Files []string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	QueryTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Input, From and To are trimmed and required.
func (o *Options) ValidateAndSetDefaults() error {
	o.Input = strings.TrimSpace(o.Input)
	o.From = strings.TrimSpace(o.From)
	o.To = strings.TrimSpace(o.To)

	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file is required")
	}
	if o.From == "" || o.To == "" {
		return errors.New(errors.ErrCodeInvalidInput, "start and end nodes are required")
	}
	return o.ValidateForRender()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	o.Render.SetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return o.Render.Validate()
}

// Target returns the output file for format.
func (o *Options) Target(format string) string {
	return fmt.Sprintf("%s.%s", o.Output, format)
}
