package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/routemap/pkg/errors"
	"github.com/matzehuels/routemap/pkg/graph"
	"github.com/matzehuels/routemap/pkg/observability"
	"github.com/matzehuels/routemap/pkg/route"
)

const citiesCSV = `source,destination,weight
A,B,4
B,C,3
A,C,10
C,D,2
`

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cities.csv")
	if err := os.WriteFile(path, []byte(citiesCSV), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"svg", false},
		{"dot", false},
		{"json", false},
		{"pdf", true},
		{"PNG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"png", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"png", "gif"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Input: " cities.csv ", From: " A", To: "D "}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if opts.Input != "cities.csv" || opts.From != "A" || opts.To != "D" {
		t.Errorf("fields not trimmed: %+v", opts)
	}
	if opts.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", opts.Output, DefaultOutput)
	}
	if !slices.Equal(opts.Formats, DefaultFormats) {
		t.Errorf("Formats = %v, want %v", opts.Formats, DefaultFormats)
	}
	if opts.Engine != DefaultEngine {
		t.Errorf("Engine = %q", opts.Engine)
	}
	if opts.Render.Width == 0 || opts.Logger == nil {
		t.Error("render defaults or logger not set")
	}
	if opts.Target("png") != "graph.png" {
		t.Errorf("Target(png) = %q", opts.Target("png"))
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want errors.Code
	}{
		{"missing input", Options{From: "A", To: "B"}, errors.ErrCodeInvalidInput},
		{"missing from", Options{Input: "x.csv", From: "  ", To: "B"}, errors.ErrCodeInvalidInput},
		{"missing to", Options{Input: "x.csv", From: "A"}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Input: "x.csv", From: "A", To: "B", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			if err := opts.ValidateAndSetDefaults(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	input := writeInput(t)
	out := filepath.Join(t.TempDir(), "map")
	pathFile := filepath.Join(t.TempDir(), "path.txt")

	runner := NewRunner(nil)
	res, err := runner.Execute(context.Background(), Options{
		Input:    input,
		From:     "A",
		To:       "D",
		Output:   out,
		Formats:  []string{"png", "dot", "json"},
		PathFile: pathFile,
		Seed:     7,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !res.Route.Found || res.Route.Cost != 9 {
		t.Errorf("Route = %+v, want cost 9", res.Route)
	}
	if want := []string{"A", "B", "C", "D"}; !slices.Equal(res.Route.Path, want) {
		t.Errorf("Path = %v, want %v", res.Route.Path, want)
	}
	if res.Stats.NodeCount != 4 || res.Stats.EdgeCount != 4 {
		t.Errorf("Stats = %+v", res.Stats)
	}

	wantFiles := []string{out + ".png", out + ".dot", out + ".json"}
	if !slices.Equal(res.Files, wantFiles) {
		t.Errorf("Files = %v, want %v", res.Files, wantFiles)
	}
	for _, f := range wantFiles {
		if info, err := os.Stat(f); err != nil || info.Size() == 0 {
			t.Errorf("output %s missing or empty: %v", f, err)
		}
	}

	pf, err := os.ReadFile(pathFile)
	if err != nil {
		t.Fatalf("path file: %v", err)
	}
	if string(pf) != "A --> B --> C --> D" {
		t.Errorf("path file = %q", pf)
	}
}

func TestExecuteNoPath(t *testing.T) {
	input := writeInput(t)
	dir := t.TempDir()
	pathFile := filepath.Join(dir, "path.txt")

	res, err := NewRunner(nil).Execute(context.Background(), Options{
		Input:    input,
		From:     "A",
		To:       "Nowhere",
		Output:   filepath.Join(dir, "graph"),
		Formats:  []string{"dot"},
		PathFile: pathFile,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Route.Found {
		t.Errorf("Route = %+v, want not found", res.Route)
	}
	if _, err := os.Stat(pathFile); !os.IsNotExist(err) {
		t.Error("path file written for a query without a path")
	}
	if len(res.Files) != 1 {
		t.Errorf("Files = %v, want the graph still rendered", res.Files)
	}
}

func TestExecuteMissingInput(t *testing.T) {
	_, err := NewRunner(nil).Execute(context.Background(), Options{
		Input: filepath.Join(t.TempDir(), "missing.csv"),
		From:  "A",
		To:    "B",
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRenderArtifact(t *testing.T) {
	g := graph.New()
	g.AddEdge("A", "B", 4)
	g.AddEdge("B", "C", 3)
	res := route.Find(g, "A", "C")
	ctx := context.Background()

	data, err := RenderArtifact(ctx, g, res, FormatPNG, Options{Seed: 1})
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1200 || b.Dy() != 800 {
		t.Errorf("png size = %dx%d", b.Dx(), b.Dy())
	}

	dot, err := RenderArtifact(ctx, g, res, FormatDOT, Options{})
	if err != nil {
		t.Fatalf("dot: %v", err)
	}
	if !strings.Contains(string(dot), `"A" -- "B" [label="4", color="#ff0000", penwidth=3]`) {
		t.Errorf("dot output missing highlighted edge:\n%s", dot)
	}

	if _, err := RenderArtifact(ctx, g, res, "gif", Options{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("gif err = %v, want INVALID_FORMAT", err)
	}
}

func TestPathFileRoundTrip(t *testing.T) {
	target := filepath.Join(t.TempDir(), "path.txt")
	res := route.Result{Found: true, Cost: 3, Path: []string{"New York", "Boston", "Portland"}}
	if err := WritePathFile(target, res); err != nil {
		t.Fatal(err)
	}
	got, err := ReadPathFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, res.Path) {
		t.Errorf("ReadPathFile = %v, want %v", got, res.Path)
	}

	if _, err := ReadPathFile(filepath.Join(t.TempDir(), "none.txt")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing path file err = %v", err)
	}
}

func TestNewRandSeeded(t *testing.T) {
	a, b := NewRand(5), NewRand(5)
	for range 10 {
		if a.Uint64() != b.Uint64() {
			t.Fatal("same seed produced different sequences")
		}
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.add("load-start") }
func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, _, _ int, _ time.Duration, err error) {
	h.add("load-complete")
}
func (h *recordingHooks) OnQueryStart(context.Context, string, string) { h.add("query-start") }
func (h *recordingHooks) OnQueryComplete(context.Context, string, string, bool, int, time.Duration) {
	h.add("query-complete")
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.add("render-start") }
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.add("render-complete")
}

func TestExecuteReportsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	_, err := NewRunner(nil).Execute(context.Background(), Options{
		Input:   writeInput(t),
		From:    "A",
		To:      "C",
		Output:  filepath.Join(t.TempDir(), "graph"),
		Formats: []string{"json"},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"load-start", "load-complete", "query-start", "query-complete", "render-start", "render-complete"}
	if !slices.Equal(hooks.events, want) {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}
