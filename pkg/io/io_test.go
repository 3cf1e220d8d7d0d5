package io

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/routemap/pkg/errors"
	"github.com/matzehuels/routemap/pkg/graph"
)

func TestReadCSV(t *testing.T) {
	input := "source,destination,weight\n" +
		"A,B,4\n" +
		"\n" +
		" B , C , 3 \n" +
		"A,C,10\n"

	g, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	want := []graph.Record{{"A", "B", 4}, {"B", "C", 3}, {"A", "C", 10}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	if got := g.Nodes(); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Errorf("Nodes() = %v", got)
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	g, err := ReadCSV(strings.NewReader("source,destination,weight\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if g.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", g.NodeCount())
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
		wantLine string
	}{
		{
			name:     "too few fields",
			input:    "h1,h2,h3\nA,B\n",
			wantCode: errors.ErrCodeInvalidRecord,
			wantLine: "line 2",
		},
		{
			name:     "too many fields",
			input:    "h1,h2,h3\nA,B,1\nA,C,2,3\n",
			wantCode: errors.ErrCodeInvalidRecord,
			wantLine: "line 3",
		},
		{
			name:     "empty label",
			input:    "h1,h2,h3\n ,B,1\n",
			wantCode: errors.ErrCodeInvalidRecord,
			wantLine: "line 2",
		},
		{
			name:     "non-integer weight",
			input:    "h1,h2,h3\nA,B,four\n",
			wantCode: errors.ErrCodeInvalidWeight,
			wantLine: "line 2",
		},
		{
			name:     "fractional weight",
			input:    "h1,h2,h3\nA,B,1.5\n",
			wantCode: errors.ErrCodeInvalidWeight,
			wantLine: "line 2",
		},
		{
			name:     "negative weight",
			input:    "h1,h2,h3\nA,B,1\nB,C,-2\n",
			wantCode: errors.ErrCodeInvalidWeight,
			wantLine: "line 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadCSV(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if g != nil {
				t.Error("partial graph returned alongside error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), tt.wantCode)
			}
			if !strings.Contains(errors.UserMessage(err), tt.wantLine) {
				t.Errorf("message %q does not name %q", errors.UserMessage(err), tt.wantLine)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := graph.New()
	g.AddEdge("Paris", "Berlin", 10)
	g.AddEdge("Rome", "Paris", 12)
	g.AddEdge("Berlin", "Madrid", 0)

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !slices.Equal(back.Edges(), g.Edges()) {
		t.Errorf("edges = %v, want %v", back.Edges(), g.Edges())
	}
	if !slices.Equal(back.Nodes(), g.Nodes()) {
		t.Errorf("nodes = %v, want %v", back.Nodes(), g.Nodes())
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  errors.Code
	}{
		{"malformed", `{"edges": [`, errors.ErrCodeInvalidFormat},
		{"empty label", `{"edges": [{"from": "", "to": "B", "weight": 1}]}`, errors.ErrCodeInvalidRecord},
		{"negative weight", `{"edges": [{"from": "A", "to": "B", "weight": -1}]}`, errors.ErrCodeInvalidWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "cities.csv")
	if err := os.WriteFile(csvPath, []byte("source,destination,weight\nA,B,4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := Import(csvPath)
	if err != nil {
		t.Fatalf("Import(csv): %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}

	jsonPath := filepath.Join(dir, "cities.json")
	if err := ExportJSON(g, jsonPath); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	back, err := Import(jsonPath)
	if err != nil {
		t.Fatalf("Import(json): %v", err)
	}
	if !slices.Equal(back.Edges(), g.Edges()) {
		t.Errorf("edges = %v, want %v", back.Edges(), g.Edges())
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}
