package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/routemap/pkg/graph"
)

type document struct {
	Edges []edge `json:"edges"`
}

type edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

// WriteJSON encodes the edge records of g as JSON and writes them to w.
// The output can be re-imported with [ReadJSON] and yields the same node
// and record order.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	records := g.Edges()
	out := document{Edges: make([]edge, len(records))}
	for i, r := range records {
		out.Edges[i] = edge{From: r.From, To: r.To, Weight: r.Weight}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
