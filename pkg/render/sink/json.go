package sink

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/routemap/pkg/graph"
	"github.com/matzehuels/routemap/pkg/render/layout"
	"github.com/matzehuels/routemap/pkg/route"
)

type jsonOutput struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Radius int        `json:"radius"`
	Nodes  []jsonNode `json:"nodes"`
	Edges  []jsonEdge `json:"edges"`
	Route  jsonRoute  `json:"route"`
}

type jsonNode struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

type jsonEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
	OnPath bool   `json:"on_path,omitempty"`
}

type jsonRoute struct {
	Found bool     `json:"found"`
	Cost  *int     `json:"cost,omitempty"`
	Path  []string `json:"path"`
}

// WriteLayoutJSON writes the circular layout of g together with the route
// outcome to w as indented JSON. Edges joining consecutive path nodes are
// flagged with on_path.
func WriteLayoutJSON(w io.Writer, g *graph.Graph, res route.Result, opts layout.Options) error {
	l := layout.Circular(g.Nodes(), opts)
	out := jsonOutput{
		Width:  l.Width,
		Height: l.Height,
		Radius: l.Radius,
		Nodes:  make([]jsonNode, 0, len(l.Order)),
		Edges:  make([]jsonEdge, 0, g.EdgeCount()),
		Route:  jsonRoute{Found: res.Found, Path: res.Path},
	}
	if res.Found {
		cost := res.Cost
		out.Route.Cost = &cost
	}
	if out.Route.Path == nil {
		out.Route.Path = []string{}
	}

	for _, n := range l.Order {
		p := l.Positions[n]
		out.Nodes = append(out.Nodes, jsonNode{ID: n, X: p.X, Y: p.Y})
	}

	onPath := route.OnPath(g, res.Path)
	for i, e := range g.Edges() {
		out.Edges = append(out.Edges, jsonEdge{
			From:   e.From,
			To:     e.To,
			Weight: e.Weight,
			OnPath: onPath[i],
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
