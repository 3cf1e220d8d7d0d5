package graph

import "slices"

// Edge is one adjacency entry as seen from a node: the neighbor it leads to
// and the weight of the record that created it.
type Edge struct {
	To     string
	Weight int
}

// Record is an undirected edge exactly as it was added to the graph.
type Record struct {
	From   string
	To     string
	Weight int
}

// Arc is the index-level form of an [Edge]. To is a node index as returned
// by [Graph.Index].
type Arc struct {
	To     int
	Weight int
}

// Graph is a weighted undirected multigraph keyed by string labels.
//
// The zero value is not usable - use New to create a Graph.
// Graph is not safe for concurrent mutation; once built it may be read from
// any number of goroutines.
type Graph struct {
	index   map[string]int
	labels  []string
	arcs    [][]Arc
	records []Record
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddEdge records an undirected edge between source and destination.
// Destination is appended to source's adjacency sequence and source to
// destination's, both with the given weight. Nodes that have not been seen
// before are created in the order they appear.
//
// AddEdge never fails and does not validate the weight.
func (g *Graph) AddEdge(source, destination string, weight int) {
	s := g.intern(source)
	d := g.intern(destination)
	g.arcs[s] = append(g.arcs[s], Arc{To: d, Weight: weight})
	g.arcs[d] = append(g.arcs[d], Arc{To: s, Weight: weight})
	g.records = append(g.records, Record{From: source, To: destination, Weight: weight})
}

// AddNode ensures node exists without adding any edge. It is a no-op for a
// node that is already known.
func (g *Graph) AddNode(node string) {
	g.intern(node)
}

func (g *Graph) intern(label string) int {
	if i, ok := g.index[label]; ok {
		return i
	}
	i := len(g.labels)
	g.index[label] = i
	g.labels = append(g.labels, label)
	g.arcs = append(g.arcs, nil)
	return i
}

// Neighbors returns the adjacency sequence of node in record order.
// Unknown nodes yield an empty sequence. The returned slice is a copy.
func (g *Graph) Neighbors(node string) []Edge {
	i, ok := g.index[node]
	if !ok {
		return []Edge{}
	}
	out := make([]Edge, len(g.arcs[i]))
	for k, a := range g.arcs[i] {
		out[k] = Edge{To: g.labels[a.To], Weight: a.Weight}
	}
	return out
}

// Nodes returns all node labels in first-seen order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.labels)
}

// Edges returns every added record in insertion order. Each undirected edge
// appears once.
func (g *Graph) Edges() []Record {
	return slices.Clone(g.records)
}

// Has reports whether node appeared in any record.
func (g *Graph) Has(node string) bool {
	_, ok := g.index[node]
	return ok
}

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.labels) }

// EdgeCount returns the number of records added. Parallel records count
// separately.
func (g *Graph) EdgeCount() int { return len(g.records) }

// Index returns the dense index of node, which is its position in [Graph.Nodes].
func (g *Graph) Index(node string) (int, bool) {
	i, ok := g.index[node]
	return i, ok
}

// Label returns the label of the node at index i.
// It panics if i is out of range.
func (g *Graph) Label(i int) string { return g.labels[i] }

// Arcs returns the adjacency sequence of the node at index i.
// The slice is shared with the graph and must not be modified.
func (g *Graph) Arcs(i int) []Arc { return g.arcs[i] }
