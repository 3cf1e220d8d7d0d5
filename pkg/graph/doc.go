// Package graph provides the weighted undirected graph that routemap queries
// and renders.
//
// # Overview
//
// A [Graph] is built once from a sequence of edge records and is treated as
// immutable afterwards. Every record (A, B, w) is stored twice, once in each
// endpoint's adjacency sequence, so the graph is undirected by construction:
//
//	g := graph.New()
//	g.AddEdge("A", "B", 4)
//	g.AddEdge("B", "C", 3)
//
//	g.Neighbors("B") // [{A 4} {C 3}]
//	g.Nodes()        // [A B C]
//
// Parallel records between the same pair are kept as separate entries; they
// are never merged or deduplicated.
//
// # Ordering
//
// Nodes are reported in first-seen order and each adjacency sequence follows
// record order. Layout and rendering depend on this order, so two graphs built
// from identical records always draw identically.
//
// # Index Access
//
// Search algorithms work on dense integer indices rather than labels.
// [Graph.Index], [Graph.Label] and [Graph.Arcs] expose the internal arena
// directly; labels are only needed again when a result is reported.
//
// # Weights
//
// The graph stores whatever integer weight it is given. Rejecting negative
// weights is the job of the ingestion layer (see pkg/io).
package graph
