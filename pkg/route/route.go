// Package route computes shortest paths over a [graph.Graph].
//
// [Find] answers a single start/end query with Dijkstra's algorithm and
// stops as soon as the end node is finalized. [Distances] runs the same
// search to exhaustion and reports the cost of every node.
//
// Weights must be non-negative. This is a precondition, not a runtime check:
// negative weights give unspecified (but terminating) results.
//
// "No path" is a normal outcome. It is reported as a [Result] whose Found
// field is false, never as an error and never as an infinite cost that a
// caller could accidentally add to.
package route

import (
	"container/heap"
	"fmt"
	"strings"

	"github.com/matzehuels/routemap/pkg/graph"
)

// PathSeparator joins path nodes in human-readable output.
const PathSeparator = " --> "

// Result is the outcome of a shortest-path query.
//
// When Found is false, Cost is zero and Path is empty; callers must check
// Found before using either.
type Result struct {
	Found bool
	Cost  int
	Path  []string // start to end inclusive
}

// NotFound is the result of a query whose end is unreachable.
func NotFound() Result { return Result{Path: []string{}} }

// String formats the path as "A --> B --> C", or "infinity (no path)".
func (r Result) String() string {
	if !r.Found {
		return "infinity (no path)"
	}
	return strings.Join(r.Path, PathSeparator)
}

// CostString formats the cost, or "infinity" when no path exists.
func (r Result) CostString() string {
	if !r.Found {
		return "infinity"
	}
	return fmt.Sprint(r.Cost)
}

// Find returns the cheapest path from start to end.
//
// A start equal to end yields cost 0 and the single-node path, whether or not
// the node is in the graph. An unknown start or end, or an end that is not
// connected to start, yields [NotFound].
//
// Ties between equal-cost frontier entries are broken by push order, so the
// same graph and query always produce the same path.
func Find(g *graph.Graph, start, end string) Result {
	if start == end {
		return Result{Found: true, Path: []string{start}}
	}
	s, ok := g.Index(start)
	if !ok {
		return NotFound()
	}
	t, ok := g.Index(end)
	if !ok {
		return NotFound()
	}

	sr := newSearch(g, s)
	last, ok := sr.run(t)
	if !ok {
		return NotFound()
	}
	return Result{
		Found: true,
		Cost:  sr.dist[t],
		Path:  sr.trace(last),
	}
}

// OnPath reports, by record index into g.Edges(), which records path
// travels. For each consecutive pair the cheapest record joining it is
// chosen; among equally cheap parallel records the first wins.
func OnPath(g *graph.Graph, path []string) map[int]bool {
	out := make(map[int]bool)
	if len(path) < 2 {
		return out
	}
	edges := g.Edges()
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		best := -1
		for k, e := range edges {
			if !(e.From == a && e.To == b) && !(e.From == b && e.To == a) {
				continue
			}
			if best < 0 || e.Weight < edges[best].Weight {
				best = k
			}
		}
		if best >= 0 {
			out[best] = true
		}
	}
	return out
}

// PathCost sums the cheapest edge between each consecutive pair of path.
// It reports false when some pair is not joined by an edge or the path is
// empty. A single-node path of a known node costs 0.
func PathCost(g *graph.Graph, path []string) (int, bool) {
	if len(path) == 0 || !g.Has(path[0]) {
		return 0, false
	}
	total := 0
	for i := 0; i+1 < len(path); i++ {
		best := -1
		for _, e := range g.Neighbors(path[i]) {
			if e.To == path[i+1] && (best < 0 || e.Weight < best) {
				best = e.Weight
			}
		}
		if best < 0 {
			return 0, false
		}
		total += best
	}
	return total, true
}

// Distance is the shortest cost from a query's start to Node.
type Distance struct {
	Node      string
	Cost      int
	Reachable bool
}

// Distances returns the shortest cost from start to every node of g, in
// node order. The start itself is reachable at cost 0. When start is not in
// the graph, every node is unreachable.
func Distances(g *graph.Graph, start string) []Distance {
	out := make([]Distance, g.NodeCount())
	for i := range out {
		out[i].Node = g.Label(i)
	}

	s, ok := g.Index(start)
	if !ok {
		return out
	}
	sr := newSearch(g, s)
	sr.run(-1)
	for i := range out {
		if sr.seen[i] {
			out[i].Cost = sr.dist[i]
			out[i].Reachable = true
		}
	}
	return out
}

// step records how a frontier entry was reached. Steps form a tree rooted at
// the start; following parent links yields the entry's accumulated path.
type step struct {
	node   int
	parent int
}

type search struct {
	g     *graph.Graph
	steps []step
	best  []int
	known []bool
	seen  []bool
	dist  []int
	queue frontier
}

func newSearch(g *graph.Graph, start int) *search {
	n := g.NodeCount()
	sr := &search{
		g:     g,
		steps: []step{{node: start, parent: -1}},
		best:  make([]int, n),
		known: make([]bool, n),
		seen:  make([]bool, n),
		dist:  make([]int, n),
	}
	sr.known[start] = true
	sr.queue = frontier{{cost: 0, step: 0}}
	return sr
}

// run pops entries until target is finalized or the frontier is empty.
// A negative target exhausts the frontier. It returns the step that
// finalized target.
func (sr *search) run(target int) (int, bool) {
	for sr.queue.Len() > 0 {
		it := heap.Pop(&sr.queue).(entry)
		node := sr.steps[it.step].node
		if sr.seen[node] {
			continue
		}
		sr.seen[node] = true
		sr.dist[node] = it.cost
		if node == target {
			return it.step, true
		}

		for _, a := range sr.g.Arcs(node) {
			if sr.seen[a.To] {
				continue
			}
			cost := it.cost + a.Weight
			if sr.known[a.To] && cost >= sr.best[a.To] {
				continue
			}
			sr.best[a.To] = cost
			sr.known[a.To] = true
			sr.steps = append(sr.steps, step{node: a.To, parent: it.step})
			heap.Push(&sr.queue, entry{cost: cost, step: len(sr.steps) - 1})
		}
	}
	return 0, false
}

func (sr *search) trace(last int) []string {
	var rev []string
	for i := last; i >= 0; i = sr.steps[i].parent {
		rev = append(rev, sr.g.Label(sr.steps[i].node))
	}
	path := make([]string, len(rev))
	for i, label := range rev {
		path[len(rev)-1-i] = label
	}
	return path
}

// entry is a frontier item. step doubles as the push sequence number since
// steps are appended in push order.
type entry struct {
	cost int
	step int
}

type frontier []entry

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].step < f[j].step
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(entry)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	it := old[n-1]
	*f = old[:n-1]
	return it
}
