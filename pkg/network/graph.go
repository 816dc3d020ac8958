package network

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Edge is a directed edge between two vertex indices.
type Edge struct {
	From int
	To   int
}

// Graph is a directed graph over the vertices 0..Order()-1.
//
// Storage is a gonum [simple.DirectedGraph], so self-loops and parallel edges
// cannot be represented. The zero value is not usable; graphs are built by
// [GNP], [BarabasiAlbert] or [New].
type Graph struct {
	g     *simple.DirectedGraph
	order int
	size  int
}

// New returns a graph with n isolated vertices.
func New(n int) *Graph {
	g := simple.NewDirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	return &Graph{g: g, order: n}
}

// AddEdge inserts the directed edge u→v. It reports false without modifying
// the graph when u == v, when either endpoint is out of range, or when the
// edge already exists.
func (g *Graph) AddEdge(u, v int) bool {
	if u == v || u < 0 || v < 0 || u >= g.order || v >= g.order {
		return false
	}
	if g.g.HasEdgeFromTo(int64(u), int64(v)) {
		return false
	}
	g.g.SetEdge(g.g.NewEdge(simple.Node(u), simple.Node(v)))
	g.size++
	return true
}

// HasEdge reports whether the directed edge u→v exists.
func (g *Graph) HasEdge(u, v int) bool {
	return g.g.HasEdgeFromTo(int64(u), int64(v))
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return g.order }

// Size returns the number of directed edges.
func (g *Graph) Size() int { return g.size }

// OutDegree returns the number of edges leaving v.
func (g *Graph) OutDegree(v int) int { return g.g.From(int64(v)).Len() }

// InDegree returns the number of edges entering v.
func (g *Graph) InDegree(v int) int { return g.g.To(int64(v)).Len() }

// Degree returns the total degree of v (in + out).
func (g *Graph) Degree(v int) int { return g.InDegree(v) + g.OutDegree(v) }

// Degrees returns the total degree of every vertex, indexed by vertex.
func (g *Graph) Degrees() []int {
	out := make([]int, g.order)
	for v := range out {
		out[v] = g.Degree(v)
	}
	return out
}

// Edges returns every edge sorted by (From, To).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.size)
	for _, e := range graph.EdgesOf(g.g.Edges()) {
		edges = append(edges, Edge{From: int(e.From().ID()), To: int(e.To().ID())})
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
	return edges
}

// Directed exposes the underlying gonum graph for read-only use with gonum
// algorithms.
func (g *Graph) Directed() graph.Directed { return g.g }
