package network

import (
	"math/rand/v2"

	"github.com/matzehuels/iisrank/pkg/errors"
)

// Model identifies a random network model.
type Model int

const (
	// ErdosRenyi includes every ordered vertex pair independently with a
	// fixed probability.
	ErdosRenyi Model = iota
	// ScaleFree grows the graph by preferential attachment.
	ScaleFree
)

// Models lists every model in reporting order.
var Models = []Model{ErdosRenyi, ScaleFree}

// String returns the display label used in plots and logs.
func (m Model) String() string {
	switch m {
	case ErdosRenyi:
		return "Erdős-Renyi"
	case ScaleFree:
		return "Scale-Free"
	default:
		return "unknown"
	}
}

// Key returns the short identifier used on the command line.
func (m Model) Key() string {
	switch m {
	case ErdosRenyi:
		return "er"
	case ScaleFree:
		return "sf"
	default:
		return ""
	}
}

// ParseModel resolves a command-line identifier ("er", "sf") to a Model.
func ParseModel(s string) (Model, error) {
	for _, m := range Models {
		if s == m.Key() {
			return m, nil
		}
	}
	return 0, errors.Config("unknown model %q (must be one of: er, sf)", s)
}

// Params holds the per-round parameters for [Generate].
type Params struct {
	Nodes   int     // vertex count, >= 2
	Density float64 // edge probability for ErdosRenyi, in [0, 1]
	Attach  int     // edges per new vertex for ScaleFree, >= 1
}

// Generate builds one graph of the given model.
func Generate(rng *rand.Rand, m Model, p Params) (*Graph, error) {
	switch m {
	case ErdosRenyi:
		return GNP(rng, p.Nodes, p.Density)
	case ScaleFree:
		return BarabasiAlbert(rng, p.Nodes, p.Attach)
	default:
		return nil, errors.Config("unknown model %d", int(m))
	}
}

// DrawDensity draws an edge probability uniformly from [lo, hi].
func DrawDensity(rng *rand.Rand, lo, hi float64) (float64, error) {
	if !(lo >= 0 && hi <= 1 && lo <= hi) {
		return 0, errors.Config("density range [%v, %v] must satisfy 0 <= min <= max <= 1", lo, hi)
	}
	return lo + rng.Float64()*(hi-lo), nil
}

// GNP returns a directed Erdős–Rényi G(n, p) graph. Each of the n*(n-1) ordered
// pairs (u, v) with u != v is visited in row-major order and kept when a
// uniform draw falls below p. Self-loops are never produced.
func GNP(rng *rand.Rand, n int, p float64) (*Graph, error) {
	if err := checkOrder(n); err != nil {
		return nil, err
	}
	if !(p >= 0 && p <= 1) {
		return nil, errors.Config("density %v outside [0, 1]", p)
	}

	g := New(n)
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if u == v {
				continue
			}
			if rng.Float64() < p {
				if !g.AddEdge(u, v) {
					return nil, errors.New(errors.ErrCodeGeneration, "add edge %d->%d", u, v)
				}
			}
		}
	}
	return g, nil
}

// BarabasiAlbert returns a directed preferential-attachment graph of order n.
//
// Vertex 0 starts alone. Every later vertex v adds min(m, v) outgoing edges
// v→u to distinct earlier vertices, each picked with probability proportional
// to in_degree(u)+1. Attachment weights are refreshed once v has all of its
// edges. Self-loops and parallel edges are never produced.
func BarabasiAlbert(rng *rand.Rand, n, m int) (*Graph, error) {
	if err := checkOrder(n); err != nil {
		return nil, err
	}
	if m < 1 {
		return nil, errors.Config("attachment count must be >= 1, got %d", m)
	}

	g := New(n)
	wt := make([]float64, n)
	taken := make([]bool, n)
	picked := make([]int, 0, m)

	for v := 0; v < n; v++ {
		picked = picked[:0]
		for i := 0; i < min(m, v); i++ {
			u, ok := takeWeighted(rng, wt[:v], taken)
			if !ok {
				return nil, errors.New(errors.ErrCodeGeneration, "depleted attachment distribution at vertex %d", v)
			}
			taken[u] = true
			picked = append(picked, u)
			if !g.AddEdge(v, u) {
				return nil, errors.New(errors.ErrCodeGeneration, "add edge %d->%d", v, u)
			}
		}
		for _, u := range picked {
			taken[u] = false
			wt[u]++
		}
		wt[v] = 1
	}
	return g, nil
}

// takeWeighted draws an index i < len(wt) with probability proportional to
// wt[i], skipping indices already taken.
func takeWeighted(rng *rand.Rand, wt []float64, taken []bool) (int, bool) {
	var total float64
	for i, w := range wt {
		if !taken[i] {
			total += w
		}
	}
	if total <= 0 {
		return 0, false
	}

	r := rng.Float64() * total
	last := -1
	for i, w := range wt {
		if taken[i] || w == 0 {
			continue
		}
		last = i
		if r < w {
			return i, true
		}
		r -= w
	}
	// Rounding can leave r marginally above the final bucket.
	return last, last >= 0
}

func checkOrder(n int) error {
	if n < 2 {
		return errors.Config("node count must be >= 2, got %d", n)
	}
	return nil
}
