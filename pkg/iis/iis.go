// Package iis computes the IIS node-importance score.
//
// IIS blends two per-vertex components:
//
//   - normalized degree centrality, (in+out) / (n-1)
//   - an overlap term drawn uniformly from [0, 0.1)
//
// The overlap term is a random placeholder and is not derived from graph
// structure. Scores are
//
//	score = degree*(1-w) + overlap*w
//
// for an overlap weight w in [0, 1]. With w = 0 the score is exactly the
// degree centrality; with w = 1 it is exactly the overlap draw.
package iis

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/iisrank/pkg/errors"
	"github.com/matzehuels/iisrank/pkg/network"
)

const (
	// DefaultOverlapWeight is the blend weight used when none is configured.
	DefaultOverlapWeight = 0.5

	// OverlapMax is the exclusive upper bound of the overlap draw.
	OverlapMax = 0.1
)

// Score returns the IIS score of every vertex of g, indexed by vertex.
// One overlap value is drawn from rng per vertex regardless of w, so the
// random stream consumed by a round does not depend on the weight.
func Score(rng *rand.Rand, g *network.Graph, w float64) ([]float64, error) {
	if err := CheckWeight(w); err != nil {
		return nil, err
	}
	deg, err := DegreeCentrality(g)
	if err != nil {
		return nil, err
	}
	return Blend(deg, Overlap(rng, g.Order()), w), nil
}

// CheckWeight rejects overlap weights outside [0, 1].
func CheckWeight(w float64) error {
	if !(w >= 0 && w <= 1) {
		return errors.Config("overlap weight %v outside [0, 1]", w)
	}
	return nil
}

// DegreeCentrality returns each vertex's total degree divided by n-1.
func DegreeCentrality(g *network.Graph) ([]float64, error) {
	n := g.Order()
	if n < 2 {
		return nil, errors.Config("degree centrality needs >= 2 vertices, got %d", n)
	}
	out := make([]float64, n)
	norm := float64(n - 1)
	for v, d := range g.Degrees() {
		out[v] = float64(d) / norm
	}
	return out, nil
}

// Overlap draws n placeholder overlap values uniformly from [0, OverlapMax).
func Overlap(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64() * OverlapMax
	}
	return out
}

// Blend combines degree and overlap as degree*(1-w) + overlap*w.
// The slices must have equal length.
func Blend(degree, overlap []float64, w float64) []float64 {
	out := make([]float64, len(degree))
	floats.ScaleTo(out, 1-w, degree)
	floats.AddScaled(out, w, overlap)
	return out
}
