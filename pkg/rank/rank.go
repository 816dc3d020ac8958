// Package rank turns score vectors into rank vectors and collects the ranks
// of key nodes across simulation rounds.
//
// Ranking is a double argsort: vertices are ordered by descending score and
// each vertex receives its 1-based position in that order. The sort is
// stable, so equal scores keep vertex-index order and the result is always a
// permutation of 1..n.
package rank

import (
	"cmp"
	"slices"

	"github.com/matzehuels/iisrank/pkg/errors"
)

// Ranks returns the rank of every vertex: 1 for the highest score, len(scores)
// for the lowest.
func Ranks(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})

	ranks := make([]int, len(scores))
	for pos, v := range order {
		ranks[v] = pos + 1
	}
	return ranks
}

// KeyRanks returns the ranks of the given key nodes. Key nodes are 1-based
// vertex identifiers.
func KeyRanks(ranks []int, keyNodes []int) ([]int, error) {
	out := make([]int, len(keyNodes))
	for i, k := range keyNodes {
		if err := CheckKeyNode(k, len(ranks)); err != nil {
			return nil, err
		}
		out[i] = ranks[k-1]
	}
	return out, nil
}

// CheckKeyNode rejects a 1-based key node outside [1, n].
func CheckKeyNode(k, n int) error {
	if k < 1 || k > n {
		return errors.Config("key node %d outside [1, %d]", k, n)
	}
	return nil
}
