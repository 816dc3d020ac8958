package boxplot

import (
	"slices"

	"github.com/matzehuels/iisrank/pkg/rank"
)

// DefaultWhisker is the whisker reach in multiples of the IQR.
const DefaultWhisker = 1.5

// Box holds the drawn geometry of one series in data units.
type Box struct {
	Q1, Median, Q3 float64
	Low, High      float64   // whisker ends
	Fliers         []float64 // points outside the whiskers, ascending
	Count          int
}

// Stats computes the box for values. whisker is the reach in multiples of the
// IQR. An empty sample yields the zero Box.
func Stats(values []float64, whisker float64) Box {
	if len(values) == 0 {
		return Box{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	s := rank.Summarize(sorted)
	loFence := s.Q1 - whisker*s.IQR()
	hiFence := s.Q3 + whisker*s.IQR()

	b := Box{Q1: s.Q1, Median: s.Median, Q3: s.Q3, Count: s.Count, Low: s.Q1, High: s.Q3}
	for _, v := range sorted {
		if v >= loFence {
			b.Low = min(v, s.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hiFence {
			b.High = max(sorted[i], s.Q3)
			break
		}
	}
	for _, v := range sorted {
		if v < b.Low || v > b.High {
			b.Fliers = append(b.Fliers, v)
		}
	}
	return b
}
