package rank

import "github.com/matzehuels/iisrank/pkg/network"

// Record is one row of the result table: the rank a key node reached in one
// simulated network.
type Record struct {
	Model network.Model
	Round int // 0-based simulation round
	Node  int // 1-based key node
	Rank  int
}

// Table is the append-only result table of a simulation run.
// It is not safe for concurrent use.
type Table struct {
	records []Record
}

// NewTable returns an empty table with room for capacity records.
func NewTable(capacity int) *Table {
	return &Table{records: make([]Record, 0, max(capacity, 0))}
}

// Append adds a record.
func (t *Table) Append(r Record) {
	t.records = append(t.records, r)
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Records returns the records in insertion order. The slice is shared with
// the table and must not be modified.
func (t *Table) Records() []Record { return t.records }

// Count returns the number of records for model m.
func (t *Table) Count(m network.Model) int {
	n := 0
	for _, r := range t.records {
		if r.Model == m {
			n++
		}
	}
	return n
}

// Ranks returns the ranks recorded for model m in insertion order.
func (t *Table) Ranks(m network.Model) []float64 {
	out := make([]float64, 0, t.Count(m))
	for _, r := range t.records {
		if r.Model == m {
			out = append(out, float64(r.Rank))
		}
	}
	return out
}

// Group is the rank sample of one model.
type Group struct {
	Model network.Model
	Ranks []float64
}

// Groups partitions the table by model in [network.Models] order. Models
// without records yield empty groups so the category order is fixed.
func (t *Table) Groups() []Group {
	out := make([]Group, len(network.Models))
	for i, m := range network.Models {
		out[i] = Group{Model: m, Ranks: t.Ranks(m)}
	}
	return out
}
