package rank

import (
	"slices"
	"testing"

	"github.com/matzehuels/iisrank/pkg/network"
)

func TestTable(t *testing.T) {
	tbl := NewTable(4)
	if tbl.Len() != 0 {
		t.Fatalf("new table Len() = %d, want 0", tbl.Len())
	}

	tbl.Append(Record{Model: network.ErdosRenyi, Round: 0, Node: 12, Rank: 3})
	tbl.Append(Record{Model: network.ScaleFree, Round: 0, Node: 12, Rank: 40})
	tbl.Append(Record{Model: network.ErdosRenyi, Round: 1, Node: 12, Rank: 7})

	if tbl.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tbl.Len())
	}
	if tbl.Count(network.ErdosRenyi) != 2 || tbl.Count(network.ScaleFree) != 1 {
		t.Errorf("Count() = %d/%d, want 2/1", tbl.Count(network.ErdosRenyi), tbl.Count(network.ScaleFree))
	}
	if got := tbl.Ranks(network.ErdosRenyi); !slices.Equal(got, []float64{3, 7}) {
		t.Errorf("Ranks(ER) = %v, want [3 7]", got)
	}
	if got := tbl.Records()[1]; got.Model != network.ScaleFree || got.Rank != 40 {
		t.Errorf("Records()[1] = %+v", got)
	}
}

func TestTableGroupsOrder(t *testing.T) {
	tbl := NewTable(0)
	tbl.Append(Record{Model: network.ScaleFree, Rank: 1})

	groups := tbl.Groups()
	if len(groups) != 2 {
		t.Fatalf("Groups() len = %d, want 2", len(groups))
	}
	if groups[0].Model != network.ErdosRenyi || groups[1].Model != network.ScaleFree {
		t.Errorf("Groups() order = %v, %v", groups[0].Model, groups[1].Model)
	}
	if len(groups[0].Ranks) != 0 || len(groups[1].Ranks) != 1 {
		t.Errorf("Groups() sizes = %d, %d, want 0, 1", len(groups[0].Ranks), len(groups[1].Ranks))
	}
}

func TestNewTableNegativeCapacity(t *testing.T) {
	tbl := NewTable(-5)
	tbl.Append(Record{Rank: 1})
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
}
