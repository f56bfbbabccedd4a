package domain

import (
	"reflect"
	"testing"
)

func TestTableScore(t *testing.T) {
	table := NewTable(
		RunSet(mustRunOf(t, 1, Blue, 3)),
		GroupSet(mustGroupOf(t, 8, Red, Blue, Orange)),
	)
	got, err := table.Score(OnTable)
	if err != nil {
		t.Fatalf("Score(OnTable) error: %v", err)
	}
	if got != 30 {
		t.Fatalf("Score(OnTable) = %d, want 30", got)
	}
	if _, err := table.Score(OnRack); !IsKind(err, KindInvalidScoringRule) {
		t.Fatalf("Score(OnRack) error = %v, want invalid_scoring_rule", err)
	}
}

func TestTableViews(t *testing.T) {
	run := mustRunOf(t, 4, Blue, 3)
	group := mustGroupOf(t, 8, Red, Orange, Black)
	table := NewTable(GroupSet(group), RunSet(run))

	if got := table.Runs(); !reflect.DeepEqual(got, []Run{run}) {
		t.Fatalf("Runs() = %v", got)
	}
	if got := table.Groups(); !reflect.DeepEqual(got, []Group{group}) {
		t.Fatalf("Groups() = %v", got)
	}
	if table.TileCount() != 6 || len(table.Tiles()) != 6 || table.Len() != 2 {
		t.Fatalf("table counts = %d tiles, %d sets", table.TileCount(), table.Len())
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestTablePlaceNewSets(t *testing.T) {
	base := NewTable(RunSet(mustRunOf(t, 1, Red, 3)))
	a := base.PlaceNewSets(RunSet(mustRunOf(t, 5, Red, 3)))
	b := base.PlaceNewSets(GroupSet(mustGroupOf(t, 9, Red, Blue, Black)))

	if base.Len() != 1 {
		t.Fatalf("base table mutated: %v", base)
	}
	if a.Len() != 2 || b.Len() != 2 {
		t.Fatalf("placed tables = %d/%d sets", a.Len(), b.Len())
	}
	if a.Equal(b) {
		t.Fatalf("tables built from the same base must not alias")
	}
}

func TestTableEqualIgnoresOrder(t *testing.T) {
	r := RunSet(mustRunOf(t, 3, Blue, 4))
	g := GroupSet(mustGroupOf(t, 8, Red, Blue, Orange, Black))
	if !NewTable(r, g).Equal(NewTable(g, r)) {
		t.Fatalf("order must not matter")
	}
	if NewTable(r, r).Equal(NewTable(r, g)) {
		t.Fatalf("multiplicity must matter")
	}
	if NewTable(r).Equal(NewTable(r, g)) {
		t.Fatalf("size must matter")
	}
}
