package rearrange

import (
	"math/rand"
	"testing"

	"rummikub/internal/domain"
)

func tiles(t *testing.T, codes ...string) []domain.Tile {
	t.Helper()
	out, err := domain.ParseTiles(codes)
	if err != nil {
		t.Fatalf("ParseTiles(%v) error: %v", codes, err)
	}
	return out
}

func rack(t *testing.T, codes ...string) domain.Rack {
	t.Helper()
	r, err := domain.NewRack(tiles(t, codes...)...)
	if err != nil {
		t.Fatalf("NewRack(%v) error: %v", codes, err)
	}
	return r.WithInitialMeldPlayed()
}

func runOf(t *testing.T, start domain.Number, c domain.Color, length int) domain.Set {
	t.Helper()
	r, err := domain.RunOf(start, c, length)
	if err != nil {
		t.Fatalf("RunOf() error: %v", err)
	}
	return domain.RunSet(r)
}

func parsedRun(t *testing.T, codes ...string) domain.Set {
	t.Helper()
	r, err := domain.ParseRun(tiles(t, codes...))
	if err != nil {
		t.Fatalf("ParseRun(%v) error: %v", codes, err)
	}
	return domain.RunSet(r)
}

func groupOf(t *testing.T, n domain.Number, colors ...domain.Color) domain.Set {
	t.Helper()
	g, err := domain.GroupOf(n, colors)
	if err != nil {
		t.Fatalf("GroupOf() error: %v", err)
	}
	return domain.GroupSet(g)
}

func parsedGroup(t *testing.T, codes ...string) domain.Set {
	t.Helper()
	g, err := domain.ParseGroup(tiles(t, codes...))
	if err != nil {
		t.Fatalf("ParseGroup(%v) error: %v", codes, err)
	}
	return domain.GroupSet(g)
}

func TestRulebookAddTileToMakeNewSet(t *testing.T) {
	table := domain.NewTable(
		groupOf(t, 8, domain.Red, domain.Orange, domain.Black),
		runOf(t, 4, domain.Blue, 3),
	)
	want := domain.NewTable(
		runOf(t, 3, domain.Blue, 4),
		groupOf(t, 8, domain.Red, domain.Orange, domain.Black, domain.Blue),
	)

	for _, policy := range []Policy{PolicyIncremental, PolicyExhaustive, PolicyAuto} {
		t.Run(string(policy), func(t *testing.T) {
			p, ok := Placed(Rearrange(policy, rack(t, "B3", "B8"), table))
			if !ok {
				t.Fatalf("Rearrange(%s) found no placement", policy)
			}
			if !p.Rack.IsEmpty() {
				t.Fatalf("rack should empty, left %v", p.Rack)
			}
			if !p.Table.Equal(want) {
				t.Fatalf("table = %v, want %v", p.Table, want)
			}
		})
	}
}

func TestRulebookSplittingARun(t *testing.T) {
	table := domain.NewTable(runOf(t, 4, domain.Red, 5))
	want := domain.NewTable(runOf(t, 4, domain.Red, 3), runOf(t, 6, domain.Red, 3))

	p, ok := Placed(Rearrange(PolicyIncremental, rack(t, "R6"), table))
	if !ok {
		t.Fatalf("incremental strategy should wedge R6")
	}
	if !p.Rack.IsEmpty() || !p.Table.Equal(want) {
		t.Fatalf("got rack %v table %v", p.Rack, p.Table)
	}

	// A greedy rebuild always re-forms the long run and strands the duplicate.
	if _, ok := Placed(Exhaustive(rack(t, "R6"), table)); ok {
		t.Fatalf("exhaustive strategy should not find the wedge")
	}

	auto, ok := Placed(Rearrange(PolicyAuto, rack(t, "R6"), table))
	if !ok || auto.Strategy != PolicyIncremental {
		t.Fatalf("auto policy = %+v, want incremental placement", auto)
	}
}

func TestIncrementalExtendsEachRunOnce(t *testing.T) {
	table := domain.NewTable(runOf(t, 4, domain.Blue, 3))
	p, ok := Placed(Incremental(rack(t, "B7", "B7"), table))
	if !ok {
		t.Fatalf("expected a placement")
	}
	if p.Table.TileCount() != 4 || p.Rack.Len() != 1 {
		t.Fatalf("duplicate rack tile counted twice: table %v rack %v", p.Table, p.Rack)
	}
	if len(p.Moved) != 1 || p.Moved[0] != domain.Regular(domain.Blue, 7) {
		t.Fatalf("Moved = %v", p.Moved)
	}
}

func TestIncrementalKeepsJokersOnRack(t *testing.T) {
	table := domain.NewTable(groupOf(t, 8, domain.Red, domain.Orange, domain.Black))
	res := Incremental(rack(t, "J", "R1"), table)
	if _, ok := Placed(res); ok {
		t.Fatalf("jokers should stay on the rack while other tiles remain")
	}
	np, ok := res.(NoPlacement)
	if !ok || np.Strategy != PolicyIncremental || np.Reason == "" {
		t.Fatalf("result = %#v", res)
	}
}

func TestIncrementalPlacesLastJokers(t *testing.T) {
	tests := []struct {
		name      string
		table     domain.Table
		rack      []string
		wantTable domain.Table
		wantRack  int
	}{
		{
			name:      "lone joker joins a group",
			table:     domain.NewTable(groupOf(t, 8, domain.Red, domain.Orange, domain.Black)),
			rack:      []string{"J"},
			wantTable: domain.NewTable(parsedGroup(t, "R8", "O8", "K8", "J")),
		},
		{
			name:      "joker extends a run after the regular tile",
			table:     domain.NewTable(runOf(t, 4, domain.Blue, 3)),
			rack:      []string{"B7", "J"},
			wantTable: domain.NewTable(parsedRun(t, "J", "B4", "B5", "B6", "B7")),
		},
		{
			name:      "one joker per set",
			table:     domain.NewTable(runOf(t, 11, domain.Red, 3), runOf(t, 1, domain.Orange, 3)),
			rack:      []string{"J", "J"},
			wantTable: domain.NewTable(parsedRun(t, "J", "R11", "R12", "R13"), parsedRun(t, "O1", "O2", "O3", "J")),
		},
		{
			name:     "full run takes no joker",
			table:    domain.NewTable(runOf(t, 1, domain.Black, 13)),
			rack:     []string{"J"},
			wantRack: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Incremental(rack(t, tt.rack...), tt.table)
			p, ok := Placed(res)
			if tt.wantRack > 0 {
				if ok {
					t.Fatalf("Incremental() placed %v, want no placement", p.Moved)
				}
				return
			}
			if !ok {
				t.Fatalf("Incremental() = %#v, want a placement", res)
			}
			if !p.Rack.IsEmpty() {
				t.Fatalf("rack = %v, want empty", p.Rack)
			}
			if !p.Table.Equal(tt.wantTable) {
				t.Fatalf("table = %v, want %v", p.Table, tt.wantTable)
			}
		})
	}
}

func TestExhaustiveFindsReshuffle(t *testing.T) {
	table := domain.NewTable(
		groupOf(t, 5, domain.Red, domain.Blue, domain.Orange),
		groupOf(t, 6, domain.Red, domain.Blue, domain.Orange),
		groupOf(t, 7, domain.Red, domain.Blue, domain.Orange),
	)
	r := rack(t, "R8")

	if _, ok := Placed(Incremental(r, table)); ok {
		t.Fatalf("incremental strategy cannot place R8 on groups")
	}

	want := domain.NewTable(
		runOf(t, 5, domain.Red, 4),
		runOf(t, 5, domain.Blue, 3),
		runOf(t, 5, domain.Orange, 3),
	)
	for _, policy := range []Policy{PolicyExhaustive, PolicyAuto} {
		p, ok := Placed(Rearrange(policy, r, table))
		if !ok {
			t.Fatalf("Rearrange(%s) found no placement", policy)
		}
		if p.Strategy != PolicyExhaustive {
			t.Fatalf("Strategy = %s, want exhaustive", p.Strategy)
		}
		if !p.Table.Equal(want) || !p.Rack.IsEmpty() {
			t.Fatalf("got table %v rack %v", p.Table, p.Rack)
		}
	}
}

func TestExhaustiveNeverStrandsTableTiles(t *testing.T) {
	table := domain.NewTable(parsedRun(t, "J", "B2", "B3"))
	r := rack(t, "B4")

	if res, ok := Placed(Exhaustive(r, table)); ok {
		t.Fatalf("rebuild would strand the table joker: %v", res.Table)
	}

	p, ok := Placed(Incremental(r, table))
	if !ok {
		t.Fatalf("incremental strategy should extend the run")
	}
	if p.Table.TileCount() != 4 {
		t.Fatalf("table = %v", p.Table)
	}
}

func TestRejectedAttemptLeavesValuesUnchanged(t *testing.T) {
	table := domain.NewTable(runOf(t, 1, domain.Orange, 4))
	r := rack(t, "R1", "B1")
	before := r.Tiles()

	for _, policy := range []Policy{PolicyIncremental, PolicyExhaustive, PolicyAuto} {
		if _, ok := Placed(Rearrange(policy, r, table)); ok {
			t.Fatalf("Rearrange(%s) should find nothing", policy)
		}
	}
	if !domain.SameTiles(r.Tiles(), before) || table.TileCount() != 4 {
		t.Fatalf("inputs changed: rack %v table %v", r, table)
	}
}

func TestUnknownPolicy(t *testing.T) {
	res := Rearrange(Policy("psychic"), rack(t, "R1"), domain.NewTable())
	if _, ok := res.(NoPlacement); !ok {
		t.Fatalf("unknown policy result = %#v", res)
	}
	if _, err := ParsePolicy("psychic"); err == nil {
		t.Fatalf("ParsePolicy should reject unknown names")
	}
	if p, err := ParsePolicy(" Exhaustive "); err != nil || p != PolicyExhaustive {
		t.Fatalf("ParsePolicy() = %v, %v", p, err)
	}
	if p, _ := ParsePolicy(""); p != DefaultPolicy {
		t.Fatalf("empty policy = %v, want %v", p, DefaultPolicy)
	}
}

// TestPlacementContract deals random tables and racks and checks every accepted
// placement against the table/rack accounting rules.
func TestPlacementContract(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		rng := rand.New(rand.NewSource(seed))
		pile := domain.NewBoneyard().Shuffled(rng)

		tableRack, pile, err := pile.DrawRack(40)
		if err != nil {
			t.Fatalf("DrawRack() error: %v", err)
		}
		sets, _ := tableRack.SetsOnRack()
		table := domain.NewTable(sets...)

		playerRack, _, err := pile.DrawRack(domain.InitialRackSize)
		if err != nil {
			t.Fatalf("DrawRack() error: %v", err)
		}
		playerRack = playerRack.WithInitialMeldPlayed()

		for _, policy := range []Policy{PolicyIncremental, PolicyExhaustive, PolicyAuto} {
			p, ok := Placed(Rearrange(policy, playerRack, table))
			if !ok {
				continue
			}
			if !domain.ContainsTiles(p.Table.Tiles(), table.Tiles()) {
				t.Fatalf("seed %d %s: a table tile vanished", seed, policy)
			}
			if p.Table.TileCount() <= table.TileCount() {
				t.Fatalf("seed %d %s: table did not grow", seed, policy)
			}
			if err := p.Table.Validate(); err != nil {
				t.Fatalf("seed %d %s: invalid set: %v", seed, policy, err)
			}
			wantRack, err := playerRack.RemoveTiles(p.Moved...)
			if err != nil || !wantRack.Equal(p.Rack) {
				t.Fatalf("seed %d %s: rack accounting broken", seed, policy)
			}
			if !p.Rack.PlayedInitialMeld() {
				t.Fatalf("seed %d %s: meld flag lost", seed, policy)
			}
		}
	}
}
