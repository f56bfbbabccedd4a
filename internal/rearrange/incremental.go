package rearrange

import "rummikub/internal/domain"

// Incremental extends the table in place. Each run takes at most one rack tile,
// the first one that fits an edge slot, or failing that a wedge slot. Each group
// then takes at most one tile the same way. Rack jokers are held back until they are
// the only tiles left, then each goes to the first run edge or group that takes it.
func Incremental(rack domain.Rack, table domain.Table) Result {
	work := rack.Tiles()
	var moved []domain.Tile

	// take removes work[i] and records it as moved.
	take := func(i int) {
		moved = append(moved, work[i])
		work = append(work[:i:i], work[i+1:]...)
	}

	var runs []domain.Set
	for _, run := range table.Runs() {
		extended, idx := extendRun(run, work)
		if idx < 0 {
			runs = append(runs, domain.RunSet(run))
			continue
		}
		take(idx)
		for _, r := range extended {
			runs = append(runs, domain.RunSet(r))
		}
	}

	var groups []domain.Set
	for _, group := range table.Groups() {
		grown, idx := extendGroup(group, work)
		if idx < 0 {
			groups = append(groups, domain.GroupSet(group))
			continue
		}
		take(idx)
		groups = append(groups, domain.GroupSet(grown))
	}

	if len(work) > 0 && onlyJokers(work) {
		runs, groups = placeJokers(runs, groups, len(work), func() { take(0) })
	}

	newTable := domain.NewTable(append(runs, groups...)...)
	newRack, err := verify(rack, table, newTable, moved)
	if err != nil {
		return NoPlacement{Strategy: PolicyIncremental, Reason: err.Error()}
	}
	return Placement{Rack: newRack, Table: newTable, Moved: moved, Strategy: PolicyIncremental}
}

// extendRun scans tiles once for the first regular tile matching an edge slot of run,
// then once more for a wedge slot. It returns the resulting runs and the tile index,
// or -1 when nothing fits.
func extendRun(run domain.Run, tiles []domain.Tile) ([]domain.Run, int) {
	for _, slots := range [][]domain.Slot{run.EdgeSlots(), run.WedgeSlots()} {
		for i, t := range tiles {
			if t.IsJoker() {
				continue
			}
			for _, slot := range slots {
				if t != slot.Tile {
					continue
				}
				if out, err := run.InsertTile(t, slot); err == nil {
					return out, i
				}
			}
		}
	}
	return nil, -1
}

// extendGroup returns group grown by the first regular tile that inserts cleanly.
func extendGroup(group domain.Group, tiles []domain.Tile) (domain.Group, int) {
	for i, t := range tiles {
		if t.IsJoker() {
			continue
		}
		if grown, err := group.InsertTile(t); err == nil {
			return grown, i
		}
	}
	return domain.Group{}, -1
}

func onlyJokers(tiles []domain.Tile) bool {
	for _, t := range tiles {
		if !t.IsJoker() {
			return false
		}
	}
	return true
}

// placeJokers puts up to n jokers on the table, at most one per set: run edges first,
// then groups. take is called once per joker placed.
func placeJokers(runs, groups []domain.Set, n int, take func()) ([]domain.Set, []domain.Set) {
	for i := 0; i < len(runs) && n > 0; i++ {
		run, _ := runs[i].AsRun()
		for _, slot := range run.EdgeSlots() {
			out, err := run.InsertTile(domain.Joker(), slot)
			if err != nil {
				continue
			}
			runs[i] = domain.RunSet(out[0])
			take()
			n--
			break
		}
	}
	for i := 0; i < len(groups) && n > 0; i++ {
		group, _ := groups[i].AsGroup()
		grown, err := group.InsertTile(domain.Joker())
		if err != nil {
			continue
		}
		groups[i] = domain.GroupSet(grown)
		take()
		n--
	}
	return runs, groups
}
