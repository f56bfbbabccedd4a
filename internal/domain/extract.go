package domain

// LargestRun finds the highest-scoring joker-free run that can be built from pool.
// Jokers in the pool are ignored. Ties keep the first candidate in color order,
// lowest start first.
func LargestRun(pool []Tile) (Run, bool) {
	var best Run
	var bestScore Score
	found := false

	for _, c := range Colors() {
		var present [int(MaxNumber) + 2]bool
		for _, t := range pool {
			if !t.joker && t.color == c && t.number.Valid() {
				present[t.number] = true
			}
		}

		// Every maximal stretch of consecutive numbers is a candidate; any shorter
		// run inside a stretch scores less.
		for n := int(MinNumber); n <= int(MaxNumber); {
			if !present[n] {
				n++
				continue
			}
			start := n
			for n <= int(MaxNumber) && present[n] {
				n++
			}
			run, err := RunOf(Number(start), c, n-start)
			if err != nil {
				continue
			}
			if s := run.Score(OnRack); !found || s > bestScore {
				best, bestScore, found = run, s, true
			}
		}
	}
	return best, found
}

// LargestGroup finds the highest-scoring joker-free group that can be built from pool.
func LargestGroup(pool []Tile) (Group, bool) {
	var best Group
	var bestScore Score
	found := false

	for n := MinNumber; n <= MaxNumber; n++ {
		var colors []Color
		for _, c := range Colors() {
			for _, t := range pool {
				if !t.joker && t.color == c && t.number == n {
					colors = append(colors, c)
					break
				}
			}
		}
		group, err := GroupOf(n, colors)
		if err != nil {
			continue
		}
		if s := group.Score(OnRack); !found || s > bestScore {
			best, bestScore, found = group, s, true
		}
	}
	return best, found
}

// ExtractSets partitions pool greedily: the largest run is taken out repeatedly until
// none is left, then the same is done for groups. Runs win any tile both could use.
// The tiles that fit nowhere are returned in their original order.
func ExtractSets(pool []Tile) ([]Set, []Tile) {
	remaining := cloneTiles(pool)
	var sets []Set

	for {
		run, ok := LargestRun(remaining)
		if !ok {
			break
		}
		rest, err := RemoveTiles(remaining, run.Tiles())
		if err != nil {
			break
		}
		sets = append(sets, RunSet(run))
		remaining = rest
	}

	for {
		group, ok := LargestGroup(remaining)
		if !ok {
			break
		}
		rest, err := RemoveTiles(remaining, group.Tiles())
		if err != nil {
			break
		}
		sets = append(sets, GroupSet(group))
		remaining = rest
	}

	return sets, remaining
}
