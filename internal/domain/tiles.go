package domain

import "sort"

// TileUniverse is the number of tiles in a complete game.
const TileUniverse = 106

// Decomposer is anything that flattens into an ordered tile list.
type Decomposer interface {
	Tiles() []Tile
}

// TileList adapts a plain slice to Decomposer.
type TileList []Tile

// Tiles returns a copy of the list.
func (l TileList) Tiles() []Tile { return cloneTiles(l) }

// CountTiles builds a multiset of tiles.
func CountTiles(tiles []Tile) map[Tile]int {
	counts := make(map[Tile]int, len(tiles))
	for _, t := range tiles {
		counts[t]++
	}
	return counts
}

// RemoveTiles removes each tile of remove from source once, using multiset semantics.
// Nothing is removed when any tile is missing.
func RemoveTiles(source, remove []Tile) ([]Tile, error) {
	counts := CountTiles(remove)
	have := CountTiles(source)
	for t, n := range counts {
		if have[t] < n {
			return nil, tileError("RemoveTiles", KindTileNotFound, t)
		}
	}

	rem := make([]Tile, 0, len(source)-len(remove))
	for _, t := range source {
		if counts[t] > 0 {
			counts[t]--
			continue
		}
		rem = append(rem, t)
	}
	return rem, nil
}

// ContainsTiles reports whether sub is a sub-multiset of super.
func ContainsTiles(super, sub []Tile) bool {
	have := CountTiles(super)
	for _, t := range sub {
		if have[t] == 0 {
			return false
		}
		have[t]--
	}
	return true
}

// SameTiles reports multiset equality.
func SameTiles(a, b []Tile) bool {
	return len(a) == len(b) && ContainsTiles(a, b)
}

// SortTiles orders tiles by color, then number, with jokers last.
func SortTiles(tiles []Tile) {
	sort.SliceStable(tiles, func(i, j int) bool {
		return tileOrder(tiles[i]) < tileOrder(tiles[j])
	})
}

func tileOrder(t Tile) int {
	if t.joker {
		return colorCount * 100
	}
	return int(t.color)*100 + int(t.number)
}

func cloneTiles(tiles []Tile) []Tile {
	if tiles == nil {
		return nil
	}
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	return out
}

func validateTiles(op string, tiles []Tile) error {
	if len(tiles) > TileUniverse {
		return newError(op, KindTileUniverseExceeded)
	}
	for t, n := range CountTiles(tiles) {
		if !t.Valid() {
			return tileError(op, KindInvalidTile, t)
		}
		// the universe holds two copies of every tile, jokers included
		if n > 2 {
			return tileError(op, KindTileUniverseExceeded, t)
		}
	}
	return nil
}
