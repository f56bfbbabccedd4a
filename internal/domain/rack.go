package domain

import (
	"fmt"
	"strings"
)

// InitialRackSize is the number of tiles dealt to each player.
const InitialRackSize = 14

// Rack is a player's private tiles plus whether their initial meld is down.
// Racks are values: every change returns a new Rack.
type Rack struct {
	tiles             []Tile
	playedInitialMeld bool
}

// NewRack builds a rack that has not yet played its initial meld.
func NewRack(tiles ...Tile) (Rack, error) {
	if err := validateTiles("NewRack", tiles); err != nil {
		return Rack{}, err
	}
	return Rack{tiles: cloneTiles(tiles)}, nil
}

// Tiles returns a copy of the rack's tiles.
func (r Rack) Tiles() []Tile { return cloneTiles(r.tiles) }

func (r Rack) Len() int { return len(r.tiles) }
func (r Rack) IsEmpty() bool { return len(r.tiles) == 0 }
func (r Rack) PlayedInitialMeld() bool { return r.playedInitialMeld }

// WithInitialMeldPlayed returns the same tiles with the meld flag set.
func (r Rack) WithInitialMeldPlayed() Rack {
	return Rack{tiles: cloneTiles(r.tiles), playedInitialMeld: true}
}

// Score totals the rack; jokers count JokerScore under either rule since they stand
// for nothing while on the rack.
func (r Rack) Score() Score {
	return ScoreTiles(r.tiles)
}

// Remove takes every tile item decomposes to out of the rack. It fails without
// changing anything when a tile is missing.
func (r Rack) Remove(item Decomposer) (Rack, error) {
	return r.RemoveTiles(item.Tiles()...)
}

// RemoveTiles is Remove for loose tiles.
func (r Rack) RemoveTiles(tiles ...Tile) (Rack, error) {
	rest, err := RemoveTiles(r.tiles, tiles)
	if err != nil {
		return Rack{}, &Error{Op: "Rack.Remove", Kind: KindOf(err), Tile: tileOf(err), Err: err}
	}
	return Rack{tiles: rest, playedInitialMeld: r.playedInitialMeld}, nil
}

// Add returns a rack holding the extra tiles.
func (r Rack) Add(tiles ...Tile) (Rack, error) {
	merged := make([]Tile, 0, len(r.tiles)+len(tiles))
	merged = append(merged, r.tiles...)
	merged = append(merged, tiles...)
	if err := validateTiles("Rack.Add", merged); err != nil {
		return Rack{}, err
	}
	return Rack{tiles: merged, playedInitialMeld: r.playedInitialMeld}, nil
}

// SetsOnRack extracts complete sets greedily (runs first, then groups) and returns
// them with the rack that is left. Jokers are never used as fillers here.
func (r Rack) SetsOnRack() ([]Set, Rack) {
	sets, rest := ExtractSets(r.tiles)
	return sets, Rack{tiles: rest, playedInitialMeld: r.playedInitialMeld}
}

// CanPlayInitialMeld reports the meld the rack could open with at the standard threshold.
func (r Rack) CanPlayInitialMeld() (InitialMeld, bool) {
	return r.CanPlayInitialMeldAt(InitialMeldThreshold)
}

// CanPlayInitialMeldAt is CanPlayInitialMeld with a custom threshold.
func (r Rack) CanPlayInitialMeldAt(threshold Score) (InitialMeld, bool) {
	sets, _ := r.SetsOnRack()
	meld, err := ParseInitialMeldAt(sets, threshold)
	if err != nil {
		return InitialMeld{}, false
	}
	return meld, true
}

// Equal compares racks as multisets plus the meld flag.
func (r Rack) Equal(other Rack) bool {
	return r.playedInitialMeld == other.playedInitialMeld && SameTiles(r.tiles, other.tiles)
}

func (r Rack) String() string {
	sorted := cloneTiles(r.tiles)
	SortTiles(sorted)
	meld := ""
	if r.playedInitialMeld {
		meld = ", melded"
	}
	return fmt.Sprintf("rack(%d%s): %s", len(r.tiles), meld, strings.Join(TileCodes(sorted), " "))
}

func tileOf(err error) *Tile {
	if de, ok := err.(*Error); ok {
		return de.Tile
	}
	return nil
}
