package domain

import (
	"fmt"
	"math/rand"
)

// Boneyard is the face-down draw pile. Tiles are drawn from the end of the slice.
type Boneyard struct {
	tiles []Tile
}

// NewBoneyard returns the full ordered tile set: two of every colored number and two jokers.
func NewBoneyard() Boneyard {
	tiles := make([]Tile, 0, TileUniverse)
	tiles = append(tiles, Joker(), Joker())
	for _, c := range Colors() {
		for n := MinNumber; n <= MaxNumber; n++ {
			tiles = append(tiles, Regular(c, n), Regular(c, n))
		}
	}
	return Boneyard{tiles: tiles}
}

// BoneyardOf builds a pile from explicit tiles, top of the pile last.
func BoneyardOf(tiles ...Tile) (Boneyard, error) {
	if err := validateTiles("BoneyardOf", tiles); err != nil {
		return Boneyard{}, err
	}
	return Boneyard{tiles: cloneTiles(tiles)}, nil
}

// Shuffled returns a shuffled copy of the pile.
func (b Boneyard) Shuffled(rng *rand.Rand) Boneyard {
	out := cloneTiles(b.tiles)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return Boneyard{tiles: out}
}

// Tiles returns a copy of the pile, top last.
func (b Boneyard) Tiles() []Tile { return cloneTiles(b.tiles) }

func (b Boneyard) Len() int { return len(b.tiles) }

func (b Boneyard) IsEmpty() bool { return len(b.tiles) == 0 }

// DrawOne takes the top tile. It returns false once the pile is exhausted.
func (b Boneyard) DrawOne() (Tile, Boneyard, bool) {
	if len(b.tiles) == 0 {
		return Tile{}, b, false
	}
	last := len(b.tiles) - 1
	return b.tiles[last], Boneyard{tiles: cloneTiles(b.tiles[:last])}, true
}

// DrawRack deals a fresh rack of n tiles.
func (b Boneyard) DrawRack(n int) (Rack, Boneyard, error) {
	if n < 0 {
		return Rack{}, b, &Error{Op: "Boneyard.DrawRack", Kind: KindTooFewTiles, Err: fmt.Errorf("negative rack size %d", n)}
	}
	if n > len(b.tiles) {
		return Rack{}, b, &Error{Op: "Boneyard.DrawRack", Kind: KindPileExhausted, Err: fmt.Errorf("need %d tiles, %d left", n, len(b.tiles))}
	}
	split := len(b.tiles) - n
	drawn := cloneTiles(b.tiles[split:])
	// hand out in draw order, top of the pile first
	for i, j := 0, len(drawn)-1; i < j; i, j = i+1, j-1 {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	}
	return Rack{tiles: drawn}, Boneyard{tiles: cloneTiles(b.tiles[:split])}, nil
}

func (b Boneyard) String() string {
	return fmt.Sprintf("boneyard: %d tiles", len(b.tiles))
}
