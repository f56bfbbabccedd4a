package domain

import (
	"math/bits"
	"strings"
)

const (
	minGroupLen = 3
	maxGroupLen = 4
)

// Group is three or four tiles of one number in distinct colors. Jokers fill
// unspecified colors, at most two of them.
type Group struct {
	number Number
	colors uint8 // bit c is set when color c is present as a real tile
	jokers uint8
}

// GroupOf builds a joker-free group. Duplicate colors are rejected.
func GroupOf(number Number, colors []Color) (Group, error) {
	const op = "GroupOf"
	if !number.Valid() {
		return Group{}, newError(op, KindOutOfBounds)
	}
	if len(colors) > maxGroupLen {
		return Group{}, newError(op, KindTooManyTiles)
	}
	g := Group{number: number}
	for _, c := range colors {
		if !c.Valid() {
			return Group{}, newError(op, KindOutOfBounds)
		}
		if g.Has(c) {
			return Group{}, tileError(op, KindDuplicateColors, Regular(c, number))
		}
		g.colors |= 1 << c
	}
	if len(colors) < minGroupLen {
		return Group{}, newError(op, KindTooFewTiles)
	}
	return g, nil
}

// ParseGroup validates tiles as a group. Order does not matter.
func ParseGroup(tiles []Tile) (Group, error) {
	const op = "ParseGroup"
	if len(tiles) < minGroupLen {
		return Group{}, newError(op, KindTooFewTiles)
	}
	if len(tiles) > maxGroupLen {
		return Group{}, newError(op, KindTooManyTiles)
	}

	var g Group
	anchored := false
	for _, t := range tiles {
		if t.joker {
			g.jokers++
			continue
		}
		if !t.Valid() {
			return Group{}, tileError(op, KindInvalidTile, t)
		}
		if !anchored {
			g.number = t.number
			anchored = true
		}
		if t.number != g.number {
			return Group{}, tileError(op, KindMixedNumbers, t)
		}
		if g.Has(t.color) {
			return Group{}, tileError(op, KindDuplicateColors, t)
		}
		g.colors |= 1 << t.color
	}
	if !anchored || g.jokers > maxJokersPerSet {
		return Group{}, newError(op, KindIllegalJokers)
	}
	return g, nil
}

func (g Group) Number() Number { return g.number }

// JokerCount returns how many jokers the group holds.
func (g Group) JokerCount() int { return int(g.jokers) }

// Len is the member count, jokers included.
func (g Group) Len() int {
	return bits.OnesCount8(g.colors) + int(g.jokers)
}

// Has reports whether a real tile of color c is in the group.
func (g Group) Has(c Color) bool {
	return c.Valid() && g.colors&(1<<c) != 0
}

// Colors lists the colors held by real tiles, in canonical order.
func (g Group) Colors() []Color {
	var out []Color
	for _, c := range Colors() {
		if g.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// MissingColors lists the colors no real tile holds.
func (g Group) MissingColors() []Color {
	var out []Color
	for _, c := range Colors() {
		if !g.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Tiles returns the real tiles in canonical color order followed by the jokers.
func (g Group) Tiles() []Tile {
	if !g.number.Valid() {
		return nil
	}
	out := make([]Tile, 0, g.Len())
	for _, c := range g.Colors() {
		out = append(out, Regular(c, g.number))
	}
	for i := 0; i < int(g.jokers); i++ {
		out = append(out, Joker())
	}
	return out
}

// Score values the group under rule.
func (g Group) Score(rule ScoringRule) Score {
	switch rule {
	case OnTable:
		return g.number.Value() * Score(g.Len())
	case OnRack:
		return ScoreTiles(g.Tiles())
	}
	return 0
}

// InsertTile adds a fourth member: a missing color or a joker.
func (g Group) InsertTile(t Tile) (Group, error) {
	const op = "Group.InsertTile"
	if g.Len() >= maxGroupLen {
		return Group{}, tileError(op, KindTooManyTiles, t)
	}
	if !t.joker {
		if !t.Valid() {
			return Group{}, tileError(op, KindInvalidTile, t)
		}
		if t.number != g.number {
			return Group{}, tileError(op, KindMixedNumbers, t)
		}
		if g.Has(t.color) {
			return Group{}, tileError(op, KindDuplicateColors, t)
		}
	}
	return ParseGroup(append(g.Tiles(), t))
}

// ExtractSpare takes the real tile of color c out of a four-member group.
func (g Group) ExtractSpare(c Color) (Group, Tile, error) {
	const op = "Group.ExtractSpare"
	spare := Regular(c, g.number)
	if g.Len() < maxGroupLen || !g.Has(c) {
		return Group{}, Tile{}, tileError(op, KindNoSpare, spare)
	}
	rest, err := RemoveTiles(g.Tiles(), []Tile{spare})
	if err != nil {
		return Group{}, Tile{}, err
	}
	shrunk, err := ParseGroup(rest)
	if err != nil {
		return Group{}, Tile{}, err
	}
	return shrunk, spare, nil
}

// RetrieveJoker replaces one joker with t, which must carry the group number and a
// color the group is missing. The freed joker is returned.
func (g Group) RetrieveJoker(t Tile) (Group, Tile, error) {
	const op = "Group.RetrieveJoker"
	if g.jokers == 0 {
		return Group{}, Tile{}, tileError(op, KindNoJoker, t)
	}
	if t.joker || !t.Valid() || t.number != g.number {
		return Group{}, Tile{}, tileError(op, KindSlotMismatch, t)
	}
	if g.Has(t.color) {
		return Group{}, Tile{}, tileError(op, KindDuplicateColors, t)
	}
	rest, err := RemoveTiles(g.Tiles(), []Tile{Joker()})
	if err != nil {
		return Group{}, Tile{}, err
	}
	swapped, err := ParseGroup(append(rest, t))
	if err != nil {
		return Group{}, Tile{}, err
	}
	return swapped, Joker(), nil
}

func (g Group) String() string {
	return strings.Join(TileCodes(g.Tiles()), " ")
}
