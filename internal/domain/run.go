package domain

import (
	"math/bits"
	"strings"
)

const (
	minRunLen       = 3
	maxRunLen       = 13
	maxJokersPerSet = 2
	minWedgeRunLen  = 5
	minSplitRunLen  = 6
)

// Side names one end of a run.
type Side uint8

const (
	Low Side = iota
	High
)

func (s Side) String() string {
	if s == Low {
		return "low"
	}
	return "high"
}

// SlotKind distinguishes edge insertions from wedge insertions.
type SlotKind uint8

const (
	// EdgeSlot extends a run by one tile at either end.
	EdgeSlot SlotKind = iota + 1
	// WedgeSlot duplicates an inner tile and splits the run in two.
	WedgeSlot
)

// Slot is a place where one specific tile can join a run.
type Slot struct {
	Kind SlotKind
	Side Side   // edge slots only
	At   Number // number the inserted tile stands for
	Tile Tile   // the regular tile that fits
}

// Spare is a tile that can leave a run together with the number it occupied.
type Spare struct {
	Tile Tile
	At   Number
}

// Run is three or more consecutive numbers of one color. Jokers may stand in for at
// most two of the numbers. Runs never wrap past 13.
type Run struct {
	start  Number
	end    Number
	color  Color
	jokers uint16 // bit n is set when a joker stands at number n
}

// RunOf builds a joker-free run of length tiles starting at start.
func RunOf(start Number, color Color, length int) (Run, error) {
	const op = "RunOf"
	if !color.Valid() || !start.Valid() {
		return Run{}, newError(op, KindOutOfBounds)
	}
	if length < minRunLen {
		return Run{}, newError(op, KindTooFewTiles)
	}
	if length > maxRunLen {
		return Run{}, newError(op, KindTooManyTiles)
	}
	end := int(start) + length - 1
	if end > int(MaxNumber) {
		return Run{}, newError(op, KindOutOfBounds)
	}
	return Run{start: start, end: Number(end), color: color}, nil
}

// ParseRun validates tiles given in play order. The tiles are not sorted: the first
// regular tile fixes the numbering and every other tile must sit exactly one number
// after its predecessor.
func ParseRun(tiles []Tile) (Run, error) {
	const op = "ParseRun"
	if len(tiles) < minRunLen {
		return Run{}, newError(op, KindTooFewTiles)
	}
	if len(tiles) > maxRunLen {
		return Run{}, newError(op, KindTooManyTiles)
	}

	anchor, jokers := -1, 0
	for i, t := range tiles {
		if t.joker {
			jokers++
			continue
		}
		if !t.Valid() {
			return Run{}, tileError(op, KindInvalidTile, t)
		}
		if anchor < 0 {
			anchor = i
		}
	}
	if jokers > maxJokersPerSet || anchor < 0 {
		return Run{}, newError(op, KindIllegalJokers)
	}

	first := tiles[anchor]
	start := int(first.number) - anchor
	if start < int(MinNumber) {
		return Run{}, tileError(op, KindOutOfBounds, first)
	}

	r := Run{start: Number(start), color: first.color}
	for i, t := range tiles {
		pos := start + i
		if pos > int(MaxNumber) {
			return Run{}, tileError(op, KindOutOfBounds, t)
		}
		if t.joker {
			r.jokers |= 1 << pos
			continue
		}
		if t.color != r.color {
			return Run{}, tileError(op, KindMixedColors, t)
		}
		if int(t.number) != pos {
			return Run{}, tileError(op, KindOutOfOrder, t)
		}
	}
	r.end = Number(start + len(tiles) - 1)
	return r, nil
}

func (r Run) Start() Number { return r.start }
func (r Run) End() Number { return r.end }
func (r Run) Color() Color { return r.color }

// Len is the number of tiles in the run, jokers included.
func (r Run) Len() int {
	return int(r.end) - int(r.start) + 1
}

// JokerCount returns how many jokers the run holds.
func (r Run) JokerCount() int {
	return bits.OnesCount16(r.jokers)
}

// JokerPositions lists the numbers jokers stand in for, ascending.
func (r Run) JokerPositions() []Number {
	var out []Number
	for n := int(r.start); n <= int(r.end); n++ {
		if r.jokers&(1<<n) != 0 {
			out = append(out, Number(n))
		}
	}
	return out
}

// HasJokerAt reports whether a joker occupies number n.
func (r Run) HasJokerAt(n Number) bool {
	return n >= r.start && n <= r.end && r.jokers&(1<<n) != 0
}

func (r Run) tileAt(n Number) Tile {
	if r.HasJokerAt(n) {
		return Joker()
	}
	return Regular(r.color, n)
}

// Tiles returns the run in order, with jokers at their positions.
func (r Run) Tiles() []Tile {
	if r.Len() <= 0 || r.start == 0 {
		return nil
	}
	out := make([]Tile, 0, r.Len())
	for n := r.start; ; {
		out = append(out, r.tileAt(n))
		if n == r.end {
			break
		}
		next, ok := n.Next()
		if !ok {
			break
		}
		n = next
	}
	return out
}

// Score values the run under rule.
func (r Run) Score(rule ScoringRule) Score {
	switch rule {
	case OnTable:
		return Score((int(r.start) + int(r.end)) * r.Len() / 2)
	case OnRack:
		return ScoreTiles(r.Tiles())
	}
	return 0
}

// EdgeSlots returns the tiles that would extend the run at either end.
func (r Run) EdgeSlots() []Slot {
	var slots []Slot
	if p, ok := r.start.Prev(); ok {
		slots = append(slots, Slot{Kind: EdgeSlot, Side: Low, At: p, Tile: Regular(r.color, p)})
	}
	if n, ok := r.end.Next(); ok {
		slots = append(slots, Slot{Kind: EdgeSlot, Side: High, At: n, Tile: Regular(r.color, n)})
	}
	return slots
}

// WedgeSlots returns the inner positions where a duplicate tile splits the run into
// two runs of at least three tiles each.
func (r Run) WedgeSlots() []Slot {
	if r.Len() < minWedgeRunLen {
		return nil
	}
	var slots []Slot
	for p := r.start + 2; p <= r.end-2; p++ {
		slots = append(slots, Slot{Kind: WedgeSlot, At: p, Tile: Regular(r.color, p)})
	}
	return slots
}

// InsertTile places t into slot. An edge slot yields one longer run, a wedge slot
// yields the two runs on either side of the duplicated number.
func (r Run) InsertTile(t Tile, slot Slot) ([]Run, error) {
	const op = "Run.InsertTile"
	seq := r.Tiles()

	switch slot.Kind {
	case EdgeSlot:
		var want Number
		var ok bool
		if slot.Side == Low {
			want, ok = r.start.Prev()
		} else {
			want, ok = r.end.Next()
		}
		if !ok || want != slot.At {
			return nil, tileError(op, KindSlotMismatch, t)
		}
		if !t.joker && t != Regular(r.color, want) {
			return nil, tileError(op, KindSlotMismatch, t)
		}
		if slot.Side == Low {
			seq = append([]Tile{t}, seq...)
		} else {
			seq = append(seq, t)
		}
		extended, err := ParseRun(seq)
		if err != nil {
			return nil, err
		}
		return []Run{extended}, nil

	case WedgeSlot:
		if r.Len() < minWedgeRunLen || slot.At < r.start+2 || slot.At > r.end-2 {
			return nil, tileError(op, KindSlotMismatch, t)
		}
		if !t.joker && t != Regular(r.color, slot.At) {
			return nil, tileError(op, KindSlotMismatch, t)
		}
		idx := int(slot.At - r.start)
		left, err := ParseRun(cloneTiles(seq[:idx+1]))
		if err != nil {
			return nil, err
		}
		right, err := ParseRun(append([]Tile{t}, seq[idx+1:]...))
		if err != nil {
			return nil, err
		}
		return []Run{left, right}, nil
	}
	return nil, tileError(op, KindSlotMismatch, t)
}

// NaturalSplits lists every way to cut the run into two valid runs without adding tiles.
func (r Run) NaturalSplits() [][2]Run {
	if r.Len() < minSplitRunLen {
		return nil
	}
	seq := r.Tiles()
	var out [][2]Run
	for cut := minRunLen; cut <= len(seq)-minRunLen; cut++ {
		left, err := ParseRun(cloneTiles(seq[:cut]))
		if err != nil {
			continue
		}
		right, err := ParseRun(cloneTiles(seq[cut:]))
		if err != nil {
			continue
		}
		out = append(out, [2]Run{left, right})
	}
	return out
}

// Spares removes up to limit regular tiles from one end while at least three tiles
// remain. Scanning stops at the first joker. The removed tiles are returned outermost
// first together with the shrunk run.
func (r Run) Spares(side Side, limit int) ([]Spare, Run) {
	seq := r.Tiles()
	var out []Spare
	for len(out) < limit && len(seq)-len(out) > minRunLen {
		var t Tile
		if side == Low {
			t = seq[len(out)]
		} else {
			t = seq[len(seq)-1-len(out)]
		}
		if t.joker {
			break
		}
		out = append(out, Spare{Tile: t, At: t.number})
	}
	if len(out) == 0 {
		return nil, r
	}

	var rest []Tile
	if side == Low {
		rest = seq[len(out):]
	} else {
		rest = seq[:len(seq)-len(out)]
	}
	shrunk, err := ParseRun(cloneTiles(rest))
	if err != nil {
		return nil, r
	}
	return out, shrunk
}

// RetrieveJoker swaps t in for the joker standing at t's number and hands the joker back.
func (r Run) RetrieveJoker(t Tile) (Run, Tile, error) {
	const op = "Run.RetrieveJoker"
	if t.joker || t.color != r.color || !t.Valid() {
		return Run{}, Tile{}, tileError(op, KindSlotMismatch, t)
	}
	if !r.HasJokerAt(t.number) {
		return Run{}, Tile{}, tileError(op, KindNoJoker, t)
	}
	seq := r.Tiles()
	seq[int(t.number-r.start)] = t
	swapped, err := ParseRun(seq)
	if err != nil {
		return Run{}, Tile{}, err
	}
	return swapped, Joker(), nil
}

func (r Run) String() string {
	return strings.Join(TileCodes(r.Tiles()), " ")
}
