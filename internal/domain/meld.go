package domain

import "fmt"

// InitialMeldThreshold is the minimum OnRack score of a player's first meld.
// A meld scoring exactly the threshold is accepted.
const InitialMeldThreshold Score = 30

// InitialMeld is one or more sets drawn only from a rack that together reach the
// opening threshold.
type InitialMeld struct {
	sets []Set
}

// ParseInitialMeld validates sets against InitialMeldThreshold.
func ParseInitialMeld(sets []Set) (InitialMeld, error) {
	return ParseInitialMeldAt(sets, InitialMeldThreshold)
}

// ParseInitialMeldAt validates sets against a custom threshold.
func ParseInitialMeldAt(sets []Set, threshold Score) (InitialMeld, error) {
	const op = "ParseInitialMeld"
	if len(sets) == 0 {
		return InitialMeld{}, newError(op, KindTooFewTiles)
	}
	var total Score
	for _, s := range sets {
		if err := ValidateSet(s); err != nil {
			return InitialMeld{}, &Error{Op: op, Kind: KindOf(err), Err: err}
		}
		total += s.Score(OnRack)
	}
	if total < threshold {
		return InitialMeld{}, &Error{Op: op, Kind: KindTooFewTiles, Err: fmt.Errorf("meld scores %d, needs %d", total, threshold)}
	}
	return InitialMeld{sets: append([]Set(nil), sets...)}, nil
}

// Sets returns a copy of the meld's sets.
func (m InitialMeld) Sets() []Set { return append([]Set(nil), m.sets...) }

// Tiles flattens every set of the meld.
func (m InitialMeld) Tiles() []Tile {
	var out []Tile
	for _, s := range m.sets {
		out = append(out, s.Tiles()...)
	}
	return out
}

// Score is the OnRack total used for the threshold check.
func (m InitialMeld) Score() Score {
	var total Score
	for _, s := range m.sets {
		total += s.Score(OnRack)
	}
	return total
}
