package domain

// Score is a point total.
type Score int

// JokerScore is the fixed value of a joker under OnRack scoring.
const JokerScore Score = 30

// ScoringRule selects how jokers are valued.
type ScoringRule uint8

const (
	// OnRack values every joker at JokerScore regardless of position.
	OnRack ScoringRule = iota
	// OnTable values a joker as the number it stands in for.
	OnTable
)

func (r ScoringRule) String() string {
	switch r {
	case OnRack:
		return "on_rack"
	case OnTable:
		return "on_table"
	}
	return "unknown"
}

// ScoreTiles scores a loose tile list. Without a formation a joker has no position,
// so it always counts as JokerScore.
func ScoreTiles(tiles []Tile) Score {
	var total Score
	for _, t := range tiles {
		if t.joker {
			total += JokerScore
			continue
		}
		total += t.number.Value()
	}
	return total
}
