package domain

import "strings"

// Table is the face-up collection of sets. Set order carries no meaning.
type Table struct {
	sets []Set
}

// NewTable builds a table holding sets.
func NewTable(sets ...Set) Table {
	return Table{sets: append([]Set(nil), sets...)}
}

// PlaceNewSets returns a table with sets appended.
func (t Table) PlaceNewSets(sets ...Set) Table {
	out := make([]Set, 0, len(t.sets)+len(sets))
	out = append(out, t.sets...)
	out = append(out, sets...)
	return Table{sets: out}
}

// Sets returns a copy of the placed sets.
func (t Table) Sets() []Set { return append([]Set(nil), t.sets...) }

// Len is the number of sets on the table.
func (t Table) Len() int { return len(t.sets) }

// Tiles flattens every set on the table.
func (t Table) Tiles() []Tile {
	var out []Tile
	for _, s := range t.sets {
		out = append(out, s.Tiles()...)
	}
	return out
}

// TileCount is the number of tiles on the table.
func (t Table) TileCount() int {
	n := 0
	for _, s := range t.sets {
		n += s.Len()
	}
	return n
}

// Score totals the table. Only OnTable scoring is meaningful for placed sets.
func (t Table) Score(rule ScoringRule) (Score, error) {
	if rule != OnTable {
		return 0, newError("Table.Score", KindInvalidScoringRule)
	}
	var total Score
	for _, s := range t.sets {
		total += s.Score(OnTable)
	}
	return total, nil
}

// Runs returns the runs on the table in placement order.
func (t Table) Runs() []Run {
	var out []Run
	for _, s := range t.sets {
		if r, ok := s.AsRun(); ok {
			out = append(out, r)
		}
	}
	return out
}

// Groups returns the groups on the table in placement order.
func (t Table) Groups() []Group {
	var out []Group
	for _, s := range t.sets {
		if g, ok := s.AsGroup(); ok {
			out = append(out, g)
		}
	}
	return out
}

// Validate re-checks every set on the table.
func (t Table) Validate() error {
	for _, s := range t.sets {
		if err := ValidateSet(s); err != nil {
			return err
		}
	}
	return nil
}

// Equal compares tables as multisets of sets.
func (t Table) Equal(other Table) bool {
	if len(t.sets) != len(other.sets) {
		return false
	}
	counts := make(map[Set]int, len(t.sets))
	for _, s := range t.sets {
		counts[s]++
	}
	for _, s := range other.sets {
		if counts[s] == 0 {
			return false
		}
		counts[s]--
	}
	return true
}

func (t Table) String() string {
	if len(t.sets) == 0 {
		return "table: empty"
	}
	lines := make([]string, 0, len(t.sets)+1)
	lines = append(lines, "table:")
	for _, s := range t.sets {
		lines = append(lines, "  "+s.String())
	}
	return strings.Join(lines, "\n")
}
