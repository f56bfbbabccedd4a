package domain

import "fmt"

// SetKind tags the active variant of a Set.
type SetKind uint8

const (
	SetRun SetKind = iota + 1
	SetGroup
)

func (k SetKind) String() string {
	switch k {
	case SetRun:
		return "run"
	case SetGroup:
		return "group"
	}
	return "invalid"
}

// Set is a placed formation: exactly one of Run or Group. The zero Set holds nothing.
type Set struct {
	kind  SetKind
	run   Run
	group Group
}

// RunSet wraps a validated run.
func RunSet(r Run) Set { return Set{kind: SetRun, run: r} }

// GroupSet wraps a validated group.
func GroupSet(g Group) Set { return Set{kind: SetGroup, group: g} }

// ParseSet tries the tiles as a run first, then as a group. When both fail the
// run error is returned for multi-color input and the group error otherwise.
func ParseSet(tiles []Tile) (Set, error) {
	r, runErr := ParseRun(tiles)
	if runErr == nil {
		return RunSet(r), nil
	}
	g, groupErr := ParseGroup(tiles)
	if groupErr == nil {
		return GroupSet(g), nil
	}
	if IsKind(runErr, KindMixedColors) {
		return Set{}, groupErr
	}
	return Set{}, runErr
}

func (s Set) Kind() SetKind { return s.kind }

// AsRun returns the run variant.
func (s Set) AsRun() (Run, bool) { return s.run, s.kind == SetRun }

// AsGroup returns the group variant.
func (s Set) AsGroup() (Group, bool) { return s.group, s.kind == SetGroup }

// Tiles flattens the active variant.
func (s Set) Tiles() []Tile {
	switch s.kind {
	case SetRun:
		return s.run.Tiles()
	case SetGroup:
		return s.group.Tiles()
	}
	return nil
}

// Score values the active variant under rule.
func (s Set) Score(rule ScoringRule) Score {
	switch s.kind {
	case SetRun:
		return s.run.Score(rule)
	case SetGroup:
		return s.group.Score(rule)
	}
	return 0
}

// Len is the number of tiles in the set.
func (s Set) Len() int {
	switch s.kind {
	case SetRun:
		return s.run.Len()
	case SetGroup:
		return s.group.Len()
	}
	return 0
}

func (s Set) String() string {
	switch s.kind {
	case SetRun:
		return "run[" + s.run.String() + "]"
	case SetGroup:
		return "group[" + s.group.String() + "]"
	}
	return "set[]"
}

// ValidateSet re-parses the set's tiles through its own constructor and checks that the
// result is the same set.
func ValidateSet(s Set) error {
	switch s.kind {
	case SetRun:
		r, err := ParseRun(s.run.Tiles())
		if err != nil {
			return err
		}
		if r != s.run {
			return fmt.Errorf("run %s does not round-trip", s.run)
		}
		return nil
	case SetGroup:
		g, err := ParseGroup(s.group.Tiles())
		if err != nil {
			return err
		}
		if g != s.group {
			return fmt.Errorf("group %s does not round-trip", s.group)
		}
		return nil
	}
	return newError("ValidateSet", KindTooFewTiles)
}
