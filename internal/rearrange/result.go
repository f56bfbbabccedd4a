// Package rearrange moves rack tiles onto the table without ever taking a face-up
// tile back. Every strategy is a pure function of (Rack, Table).
package rearrange

import "rummikub/internal/domain"

// Result is either a Placement or a NoPlacement. Not finding a placement is an
// ordinary outcome, so it is never reported as an error.
type Result interface {
	isResult()
}

// Placement is an accepted rearrangement.
type Placement struct {
	Rack     domain.Rack
	Table    domain.Table
	Moved    []domain.Tile // rack tiles now on the table
	Strategy Policy
}

// NoPlacement means no legal move was found; the caller should draw instead.
type NoPlacement struct {
	Strategy Policy
	Reason   string
}

func (Placement) isResult() {}
func (NoPlacement) isResult() {}

// Placed unwraps r, reporting false for NoPlacement.
func Placed(r Result) (Placement, bool) {
	p, ok := r.(Placement)
	return p, ok
}
