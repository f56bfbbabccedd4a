package app

import (
	"fmt"

	"rummikub/internal/domain"
	"rummikub/internal/rearrange"
)

// TurnOutcome is the state after one automatic turn and what happened during it.
type TurnOutcome struct {
	Rack  domain.Rack
	Table domain.Table
	Pile  domain.Boneyard

	Meld       *domain.InitialMeld
	Placed     []domain.Set
	Rearranged *rearrange.Placement
	Drawn      *domain.Tile

	// PileExhausted is set when the player had to draw but the pile was empty.
	PileExhausted bool
}

// Played reports whether any rack tile reached the table this turn.
func (o TurnOutcome) Played() bool {
	return o.Meld != nil || len(o.Placed) > 0 || o.Rearranged != nil
}

// PlayTurn plays one turn for a rack without looking at any other player.
//
// Before the initial meld the rack opens with every complete set it holds, provided
// they reach the threshold; the turn ends there. Afterwards complete sets are laid
// down and the remaining tiles go through the rearrangement policy. A turn that
// places nothing draws one tile.
func PlayTurn(rack domain.Rack, table domain.Table, pile domain.Boneyard, rules Rules) (TurnOutcome, error) {
	out := TurnOutcome{Rack: rack, Table: table, Pile: pile}

	if !rack.PlayedInitialMeld() {
		meld, ok := rack.CanPlayInitialMeldAt(rules.InitialMeldThreshold)
		if !ok {
			return draw(out)
		}
		rest, err := rack.Remove(meld)
		if err != nil {
			return TurnOutcome{}, fmt.Errorf("play initial meld: %w", err)
		}
		out.Rack = rest.WithInitialMeldPlayed()
		out.Table = table.PlaceNewSets(meld.Sets()...)
		out.Meld = &meld
		return out, nil
	}

	if sets, rest := rack.SetsOnRack(); len(sets) > 0 {
		out.Rack = rest
		out.Table = table.PlaceNewSets(sets...)
		out.Placed = sets
	}

	if !out.Rack.IsEmpty() {
		if p, ok := rearrange.Placed(rearrange.Rearrange(rules.Policy, out.Rack, out.Table)); ok {
			out.Rack, out.Table = p.Rack, p.Table
			out.Rearranged = &p
		}
	}

	if out.Played() {
		return out, nil
	}
	return draw(out)
}

func draw(out TurnOutcome) (TurnOutcome, error) {
	tile, pile, ok := out.Pile.DrawOne()
	if !ok {
		out.PileExhausted = true
		return out, nil
	}
	rack, err := out.Rack.Add(tile)
	if err != nil {
		return TurnOutcome{}, fmt.Errorf("draw: %w", err)
	}
	out.Rack, out.Pile, out.Drawn = rack, pile, &tile
	return out, nil
}
