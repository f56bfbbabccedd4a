package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a domain operation was refused.
type ErrorKind string

const (
	KindTooManyTiles         ErrorKind = "too_many_tiles"
	KindTooFewTiles          ErrorKind = "too_few_tiles"
	KindDuplicateColors      ErrorKind = "duplicate_colors"
	KindMixedColors          ErrorKind = "mixed_colors"
	KindMixedNumbers         ErrorKind = "mixed_numbers"
	KindOutOfOrder           ErrorKind = "out_of_order"
	KindOutOfBounds          ErrorKind = "out_of_bounds"
	KindIllegalJokers        ErrorKind = "illegal_jokers"
	KindSlotMismatch         ErrorKind = "slot_mismatch"
	KindNoSpare              ErrorKind = "no_spare"
	KindNoJoker              ErrorKind = "no_joker"
	KindTileNotFound         ErrorKind = "tile_not_found"
	KindTileUniverseExceeded ErrorKind = "tile_universe_exceeded"
	KindInvalidScoringRule   ErrorKind = "invalid_scoring_rule"
	KindPileExhausted        ErrorKind = "pile_exhausted"
	KindInvalidTile          ErrorKind = "invalid_tile"
)

// Error is the failure returned by validating constructors and rack/table operations.
type Error struct {
	Op   string
	Kind ErrorKind
	Tile *Tile // Optional: the tile that caused the failure
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Tile != nil {
		base += fmt.Sprintf(" (tile=%s)", e.Tile.Code())
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a domain Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// KindOf returns the kind of a domain Error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func newError(op string, kind ErrorKind) *Error {
	return &Error{Op: op, Kind: kind}
}

func tileError(op string, kind ErrorKind, t Tile) *Error {
	return &Error{Op: op, Kind: kind, Tile: &t}
}
