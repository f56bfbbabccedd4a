package app

import (
	"testing"

	"rummikub/internal/domain"
)

func mustTiles(t *testing.T, codes ...string) []domain.Tile {
	t.Helper()
	tiles, err := domain.ParseTiles(codes)
	if err != nil {
		t.Fatalf("ParseTiles(%v) error: %v", codes, err)
	}
	return tiles
}

func mustRack(t *testing.T, melded bool, codes ...string) domain.Rack {
	t.Helper()
	rack, err := domain.NewRack(mustTiles(t, codes...)...)
	if err != nil {
		t.Fatalf("NewRack(%v) error: %v", codes, err)
	}
	if melded {
		rack = rack.WithInitialMeldPlayed()
	}
	return rack
}

func mustPile(t *testing.T, codes ...string) domain.Boneyard {
	t.Helper()
	pile, err := domain.BoneyardOf(mustTiles(t, codes...)...)
	if err != nil {
		t.Fatalf("BoneyardOf(%v) error: %v", codes, err)
	}
	return pile
}

func eventKinds(events []Event) []EventKind {
	kinds := make([]EventKind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
