package rearrange

import (
	"fmt"

	"rummikub/internal/domain"
)

// verify checks a candidate (rack, table) pair against the previous state:
// every old table tile is still on the table, every set re-validates, the table
// grew, and the new rack is the old rack minus exactly the moved tiles.
func verify(oldRack domain.Rack, oldTable domain.Table, newTable domain.Table, moved []domain.Tile) (domain.Rack, error) {
	if len(moved) == 0 {
		return domain.Rack{}, fmt.Errorf("no rack tile was placed")
	}
	if err := newTable.Validate(); err != nil {
		return domain.Rack{}, fmt.Errorf("invalid set on new table: %w", err)
	}
	if newTable.TileCount() <= oldTable.TileCount() {
		return domain.Rack{}, fmt.Errorf("table did not grow: %d -> %d tiles", oldTable.TileCount(), newTable.TileCount())
	}

	expected := append(oldTable.Tiles(), moved...)
	if !domain.SameTiles(newTable.Tiles(), expected) {
		return domain.Rack{}, fmt.Errorf("table tiles do not account for old table plus moved tiles")
	}

	newRack, err := oldRack.RemoveTiles(moved...)
	if err != nil {
		return domain.Rack{}, fmt.Errorf("moved tiles were not on the rack: %w", err)
	}
	return newRack, nil
}
