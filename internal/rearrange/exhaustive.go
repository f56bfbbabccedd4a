package rearrange

import (
	"fmt"

	"rummikub/internal/domain"
)

// Exhaustive pools every table and rack tile and rebuilds the table from scratch:
// largest runs first, then largest groups. The rebuild is accepted only when it holds
// more tiles than the old table and every tile left over came from the rack.
func Exhaustive(rack domain.Rack, table domain.Table) Result {
	pool := append(table.Tiles(), rack.Tiles()...)
	sets, leftover := domain.ExtractSets(pool)

	if !domain.ContainsTiles(rack.Tiles(), leftover) {
		return NoPlacement{Strategy: PolicyExhaustive, Reason: "rebuild leaves a table tile unplaced"}
	}
	moved, err := domain.RemoveTiles(rack.Tiles(), leftover)
	if err != nil {
		return NoPlacement{Strategy: PolicyExhaustive, Reason: err.Error()}
	}

	newTable := domain.NewTable(sets...)
	newRack, err := verify(rack, table, newTable, moved)
	if err != nil {
		return NoPlacement{Strategy: PolicyExhaustive, Reason: fmt.Sprintf("rebuild rejected: %v", err)}
	}
	return Placement{Rack: newRack, Table: newTable, Moved: moved, Strategy: PolicyExhaustive}
}
