package app

import (
	"rummikub/internal/domain"
	"rummikub/internal/rearrange"
)

// EventKind identifies emitted domain events for adapter dispatch.
type EventKind string

const (
	EventGameStarted       EventKind = "game_started"
	EventRackDealt         EventKind = "rack_dealt"
	EventInitialMeldPlayed EventKind = "initial_meld_played"
	EventSetsPlaced        EventKind = "sets_placed"
	EventTableRearranged   EventKind = "table_rearranged"
	EventTileDrawn         EventKind = "tile_drawn"
	EventPileExhausted     EventKind = "pile_exhausted"
	EventGameEnded         EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type GameStartedPayload struct {
	GameID          string
	Players         []string
	FirstTurnUserID string
}

type RackDealtPayload struct {
	UserID string
	Tiles  []domain.Tile
}

type InitialMeldPlayedPayload struct {
	UserID string
	Sets   []domain.Set
	Score  domain.Score
}

type SetsPlacedPayload struct {
	UserID string
	Sets   []domain.Set
}

type TableRearrangedPayload struct {
	UserID   string
	Moved    []domain.Tile
	Strategy rearrange.Policy
}

type TileDrawnPayload struct {
	UserID string
	Tile   domain.Tile
}

type PileExhaustedPayload struct {
	UserID string
}

// EndReason says why a game stopped.
type EndReason string

const (
	EndRackEmptied EndReason = "rack_emptied"
	EndPileBlocked EndReason = "pile_blocked"
	EndTurnLimit   EndReason = "turn_limit"
)

type GameEndedPayload struct {
	Winner     string
	Reason     EndReason
	RackScores map[string]domain.Score
}

// turnEvents converts a turn outcome into the events other seats and the player see.
func turnEvents(userID string, out TurnOutcome) []Event {
	var events []Event
	if out.Meld != nil {
		events = append(events, Event{
			Kind:    EventInitialMeldPlayed,
			Payload: InitialMeldPlayedPayload{UserID: userID, Sets: out.Meld.Sets(), Score: out.Meld.Score()},
		})
	}
	if len(out.Placed) > 0 {
		events = append(events, Event{
			Kind:    EventSetsPlaced,
			Payload: SetsPlacedPayload{UserID: userID, Sets: out.Placed},
		})
	}
	if out.Rearranged != nil {
		events = append(events, Event{
			Kind:    EventTableRearranged,
			Payload: TableRearrangedPayload{UserID: userID, Moved: out.Rearranged.Moved, Strategy: out.Rearranged.Strategy},
		})
	}
	if out.Drawn != nil {
		events = append(events, Event{
			Kind:       EventTileDrawn,
			Payload:    TileDrawnPayload{UserID: userID, Tile: *out.Drawn},
			Recipients: []string{userID},
		})
	}
	if out.PileExhausted {
		events = append(events, Event{
			Kind:    EventPileExhausted,
			Payload: PileExhaustedPayload{UserID: userID},
		})
	}
	return events
}
