package nakama

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"rummikub/internal/app"
	"rummikub/internal/domain"
)

type setDTO struct {
	Kind  string   `json:"kind"`
	Tiles []string `json:"tiles"`
	Score int      `json:"score"`
}

func setToDTO(s domain.Set) setDTO {
	return setDTO{
		Kind:  s.Kind().String(),
		Tiles: domain.TileCodes(s.Tiles()),
		Score: int(s.Score(domain.OnTable)),
	}
}

func setsToDTO(sets []domain.Set) []setDTO {
	out := make([]setDTO, 0, len(sets))
	for _, s := range sets {
		out = append(out, setToDTO(s))
	}
	return out
}

// tableFromCodes parses one tile-code list per set.
func tableFromCodes(sets [][]string) (domain.Table, error) {
	parsed := make([]domain.Set, 0, len(sets))
	for i, codes := range sets {
		tiles, err := domain.ParseTiles(codes)
		if err != nil {
			return domain.Table{}, fmt.Errorf("table set %d: %w", i, err)
		}
		s, err := domain.ParseSet(tiles)
		if err != nil {
			return domain.Table{}, fmt.Errorf("table set %d: %w", i, err)
		}
		parsed = append(parsed, s)
	}
	return domain.NewTable(parsed...), nil
}

func tableToCodes(t domain.Table) [][]string {
	sets := t.Sets()
	out := make([][]string, 0, len(sets))
	for _, s := range sets {
		out = append(out, domain.TileCodes(s.Tiles()))
	}
	return out
}

type playerView struct {
	UserID    string `json:"user_id"`
	Seat      int    `json:"seat"`
	RackCount int    `json:"rack_count"`
	Melded    bool   `json:"melded"`
}

// gameView is what one player may see of a game: every public fact plus their own rack.
type gameView struct {
	ID          string       `json:"id"`
	Phase       string       `json:"phase"`
	CurrentTurn string       `json:"current_turn,omitempty"`
	TurnCount   int          `json:"turn_count"`
	Winner      string       `json:"winner,omitempty"`
	Table       [][]string   `json:"table"`
	PileCount   int          `json:"pile_count"`
	Players     []playerView `json:"players"`
	Rack        []string     `json:"rack,omitempty"`
}

func viewGame(g *domain.Game, viewer string) gameView {
	v := gameView{
		ID:        g.ID,
		Phase:     string(g.Phase),
		TurnCount: g.TurnCount,
		Winner:    g.Winner,
		Table:     tableToCodes(g.Table),
		PileCount: g.Pile.Len(),
	}
	if cur := g.CurrentPlayer(); cur != nil {
		v.CurrentTurn = cur.UserID
	}
	for _, p := range g.Players {
		v.Players = append(v.Players, playerView{
			UserID:    p.UserID,
			Seat:      p.Seat,
			RackCount: p.Rack.Len(),
			Melded:    p.Rack.PlayedInitialMeld(),
		})
		if p.UserID == viewer {
			v.Rack = domain.TileCodes(p.Rack.Tiles())
		}
	}
	return v
}

func codeList(tiles []domain.Tile) []interface{} {
	out := make([]interface{}, 0, len(tiles))
	for _, code := range domain.TileCodes(tiles) {
		out = append(out, code)
	}
	return out
}

func setList(sets []domain.Set) []interface{} {
	out := make([]interface{}, 0, len(sets))
	for _, s := range sets {
		out = append(out, map[string]interface{}{
			"kind":  s.Kind().String(),
			"tiles": codeList(s.Tiles()),
		})
	}
	return out
}

// eventOpCode maps an app event onto its realtime op code.
func eventOpCode(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventGameStarted:
		return OpGameStarted, true
	case app.EventRackDealt:
		return OpRackDealt, true
	case app.EventInitialMeldPlayed:
		return OpInitialMeldPlayed, true
	case app.EventSetsPlaced:
		return OpSetsPlaced, true
	case app.EventTableRearranged:
		return OpTableRearranged, true
	case app.EventTileDrawn:
		return OpTileDrawn, true
	case app.EventPileExhausted:
		return OpPileExhausted, true
	case app.EventGameEnded:
		return OpGameEnded, true
	}
	return 0, false
}

// eventContent flattens an event payload into values structpb accepts.
func eventContent(ev app.Event) (map[string]interface{}, error) {
	switch p := ev.Payload.(type) {
	case app.GameStartedPayload:
		players := make([]interface{}, 0, len(p.Players))
		for _, id := range p.Players {
			players = append(players, id)
		}
		return map[string]interface{}{"game_id": p.GameID, "players": players, "first_turn": p.FirstTurnUserID}, nil
	case app.RackDealtPayload:
		return map[string]interface{}{"user_id": p.UserID, "tiles": codeList(p.Tiles)}, nil
	case app.InitialMeldPlayedPayload:
		return map[string]interface{}{"user_id": p.UserID, "sets": setList(p.Sets), "score": int(p.Score)}, nil
	case app.SetsPlacedPayload:
		return map[string]interface{}{"user_id": p.UserID, "sets": setList(p.Sets)}, nil
	case app.TableRearrangedPayload:
		return map[string]interface{}{"user_id": p.UserID, "moved": codeList(p.Moved), "strategy": string(p.Strategy)}, nil
	case app.TileDrawnPayload:
		return map[string]interface{}{"user_id": p.UserID, "tile": p.Tile.Code()}, nil
	case app.PileExhaustedPayload:
		return map[string]interface{}{"user_id": p.UserID}, nil
	case app.GameEndedPayload:
		scores := make(map[string]interface{}, len(p.RackScores))
		for id, s := range p.RackScores {
			scores[id] = int(s)
		}
		return map[string]interface{}{"winner": p.Winner, "reason": string(p.Reason), "rack_scores": scores}, nil
	}
	return nil, fmt.Errorf("unknown event payload %T", ev.Payload)
}

// marshalEvent encodes an event payload as protobuf JSON.
func marshalEvent(ev app.Event) ([]byte, error) {
	content, err := eventContent(ev)
	if err != nil {
		return nil, err
	}
	st, err := structpb.NewStruct(content)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", ev.Kind, err)
	}
	return protojson.Marshal(st)
}
