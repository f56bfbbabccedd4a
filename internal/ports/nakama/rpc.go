package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/heroiclabs/nakama-common/runtime"

	"rummikub/internal/app"
	"rummikub/internal/domain"
	"rummikub/internal/rearrange"
)

// rpcHandlers holds what the RPC endpoints share for the lifetime of the module.
type rpcHandlers struct {
	games *app.Games
	rules app.Rules
}

func newRPCHandlers(games *app.Games) *rpcHandlers {
	return &rpcHandlers{games: games, rules: games.Service().Rules()}
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer, h *rpcHandlers) error {
	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcValidate:    h.rpcValidate,
		RpcInitialMeld: h.rpcInitialMeld,
		RpcRearrange:   h.rpcRearrange,
		RpcNewGame:     h.rpcNewGame,
		RpcTakeTurn:    h.rpcTakeTurn,
		RpcGetGame:     h.rpcGetGame,
		RpcQuickMatch:  rpcQuickMatch,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}
	return nil
}

type validateRequest struct {
	Tiles []string `json:"tiles"`
}

type validateResponse struct {
	Valid     bool    `json:"valid"`
	Set       *setDTO `json:"set,omitempty"`
	ScoreRack int     `json:"score_on_rack,omitempty"`
	ErrorKind string  `json:"error_kind,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// rpcValidate classifies a tile sequence. An illegal formation is a normal answer,
// only unreadable input is an RPC error.
func (h *rpcHandlers) rpcValidate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req validateRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	tiles, err := domain.ParseTiles(req.Tiles)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}

	set, err := h.games.Service().Validate(tiles)
	if err != nil {
		return encodeResponse(logger, RpcValidate, validateResponse{
			ErrorKind: string(domain.KindOf(err)),
			Error:     err.Error(),
		})
	}
	dto := setToDTO(set)
	return encodeResponse(logger, RpcValidate, validateResponse{
		Valid:     true,
		Set:       &dto,
		ScoreRack: int(set.Score(domain.OnRack)),
	})
}

type initialMeldRequest struct {
	Rack []string `json:"rack"`
}

type initialMeldResponse struct {
	CanMeld   bool     `json:"can_meld"`
	Sets      []setDTO `json:"sets"`
	Score     int      `json:"score"`
	Threshold int      `json:"threshold"`
	Rest      []string `json:"rest"`
}

func (h *rpcHandlers) rpcInitialMeld(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req initialMeldRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	rack, err := rackFromCodes(req.Rack, false)
	if err != nil {
		return "", err
	}

	resp := initialMeldResponse{Sets: []setDTO{}, Threshold: int(h.rules.InitialMeldThreshold), Rest: req.Rack}
	if meld, ok := rack.CanPlayInitialMeldAt(h.rules.InitialMeldThreshold); ok {
		rest, err := rack.Remove(meld)
		if err != nil {
			logger.Error("%s: meld not on rack: %v", RpcInitialMeld, err)
			return "", runtime.NewError("internal error", codeInternal)
		}
		resp.CanMeld = true
		resp.Sets = setsToDTO(meld.Sets())
		resp.Score = int(meld.Score())
		resp.Rest = domain.TileCodes(rest.Tiles())
	}
	return encodeResponse(logger, RpcInitialMeld, resp)
}

type rearrangeRequest struct {
	Rack   []string   `json:"rack"`
	Table  [][]string `json:"table"`
	Policy string     `json:"policy"`
}

type rearrangeResponse struct {
	Placed   bool       `json:"placed"`
	Strategy string     `json:"strategy"`
	Reason   string     `json:"reason,omitempty"`
	Moved    []string   `json:"moved,omitempty"`
	Rack     []string   `json:"rack"`
	Table    [][]string `json:"table"`
}

func (h *rpcHandlers) rpcRearrange(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req rearrangeRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	policy := h.rules.Policy
	if req.Policy != "" {
		p, err := rearrange.ParsePolicy(req.Policy)
		if err != nil {
			return "", runtime.NewError(err.Error(), codeInvalidArgument)
		}
		policy = p
	}
	rack, err := rackFromCodes(req.Rack, true)
	if err != nil {
		return "", err
	}
	table, err := tableFromCodes(req.Table)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}

	var resp rearrangeResponse
	switch res := rearrange.Rearrange(policy, rack, table).(type) {
	case rearrange.Placement:
		resp = rearrangeResponse{
			Placed:   true,
			Strategy: string(res.Strategy),
			Moved:    domain.TileCodes(res.Moved),
			Rack:     domain.TileCodes(res.Rack.Tiles()),
			Table:    tableToCodes(res.Table),
		}
	case rearrange.NoPlacement:
		resp = rearrangeResponse{
			Strategy: string(res.Strategy),
			Reason:   res.Reason,
			Rack:     domain.TileCodes(rack.Tiles()),
			Table:    tableToCodes(table),
		}
	}
	return encodeResponse(logger, RpcRearrange, resp)
}

type newGameRequest struct {
	Players []string `json:"players"`
}

type gameResponse struct {
	Game   gameView `json:"game"`
	Events []string `json:"events,omitempty"`
}

func (h *rpcHandlers) rpcNewGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req newGameRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	players := req.Players
	if len(players) == 0 && userID != "" {
		players = []string{userID}
	}

	game, events, err := h.games.Create(ctx, players)
	if err != nil {
		return "", appError(logger, RpcNewGame, err)
	}
	logger.WithField("game_id", game.ID).Info("%s: dealt %d racks", RpcNewGame, len(game.Players))
	notifyEvents(ctx, logger, nk, game, events)
	return encodeResponse(logger, RpcNewGame, gameResponse{Game: viewGame(game, userID), Events: eventKinds(events)})
}

type gameRequest struct {
	GameID string `json:"game_id"`
}

func (h *rpcHandlers) rpcTakeTurn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req gameRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("no user in context", codeInvalidArgument)
	}

	game, events, err := h.games.Play(ctx, req.GameID, userID)
	if err != nil {
		return "", appError(logger, RpcTakeTurn, err)
	}
	notifyEvents(ctx, logger, nk, game, events)
	return encodeResponse(logger, RpcTakeTurn, gameResponse{Game: viewGame(game, userID), Events: eventKinds(events)})
}

func (h *rpcHandlers) rpcGetGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req gameRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	game, err := h.games.Get(ctx, req.GameID)
	if err != nil {
		return "", appError(logger, RpcGetGame, err)
	}
	return encodeResponse(logger, RpcGetGame, gameResponse{Game: viewGame(game, userID)})
}

func decodePayload(payload string, v any) error {
	if payload == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return runtime.NewError("invalid payload: "+err.Error(), codeInvalidArgument)
	}
	return nil
}

func encodeResponse(logger runtime.Logger, rpc string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Error("%s: failed to marshal response: %v", rpc, err)
		return "", runtime.NewError("internal error", codeInternal)
	}
	return string(b), nil
}

func rackFromCodes(codes []string, melded bool) (domain.Rack, error) {
	tiles, err := domain.ParseTiles(codes)
	if err != nil {
		return domain.Rack{}, runtime.NewError(err.Error(), codeInvalidArgument)
	}
	rack, err := domain.NewRack(tiles...)
	if err != nil {
		return domain.Rack{}, runtime.NewError(err.Error(), codeInvalidArgument)
	}
	if melded {
		rack = rack.WithInitialMeldPlayed()
	}
	return rack, nil
}

// appError maps use-case failures onto gRPC status codes.
func appError(logger runtime.Logger, rpc string, err error) error {
	switch {
	case errors.Is(err, app.ErrGameNotFound), errors.Is(err, app.ErrUnknownPlayer):
		return runtime.NewError(err.Error(), codeNotFound)
	case errors.Is(err, app.ErrNotPlaying), errors.Is(err, app.ErrNotYourTurn):
		return runtime.NewError(err.Error(), codeFailedPrecondition)
	case errors.Is(err, app.ErrTooFewPlayers), errors.Is(err, app.ErrTooManyPlayers), errors.Is(err, app.ErrDuplicatePlayer):
		return runtime.NewError(err.Error(), codeInvalidArgument)
	}
	logger.Error("%s: %v", rpc, err)
	return runtime.NewError("internal error", codeInternal)
}

func eventKinds(events []app.Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, string(ev.Kind))
	}
	return out
}
