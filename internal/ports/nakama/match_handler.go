package nakama

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"rummikub/internal/app"
	"rummikub/internal/domain"
)

const (
	MatchLabelKey_OpenSeats = "open" // Key for the open seats in the match label

	matchSeats = app.MaxPlayersPerGame

	botUserIDPrefix = "bot-"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [matchSeats]string          `json:"seats"`      // user IDs, empty string means seat is empty
	OwnerSeat int                         `json:"owner_seat"` // seat index of the match owner
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // UserId -> Presence for targeted messaging
	App       *app.Service                `json:"-"`
	Game      *domain.Game                `json:"-"` // nil while in lobby

	BotsEnabled          bool  `json:"bots_enabled"`            // Whether empty seats are filled with automatic players
	BotAutoFillDelay     int   `json:"bot_auto_fill_delay"`     // Ticks a lone player waits before bots join
	BotTurnDelay         int   `json:"bot_turn_delay"`          // Ticks a bot waits before playing
	TurnTimeout          int   `json:"turn_timeout"`            // Ticks before a connected player's turn is played for them; 0 disables
	LastSinglePlayerTick int64 `json:"last_single_player_tick"` // Tick the lobby first had a single human
	TurnStartedAt        int64 `json:"turn_started_at"`         // Tick the current turn began
	TurnStartedCount     int   `json:"turn_started_count"`      // Game.TurnCount the timer belongs to; -1 resets it
}

// GetOpenSeatsCount counts seats a human can take: empty ones, and bot seats while in the lobby.
func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" || (ms.Game == nil && isBotUserId(seat)) {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userID string) bool {
	return strings.HasPrefix(userID, botUserIDPrefix)
}

func botUserID(seat int) string {
	return fmt.Sprintf("%s%d", botUserIDPrefix, seat+1)
}

// seatOf returns the seat index of userID or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat == userID {
			return i
		}
	}
	return -1
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" && !isBotUserId(userID) {
			return i
		}
	}
	return -1
}

// NewMatch returns the factory registered with Nakama; every match plays by rules.
func NewMatch(rules app.Rules) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule) (runtime.Match, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return &matchHandler{rules: rules}, nil
	}
}

type matchHandler struct {
	rules app.Rules
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	state := &MatchState{
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil, mh.rules),
		OwnerSeat: -1,

		BotsEnabled:      true,
		BotAutoFillDelay: defaultBotAutoFillDelay,
		BotTurnDelay:     defaultBotTurnDelay,
		TurnTimeout:      defaultTurnTimeout,
		TurnStartedCount: -1,
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env[EnvBotsEnabled]; ok {
		state.BotsEnabled = val != "false"
	}
	if i, err := strconv.Atoi(env[EnvBotAutoFillDelay]); err == nil && i >= 0 {
		state.BotAutoFillDelay = i
	}
	if i, err := strconv.Atoi(env[EnvBotTurnDelay]); err == nil && i >= 0 {
		state.BotTurnDelay = i
	}
	if i, err := strconv.Atoi(env[EnvTurnTimeout]); err == nil && i >= 0 {
		state.TurnTimeout = i
	}

	label, err := matchLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Seated players may always reconnect.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if matchState.Game != nil {
		return state, false, "Game in progress"
	}
	// Open seats include bots, which give way to humans in the lobby.
	if matchState.GetOpenSeatsCount() <= 0 {
		return state, false, "Match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
		if matchState.seatOf(p.GetUserId()) >= 0 {
			continue
		}

		// Empty seats first, then bots while still in the lobby.
		seat := -1
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				seat = i
				break
			}
		}
		if seat < 0 && matchState.Game == nil {
			for i, seatUserID := range matchState.Seats {
				if isBotUserId(seatUserID) {
					logger.Info("MatchJoin: Replacing bot %s with %s in seat %d", seatUserID, p.GetUserId(), i)
					seat = i
					break
				}
			}
		}
		if seat < 0 {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
		matchState.Seats[seat] = p.GetUserId()
	}

	if matchState.OwnerSeat < 0 || matchState.Seats[matchState.OwnerSeat] == "" {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		logger.Debug("MatchJoin: Owner set to seat %d.", matchState.OwnerSeat)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave frees lobby seats. Seats in a running game are kept so the player can
// reconnect, and their turns are played automatically meanwhile. The match ends once
// no human is connected.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		if matchState.Game != nil {
			continue
		}
		if i := matchState.seatOf(p.GetUserId()); i >= 0 {
			matchState.Seats[i] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with nobody connected.")
		return nil
	}

	if matchState.OwnerSeat < 0 || matchState.Seats[matchState.OwnerSeat] == "" {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg.GetUserId())
		case OpTakeTurn:
			mh.handleTakeTurn(matchState, dispatcher, logger, msg.GetUserId())
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.fillWithBots(matchState, dispatcher, logger)
	}
	mh.processAutoTurn(matchState, dispatcher, logger)

	return matchState
}

// fillWithBots seats bots in every empty seat once a lone player has waited long enough.
func (mh *matchHandler) fillWithBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game != nil || state.GetHumanPlayerCount() != 1 {
		state.LastSinglePlayerTick = 0
		return
	}
	if state.LastSinglePlayerTick == 0 {
		state.LastSinglePlayerTick = state.Tick
		logger.Debug("fillWithBots: Single player detected, starting auto-fill timer.")
	}
	if state.Tick-state.LastSinglePlayerTick < int64(state.BotAutoFillDelay) {
		return
	}

	added := false
	for i, seat := range state.Seats {
		if seat == "" {
			state.Seats[i] = botUserID(i)
			logger.Info("fillWithBots: Added bot %s to seat %d", state.Seats[i], i)
			added = true
		}
	}
	if added {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastMatchState(state, dispatcher, logger)
	}
	state.LastSinglePlayerTick = 0
}

// processAutoTurn plays the current seat's turn when it is a bot whose delay passed,
// a player who is not connected, or a player whose turn timed out.
func (mh *matchHandler) processAutoTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || state.Game.Phase != domain.PhasePlaying {
		return
	}
	current := state.Game.CurrentPlayer()
	if current == nil {
		return
	}
	if state.TurnStartedCount != state.Game.TurnCount {
		state.TurnStartedCount = state.Game.TurnCount
		state.TurnStartedAt = state.Tick
	}

	elapsed := state.Tick - state.TurnStartedAt
	_, connected := state.Presences[current.UserID]
	switch {
	case isBotUserId(current.UserID):
		if elapsed < int64(state.BotTurnDelay) {
			return
		}
	case !connected:
		logger.Debug("processAutoTurn: %s is disconnected, playing their turn.", current.UserID)
	case state.TurnTimeout > 0 && elapsed >= int64(state.TurnTimeout):
		logger.Info("processAutoTurn: %s timed out after %d ticks, playing their turn.", current.UserID, elapsed)
	default:
		return
	}

	if err := mh.playTurn(state, dispatcher, logger, current.UserID); err != nil {
		logger.Error("processAutoTurn: Turn for %s failed: %v", current.UserID, err)
	}
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	senderSeat := state.seatOf(senderID)
	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil {
		mh.sendError(state, dispatcher, logger, senderID, codeFailedPrecondition, "game already running")
		return
	}
	if senderSeat < 0 || senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, codeFailedPrecondition, "only the match owner can start")
		return
	}

	game, events, err := state.App.NewGame(state.Seats[:])
	if err != nil {
		logger.Warn("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, codeInvalidArgument, err.Error())
		return
	}

	state.Game = game
	state.TurnStartedCount = -1
	mh.updateLabel(state, dispatcher, logger)

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	logger.Info("StartGame: Game %s started with %d players.", game.ID, len(game.Players))
}

func (mh *matchHandler) handleTakeTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	if state.Game == nil {
		logger.Warn("handleTakeTurn: Game not started.")
		mh.sendError(state, dispatcher, logger, senderID, codeFailedPrecondition, app.ErrNotPlaying.Error())
		return
	}

	if err := mh.playTurn(state, dispatcher, logger, senderID); err != nil {
		logger.Warn("handleTakeTurn: User %s failed to take turn: %v", senderID, err)
		code := codeInternal
		if errors.Is(err, app.ErrNotYourTurn) || errors.Is(err, app.ErrNotPlaying) || errors.Is(err, app.ErrUnknownPlayer) {
			code = codeFailedPrecondition
		}
		mh.sendError(state, dispatcher, logger, senderID, code, err.Error())
	}
}

// playTurn takes userID's turn, broadcasts its events and returns to the lobby when the game ends.
func (mh *matchHandler) playTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) error {
	events, err := state.App.TakeTurn(state.Game, userID)
	if err != nil {
		return err
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastMatchState(state, dispatcher, logger)

	if state.Game.Phase == domain.PhaseEnded {
		logger.Info("playTurn: Game %s won by %s.", state.Game.ID, state.Game.Winner)
		// Back to the lobby with the same seats.
		state.Game = nil
		mh.updateLabel(state, dispatcher, logger)
	}
	return nil
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	seats := make([]interface{}, 0, len(state.Seats))
	players := make([]interface{}, 0, len(state.Seats))
	for i, userID := range state.Seats {
		seats = append(seats, userID)
		if userID == "" {
			continue
		}

		displayName := userID
		if p, exists := state.Presences[userID]; exists && p.GetUsername() != "" {
			displayName = p.GetUsername()
		}
		_, connected := state.Presences[userID]

		rackCount, melded := 0, false
		if state.Game != nil {
			if p, ok := state.Game.Player(userID); ok {
				rackCount, melded = p.Rack.Len(), p.Rack.PlayedInitialMeld()
			}
		}

		players = append(players, map[string]interface{}{
			"user_id":      userID,
			"seat":         i,
			"is_owner":     i == state.OwnerSeat,
			"display_name": displayName,
			"rack_count":   rackCount,
			"melded":       melded,
			"is_bot":       isBotUserId(userID),
			"connected":    connected,
		})
	}

	snapshot := map[string]interface{}{
		"seats":      seats,
		"owner_seat": state.OwnerSeat,
		"tick":       state.Tick,
		"players":    players,
	}
	if state.Game != nil {
		snapshot["game_id"] = state.Game.ID
		snapshot["pile_count"] = state.Game.Pile.Len()
		snapshot["turn_count"] = state.Game.TurnCount
		if cur := state.Game.CurrentPlayer(); cur != nil {
			snapshot["current_turn"] = cur.UserID
		}
		table := make([]interface{}, 0, state.Game.Table.Len())
		for _, s := range state.Game.Table.Sets() {
			table = append(table, codeList(s.Tiles()))
		}
		snapshot["table"] = table
	}

	bytes, err := marshalStruct(snapshot)
	if err != nil {
		logger.Error("Failed to marshal match state: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchState, bytes, nil, nil, true)
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCode(ev.Kind)
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}
	bytes, err := marshalEvent(ev)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Private events whose recipients are offline must not fall back to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendError sends a game error to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := marshalStruct(map[string]interface{}{"code": code, "message": message})
	if err != nil {
		logger.Error("Failed to marshal game error: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

// matchLabel renders the searchable label used by quick match.
func matchLabel(state *MatchState) (string, error) {
	phase := "lobby"
	if state.Game != nil {
		phase = "playing"
	}
	b, err := marshalStruct(map[string]interface{}{
		"game":                  "rummikub",
		MatchLabelKey_OpenSeats: state.GetOpenSeatsCount(),
		"state":                 phase,
	})
	return string(b), err
}

func marshalStruct(m map[string]interface{}) ([]byte, error) {
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(st)
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
