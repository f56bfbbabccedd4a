package nakama

const (
	RpcValidate    = "rummikub_validate"
	RpcInitialMeld = "rummikub_initial_meld"
	RpcRearrange   = "rummikub_rearrange"
	RpcNewGame     = "rummikub_new_game"
	RpcTakeTurn    = "rummikub_take_turn"
	RpcGetGame     = "rummikub_get_game"

	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "rummikub_quick_match"

	// MatchNameRummikub is the authoritative match handler name registered with Nakama.
	MatchNameRummikub = "rummikub_match"
)

// Runtime environment keys read at module init.
const (
	EnvConfigPath = "rummikub_config"
	EnvPolicy     = "rummikub_policy"

	EnvBotsEnabled      = "rummikub_bots_enabled"
	EnvBotAutoFillDelay = "rummikub_bot_auto_fill_delay_sec"
	EnvBotTurnDelay     = "rummikub_bot_turn_delay_sec"
	EnvTurnTimeout      = "rummikub_turn_timeout_sec"
)

// Match timing defaults, in ticks (the match runs at one tick per second).
const (
	defaultBotAutoFillDelay = 5
	defaultBotTurnDelay     = 1
	defaultTurnTimeout      = 30
)

// gRPC status codes used with runtime.NewError.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codeFailedPrecondition = 9
	codeInternal           = 13
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpTakeTurn  int64 = 2

	// Server -> Client events
	OpMatchState        int64 = 101
	OpGameStarted       int64 = 102
	OpRackDealt         int64 = 103 // send privately
	OpInitialMeldPlayed int64 = 104
	OpSetsPlaced        int64 = 105
	OpTableRearranged   int64 = 106
	OpTileDrawn         int64 = 107 // send privately
	OpPileExhausted     int64 = 108
	OpGameEnded         int64 = 109
	OpGameError         int64 = 199
)
