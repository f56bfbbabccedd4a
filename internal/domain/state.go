package domain

// Phase represents the lifecycle stage of a game.
type Phase string

const (
	// PhaseLobby is the pre-game state where players can join.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the active game state where tiles are played.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after a game concludes.
	PhaseEnded Phase = "ended"
)

// Player holds state for a participant in a game.
type Player struct {
	UserID string
	Seat   int // 1-based seat number
	Rack   Rack
}

// Game holds authoritative state for one game instance.
type Game struct {
	ID    string
	Phase Phase

	Players []*Player // seat order
	Table   Table
	Pile    Boneyard

	// CurrentTurn indexes Players.
	CurrentTurn int
	TurnCount   int
	// BlockedTurns counts consecutive turns that could neither play nor draw.
	BlockedTurns int

	Winner string // userId, set once the game ends
}

// CurrentPlayer returns the player whose turn it is, or nil outside play.
func (g *Game) CurrentPlayer() *Player {
	if g.Phase != PhasePlaying || len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.CurrentTurn%len(g.Players)]
}

// Player finds a participant by user ID.
func (g *Game) Player(userID string) (*Player, bool) {
	for _, p := range g.Players {
		if p.UserID == userID {
			return p, true
		}
	}
	return nil, false
}

// AdvanceTurn moves play to the next seat.
func (g *Game) AdvanceTurn() {
	if len(g.Players) == 0 {
		return
	}
	g.CurrentTurn = (g.CurrentTurn + 1) % len(g.Players)
	g.TurnCount++
}

// LowestRack returns the player holding the fewest rack points; ties go to the earlier seat.
func (g *Game) LowestRack() *Player {
	var best *Player
	for _, p := range g.Players {
		if best == nil || p.Rack.Score() < best.Rack.Score() {
			best = p
		}
	}
	return best
}

// Clone copies the game and its players. Racks, tables and piles are values, so the
// copy shares nothing mutable with g.
func (g *Game) Clone() *Game {
	out := *g
	out.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		cp := *p
		out.Players[i] = &cp
	}
	return &out
}
