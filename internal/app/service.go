package app

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"rummikub/internal/domain"
	"rummikub/internal/ports"
)

// Service contains Rummikub use-cases operating on domain state.
type Service struct {
	rules Rules

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand, rules Rules) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, rules: rules}
}

// Rules returns the rules the service was built with.
func (s *Service) Rules() Rules { return s.rules }

var (
	ErrNotPlaying      = errors.New("game not in playing phase")
	ErrNotYourTurn     = errors.New("not the player's turn")
	ErrUnknownPlayer   = errors.New("player not found")
	ErrDuplicatePlayer = errors.New("player seated twice")
	ErrTooFewPlayers   = errors.New("not enough players to start")
	ErrTooManyPlayers  = errors.New("too many players for one tile set")
	ErrGameNotFound    = ports.ErrGameNotFound
)

// NewGame shuffles a fresh boneyard and deals a rack to each player.
// It expects a list of userIDs in seat order; empty strings are skipped.
func (s *Service) NewGame(playerIDs []string) (*domain.Game, []Event, error) {
	var seats []string
	seen := make(map[string]bool, len(playerIDs))
	for _, userID := range playerIDs {
		if userID == "" {
			continue
		}
		if seen[userID] {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, userID)
		}
		seen[userID] = true
		seats = append(seats, userID)
	}

	if len(seats) < s.rules.MinPlayers {
		return nil, nil, ErrTooFewPlayers
	}
	if s.rules.MaxPlayers > 0 && len(seats) > s.rules.MaxPlayers {
		return nil, nil, ErrTooManyPlayers
	}

	s.mu.Lock()
	pile := domain.NewBoneyard().Shuffled(s.rng)
	s.mu.Unlock()

	game := &domain.Game{
		ID:    uuid.NewString(),
		Phase: domain.PhasePlaying,
		Table: domain.NewTable(),
	}

	events := make([]Event, 0, len(seats)+1)
	for i, userID := range seats {
		rack, rest, err := pile.DrawRack(s.rules.InitialRackSize)
		if err != nil {
			return nil, nil, fmt.Errorf("deal rack for %s: %w", userID, err)
		}
		pile = rest
		game.Players = append(game.Players, &domain.Player{
			UserID: userID,
			Seat:   i + 1,
			Rack:   rack,
		})
		events = append(events, Event{
			Kind:       EventRackDealt,
			Payload:    RackDealtPayload{UserID: userID, Tiles: rack.Tiles()},
			Recipients: []string{userID},
		})
	}
	game.Pile = pile

	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			GameID:          game.ID,
			Players:         seats,
			FirstTurnUserID: seats[0],
		},
	})
	return game, events, nil
}

// TakeTurn plays the current player's turn automatically and advances play.
// The game ends when a rack empties, when every seat in a row could neither play nor
// draw, or when the turn limit is reached; the lowest rack wins the latter two.
func (s *Service) TakeTurn(game *domain.Game, userID string) ([]Event, error) {
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	pl, ok := game.Player(userID)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if cur := game.CurrentPlayer(); cur == nil || cur.UserID != userID {
		return nil, ErrNotYourTurn
	}

	out, err := PlayTurn(pl.Rack, game.Table, game.Pile, s.rules)
	if err != nil {
		return nil, fmt.Errorf("take turn for %s: %w", userID, err)
	}
	pl.Rack, game.Table, game.Pile = out.Rack, out.Table, out.Pile
	events := turnEvents(userID, out)

	if out.PileExhausted {
		game.BlockedTurns++
	} else {
		game.BlockedTurns = 0
	}
	game.AdvanceTurn()

	switch {
	case pl.Rack.IsEmpty():
		events = append(events, endGame(game, pl, EndRackEmptied))
	case game.BlockedTurns >= len(game.Players):
		events = append(events, endGame(game, game.LowestRack(), EndPileBlocked))
	case s.rules.MaxTurns > 0 && game.TurnCount >= s.rules.MaxTurns:
		events = append(events, endGame(game, game.LowestRack(), EndTurnLimit))
	}
	return events, nil
}

// Validate classifies tiles as a run or a group.
func (s *Service) Validate(tiles []domain.Tile) (domain.Set, error) {
	return domain.ParseSet(tiles)
}

func endGame(game *domain.Game, winner *domain.Player, reason EndReason) Event {
	game.Phase = domain.PhaseEnded
	game.Winner = winner.UserID

	scores := make(map[string]domain.Score, len(game.Players))
	for _, p := range game.Players {
		scores[p.UserID] = p.Rack.Score()
	}
	return Event{
		Kind:    EventGameEnded,
		Payload: GameEndedPayload{Winner: winner.UserID, Reason: reason, RackScores: scores},
	}
}
