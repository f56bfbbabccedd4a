package app

import (
	"context"
	"fmt"
	"sync"

	"rummikub/internal/domain"
	"rummikub/internal/ports"
)

// Games runs games kept in a ports.GameStore. Turns are applied one at a time so a
// load, turn and save sequence never interleaves with another.
type Games struct {
	svc   *Service
	store ports.GameStore

	mu sync.Mutex
}

// NewGames binds a service to a store.
func NewGames(svc *Service, store ports.GameStore) *Games {
	return &Games{svc: svc, store: store}
}

// Service exposes the underlying rules engine.
func (g *Games) Service() *Service { return g.svc }

// Create deals a new game and stores it.
func (g *Games) Create(ctx context.Context, playerIDs []string) (*domain.Game, []Event, error) {
	game, events, err := g.svc.NewGame(playerIDs)
	if err != nil {
		return nil, nil, err
	}
	if err := g.store.Save(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("save game %s: %w", game.ID, err)
	}
	return game, events, nil
}

// Get loads a stored game.
func (g *Games) Get(ctx context.Context, gameID string) (*domain.Game, error) {
	return g.store.Load(ctx, gameID)
}

// Play takes userID's turn in a stored game and saves the result.
func (g *Games) Play(ctx context.Context, gameID, userID string) (*domain.Game, []Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	game, err := g.store.Load(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	events, err := g.svc.TakeTurn(game, userID)
	if err != nil {
		return nil, nil, err
	}
	if err := g.store.Save(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("save game %s: %w", game.ID, err)
	}
	return game, events, nil
}
