// Package memory holds process-local implementations of the ports interfaces.
package memory

import (
	"context"
	"errors"
	"sync"

	"rummikub/internal/domain"
	"rummikub/internal/ports"
)

// GameStore implements ports.GameStore with a map. Games live as long as the process.
type GameStore struct {
	mu    sync.RWMutex
	games map[string]*domain.Game
}

var _ ports.GameStore = (*GameStore)(nil)

// NewGameStore creates an empty store.
func NewGameStore() *GameStore {
	return &GameStore{games: make(map[string]*domain.Game)}
}

func (s *GameStore) Save(ctx context.Context, game *domain.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if game == nil || game.ID == "" {
		return errors.New("game without id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *GameStore) Load(ctx context.Context, id string) (*domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, ports.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *GameStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

// Len reports how many games are stored.
func (s *GameStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
