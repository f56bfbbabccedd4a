package ports

import (
	"context"
	"errors"

	"rummikub/internal/domain"
)

// ErrGameNotFound is returned by GameStore implementations for unknown game IDs.
var ErrGameNotFound = errors.New("game not found")

// GameStore keeps games between turns.
type GameStore interface {
	// Save stores a snapshot of game under game.ID, replacing any previous one.
	Save(ctx context.Context, game *domain.Game) error

	// Load returns a snapshot the caller may modify freely.
	// Returns ErrGameNotFound when no game has that ID.
	Load(ctx context.Context, id string) (*domain.Game, error)

	Delete(ctx context.Context, id string) error
}
