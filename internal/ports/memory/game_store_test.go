package memory

import (
	"context"
	"errors"
	"testing"

	"rummikub/internal/domain"
	"rummikub/internal/ports"
)

func TestGameStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewGameStore()

	game := &domain.Game{ID: "g1", Phase: domain.PhasePlaying, Players: []*domain.Player{{UserID: "a", Seat: 1}}}
	if err := store.Save(ctx, game); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Mutating after Save must not leak into the store.
	game.Players[0].UserID = "mutated"

	got, err := store.Load(ctx, "g1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Players[0].UserID != "a" {
		t.Fatalf("Load() player = %q, want a", got.Players[0].UserID)
	}

	if err := store.Delete(ctx, "g1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Load(ctx, "g1"); !errors.Is(err, ports.ErrGameNotFound) {
		t.Fatalf("Load() after delete error = %v, want ErrGameNotFound", err)
	}
	if store.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", store.Len())
	}
}

func TestGameStoreRejectsMissingID(t *testing.T) {
	if err := NewGameStore().Save(context.Background(), &domain.Game{}); err == nil {
		t.Fatalf("Save() without id should fail")
	}
}

func TestGameStoreHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewGameStore().Load(ctx, "g1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Load() error = %v, want context.Canceled", err)
	}
}
