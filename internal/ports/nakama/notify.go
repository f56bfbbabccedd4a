package nakama

import (
	"context"

	"github.com/heroiclabs/nakama-common/runtime"

	"rummikub/internal/app"
	"rummikub/internal/domain"
)

// notifier is the part of runtime.NakamaModule used to push RPC game events.
type notifier interface {
	NotificationSend(ctx context.Context, userID, subject string, content map[string]interface{}, code int, sender string, persistent bool) error
}

// notifyEvents delivers events from RPC-driven games as Nakama notifications.
// Private events go to their recipients only, the rest to every seated player.
func notifyEvents(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, game *domain.Game, events []app.Event) {
	if nk == nil {
		return
	}
	sendEvents(ctx, logger, nk, game, events)
}

func sendEvents(ctx context.Context, logger runtime.Logger, n notifier, game *domain.Game, events []app.Event) {
	for _, ev := range events {
		code, ok := eventOpCode(ev.Kind)
		if !ok {
			logger.Warn("Unknown event kind: %v", ev.Kind)
			continue
		}
		content, err := eventContent(ev)
		if err != nil {
			logger.Error("Failed to encode event %v: %v", ev.Kind, err)
			continue
		}
		content["game_id"] = game.ID

		recipients := ev.Recipients
		if len(recipients) == 0 {
			for _, p := range game.Players {
				recipients = append(recipients, p.UserID)
			}
		}
		for _, userID := range recipients {
			if err := n.NotificationSend(ctx, userID, string(ev.Kind), content, int(code), "", false); err != nil {
				logger.Error("Failed to notify %s of %v: %v", userID, ev.Kind, err)
			}
		}
	}
}
