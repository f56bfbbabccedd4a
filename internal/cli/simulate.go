package cli

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"rummikub/internal/app"
	"rummikub/internal/domain"
	"rummikub/internal/ports/memory"
)

// simulateSafetyCap bounds self-play when no turn limit is configured.
const simulateSafetyCap = 5000

func simulateCmd(opts *rootOptions) *cobra.Command {
	var players int
	var seed int64
	var maxTurns int

	c := &cobra.Command{
		Use:   "simulate",
		Short: "Play a game where every seat takes automatic turns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, err := opts.rules()
			if err != nil {
				return err
			}
			if maxTurns > 0 {
				rules.MaxTurns = maxTurns
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			log := opts.logger(cmd)
			games := app.NewGames(app.NewService(rand.New(rand.NewSource(seed)), rules), memory.NewGameStore())

			ids := make([]string, players)
			for i := range ids {
				ids[i] = fmt.Sprintf("p%d", i+1)
			}
			ctx := cmd.Context()
			game, _, err := games.Create(ctx, ids)
			if err != nil {
				return err
			}
			log.Info().Str("game_id", game.ID).Int64("seed", seed).Int("players", players).Msg("game started")

			var ended *app.GameEndedPayload
			for ended == nil {
				if game.TurnCount >= simulateSafetyCap {
					return fmt.Errorf("game %s did not finish within %d turns", game.ID, simulateSafetyCap)
				}
				current := game.CurrentPlayer()
				if current == nil {
					return errors.New("game stopped without a result")
				}
				var events []app.Event
				game, events, err = games.Play(ctx, game.ID, current.UserID)
				if err != nil {
					return err
				}
				for _, ev := range events {
					log.Debug().Str("user_id", current.UserID).Int("turn", game.TurnCount).Str("event", string(ev.Kind)).Msg("turn event")
					if p, ok := ev.Payload.(app.GameEndedPayload); ok {
						ended = &p
					}
				}
			}

			log.Info().Str("game_id", game.ID).Str("winner", ended.Winner).Str("reason", string(ended.Reason)).Int("turns", game.TurnCount).Msg("game ended")
			printSummary(cmd, opts, game, *ended)
			return nil
		},
	}

	c.Flags().IntVarP(&players, "players", "n", 2, "number of seats")
	c.Flags().Int64Var(&seed, "seed", 0, "shuffle seed (random when unset)")
	c.Flags().IntVar(&maxTurns, "max-turns", 0, "stop after this many turns (overrides config)")
	return c
}

func printSummary(cmd *cobra.Command, opts *rootOptions, game *domain.Game, ended app.GameEndedPayload) {
	th := opts.theme()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "winner %s after %d turns (%s)\n", ended.Winner, game.TurnCount, ended.Reason)
	fmt.Fprintln(out, th.Panel("table", th.Table(game.Table)))

	ids := make([]string, 0, len(ended.RackScores))
	for id := range ended.RackScores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(out, "%s: %d points left\n", id, ended.RackScores[id])
	}
}
