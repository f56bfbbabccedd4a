package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"rummikub/internal/app"
	"rummikub/internal/config"
	"rummikub/internal/ports/memory"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	rules, err := rulesFromEnv(env)
	if err != nil {
		logger.Error("Invalid Rummikub configuration: %v", err)
		return err
	}

	games := app.NewGames(app.NewService(nil, rules), memory.NewGameStore())
	if err := RegisterRPCs(initializer, newRPCHandlers(games)); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameRummikub, NewMatch(rules)); err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{
		"policy":    string(rules.Policy),
		"threshold": int(rules.InitialMeldThreshold),
	}).Info("Rummikub Go module loaded.")
	return nil
}

// rulesFromEnv loads the config file named by EnvConfigPath and applies EnvPolicy on top.
func rulesFromEnv(env map[string]string) (app.Rules, error) {
	if path := env[EnvConfigPath]; path != "" {
		if err := config.LoadGameConfig(path); err != nil {
			return app.Rules{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	c := config.GetGameConfig()
	if policy := env[EnvPolicy]; policy != "" {
		c.RearrangePolicy = policy
	}
	return app.RulesFromConfig(c)
}
