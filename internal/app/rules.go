package app

import (
	"rummikub/internal/config"
	"rummikub/internal/domain"
	"rummikub/internal/rearrange"
)

// Rules are the house rules a Service plays by.
type Rules struct {
	InitialMeldThreshold domain.Score
	InitialRackSize      int
	MinPlayers           int
	MaxPlayers           int
	Policy               rearrange.Policy
	// MaxTurns ends the game after that many turns; zero means no limit.
	MaxTurns int
}

// DefaultRules returns the standard rulebook settings.
func DefaultRules() Rules {
	return Rules{
		InitialMeldThreshold: domain.InitialMeldThreshold,
		InitialRackSize:      domain.InitialRackSize,
		MinPlayers:           MinPlayersToStartGame,
		MaxPlayers:           MaxPlayersPerGame,
		Policy:               rearrange.DefaultPolicy,
	}
}

// RulesFromConfig converts a validated configuration into Rules.
func RulesFromConfig(c config.GameConfig) (Rules, error) {
	if err := c.Validate(); err != nil {
		return Rules{}, err
	}
	policy, err := rearrange.ParsePolicy(c.RearrangePolicy)
	if err != nil {
		return Rules{}, err
	}
	return Rules{
		InitialMeldThreshold: domain.Score(c.InitialMeldThreshold),
		InitialRackSize:      c.InitialRackSize,
		MinPlayers:           c.MinPlayers,
		MaxPlayers:           c.MaxPlayers,
		Policy:               policy,
		MaxTurns:             c.MaxTurns,
	}, nil
}
