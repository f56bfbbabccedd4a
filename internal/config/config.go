package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"rummikub/internal/domain"
	"rummikub/internal/rearrange"
)

// EnvPrefix namespaces environment overrides, e.g. RUMMIKUB_REARRANGE_POLICY.
const EnvPrefix = "RUMMIKUB"

type GameConfig struct {
	InitialMeldThreshold int    `mapstructure:"initial_meld_threshold" json:"initial_meld_threshold"`
	InitialRackSize      int    `mapstructure:"initial_rack_size" json:"initial_rack_size"`
	MinPlayers           int    `mapstructure:"min_players" json:"min_players"`
	MaxPlayers           int    `mapstructure:"max_players" json:"max_players"`
	RearrangePolicy      string `mapstructure:"rearrange_policy" json:"rearrange_policy"`
	// MaxTurns stops a game after that many turns; 0 disables the limit.
	MaxTurns int `mapstructure:"max_turns" json:"max_turns"`
}

// Default returns the rulebook configuration.
func Default() GameConfig {
	return GameConfig{
		InitialMeldThreshold: int(domain.InitialMeldThreshold),
		InitialRackSize:      domain.InitialRackSize,
		MinPlayers:           2,
		MaxPlayers:           4,
		RearrangePolicy:      string(rearrange.DefaultPolicy),
	}
}

// Load reads defaults, then the optional file at path (YAML or JSON by extension),
// then RUMMIKUB_* environment overrides, and validates the result.
func Load(path string) (*GameConfig, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("initial_meld_threshold", def.InitialMeldThreshold)
	v.SetDefault("initial_rack_size", def.InitialRackSize)
	v.SetDefault("min_players", def.MinPlayers)
	v.SetDefault("max_players", def.MaxPlayers)
	v.SetDefault("rearrange_policy", def.RearrangePolicy)
	v.SetDefault("max_turns", def.MaxTurns)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read game config: %w", err)
		}
	}

	var c GameConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the configuration can deal a game.
func (c GameConfig) Validate() error {
	var errs []error
	if c.InitialMeldThreshold < 0 {
		errs = append(errs, fmt.Errorf("initial_meld_threshold must not be negative, got %d", c.InitialMeldThreshold))
	}
	if c.MinPlayers < 1 || c.MaxPlayers < c.MinPlayers {
		errs = append(errs, fmt.Errorf("player bounds [%d, %d] are invalid", c.MinPlayers, c.MaxPlayers))
	}
	if c.InitialRackSize < 1 || c.InitialRackSize*c.MaxPlayers > domain.TileUniverse {
		errs = append(errs, fmt.Errorf("cannot deal %d racks of %d tiles from %d tiles", c.MaxPlayers, c.InitialRackSize, domain.TileUniverse))
	}
	if c.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("max_turns must not be negative, got %d", c.MaxTurns))
	}
	if _, err := rearrange.ParsePolicy(c.RearrangePolicy); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid game config: %w", errors.Join(errs...))
	}
	return nil
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the process-wide configuration once; later calls return the
// first result.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		cfg, loadErr = Load(path)
	})
	return loadErr
}

// GetGameConfig returns the process-wide configuration, or the defaults when none
// was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Default()
	}
	return *cfg
}
