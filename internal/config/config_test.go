package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *c != Default() {
		t.Fatalf("Load(\"\") = %+v, want defaults", *c)
	}
}

func TestLoadFiles(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{
			name: "yaml",
			file: "rules.yaml",
			body: "initial_meld_threshold: 25\nrearrange_policy: exhaustive\nmax_turns: 200\n",
		},
		{
			name: "json",
			file: "rules.json",
			body: `{"initial_meld_threshold": 25, "rearrange_policy": "exhaustive", "max_turns": 200}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeConfig(t, tt.file, tt.body))
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if c.InitialMeldThreshold != 25 || c.RearrangePolicy != "exhaustive" || c.MaxTurns != 200 {
				t.Fatalf("Load() = %+v", *c)
			}
			if c.InitialRackSize != 14 {
				t.Fatalf("unset key lost its default: InitialRackSize = %d", c.InitialRackSize)
			}
		})
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RUMMIKUB_REARRANGE_POLICY", "incremental")
	t.Setenv("RUMMIKUB_MAX_PLAYERS", "3")

	c, err := Load(writeConfig(t, "rules.yaml", "rearrange_policy: exhaustive\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.RearrangePolicy != "incremental" || c.MaxPlayers != 3 {
		t.Fatalf("env did not override: %+v", *c)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "policy", body: "rearrange_policy: psychic\n", wantErr: "psychic"},
		{name: "racks too big", body: "initial_rack_size: 30\n", wantErr: "cannot deal"},
		{name: "players", body: "min_players: 5\n", wantErr: "player bounds"},
		{name: "threshold", body: "initial_meld_threshold: -1\n", wantErr: "initial_meld_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "rules.yaml", tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("Load() of a missing file should fail")
	}
}

func TestGetGameConfigFallsBackToDefault(t *testing.T) {
	if cfg != nil {
		t.Skip("configuration already loaded in this process")
	}
	if got := GetGameConfig(); got != Default() {
		t.Fatalf("GetGameConfig() = %+v, want defaults", got)
	}
}
