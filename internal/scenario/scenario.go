// Package scenario loads table situations from YAML files and checks what the
// rearrangement engine makes of them.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rummikub/internal/domain"
	"rummikub/internal/rearrange"
)

type yamlFile struct {
	Scenarios []yamlScenario `yaml:"scenarios"`
}

type yamlScenario struct {
	Name   string      `yaml:"name"`
	Policy string      `yaml:"policy"`
	Melded *bool       `yaml:"melded"`
	Rack   []string    `yaml:"rack"`
	Table  [][]string  `yaml:"table"`
	Expect *yamlExpect `yaml:"expect"`
}

type yamlExpect struct {
	Placed   bool        `yaml:"placed"`
	Strategy string      `yaml:"strategy"`
	Rack     *[]string   `yaml:"rack"`
	Table    *[][]string `yaml:"table"`
}

// Scenario is one rack and table to run through a policy.
type Scenario struct {
	Name   string
	Policy rearrange.Policy
	Rack   domain.Rack
	Table  domain.Table
	Expect *Expectation
}

// Expectation describes the result a scenario should produce. Nil fields are not checked.
type Expectation struct {
	Placed   bool
	Strategy rearrange.Policy
	Rack     []domain.Tile
	Table    *domain.Table
}

// Load reads and validates a scenario file.
func Load(path string) ([]Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios %s: %w", path, err)
	}
	scenarios, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenarios, nil
}

// Parse decodes scenario YAML.
func Parse(data []byte) ([]Scenario, error) {
	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("decode scenarios: %w", err)
	}
	if len(yf.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios defined")
	}

	out := make([]Scenario, 0, len(yf.Scenarios))
	seen := make(map[string]bool, len(yf.Scenarios))
	for i, ys := range yf.Scenarios {
		if ys.Name == "" {
			ys.Name = fmt.Sprintf("scenario-%d", i+1)
		}
		if seen[ys.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", ys.Name)
		}
		seen[ys.Name] = true

		s, err := mapScenario(ys)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", ys.Name, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func mapScenario(ys yamlScenario) (Scenario, error) {
	policy, err := rearrange.ParsePolicy(ys.Policy)
	if err != nil {
		return Scenario{}, err
	}
	tiles, err := domain.ParseTiles(ys.Rack)
	if err != nil {
		return Scenario{}, fmt.Errorf("rack: %w", err)
	}
	rack, err := domain.NewRack(tiles...)
	if err != nil {
		return Scenario{}, fmt.Errorf("rack: %w", err)
	}
	// The engine only runs for players who have opened.
	if ys.Melded == nil || *ys.Melded {
		rack = rack.WithInitialMeldPlayed()
	}
	table, err := parseTable(ys.Table)
	if err != nil {
		return Scenario{}, fmt.Errorf("table: %w", err)
	}

	s := Scenario{Name: ys.Name, Policy: policy, Rack: rack, Table: table}
	if ys.Expect == nil {
		return s, nil
	}

	exp := &Expectation{Placed: ys.Expect.Placed}
	if ys.Expect.Strategy != "" {
		if exp.Strategy, err = rearrange.ParsePolicy(ys.Expect.Strategy); err != nil {
			return Scenario{}, fmt.Errorf("expect: %w", err)
		}
	}
	if ys.Expect.Rack != nil {
		if exp.Rack, err = domain.ParseTiles(*ys.Expect.Rack); err != nil {
			return Scenario{}, fmt.Errorf("expect rack: %w", err)
		}
		if exp.Rack == nil {
			exp.Rack = []domain.Tile{}
		}
	}
	if ys.Expect.Table != nil {
		t, err := parseTable(*ys.Expect.Table)
		if err != nil {
			return Scenario{}, fmt.Errorf("expect table: %w", err)
		}
		exp.Table = &t
	}
	s.Expect = exp
	return s, nil
}

func parseTable(sets [][]string) (domain.Table, error) {
	parsed := make([]domain.Set, 0, len(sets))
	for i, codes := range sets {
		tiles, err := domain.ParseTiles(codes)
		if err != nil {
			return domain.Table{}, fmt.Errorf("set %d: %w", i+1, err)
		}
		s, err := domain.ParseSet(tiles)
		if err != nil {
			return domain.Table{}, fmt.Errorf("set %d: %w", i+1, err)
		}
		parsed = append(parsed, s)
	}
	return domain.NewTable(parsed...), nil
}

// Outcome is a scenario's result and any unmet expectations.
type Outcome struct {
	Scenario Scenario
	Result   rearrange.Result
	Failures []string
}

// Passed reports whether every expectation held.
func (o Outcome) Passed() bool { return len(o.Failures) == 0 }

// Run applies the scenario's policy and checks its expectations.
func (s Scenario) Run() Outcome {
	res := rearrange.Rearrange(s.Policy, s.Rack, s.Table)
	return Outcome{Scenario: s, Result: res, Failures: s.check(res)}
}

func (s Scenario) check(res rearrange.Result) []string {
	if s.Expect == nil {
		return nil
	}
	var failures []string
	p, placed := rearrange.Placed(res)
	if placed != s.Expect.Placed {
		failures = append(failures, fmt.Sprintf("placed = %t, want %t", placed, s.Expect.Placed))
		return failures
	}
	if !placed {
		return nil
	}
	if s.Expect.Strategy != "" && p.Strategy != s.Expect.Strategy {
		failures = append(failures, fmt.Sprintf("strategy = %s, want %s", p.Strategy, s.Expect.Strategy))
	}
	if s.Expect.Rack != nil && !domain.SameTiles(p.Rack.Tiles(), s.Expect.Rack) {
		failures = append(failures, fmt.Sprintf("rack = %v, want %v", domain.TileCodes(p.Rack.Tiles()), domain.TileCodes(s.Expect.Rack)))
	}
	if s.Expect.Table != nil && !p.Table.Equal(*s.Expect.Table) {
		failures = append(failures, fmt.Sprintf("table = %s, want %s", p.Table, *s.Expect.Table))
	}
	return failures
}

// RunAll runs every scenario in order.
func RunAll(scenarios []Scenario) []Outcome {
	out := make([]Outcome, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, s.Run())
	}
	return out
}
