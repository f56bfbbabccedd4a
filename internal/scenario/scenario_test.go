package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rummikub/internal/rearrange"
)

func TestRulebookScenarios(t *testing.T) {
	scenarios, err := Load(filepath.Join("testdata", "rulebook.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(scenarios) != 7 {
		t.Fatalf("loaded %d scenarios, want 7", len(scenarios))
	}

	for _, o := range RunAll(scenarios) {
		o := o
		t.Run(o.Scenario.Name, func(t *testing.T) {
			if !o.Passed() {
				t.Fatalf("scenario failed: %s", strings.Join(o.Failures, "; "))
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	scenarios, err := Parse([]byte(`
scenarios:
  - rack: [R1]
  - rack: [R1]
    melded: false
    policy: Exhaustive
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if scenarios[0].Name != "scenario-1" || scenarios[1].Name != "scenario-2" {
		t.Fatalf("names = %q, %q", scenarios[0].Name, scenarios[1].Name)
	}
	if scenarios[0].Policy != rearrange.DefaultPolicy || scenarios[1].Policy != rearrange.PolicyExhaustive {
		t.Fatalf("policies = %s, %s", scenarios[0].Policy, scenarios[1].Policy)
	}
	if !scenarios[0].Rack.PlayedInitialMeld() || scenarios[1].Rack.PlayedInitialMeld() {
		t.Fatalf("melded flags not applied")
	}
	if scenarios[0].Expect != nil {
		t.Fatalf("scenario without expect block has expectation %+v", scenarios[0].Expect)
	}
	if o := scenarios[0].Run(); !o.Passed() {
		t.Fatalf("scenario without expectations reported failures: %v", o.Failures)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "empty", yaml: "", want: "no scenarios"},
		{name: "duplicate", yaml: "scenarios:\n  - name: a\n  - name: a\n", want: "duplicate"},
		{name: "bad tile", yaml: "scenarios:\n  - rack: [Z4]\n", want: "rack"},
		{name: "bad set", yaml: "scenarios:\n  - table: [[R1, B2, O3]]\n", want: "table"},
		{name: "bad policy", yaml: "scenarios:\n  - policy: psychic\n", want: "psychic"},
		{name: "bad expectation", yaml: "scenarios:\n  - expect:\n      strategy: nope\n", want: "expect"},
		{name: "not yaml", yaml: "scenarios: [", want: "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Parse() succeeded, want error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Parse() error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestFailuresAreReported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wrong.yaml")
	data := `
scenarios:
  - name: wrong
    rack: [B3]
    table:
      - [B4, B5, B6]
    expect:
      placed: true
      strategy: exhaustive
      rack: [B3]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	scenarios, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	o := scenarios[0].Run()
	if o.Passed() || len(o.Failures) != 2 {
		t.Fatalf("failures = %v, want strategy and rack mismatches", o.Failures)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("Load() of a missing file succeeded")
	}
}
