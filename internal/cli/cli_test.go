package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--plain"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{name: "run", args: []string{"R4", "R5", "R6"}, want: "run R4 R5 R6 (15)"},
		{name: "group", args: []string{"B9", "O9", "J"}, want: "group"},
		{name: "mixed", args: []string{"R1", "B2", "O3"}, wantErr: "not a set"},
		{name: "bad tile", args: []string{"X1", "R2", "R3"}, wantErr: "invalid_tile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"validate"}, tt.args...)...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("validate error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("validate error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Fatalf("validate output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestMeldCommand(t *testing.T) {
	out, err := run(t, "meld", "R9", "R10", "R11", "K1")
	if err != nil {
		t.Fatalf("meld error: %v", err)
	}
	if !strings.Contains(out, "initial meld scores 30") {
		t.Fatalf("meld output = %q", out)
	}

	out, err = run(t, "meld", "B8", "O8", "K8")
	if err != nil {
		t.Fatalf("meld error: %v", err)
	}
	if !strings.Contains(out, "no initial meld") {
		t.Fatalf("meld output = %q", out)
	}
}

func TestMeldCommandReadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("initial_meld_threshold: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "--config", path, "meld", "B8", "O8", "K8")
	if err != nil {
		t.Fatalf("meld error: %v", err)
	}
	if !strings.Contains(out, "initial meld scores 24") {
		t.Fatalf("meld output = %q", out)
	}
}

func TestRearrangeCommand(t *testing.T) {
	out, err := run(t, "rearrange", "--rack", "B3,B8", "--set", "B4 B5 B6", "--set", "R8 O8 K8")
	if err != nil {
		t.Fatalf("rearrange error: %v", err)
	}
	if !strings.Contains(out, "with incremental") {
		t.Fatalf("rearrange output = %q", out)
	}

	out, err = run(t, "rearrange", "--rack", "R1", "--set", "O1 O2 O3 O4", "--policy", "exhaustive")
	if err != nil {
		t.Fatalf("rearrange error: %v", err)
	}
	if !strings.Contains(out, "no placement (exhaustive)") {
		t.Fatalf("rearrange output = %q", out)
	}

	if _, err := run(t, "rearrange", "--rack", "R1", "--policy", "psychic"); err == nil {
		t.Fatalf("rearrange accepted an unknown policy")
	}
	if _, err := run(t, "rearrange", "--rack", "R1", "--set", "R1 B2"); err == nil {
		t.Fatalf("rearrange accepted an invalid table set")
	}
}

func TestScenariosCommand(t *testing.T) {
	out, err := run(t, "scenarios", filepath.Join("..", "scenario", "testdata", "rulebook.yaml"))
	if err != nil {
		t.Fatalf("scenarios error: %v\n%s", err, out)
	}
	if strings.Count(out, "PASS") != 7 {
		t.Fatalf("scenarios output = %q", out)
	}

	path := filepath.Join(t.TempDir(), "failing.yaml")
	data := "scenarios:\n  - name: wrong\n    rack: [R1]\n    expect:\n      placed: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "scenarios", path)
	if err == nil || !strings.Contains(out, "FAIL wrong") {
		t.Fatalf("failing scenario: err %v output %q", err, out)
	}
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate", "--players", "3", "--seed", "7")
	if err != nil {
		t.Fatalf("simulate error: %v", err)
	}
	if !strings.Contains(out, "winner p") {
		t.Fatalf("simulate output = %q", out)
	}
	for _, id := range []string{"p1:", "p2:", "p3:"} {
		if !strings.Contains(out, id) {
			t.Fatalf("simulate output missing %s: %q", id, out)
		}
	}

	again, err := run(t, "simulate", "--players", "3", "--seed", "7")
	if err != nil || again != out {
		t.Fatalf("same seed produced a different game")
	}

	out, err = run(t, "simulate", "--players", "2", "--seed", "1", "--max-turns", "4")
	if err != nil {
		t.Fatalf("simulate error: %v", err)
	}
	if !strings.Contains(out, "after 4 turns (turn_limit)") {
		t.Fatalf("simulate output = %q", out)
	}

	if _, err := run(t, "simulate", "--players", "1"); err == nil {
		t.Fatalf("simulate accepted a single player")
	}
}
