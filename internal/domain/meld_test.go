package domain

import "testing"

func TestParseInitialMeldThreshold(t *testing.T) {
	tests := []struct {
		name   string
		sets   []Set
		wantOK bool
	}{
		{
			name:   "twenty nine",
			sets:   []Set{RunSet(mustRunOf(t, 2, Red, 3)), RunSet(mustRunOf(t, 2, Blue, 5))},
			wantOK: false,
		},
		{
			name:   "exactly thirty",
			sets:   []Set{GroupSet(mustGroupOf(t, 10, Red, Blue, Black))},
			wantOK: true,
		},
		{
			name:   "thirty one",
			sets:   []Set{RunSet(mustRunOf(t, 2, Red, 3)), RunSet(mustRunOf(t, 4, Blue, 4))},
			wantOK: true,
		},
		{
			name:   "joker counts thirty",
			sets:   []Set{GroupSet(mustGroup(t, "R1", "B1", "J"))},
			wantOK: true,
		},
		{name: "nothing", sets: nil, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meld, err := ParseInitialMeld(tt.sets)
			if (err == nil) != tt.wantOK {
				t.Fatalf("ParseInitialMeld() error = %v, wantOK %v", err, tt.wantOK)
			}
			if tt.wantOK && len(meld.Sets()) != len(tt.sets) {
				t.Fatalf("meld holds %d sets, want %d", len(meld.Sets()), len(tt.sets))
			}
		})
	}
}

func TestParseInitialMeldAt(t *testing.T) {
	sets := []Set{RunSet(mustRunOf(t, 1, Red, 3))}
	if _, err := ParseInitialMeldAt(sets, 6); err != nil {
		t.Fatalf("custom threshold 6 should accept a score of 6: %v", err)
	}
	if _, err := ParseInitialMeldAt(sets, 7); err == nil {
		t.Fatalf("custom threshold 7 should reject a score of 6")
	}
}

func TestInitialMeldRejectsInvalidSet(t *testing.T) {
	if _, err := ParseInitialMeld([]Set{{}}); err == nil {
		t.Fatalf("zero set must not form a meld")
	}
}
