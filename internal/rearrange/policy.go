package rearrange

import (
	"fmt"
	"strings"

	"rummikub/internal/domain"
)

// Policy selects the strategy used for one attempt.
type Policy string

const (
	PolicyIncremental Policy = "incremental"
	PolicyExhaustive  Policy = "exhaustive"
	// PolicyAuto tries the incremental strategy and falls back to the exhaustive one.
	PolicyAuto Policy = "auto"
)

// DefaultPolicy is used when nothing is configured.
const DefaultPolicy = PolicyAuto

// ParsePolicy accepts a policy name, case-insensitive. Empty means DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultPolicy, nil
	case PolicyIncremental, PolicyExhaustive, PolicyAuto:
		return p, nil
	}
	return "", fmt.Errorf("unknown rearrange policy %q", s)
}

// Rearrange is the single entry point for moving rack tiles onto the table.
func Rearrange(policy Policy, rack domain.Rack, table domain.Table) Result {
	switch policy {
	case PolicyIncremental:
		return Incremental(rack, table)
	case PolicyExhaustive:
		return Exhaustive(rack, table)
	case PolicyAuto, "":
		if res, ok := Placed(Incremental(rack, table)); ok {
			return res
		}
		return Exhaustive(rack, table)
	}
	return NoPlacement{Strategy: policy, Reason: fmt.Sprintf("unknown policy %q", policy)}
}
