package scoring

import (
	"fmt"
	"strings"
)

// PackPolicy decides how many points a completed pack is worth.
type PackPolicy string

// Pack scoring policies.
const (
	// PackPolicyNone awards a badge only.
	PackPolicyNone PackPolicy = "none"
	// PackPolicyHalf awards half the summed full-completion score of the members.
	PackPolicyHalf PackPolicy = "half"
)

const halfMultiplier = 0.5

// ParsePackPolicy parses a policy name; the empty string means none.
func ParsePackPolicy(s string) (PackPolicy, error) {
	switch PackPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PackPolicyNone:
		return PackPolicyNone, nil
	case PackPolicyHalf:
		return PackPolicyHalf, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPackPolicy, s)
	}
}

// Multiplier is the share of the members' score a pack awards.
func (p PackPolicy) Multiplier() float64 {
	if p == PackPolicyHalf {
		return halfMultiplier
	}
	return 0
}
