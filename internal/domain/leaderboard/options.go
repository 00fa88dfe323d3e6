package leaderboard

import "github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/scoring"

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithPackPolicy sets how many points a completed pack awards.
func WithPackPolicy(policy scoring.PackPolicy) Option {
	return func(a *Aggregator) {
		if policy != "" {
			a.packPolicy = policy
		}
	}
}
