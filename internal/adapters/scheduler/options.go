package scheduler

import (
	"time"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/logger"
)

// Option applies a configuration option to the Scheduler.
type Option func(*Scheduler)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsInterval sets how often runtime metrics are sampled. Zero
// disables the job.
func WithMetricsInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d >= 0 {
			s.metricsInterval = d
		}
	}
}

// WithProbeInterval sets how often the store is probed. Zero disables the
// job.
func WithProbeInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d >= 0 {
			s.probeInterval = d
		}
	}
}
