// Package config defines service configuration and how it is loaded.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/domain/scoring"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/metrics"
)

// Config contains process configuration shared by the server and the CLI.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataSource is where list documents are read from: an http(s) base URL
	// or a local directory.
	DataSource string `koanf:"data_source"`

	// ServeDataDir, when set, is served under /data/ by the HTTP server.
	ServeDataDir string `koanf:"serve_data_dir"`

	// FetchTimeoutMS bounds each document request.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// FetchConcurrency caps parallel level fetches. Zero uses GOMAXPROCS.
	FetchConcurrency int `koanf:"fetch_concurrency"`

	// PackScoring is the pack policy: none or half.
	PackScoring string `koanf:"pack_scoring"`

	// MetricsIntervalMS and ProbeIntervalMS drive the background jobs.
	// Zero disables a job.
	MetricsIntervalMS int `koanf:"metrics_interval_ms"`
	ProbeIntervalMS   int `koanf:"probe_interval_ms"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// Metrics naming and switches. Buckets and labels are easiest to set
	// from the YAML file.
	MetricsEnabled   bool              `koanf:"metrics_enabled"`
	MetricsNamespace string            `koanf:"metrics_namespace"`
	MetricsSubsystem string            `koanf:"metrics_subsystem"`
	MetricsPrefix    string            `koanf:"metrics_prefix"`
	MetricsBuckets   []float64         `koanf:"metrics_buckets_ms"`
	MetricsLabels    map[string]string `koanf:"metrics_labels"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		DataSource:          "./data",
		FetchTimeoutMS:      10_000,
		PackScoring:         string(scoring.PackPolicyNone),
		MetricsIntervalMS:   10_000,
		ProbeIntervalMS:     30_000,
		MaxLeaderboardLimit: 1000,
		MetricsEnabled:      true,
		MetricsNamespace:    "dlist",
		MetricsSubsystem:    "leaderboard",
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataSource) == "":
		return fmt.Errorf("%w: data_source must not be empty", ErrInvalidConfig)
	case c.FetchTimeoutMS <= 0:
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	case c.FetchConcurrency < 0:
		return fmt.Errorf("%w: fetch_concurrency must not be negative", ErrInvalidConfig)
	case c.MetricsIntervalMS < 0 || c.ProbeIntervalMS < 0:
		return fmt.Errorf("%w: intervals must not be negative", ErrInvalidConfig)
	case c.MaxLeaderboardLimit <= 0:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	}
	for i := 1; i < len(c.MetricsBuckets); i++ {
		if c.MetricsBuckets[i] <= c.MetricsBuckets[i-1] {
			return fmt.Errorf("%w: metrics_buckets_ms must be strictly increasing", ErrInvalidConfig)
		}
	}
	if _, err := scoring.ParsePackPolicy(c.PackScoring); err != nil {
		return fmt.Errorf("%w: pack_scoring: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// PackPolicy returns the parsed pack policy. Call Validate first.
func (c *Config) PackPolicy() scoring.PackPolicy {
	p, _ := scoring.ParsePackPolicy(c.PackScoring)
	return p
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// MetricsInterval returns MetricsIntervalMS as a duration.
func (c *Config) MetricsInterval() time.Duration {
	return time.Duration(c.MetricsIntervalMS) * time.Millisecond
}

// ProbeInterval returns ProbeIntervalMS as a duration.
func (c *Config) ProbeInterval() time.Duration {
	return time.Duration(c.ProbeIntervalMS) * time.Millisecond
}

// MetricsOptions maps the metrics settings onto pkg/metrics options.
// MetricsIntervalMS becomes the refresh interval the scheduler samples at.
func (c *Config) MetricsOptions() []metrics.Option {
	return []metrics.Option{
		metrics.WithMetricsEnabled(c.MetricsEnabled),
		metrics.WithNamespace(c.MetricsNamespace),
		metrics.WithSubsystem(c.MetricsSubsystem),
		metrics.WithMetricPrefix(c.MetricsPrefix),
		metrics.WithHistogramBuckets(c.MetricsBuckets),
		metrics.WithCustomLabels(c.MetricsLabels),
		metrics.WithRefreshInterval(c.MetricsInterval()),
	}
}
