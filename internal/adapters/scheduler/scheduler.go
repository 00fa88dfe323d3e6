// Package scheduler runs the service's periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/docstore"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/logger"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/metrics"
)

const (
	defaultProbeInterval      = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// Scheduler samples runtime metrics and probes the document store.
type Scheduler struct {
	cron   *gocron.Scheduler
	store  docstore.Store
	logger logger.Logger

	metricsInterval time.Duration
	probeInterval   time.Duration

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

// New creates a scheduler. A nil store disables the probe. Runtime metrics
// are sampled at metrics.RefreshInterval unless WithMetricsInterval says
// otherwise.
func New(store docstore.Store, opts ...Option) *Scheduler {
	s := &Scheduler{
		cron:            gocron.NewScheduler(time.UTC),
		store:           store,
		metricsInterval: metrics.RefreshInterval(),
		probeInterval:   defaultProbeInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers the jobs and runs them in the background. Jobs run once
// immediately and then on their interval until Stop or ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("scheduler")
	}

	jobCtx, cancel := context.WithCancel(ctx)

	if s.metricsInterval > 0 {
		if _, err := s.cron.Every(s.metricsInterval).Do(UpdateSystemMetrics); err != nil {
			cancel()
			return fmt.Errorf("schedule system metrics: %w", err)
		}
	}
	if s.probeInterval > 0 && s.store != nil {
		if _, err := s.cron.Every(s.probeInterval).Do(func() { s.Probe(jobCtx) }); err != nil {
			cancel()
			s.cron.Clear()
			return fmt.Errorf("schedule store probe: %w", err)
		}
	}

	s.cron.StartAsync()
	s.cancel = cancel
	s.started = true

	go func() {
		<-jobCtx.Done()
		s.Stop()
	}()

	s.logger.Info(ctx, "scheduler started",
		logger.Duration("metricsInterval", s.metricsInterval),
		logger.Duration("probeInterval", s.probeInterval),
		logger.Int("jobs", len(s.cron.Jobs())),
	)
	return nil
}

// Stop halts all jobs. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.cancel()
	s.cron.Stop()
}

// Running reports whether the scheduler has been started and not stopped.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cron.Jobs())
}

// Probe fetches the manifest and records whether the store answered.
func (s *Scheduler) Probe(ctx context.Context) bool {
	_, err := s.store.Fetch(ctx, docstore.ListDocument)
	up := err == nil
	metrics.UpdateSourceUp(up)
	if !up && s.logger != nil {
		s.logger.Warn(ctx, "document store probe failed", logger.Error(err))
	}
	return up
}

// UpdateSystemMetrics samples memory, goroutine and GC figures.
func UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
