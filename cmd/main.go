package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/docstore"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/http/api"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/http/site"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/http/swagger"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/loader"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/scheduler"
	service "github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/app"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/config"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/logger"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Only the custom registry is exported.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Stderr.WriteString("dlist: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env first so its values feed the koanf env layer.
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(cfg.MetricsOptions()...)

	store, err := docstore.Open(cfg.DataSource, docstore.WithTimeout(cfg.FetchTimeout()))
	if err != nil {
		return err
	}

	sched := scheduler.New(store,
		scheduler.WithLogger(logger.Named("scheduler")),
		scheduler.WithProbeInterval(cfg.ProbeInterval()),
	)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	mux, err := newMux(ctx, cfg, store)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("data_source", cfg.DataSource),
			logger.String("pack_scoring", cfg.PackScoring),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		if err != nil {
			return err
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newMux wires the service and every route.
func newMux(ctx context.Context, cfg *config.Config, store docstore.Store) (*http.ServeMux, error) {
	l, err := loader.New(store,
		loader.WithConcurrency(cfg.FetchConcurrency),
		loader.WithLogger(logger.Named("loader")),
	)
	if err != nil {
		return nil, err
	}
	svc := service.New(l,
		service.WithPackPolicy(cfg.PackPolicy()),
		service.WithLogger(logger.Named("service")),
	)

	mux := http.NewServeMux()
	api.NewServer(svc, svc, cfg.MaxLeaderboardLimit).Register(ctx, mux)
	swagger.Register(ctx, mux)
	if cfg.ServeDataDir != "" {
		site.Register(ctx, mux, os.DirFS(cfg.ServeDataDir))
	}
	return mux, nil
}
