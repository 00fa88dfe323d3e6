package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DataSource, convey.ShouldEqual, "./data")
				convey.So(cfg.PackScoring, convey.ShouldEqual, "none")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("DLIST_ADDR", ":8080")
			_ = os.Setenv("DLIST_DATA_SOURCE", "https://example.com/data")
			_ = os.Setenv("DLIST_PACK_SCORING", "half")
			_ = os.Setenv("DLIST_FETCH_TIMEOUT_MS", "2500")
			_ = os.Setenv("DLIST_MAX_LEADERBOARD_LIMIT", "50")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataSource, convey.ShouldEqual, "https://example.com/data")
				convey.So(cfg.PackScoring, convey.ShouldEqual, "half")
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
# comments are fine
addr: ":9090"
data_source: "/srv/list/data"
serve_data_dir: "/srv/list/data"
log_format: json
probe_interval_ms: 0
metrics_namespace: demons
metrics_buckets_ms: [1, 10, 100]
metrics_labels:
  list: main
`)
			_ = os.Setenv(config.EnvFile, tmpFile)
			_ = os.Setenv("DLIST_ADDR", ":8080")
			_ = os.Setenv("DLIST_METRICS_ENABLED", "false")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataSource, convey.ShouldEqual, "/srv/list/data")
				convey.So(cfg.ServeDataDir, convey.ShouldEqual, "/srv/list/data")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.ProbeIntervalMS, convey.ShouldEqual, 0)
				convey.So(cfg.MetricsIntervalMS, convey.ShouldEqual, 10_000)
			})

			convey.Convey("And metrics settings come from both layers", func() {
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "demons")
				convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "leaderboard")
				convey.So(cfg.MetricsBuckets, convey.ShouldResemble, []float64{1, 10, 100})
				convey.So(cfg.MetricsLabels, convey.ShouldResemble, map[string]string{"list": "main"})
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv(config.EnvFile, tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv(config.EnvFile, "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("DLIST_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown pack policy", func() {
			_ = os.Setenv("DLIST_PACK_SCORING", "triple")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("DLIST_FETCH_TIMEOUT_MS", "soon")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestLoadDotEnv(t *testing.T) {
	convey.Convey("Given a .env file", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		dir := t.TempDir()
		path := filepath.Join(dir, ".env")
		convey.So(os.WriteFile(path, []byte("DLIST_ADDR=:7070\nDLIST_PACK_SCORING=half\n"), 0o600), convey.ShouldBeNil)

		convey.Convey("When it is loaded before the config", func() {
			_ = os.Setenv("DLIST_PACK_SCORING", "none")
			convey.So(config.LoadDotEnv(path), convey.ShouldBeNil)
			cfg, err := config.Load(context.Background())

			convey.Convey("Then its values apply without overriding the environment", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.PackScoring, convey.ShouldEqual, "none")
			})
		})

		convey.Convey("A missing file is ignored", func() {
			convey.So(config.LoadDotEnv(filepath.Join(dir, "nope.env")), convey.ShouldBeNil)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		config.EnvFile,
		"DLIST_ADDR",
		"DLIST_DATA_SOURCE",
		"DLIST_PACK_SCORING",
		"DLIST_FETCH_TIMEOUT_MS",
		"DLIST_MAX_LEADERBOARD_LIMIT",
		"DLIST_METRICS_ENABLED",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "dlist-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
