package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/cupline/internal/config"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{ //nolint:gochecknoglobals // test fixture
	"CUPLINE_CONFIG",
	"CUPLINE_ADDR",
	"CUPLINE_WORKER_COUNT",
	"CUPLINE_MIN_GAMES_PLAYED",
	"CUPLINE_ICE_TIME_UNIT",
	"CUPLINE_SCORER_CLASSIFIER",
	"CUPLINE_LOG_LEVEL",
}

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cupline.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.MinGamesPlayed, convey.ShouldEqual, 10)
			convey.So(cfg.DefaultSalaryMillions, convey.ShouldEqual, 0.925)
			convey.So(cfg.IceTimeUnit, convey.ShouldEqual, "season_seconds")
			convey.So(cfg.BuilderClassifier, convey.ShouldEqual, "performance")
			convey.So(cfg.ScorerClassifier, convey.ShouldEqual, "salary")
			convey.So(cfg.WorkerCount, convey.ShouldBeGreaterThan, 0)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars(t)
		defer clearConfigEnvVars(t)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.MinGamesPlayed, convey.ShouldEqual, 10)
				convey.So(cfg.BenchmarkPath, convey.ShouldEqual, "benchmarks.yaml")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CUPLINE_ADDR", ":8080")
			_ = os.Setenv("CUPLINE_WORKER_COUNT", "16")
			_ = os.Setenv("CUPLINE_MIN_GAMES_PLAYED", "20")
			_ = os.Setenv("CUPLINE_ICE_TIME_UNIT", "per_game_minutes")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.MinGamesPlayed, convey.ShouldEqual, 20)
				convey.So(cfg.IceTimeUnit, convey.ShouldEqual, "per_game_minutes")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := writeConfigFile(t, `
addr: ":9090"
worker_count: 4
min_games_played: 15
scorer_classifier: performance
benchmark_path: /tmp/bench.json
position_weights:
  1C: 6.5
  6D: 0.5
`)
			_ = os.Setenv("CUPLINE_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
				convey.So(cfg.MinGamesPlayed, convey.ShouldEqual, 15)
				convey.So(cfg.ScorerClassifier, convey.ShouldEqual, "performance")
				convey.So(cfg.BenchmarkPath, convey.ShouldEqual, "/tmp/bench.json")

				weights, werr := cfg.RoleWeights()
				convey.So(werr, convey.ShouldBeNil)
				convey.So(weights[model.Role1C], convey.ShouldEqual, 6.5)
				convey.So(weights[model.Role6D], convey.ShouldEqual, 0.5)
			})

			convey.Convey("And env vars take precedence over the file", func() {
				_ = os.Setenv("CUPLINE_ADDR", ":7070")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When the file path is passed explicitly", func() {
			path := writeConfigFile(t, "addr: \":6060\"\nlog_format: json\n")

			cfg, err := config.LoadFrom(ctx, path)

			convey.Convey("Then it should ignore CUPLINE_CONFIG and read that file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("CUPLINE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail with a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When values are out of range", func() {
			cases := map[string]string{
				"CUPLINE_MIN_GAMES_PLAYED":  "0",
				"CUPLINE_ICE_TIME_UNIT":     "periods",
				"CUPLINE_SCORER_CLASSIFIER": "vibes",
				"CUPLINE_WORKER_COUNT":      "0",
			}
			for key, value := range cases {
				clearConfigEnvVars(t)
				_ = os.Setenv(key, value)

				_, err := config.Load(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			}
		})

		convey.Convey("When a position weight names an unknown role or is not positive", func() {
			cfg := config.New()
			cfg.PositionWeights = map[string]float64{"7C": 2}
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)

			cfg.PositionWeights = map[string]float64{"2D": 0}
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
