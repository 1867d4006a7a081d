// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - Validation failures wrap ErrInvalidConfig; source failures wrap ErrLoadConfig.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// MinGamesPlayed is the sample threshold below which a player is not evaluated.
	MinGamesPlayed int `koanf:"min_games_played"`

	// DefaultSalaryMillions is imputed when a player's cap hit is missing.
	DefaultSalaryMillions float64 `koanf:"default_salary_millions"`

	// IceTimeUnit is the unit raw ice time arrives in: season_seconds or per_game_minutes.
	IceTimeUnit string `koanf:"ice_time_unit"`

	// BuilderClassifier picks the strategy that assigns roles when building benchmarks.
	BuilderClassifier string `koanf:"builder_classifier"`

	// ScorerClassifier picks the strategy that chooses which benchmark a player is scored against.
	ScorerClassifier string `koanf:"scorer_classifier"`

	// BenchmarkPath is the serialized benchmark store (.yaml, .yml or .json).
	BenchmarkPath string `koanf:"benchmark_path"`

	// StatsDBPath is the SQLite database holding player seasons.
	StatsDBPath string `koanf:"stats_db_path"`

	// PositionWeights overrides the ranking multiplier per role name.
	PositionWeights map[string]float64 `koanf:"position_weights"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		WorkerCount:           runtime.NumCPU() * 2,
		MinGamesPlayed:        10,
		DefaultSalaryMillions: 0.925,
		IceTimeUnit:           "season_seconds",
		BuilderClassifier:     "performance",
		ScorerClassifier:      "salary",
		BenchmarkPath:         "benchmarks.yaml",
		StatsDBPath:           "cupline.db",
		PositionWeights:       map[string]float64{},
	}
}
