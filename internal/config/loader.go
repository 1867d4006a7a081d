package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/normalize"
	"github.com/okian/cupline/internal/domain/role"
)

// Environment variable names read by Load.
const (
	EnvConfigPath = "CUPLINE_CONFIG"
	EnvPrefix     = "CUPLINE_"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CUPLINE_CONFIG is set
//  3. env (prefix CUPLINE_)
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, os.Getenv(EnvConfigPath))
}

// LoadFrom is Load with an explicit config file path. An empty path skips the
// file layer.
func LoadFrom(_ context.Context, path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// CUPLINE_MIN_GAMES_PLAYED -> min_games_played (flat keys).
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and names.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be >= 1, got %d", ErrInvalidConfig, c.WorkerCount)
	}
	if c.MinGamesPlayed < 1 {
		return fmt.Errorf("%w: min_games_played must be >= 1, got %d", ErrInvalidConfig, c.MinGamesPlayed)
	}
	if c.DefaultSalaryMillions < 0 || math.IsNaN(c.DefaultSalaryMillions) || math.IsInf(c.DefaultSalaryMillions, 0) {
		return fmt.Errorf("%w: default_salary_millions must be a non-negative number", ErrInvalidConfig)
	}
	if _, err := normalize.ParseIceTimeUnit(c.IceTimeUnit); err != nil {
		return fmt.Errorf("%w: ice_time_unit: %w", ErrInvalidConfig, err)
	}
	if _, err := role.ParseStrategy(c.BuilderClassifier); err != nil {
		return fmt.Errorf("%w: builder_classifier: %w", ErrInvalidConfig, err)
	}
	if _, err := role.ParseStrategy(c.ScorerClassifier); err != nil {
		return fmt.Errorf("%w: scorer_classifier: %w", ErrInvalidConfig, err)
	}
	if _, err := c.RoleWeights(); err != nil {
		return err
	}
	return nil
}

// RoleWeights converts PositionWeights into role-keyed multipliers.
func (c *Config) RoleWeights() (map[model.Role]float64, error) {
	out := make(map[model.Role]float64, len(c.PositionWeights))
	for name, w := range c.PositionWeights {
		r, ok := model.ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("%w: position_weights: unknown role %q", ErrInvalidConfig, name)
		}
		if !(w > 0) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: position_weights[%s] must be > 0, got %v", ErrInvalidConfig, name, w)
		}
		out[r] = w
	}
	return out, nil
}
