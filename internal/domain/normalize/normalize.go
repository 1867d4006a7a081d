// Package normalize converts raw season aggregates into per-game rates.
package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/cupline/internal/domain/model"
)

// Defaults used when no option overrides them.
const (
	DefaultMinGamesPlayed = 10
	DefaultSalaryMillions = 0.925

	secondsPerMinute = 60.0
	maxPercentage    = 100.0
)

// IceTimeUnit selects how PlayerSeason.IceTime is read.
type IceTimeUnit string

// Supported ice time units.
const (
	// SeasonSeconds means IceTime is the season total in seconds.
	SeasonSeconds IceTimeUnit = "season_seconds"
	// PerGameMinutes means IceTime is already minutes per game.
	PerGameMinutes IceTimeUnit = "per_game_minutes"
)

// ParseIceTimeUnit resolves a unit name.
func ParseIceTimeUnit(s string) (IceTimeUnit, error) {
	switch IceTimeUnit(strings.ToLower(strings.TrimSpace(s))) {
	case "", SeasonSeconds:
		return SeasonSeconds, nil
	case PerGameMinutes:
		return PerGameMinutes, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIceTimeUnit, s)
	}
}

// Normalizer turns PlayerSeason records into PlayerStat values. It holds no
// mutable state and is safe for concurrent use.
type Normalizer struct {
	minGamesPlayed int
	iceTimeUnit    IceTimeUnit
	defaultSalary  float64
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		minGamesPlayed: DefaultMinGamesPlayed,
		iceTimeUnit:    SeasonSeconds,
		defaultSalary:  DefaultSalaryMillions,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// MinGamesPlayed returns the configured sample threshold.
func (n *Normalizer) MinGamesPlayed() int { return n.minGamesPlayed }

// IceTimeUnit returns the configured ice time unit.
func (n *Normalizer) IceTimeUnit() IceTimeUnit { return n.iceTimeUnit }

// Normalize validates in and converts it to per-game rates. Malformed input
// returns ErrInvalidMetricInput; a valid record below the games threshold
// returns ErrInsufficientSample.
func (n *Normalizer) Normalize(in model.PlayerSeason) (model.PlayerStat, error) { //nolint:gocritic // hugeParam: records are passed by value across worker channels
	if err := validate(in); err != nil {
		return model.PlayerStat{}, err
	}
	if in.GamesPlayed < n.minGamesPlayed {
		return model.PlayerStat{}, fmt.Errorf("%w: %s played %d games, need %d",
			ErrInsufficientSample, in.PlayerID, in.GamesPlayed, n.minGamesPlayed)
	}

	games := float64(in.GamesPlayed)
	toi := in.IceTime
	if n.iceTimeUnit == SeasonSeconds {
		toi = in.IceTime / secondsPerMinute / games
	}

	salary, imputed := n.defaultSalary, true
	if v, ok := in.SalaryMillions.Value(); ok {
		salary, imputed = v, false
	}

	return model.PlayerStat{
		PlayerID:         in.PlayerID,
		Name:             in.Name,
		Position:         model.ParsePosition(in.Position),
		PointsPerGame:    float64(in.Goals+in.Assists) / games,
		TimeOnIcePerGame: toi,
		CorsiForPct:      in.CorsiForPct,
		FenwickForPct:    in.FenwickForPct,
		SalaryMillions:   salary,
		SalaryImputed:    imputed,
		Age:              in.Age,
		GamesPlayed:      in.GamesPlayed,
	}, nil
}

func validate(in model.PlayerSeason) error { //nolint:gocritic // hugeParam
	if strings.TrimSpace(in.PlayerID) == "" {
		return fmt.Errorf("%w: missing player id", ErrInvalidMetricInput)
	}
	switch {
	case in.GamesPlayed < 0:
		return invalid(in.PlayerID, "games_played", float64(in.GamesPlayed))
	case in.Goals < 0:
		return invalid(in.PlayerID, "goals", float64(in.Goals))
	case in.Assists < 0:
		return invalid(in.PlayerID, "assists", float64(in.Assists))
	case !finiteNonNegative(in.IceTime):
		return invalid(in.PlayerID, "ice_time", in.IceTime)
	}
	if err := checkPercentage(in.PlayerID, "corsi_for_pct", in.CorsiForPct); err != nil {
		return err
	}
	if err := checkPercentage(in.PlayerID, "fenwick_for_pct", in.FenwickForPct); err != nil {
		return err
	}
	if v, ok := in.SalaryMillions.Value(); ok && !finiteNonNegative(v) {
		return invalid(in.PlayerID, "salary_millions", v)
	}
	if v, ok := in.Age.Value(); ok && !finiteNonNegative(v) {
		return invalid(in.PlayerID, "age", v)
	}
	return nil
}

func checkPercentage(playerID, field string, m model.Metric) error {
	v, ok := m.Value()
	if !ok {
		return nil
	}
	if math.IsNaN(v) || v < 0 || v > maxPercentage {
		return invalid(playerID, field, v)
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func invalid(playerID, field string, v float64) error {
	return fmt.Errorf("%w: %s %s=%v", ErrInvalidMetricInput, playerID, field, v)
}
