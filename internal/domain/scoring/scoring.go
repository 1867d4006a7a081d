// Package scoring compares a player's per-game rates with the championship
// benchmark for the player's role and grades the gap.
package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/role"
)

// Composite weights per position group. Shot-share metrics carry more weight
// for defensemen.
const (
	defensePPGWeight     = 0.30
	defenseCorsiWeight   = 0.35
	defenseFenwickWeight = 0.35

	forwardPPGWeight     = 0.40
	forwardCorsiWeight   = 0.35
	forwardFenwickWeight = 0.25

	defaultPositionWeight = 1.0
)

// DefaultPositionWeights returns the ranking multipliers per role. Top-line
// and top-pair roles rank higher so their gaps surface first.
func DefaultPositionWeights() map[model.Role]float64 {
	return map[model.Role]float64{
		model.Role1C: 5.0, model.Role2C: 3.5, model.Role3C: 2.0, model.Role4C: 1.0,
		model.RoleTop6Wing: 4.0, model.RoleMiddle6Wing: 2.5, model.RoleBottom6Wing: 1.0,
		model.Role1D: 5.0, model.Role2D: 4.0, model.Role3D: 3.0,
		model.Role4D: 2.0, model.Role5D: 1.5, model.Role6D: 1.0,
		model.RoleStartingGoalie: 5.0, model.RoleBackupGoalie: 1.5,
	}
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithRoleClassifier sets the strategy that assigns the reported role. It
// should match the strategy the benchmarks were built with.
func WithRoleClassifier(c role.Classifier) Option {
	return func(s *Scorer) {
		if c != nil {
			s.roleClassifier = c
		}
	}
}

// WithBenchmarkClassifier sets the strategy that picks the comparison role.
func WithBenchmarkClassifier(c role.Classifier) Option {
	return func(s *Scorer) {
		if c != nil {
			s.benchmarkClassifier = c
		}
	}
}

// WithPositionWeights replaces the ranking multipliers. Non-positive weights
// are ignored and fall back to the default for that role.
func WithPositionWeights(weights map[model.Role]float64) Option {
	return func(s *Scorer) {
		// Copy the weights map to avoid external modifications
		merged := DefaultPositionWeights()
		for r, w := range weights {
			if w > 0 && !math.IsInf(w, 0) {
				merged[r] = w
			}
		}
		s.weights = merged
	}
}

// Scorer grades players against a benchmark store. It keeps no mutable state
// and may be shared across goroutines.
type Scorer struct {
	roleClassifier      role.Classifier
	benchmarkClassifier role.Classifier
	weights             map[model.Role]float64
}

// New creates a Scorer. By default the comparison role comes from the
// salary-aware classifier and the reported role from the performance one.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		roleClassifier:      role.MustNew(role.Performance),
		benchmarkClassifier: role.MustNew(role.SalaryAware),
		weights:             DefaultPositionWeights(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PositionWeight returns the ranking multiplier for r.
func (s *Scorer) PositionWeight(r model.Role) float64 {
	if w, ok := s.weights[r]; ok {
		return w
	}
	return defaultPositionWeight
}

// Score grades one player. It returns an error wrapping
// benchmark.ErrBenchmarkUnavailable when the store has no data at all and
// ErrInvalidStat for malformed rates. Players whose role is unknown or has no
// benchmark come back as an Excluded outcome.
func (s *Scorer) Score(stat model.PlayerStat, store *benchmark.Store) (Outcome, error) { //nolint:gocritic // hugeParam
	if err := store.Available(); err != nil {
		return Outcome{}, err
	}
	if err := validate(stat); err != nil {
		return Outcome{}, err
	}

	current := s.roleClassifier.Classify(stat)
	benchRole := s.benchmarkClassifier.Classify(stat)
	if benchRole == model.RoleUnknown {
		return Excluded(stat.PlayerID, ReasonUnknownRole,
			fmt.Sprintf("%v: position %s", role.ErrUnknownRole, stat.Position)), nil
	}
	bench, err := store.Get(benchRole)
	if errors.Is(err, benchmark.ErrNotFound) {
		return Excluded(stat.PlayerID, ReasonNoBenchmark, err.Error()), nil
	}
	if err != nil {
		return Outcome{}, err
	}

	z := metricZScores(stat, bench)
	composite := Composite(benchRole.Position(), z)
	weight := s.PositionWeight(benchRole)
	ws := WeaknessScore{
		PlayerID:        stat.PlayerID,
		Name:            stat.Name,
		Role:            current,
		BenchmarkRole:   benchRole,
		RoleMismatch:    current != benchRole,
		PointsPerGame:   stat.PointsPerGame,
		MetricZScores:   z,
		CompositeZScore: composite,
		PositionWeight:  weight,
		RankingScore:    composite * weight,
		Severity:        SeverityFor(composite),
		PPGBand:         bandFor(stat.PointsPerGame, bench),
	}
	ws.Explanation = explain(&ws, stat, bench)
	return Evaluable(ws), nil
}

// Composite combines metric z-scores with the weights for the position group.
// Goalies use the forward weights.
func Composite(pos model.Position, z MetricZScores) float64 {
	ppgW, corsiW, fenwickW := forwardPPGWeight, forwardCorsiWeight, forwardFenwickWeight
	if pos == model.Defenseman {
		ppgW, corsiW, fenwickW = defensePPGWeight, defenseCorsiWeight, defenseFenwickWeight
	}
	total := ppgW * z.PPG
	if z.CorsiUsed {
		total += corsiW * z.Corsi
	}
	if z.FenwickUsed {
		total += fenwickW * z.Fenwick
	}
	return total
}

func metricZScores(stat model.PlayerStat, b benchmark.RoleBenchmark) MetricZScores { //nolint:gocritic // hugeParam
	z := MetricZScores{PPG: benchmark.ZScore(stat.PointsPerGame, b.MeanPPG, b.StdDevPPG)}
	if v, ok := stat.CorsiForPct.Value(); ok && b.HasCorsi() && b.StdDevCorsiForPct > 0 {
		z.Corsi = benchmark.ZScore(v, b.MeanCorsiForPct, b.StdDevCorsiForPct)
		z.CorsiUsed = true
	}
	if v, ok := stat.FenwickForPct.Value(); ok && b.HasFenwick() && b.StdDevFenwickForPct > 0 {
		z.Fenwick = benchmark.ZScore(v, b.MeanFenwickForPct, b.StdDevFenwickForPct)
		z.FenwickUsed = true
	}
	return z
}

func bandFor(ppg float64, b benchmark.RoleBenchmark) PPGBand { //nolint:gocritic // hugeParam
	switch {
	case ppg < b.P25PPG:
		return BandBelowP25
	case ppg < b.MedianPPG:
		return BandP25ToMedian
	case ppg <= b.P75PPG:
		return BandMedianToP75
	default:
		return BandAboveP75
	}
}

func validate(s model.PlayerStat) error { //nolint:gocritic // hugeParam
	bad := func(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) || v < 0 }
	switch {
	case s.GamesPlayed < 0:
		return fmt.Errorf("%w: %s games_played=%d", ErrInvalidStat, s.PlayerID, s.GamesPlayed)
	case bad(s.PointsPerGame):
		return fmt.Errorf("%w: %s points_per_game=%v", ErrInvalidStat, s.PlayerID, s.PointsPerGame)
	case bad(s.TimeOnIcePerGame):
		return fmt.Errorf("%w: %s time_on_ice=%v", ErrInvalidStat, s.PlayerID, s.TimeOnIcePerGame)
	case bad(s.SalaryMillions):
		return fmt.Errorf("%w: %s salary=%v", ErrInvalidStat, s.PlayerID, s.SalaryMillions)
	}
	for name, m := range map[string]model.Metric{"corsi_for_pct": s.CorsiForPct, "fenwick_for_pct": s.FenwickForPct} {
		if v, ok := m.Value(); ok && (math.IsNaN(v) || v < 0 || v > 100) {
			return fmt.Errorf("%w: %s %s=%v", ErrInvalidStat, s.PlayerID, name, v)
		}
	}
	return nil
}
