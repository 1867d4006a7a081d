// Package roster runs the weakness scorer over a whole roster and reduces the
// scored list into rankings and summaries.
package roster

import (
	"errors"
	"sort"

	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/normalize"
	"github.com/okian/cupline/internal/domain/scoring"
)

// Exclusion is a player left out of the scored list.
type Exclusion struct {
	PlayerID string                  `json:"player_id"`
	Reason   scoring.ExclusionReason `json:"reason"`
	Detail   string                  `json:"detail,omitempty"`
}

// Summary reduces a scored list. Excluded players never count toward tiers.
type Summary struct {
	Evaluated      int                      `json:"evaluated"`
	Excluded       int                      `json:"excluded"`
	TierCounts     map[scoring.Severity]int `json:"tier_counts"`
	MeanCompositeZ float64                  `json:"mean_composite_z"`
	Worst          *scoring.WeaknessScore   `json:"worst,omitempty"`
}

// Result is a ranked roster evaluation.
type Result struct {
	Scores   []scoring.WeaknessScore `json:"scores"`
	Excluded []Exclusion             `json:"excluded"`
	Summary  Summary                 `json:"summary"`
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithNormalizer sets the normalizer (and with it the games threshold).
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(a *Aggregator) {
		if n != nil {
			a.normalizer = n
		}
	}
}

// WithScorer sets the weakness scorer.
func WithScorer(s *scoring.Scorer) Option {
	return func(a *Aggregator) {
		if s != nil {
			a.scorer = s
		}
	}
}

// Aggregator evaluates rosters. It is stateless and safe for concurrent use.
type Aggregator struct {
	normalizer *normalize.Normalizer
	scorer     *scoring.Scorer
}

// New creates an Aggregator with default normalizer and scorer.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		normalizer: normalize.New(),
		scorer:     scoring.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// EvaluatePlayer runs normalize -> classify -> score for one player. Sample
// and validation problems become Excluded outcomes; only a missing benchmark
// store is returned as an error.
func (a *Aggregator) EvaluatePlayer(p model.PlayerSeason, store *benchmark.Store) (scoring.Outcome, error) { //nolint:gocritic // hugeParam
	stat, err := a.normalizer.Normalize(p)
	switch {
	case errors.Is(err, normalize.ErrInsufficientSample):
		return scoring.Excluded(p.PlayerID, scoring.ReasonInsufficientSample, err.Error()), nil
	case err != nil:
		return scoring.Excluded(p.PlayerID, scoring.ReasonInvalidMetric, err.Error()), nil
	}
	out, err := a.scorer.Score(stat, store)
	switch {
	case errors.Is(err, scoring.ErrInvalidStat):
		return scoring.Excluded(p.PlayerID, scoring.ReasonInvalidMetric, err.Error()), nil
	case err != nil:
		return scoring.Outcome{}, err
	}
	return out, nil
}

// EvaluateRoster scores every player sequentially and returns the ranked
// result. It fails with benchmark.ErrBenchmarkUnavailable when the store has
// no data, even for an empty roster, so "no data" is never reported as "no
// weaknesses".
func (a *Aggregator) EvaluateRoster(players []model.PlayerSeason, store *benchmark.Store) (Result, error) {
	if err := store.Available(); err != nil {
		return Result{}, err
	}
	outcomes := make([]scoring.Outcome, len(players))
	for i := range players {
		out, err := a.EvaluatePlayer(players[i], store)
		if err != nil {
			return Result{}, err
		}
		outcomes[i] = out
	}
	return Collect(outcomes), nil
}

// Collect splits outcomes into ranked scores and exclusions and summarizes them.
func Collect(outcomes []scoring.Outcome) Result {
	res := Result{
		Scores:   make([]scoring.WeaknessScore, 0, len(outcomes)),
		Excluded: make([]Exclusion, 0),
	}
	for i := range outcomes {
		o := &outcomes[i]
		if o.IsEvaluable() {
			res.Scores = append(res.Scores, o.Score)
			continue
		}
		res.Excluded = append(res.Excluded, Exclusion{PlayerID: o.PlayerID, Reason: o.Reason, Detail: o.Detail})
	}
	Sort(res.Scores)
	sort.SliceStable(res.Excluded, func(i, j int) bool { return res.Excluded[i].PlayerID < res.Excluded[j].PlayerID })
	res.Summary = Summarize(res.Scores)
	res.Summary.Excluded = len(res.Excluded)
	return res
}

// Sort orders scores by ranking score ascending (worst first), breaking ties
// by player id.
func Sort(scores []scoring.WeaknessScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].RankingScore != scores[j].RankingScore {
			return scores[i].RankingScore < scores[j].RankingScore
		}
		return scores[i].PlayerID < scores[j].PlayerID
	})
}

// Summarize counts tiers, averages the composite z-score and picks the worst
// player of an already sorted list.
func Summarize(sorted []scoring.WeaknessScore) Summary {
	s := Summary{
		Evaluated:  len(sorted),
		TierCounts: make(map[scoring.Severity]int, len(scoring.Severities())),
	}
	for _, sev := range scoring.Severities() {
		s.TierCounts[sev] = 0
	}
	if len(sorted) == 0 {
		return s
	}
	var total float64
	for i := range sorted {
		s.TierCounts[sorted[i].Severity]++
		total += sorted[i].CompositeZScore
	}
	s.MeanCompositeZ = total / float64(len(sorted))
	worst := sorted[0]
	s.Worst = &worst
	return s
}

// WeakLinks keeps the critical and high tiers of a sorted list, preserving order.
func WeakLinks(sorted []scoring.WeaknessScore) []scoring.WeaknessScore {
	out := make([]scoring.WeaknessScore, 0)
	for i := range sorted {
		if sorted[i].Severity.IsWeakLink() {
			out = append(out, sorted[i])
		}
	}
	return out
}
