package scoring

import "github.com/okian/cupline/internal/domain/model"

// ExclusionReason says why a player was not scored.
type ExclusionReason string

// Exclusion reasons.
const (
	ReasonInsufficientSample ExclusionReason = "insufficient_sample"
	ReasonInvalidMetric      ExclusionReason = "invalid_metric"
	ReasonUnknownRole        ExclusionReason = "unknown_role"
	ReasonNoBenchmark        ExclusionReason = "no_benchmark"
)

// MetricZScores holds per-metric z-scores. A shot-share z is only meaningful
// when the matching *Used flag is set; otherwise it is 0 and left out of the
// composite.
type MetricZScores struct {
	PPG         float64 `json:"ppg_z"`
	Corsi       float64 `json:"corsi_z"`
	Fenwick     float64 `json:"fenwick_z"`
	CorsiUsed   bool    `json:"corsi_used"`
	FenwickUsed bool    `json:"fenwick_used"`
}

// PPGBand places a player's points-per-game in the role distribution.
type PPGBand string

// PPG bands.
const (
	BandBelowP25    PPGBand = "below_p25"
	BandP25ToMedian PPGBand = "p25_to_median"
	BandMedianToP75 PPGBand = "median_to_p75"
	BandAboveP75    PPGBand = "above_p75"
)

// WeaknessScore is a read-model computed per request from current stats and
// the benchmark store. It is never persisted.
type WeaknessScore struct {
	PlayerID        string        `json:"player_id"`
	Name            string        `json:"name,omitempty"`
	Role            model.Role    `json:"role"`
	BenchmarkRole   model.Role    `json:"benchmark_role"`
	RoleMismatch    bool          `json:"role_mismatch"`
	PointsPerGame   float64       `json:"points_per_game"`
	MetricZScores   MetricZScores `json:"metric_z_scores"`
	CompositeZScore float64       `json:"composite_z_score"`
	PositionWeight  float64       `json:"position_weight"`
	RankingScore    float64       `json:"ranking_score"`
	Severity        Severity      `json:"severity"`
	PPGBand         PPGBand       `json:"ppg_band"`
	Explanation     string        `json:"explanation"`
}

// OutcomeKind tags an Outcome.
type OutcomeKind int

// Outcome kinds.
const (
	KindEvaluable OutcomeKind = iota
	KindExcluded
)

// Outcome is either a scored player or an exclusion with its reason. Callers
// must check Kind (or Evaluable) before reading Score.
type Outcome struct {
	Kind     OutcomeKind
	PlayerID string
	Score    WeaknessScore
	Reason   ExclusionReason
	Detail   string
}

// Evaluable wraps a computed score.
func Evaluable(ws WeaknessScore) Outcome { //nolint:gocritic // hugeParam
	return Outcome{Kind: KindEvaluable, PlayerID: ws.PlayerID, Score: ws}
}

// Excluded records a player that was not scored.
func Excluded(playerID string, reason ExclusionReason, detail string) Outcome {
	return Outcome{Kind: KindExcluded, PlayerID: playerID, Reason: reason, Detail: detail}
}

// IsEvaluable reports whether the outcome carries a score.
func (o Outcome) IsEvaluable() bool { return o.Kind == KindEvaluable } //nolint:gocritic // hugeParam
