// Package model contains the shared vocabulary passed between layers: positions,
// roles, raw season aggregates and their normalized per-game form.
package model

// PlayerSeason is a raw per-player season aggregate as supplied by the
// persistence layer. IceTime is interpreted by the normalizer according to its
// configured unit (season total seconds by default).
type PlayerSeason struct {
	PlayerID       string  `json:"player_id"`
	Name           string  `json:"name,omitempty"`
	TeamID         string  `json:"team_id,omitempty"`
	Season         string  `json:"season,omitempty"`
	Position       string  `json:"position"`
	Goals          int     `json:"goals"`
	Assists        int     `json:"assists"`
	GamesPlayed    int     `json:"games_played"`
	IceTime        float64 `json:"ice_time"`
	CorsiForPct    Metric  `json:"corsi_for_pct"`
	FenwickForPct  Metric  `json:"fenwick_for_pct"`
	SalaryMillions Metric  `json:"salary_millions"`
	Age            Metric  `json:"age"`
}

// PlayerStat is the canonical per-game view of a season. It only exists for
// players that met the minimum games threshold.
type PlayerStat struct {
	PlayerID         string
	Name             string
	Position         Position
	PointsPerGame    float64
	TimeOnIcePerGame float64 // minutes
	CorsiForPct      Metric  // 0-100
	FenwickForPct    Metric  // 0-100
	SalaryMillions   float64
	SalaryImputed    bool
	Age              Metric
	GamesPlayed      int
}
