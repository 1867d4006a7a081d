// Package types contains the read shapes handed to the presentation layer.
package types

import (
	"time"

	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/roster"
	"github.com/okian/cupline/internal/domain/scoring"
)

// RosterReport is one roster evaluation.
type RosterReport struct {
	EvaluationID string                  `json:"evaluation_id"`
	TeamID       string                  `json:"team_id,omitempty"`
	Season       string                  `json:"season,omitempty"`
	GeneratedAt  time.Time               `json:"generated_at"`
	Scores       []scoring.WeaknessScore `json:"scores"`
	Excluded     []roster.Exclusion      `json:"excluded"`
	Summary      roster.Summary          `json:"summary"`
}

// WeakLinks narrows a report to its critical and high tiers.
func (r *RosterReport) WeakLinks() []scoring.WeaknessScore {
	return roster.WeakLinks(r.Scores)
}

// BenchmarkEntry is one role's benchmark as served to clients.
type BenchmarkEntry struct {
	Role      model.Role              `json:"role"`
	Benchmark benchmark.RoleBenchmark `json:"benchmark"`
}

// BenchmarkEntries lists a store's benchmarks in canonical role order.
func BenchmarkEntries(s *benchmark.Store) []BenchmarkEntry {
	roles := s.Roles()
	out := make([]BenchmarkEntry, 0, len(roles))
	for _, r := range roles {
		b, err := s.Get(r)
		if err != nil {
			continue
		}
		out = append(out, BenchmarkEntry{Role: r, Benchmark: b})
	}
	return out
}
