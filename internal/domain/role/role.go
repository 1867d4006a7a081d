// Package role maps a player's position and rate stats to a usage Role.
//
// Rules are evaluated from the most demanding tier down; the first tier whose
// cutoffs are met wins, so a player sitting exactly on a cutoff gets the higher
// role. Classification is pure and safe for concurrent use.
package role

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/cupline/internal/domain/model"
)

// Strategy names a classifier variant. Call sites choose one explicitly.
type Strategy string

// Supported strategies.
const (
	// Performance classifies on points-per-game and ice time only.
	Performance Strategy = "performance"
	// SalaryAware lets a cap hit above a tier's salary cutoff qualify the player
	// for that tier regardless of rate stats.
	SalaryAware Strategy = "salary"
)

// goalieStarterTOI is the per-game minutes a goalie must exceed to be the starter.
const goalieStarterTOI = 40.0

// goalieStarterSalary is the cap hit above which a goalie is treated as the starter.
const goalieStarterSalary = 5.0

// noSalaryRule disables the salary check for a tier.
var noSalaryRule = math.Inf(1) //nolint:gochecknoglobals // constant sentinel

type tier struct {
	role        model.Role
	minPPG      float64
	minTOI      float64
	salaryAbove float64
}

// tiers lists skater tiers from highest to lowest. The last tier of each group
// has zero cutoffs and always matches.
var tiers = map[model.Position][]tier{ //nolint:gochecknoglobals // rule table
	model.Center: {
		{role: model.Role1C, minPPG: 0.60, minTOI: 18, salaryAbove: 8.0},
		{role: model.Role2C, minPPG: 0.45, minTOI: 16, salaryAbove: 5.0},
		{role: model.Role3C, minPPG: 0.35, minTOI: 14, salaryAbove: 2.0},
		{role: model.Role4C, salaryAbove: noSalaryRule},
	},
	model.Wing: {
		{role: model.RoleTop6Wing, minPPG: 0.60, minTOI: 16, salaryAbove: 6.0},
		{role: model.RoleMiddle6Wing, minPPG: 0.35, minTOI: 12, salaryAbove: 2.5},
		{role: model.RoleBottom6Wing, salaryAbove: noSalaryRule},
	},
	model.Defenseman: {
		{role: model.Role1D, minPPG: 0.50, minTOI: 22, salaryAbove: 8.0},
		{role: model.Role2D, minPPG: 0.40, minTOI: 20, salaryAbove: 6.0},
		{role: model.Role3D, minPPG: 0.30, minTOI: 18, salaryAbove: 4.0},
		{role: model.Role4D, minPPG: 0.25, minTOI: 16, salaryAbove: 2.5},
		{role: model.Role5D, minPPG: 0.20, minTOI: 14, salaryAbove: 1.5},
		{role: model.Role6D, salaryAbove: noSalaryRule},
	},
}

// Classify is the performance-only rule set.
func Classify(pos model.Position, ppg, toi float64) model.Role {
	return classify(pos, ppg, toi, 0, false)
}

// ClassifyWithSalary is the salary-aware rule set. salary is in millions.
func ClassifyWithSalary(pos model.Position, ppg, toi, salary float64) model.Role {
	return classify(pos, ppg, toi, salary, true)
}

func classify(pos model.Position, ppg, toi, salary float64, useSalary bool) model.Role {
	if pos == model.Goalie {
		if toi > goalieStarterTOI || (useSalary && salary > goalieStarterSalary) {
			return model.RoleStartingGoalie
		}
		return model.RoleBackupGoalie
	}
	group, ok := tiers[pos]
	if !ok {
		return model.RoleUnknown
	}
	for _, t := range group {
		if useSalary && salary > t.salaryAbove {
			return t.role
		}
		if ppg >= t.minPPG && toi >= t.minTOI {
			return t.role
		}
	}
	return model.RoleUnknown
}

// Classifier assigns a Role to a normalized stat line.
type Classifier interface {
	Classify(stat model.PlayerStat) model.Role //nolint:gocritic // hugeParam
	Strategy() Strategy
}

type performanceClassifier struct{}

func (performanceClassifier) Classify(s model.PlayerStat) model.Role { //nolint:gocritic // hugeParam
	return Classify(s.Position, s.PointsPerGame, s.TimeOnIcePerGame)
}

func (performanceClassifier) Strategy() Strategy { return Performance }

type salaryClassifier struct{}

func (salaryClassifier) Classify(s model.PlayerStat) model.Role { //nolint:gocritic // hugeParam
	// An imputed league-average salary carries no signal, so it never promotes.
	if s.SalaryImputed {
		return Classify(s.Position, s.PointsPerGame, s.TimeOnIcePerGame)
	}
	return ClassifyWithSalary(s.Position, s.PointsPerGame, s.TimeOnIcePerGame, s.SalaryMillions)
}

func (salaryClassifier) Strategy() Strategy { return SalaryAware }

// ParseStrategy resolves a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case Performance:
		return Performance, nil
	case SalaryAware, "salary_aware", "salary-aware":
		return SalaryAware, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// New returns the classifier for a strategy.
func New(s Strategy) (Classifier, error) {
	switch s {
	case Performance:
		return performanceClassifier{}, nil
	case SalaryAware:
		return salaryClassifier{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// MustNew is New for strategies known at compile time.
func MustNew(s Strategy) Classifier {
	c, err := New(s)
	if err != nil {
		panic(err)
	}
	return c
}
