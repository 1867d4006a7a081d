package scoring_test

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/role"
	"github.com/okian/cupline/internal/domain/scoring"
)

func centerBenchmark() benchmark.RoleBenchmark {
	return benchmark.RoleBenchmark{
		SampleSize: 10,
		MeanPPG:    0.70, StdDevPPG: 0.10,
		MedianPPG: 0.70, P25PPG: 0.62, P75PPG: 0.78,
		MinPPG: 0.50, MaxPPG: 0.95,
	}
}

func newStore(entries map[model.Role]benchmark.RoleBenchmark) *benchmark.Store {
	s, err := benchmark.NewStore(entries)
	if err != nil {
		panic(err)
	}
	return s
}

func center(id string, ppg, toi float64) model.PlayerStat {
	return model.PlayerStat{
		PlayerID:         id,
		Position:         model.Center,
		PointsPerGame:    ppg,
		TimeOnIcePerGame: toi,
		SalaryMillions:   0.925,
		SalaryImputed:    true,
		GamesPlayed:      70,
	}
}

func TestScorer_Score(t *testing.T) {
	Convey("Given a scorer and a 1C benchmark", t, func() {
		scorer := scoring.New()
		store := newStore(map[model.Role]benchmark.RoleBenchmark{model.Role1C: centerBenchmark()})

		Convey("When a 1C center sits half a deviation below the mean", func() {
			out, err := scorer.Score(center("p1", 0.65, 19), store)
			So(err, ShouldBeNil)
			So(out.IsEvaluable(), ShouldBeTrue)
			ws := out.Score

			Convey("Then the gap is graded minor", func() {
				So(ws.Role, ShouldEqual, model.Role1C)
				So(ws.BenchmarkRole, ShouldEqual, model.Role1C)
				So(ws.RoleMismatch, ShouldBeFalse)
				So(ws.MetricZScores.PPG, ShouldAlmostEqual, -0.5, 1e-9)
				So(ws.MetricZScores.CorsiUsed, ShouldBeFalse)
				So(ws.CompositeZScore, ShouldAlmostEqual, -0.2, 1e-9)
				So(ws.Severity, ShouldEqual, scoring.SeverityMinor)
				So(ws.PositionWeight, ShouldEqual, 5.0)
				So(ws.RankingScore, ShouldAlmostEqual, -1.0, 1e-9)
				So(ws.PPGBand, ShouldEqual, scoring.BandP25ToMedian)
				So(ws.Explanation, ShouldContainSubstring, "slightly below")
			})
		})

		Convey("When one center sits on the 1C cutoff and another scores like a 4C", func() {
			out, err := scorer.Score(center("p2", 0.60, 19), store)
			So(err, ShouldBeNil)
			out2, err := scorer.Score(center("p3", 0.30, 22), store)
			So(err, ShouldBeNil)

			Convey("Then only the first has a benchmark to compare against", func() {
				So(out.Score.BenchmarkRole, ShouldEqual, model.Role1C)
				So(out.Score.Severity, ShouldEqual, scoring.SeverityMinor)

				// 0.30 PPG classifies as 4C by rates, so it has no benchmark here.
				So(out2.IsEvaluable(), ShouldBeFalse)
				So(out2.Reason, ShouldEqual, scoring.ReasonNoBenchmark)
			})
		})

		Convey("When the cap hit lifts a low-scoring center into the 1C benchmark", func() {
			stat := center("p4", 0.25, 15)
			stat.SalaryMillions = 9.0
			stat.SalaryImputed = false

			out, err := scorer.Score(stat, store)
			So(err, ShouldBeNil)
			ws := out.Score

			Convey("Then the roles disagree and the explanation says so", func() {
				So(ws.Role, ShouldEqual, model.Role4C)
				So(ws.BenchmarkRole, ShouldEqual, model.Role1C)
				So(ws.RoleMismatch, ShouldBeTrue)
				So(ws.MetricZScores.PPG, ShouldAlmostEqual, -4.5, 1e-9)
				So(ws.CompositeZScore, ShouldAlmostEqual, -1.8, 1e-9)
				So(ws.Severity, ShouldEqual, scoring.SeverityHigh)
				So(ws.PPGBand, ShouldEqual, scoring.BandBelowP25)
				So(ws.Explanation, ShouldContainSubstring, "HIGH gap at 1C")
				So(ws.Explanation, ShouldContainSubstring, "Drivers: PPG")
				So(ws.Explanation, ShouldContainSubstring, "No shot-share comparison available.")
				So(ws.Explanation, ShouldContainSubstring, "Benchmarked as 1C")
			})
		})

		Convey("When the benchmark has shot-share data", func() {
			b := centerBenchmark()
			b.CorsiSamples, b.MeanCorsiForPct, b.StdDevCorsiForPct = 10, 55, 2
			withCorsi := newStore(map[model.Role]benchmark.RoleBenchmark{model.Role1C: b})

			stat := center("p5", 0.70, 19)
			stat.CorsiForPct = model.Some(51)
			out, err := scorer.Score(stat, withCorsi)
			So(err, ShouldBeNil)

			Convey("Then Corsi enters the composite with the forward weight", func() {
				So(out.Score.MetricZScores.CorsiUsed, ShouldBeTrue)
				So(out.Score.MetricZScores.Corsi, ShouldAlmostEqual, -2.0, 1e-9)
				So(out.Score.MetricZScores.FenwickUsed, ShouldBeFalse)
				So(out.Score.CompositeZScore, ShouldAlmostEqual, -0.7, 1e-9)
				So(out.Score.Severity, ShouldEqual, scoring.SeverityModerate)
				So(out.Score.Explanation, ShouldContainSubstring, "CF% 51.00")
			})

			Convey("Then a player without Corsi is compared on PPG only", func() {
				out, err := scorer.Score(center("p6", 0.70, 19), withCorsi)
				So(err, ShouldBeNil)
				So(out.Score.MetricZScores.CorsiUsed, ShouldBeFalse)
				So(out.Score.CompositeZScore, ShouldAlmostEqual, 0, 1e-9)
				So(out.Score.Severity, ShouldEqual, scoring.SeverityNone)
			})
		})

		Convey("When the role has zero spread", func() {
			b := centerBenchmark()
			b.StdDevPPG = 0
			flat := newStore(map[model.Role]benchmark.RoleBenchmark{model.Role1C: b})

			out, err := scorer.Score(center("p7", 0.61, 19), flat)
			So(err, ShouldBeNil)

			Convey("Then the z-score is zero rather than infinite", func() {
				So(out.Score.MetricZScores.PPG, ShouldEqual, 0)
				So(out.Score.Severity, ShouldEqual, scoring.SeverityNone)
			})
		})

		Convey("When the player cannot be placed", func() {
			stat := center("p8", 0.7, 19)
			stat.Position = model.PositionUnknown
			out, err := scorer.Score(stat, store)
			So(err, ShouldBeNil)
			So(out.IsEvaluable(), ShouldBeFalse)
			So(out.Reason, ShouldEqual, scoring.ReasonUnknownRole)
			So(out.PlayerID, ShouldEqual, "p8")
		})

		Convey("When the stat line is malformed", func() {
			_, err := scorer.Score(center("p9", math.NaN(), 19), store)
			So(errors.Is(err, scoring.ErrInvalidStat), ShouldBeTrue)

			stat := center("p10", 0.7, 19)
			stat.CorsiForPct = model.Some(140)
			_, err = scorer.Score(stat, store)
			So(errors.Is(err, scoring.ErrInvalidStat), ShouldBeTrue)
		})

		Convey("When no benchmarks exist", func() {
			_, err := scorer.Score(center("p11", 0.7, 19), nil)
			So(errors.Is(err, benchmark.ErrBenchmarkUnavailable), ShouldBeTrue)

			empty := newStore(nil)
			_, err = scorer.Score(center("p11", 0.7, 19), empty)
			So(errors.Is(err, benchmark.ErrBenchmarkUnavailable), ShouldBeTrue)
		})
	})
}

func TestScorer_Options(t *testing.T) {
	Convey("Given scorer options", t, func() {
		Convey("Position weights override defaults but ignore non-positive values", func() {
			s := scoring.New(scoring.WithPositionWeights(map[model.Role]float64{
				model.Role1C: 2.5,
				model.Role2C: 0,
				model.Role1D: math.Inf(1),
			}))
			So(s.PositionWeight(model.Role1C), ShouldEqual, 2.5)
			So(s.PositionWeight(model.Role2C), ShouldEqual, 3.5)
			So(s.PositionWeight(model.Role1D), ShouldEqual, 5.0)
			So(s.PositionWeight(model.RoleUnknown), ShouldEqual, 1.0)
		})

		Convey("A performance benchmark classifier ignores cap hit", func() {
			s := scoring.New(scoring.WithBenchmarkClassifier(role.MustNew(role.Performance)))
			store := newStore(map[model.Role]benchmark.RoleBenchmark{model.Role1C: centerBenchmark()})

			stat := center("p1", 0.20, 15)
			stat.SalaryMillions = 9.0
			stat.SalaryImputed = false
			out, err := s.Score(stat, store)
			So(err, ShouldBeNil)
			So(out.Reason, ShouldEqual, scoring.ReasonNoBenchmark)
		})
	})
}

func TestComposite(t *testing.T) {
	Convey("Given metric z-scores", t, func() {
		all := scoring.MetricZScores{PPG: -1, Corsi: -1, Fenwick: -1, CorsiUsed: true, FenwickUsed: true}

		Convey("Forward and defense weights each sum to one", func() {
			So(scoring.Composite(model.Center, all), ShouldAlmostEqual, -1, 1e-12)
			So(scoring.Composite(model.Defenseman, all), ShouldAlmostEqual, -1, 1e-12)
		})

		Convey("PPG alone carries its group weight", func() {
			ppgOnly := scoring.MetricZScores{PPG: -1}
			So(scoring.Composite(model.Wing, ppgOnly), ShouldAlmostEqual, -0.40, 1e-12)
			So(scoring.Composite(model.Defenseman, ppgOnly), ShouldAlmostEqual, -0.30, 1e-12)
			So(scoring.Composite(model.Goalie, ppgOnly), ShouldAlmostEqual, -0.40, 1e-12)
		})

		Convey("Unused shot-share metrics are left out", func() {
			z := scoring.MetricZScores{PPG: 0, Corsi: -3, Fenwick: -3}
			So(scoring.Composite(model.Center, z), ShouldEqual, 0)
		})
	})
}

func TestSeverityFor(t *testing.T) {
	Convey("Given composite z-scores at the tier boundaries", t, func() {
		cases := []struct {
			z    float64
			want scoring.Severity
		}{
			{-3.1, scoring.SeverityCritical},
			{-2.0001, scoring.SeverityCritical},
			{-2.0, scoring.SeverityHigh},
			{-1.0001, scoring.SeverityHigh},
			{-1.0, scoring.SeverityModerate},
			{-0.5001, scoring.SeverityModerate},
			{-0.5, scoring.SeverityMinor},
			{-0.0001, scoring.SeverityMinor},
			{0, scoring.SeverityNone},
			{1.7, scoring.SeverityNone},
		}
		for _, c := range cases {
			So(scoring.SeverityFor(c.z), ShouldEqual, c.want)
		}

		Convey("Only critical and high are weak links", func() {
			So(scoring.SeverityCritical.IsWeakLink(), ShouldBeTrue)
			So(scoring.SeverityHigh.IsWeakLink(), ShouldBeTrue)
			So(scoring.SeverityModerate.IsWeakLink(), ShouldBeFalse)
			So(scoring.SeverityModerate.NeedsExplanation(), ShouldBeTrue)
			So(scoring.SeverityMinor.NeedsExplanation(), ShouldBeFalse)
		})
	})
}
