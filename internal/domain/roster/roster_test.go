package roster_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/roster"
	"github.com/okian/cupline/internal/domain/scoring"
)

func player(id, pos string, gp int, ppg, toi float64) model.PlayerSeason {
	points := int(ppg*float64(gp) + 0.5)
	return model.PlayerSeason{
		PlayerID:    id,
		Position:    pos,
		GamesPlayed: gp,
		Goals:       points / 2,
		Assists:     points - points/2,
		IceTime:     toi * 60 * float64(gp),
	}
}

func testStore() *benchmark.Store {
	s, err := benchmark.NewStore(map[model.Role]benchmark.RoleBenchmark{
		model.Role1C: {SampleSize: 8, MeanPPG: 0.80, StdDevPPG: 0.10, MedianPPG: 0.80, P25PPG: 0.72, P75PPG: 0.88, MinPPG: 0.6, MaxPPG: 1.0},
		model.Role2C: {SampleSize: 8, MeanPPG: 0.55, StdDevPPG: 0.05, MedianPPG: 0.55, P25PPG: 0.50, P75PPG: 0.60, MinPPG: 0.45, MaxPPG: 0.65},
	})
	if err != nil {
		panic(err)
	}
	return s
}

func TestAggregator_EvaluateRoster(t *testing.T) {
	Convey("Given an aggregator and benchmarks for 1C and 2C", t, func() {
		agg := roster.New()
		store := testStore()

		players := []model.PlayerSeason{
			player("top", "C", 80, 0.60, 19),    // 1C, ppg z=-2.0
			player("second", "C", 80, 0.50, 17), // 2C, ppg z=-1.0
			player("thin", "C", 8, 1.0, 20),     // below the games threshold
			player("bad", "C", -1, 0.5, 17),     // invalid
			player("dman", "D", 80, 0.5, 23),    // no defense benchmark
			player("mystery", "X", 80, 0.5, 17),
		}

		Convey("When evaluating the roster", func() {
			res, err := agg.EvaluateRoster(players, store)
			So(err, ShouldBeNil)

			Convey("Then only qualified players are scored, worst first", func() {
				So(res.Scores, ShouldHaveLength, 2)
				So(res.Scores[0].PlayerID, ShouldEqual, "top")
				So(res.Scores[0].Severity, ShouldEqual, scoring.SeverityModerate)
				So(res.Scores[0].RankingScore, ShouldAlmostEqual, -4.0, 1e-9)
				So(res.Scores[1].PlayerID, ShouldEqual, "second")
			})

			Convey("Then every other player is in the exclusion ledger", func() {
				reasons := map[string]scoring.ExclusionReason{}
				for _, e := range res.Excluded {
					reasons[e.PlayerID] = e.Reason
				}
				So(reasons, ShouldResemble, map[string]scoring.ExclusionReason{
					"thin":    scoring.ReasonInsufficientSample,
					"bad":     scoring.ReasonInvalidMetric,
					"dman":    scoring.ReasonNoBenchmark,
					"mystery": scoring.ReasonUnknownRole,
				})
				So(res.Excluded[0].PlayerID, ShouldEqual, "bad")
			})

			Convey("Then the thin-sample player is absent from every tier count", func() {
				So(res.Summary.Evaluated, ShouldEqual, 2)
				So(res.Summary.Excluded, ShouldEqual, 4)
				total := 0
				for _, n := range res.Summary.TierCounts {
					total += n
				}
				So(total, ShouldEqual, 2)
				So(res.Summary.TierCounts[scoring.SeverityNone], ShouldEqual, 0)
				So(res.Summary.Worst, ShouldNotBeNil)
				So(res.Summary.Worst.PlayerID, ShouldEqual, "top")
			})

			Convey("Then repeated runs give the same order", func() {
				again, err := agg.EvaluateRoster(players, store)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, res)
			})
		})

		Convey("When the store is empty", func() {
			empty, err := benchmark.NewStore(nil)
			So(err, ShouldBeNil)

			_, err = agg.EvaluateRoster(players, empty)
			So(errors.Is(err, benchmark.ErrBenchmarkUnavailable), ShouldBeTrue)

			Convey("Then even an empty roster reports unavailable", func() {
				_, err := agg.EvaluateRoster(nil, empty)
				So(errors.Is(err, benchmark.ErrBenchmarkUnavailable), ShouldBeTrue)
				_, err = agg.EvaluateRoster(nil, nil)
				So(errors.Is(err, benchmark.ErrBenchmarkUnavailable), ShouldBeTrue)
			})
		})

		Convey("When a single player below the threshold is evaluated", func() {
			out, err := agg.EvaluatePlayer(player("thin", "C", 8, 1.0, 20), store)
			So(err, ShouldBeNil)
			So(out.IsEvaluable(), ShouldBeFalse)
			So(out.Reason, ShouldEqual, scoring.ReasonInsufficientSample)
		})
	})
}

func TestSortAndSummaries(t *testing.T) {
	Convey("Given scores with tied ranking scores", t, func() {
		scores := []scoring.WeaknessScore{
			{PlayerID: "c", RankingScore: -1, CompositeZScore: -0.5, Severity: scoring.SeverityMinor},
			{PlayerID: "a", RankingScore: -1, CompositeZScore: -0.5, Severity: scoring.SeverityMinor},
			{PlayerID: "z", RankingScore: -6, CompositeZScore: -2.5, Severity: scoring.SeverityCritical},
			{PlayerID: "b", RankingScore: 2, CompositeZScore: 1, Severity: scoring.SeverityNone},
			{PlayerID: "h", RankingScore: -3, CompositeZScore: -1.5, Severity: scoring.SeverityHigh},
		}

		Convey("When sorting", func() {
			roster.Sort(scores)

			Convey("Then ties are broken by player id", func() {
				ids := make([]string, len(scores))
				for i := range scores {
					ids[i] = scores[i].PlayerID
				}
				So(ids, ShouldResemble, []string{"z", "h", "a", "c", "b"})
			})

			Convey("Then weak links keep critical and high in order", func() {
				weak := roster.WeakLinks(scores)
				So(weak, ShouldHaveLength, 2)
				So(weak[0].PlayerID, ShouldEqual, "z")
				So(weak[1].PlayerID, ShouldEqual, "h")
			})

			Convey("Then the summary counts every tier", func() {
				sum := roster.Summarize(scores)
				So(sum.Evaluated, ShouldEqual, 5)
				So(sum.TierCounts[scoring.SeverityCritical], ShouldEqual, 1)
				So(sum.TierCounts[scoring.SeverityHigh], ShouldEqual, 1)
				So(sum.TierCounts[scoring.SeverityModerate], ShouldEqual, 0)
				So(sum.TierCounts[scoring.SeverityMinor], ShouldEqual, 2)
				So(sum.TierCounts[scoring.SeverityNone], ShouldEqual, 1)
				So(sum.MeanCompositeZ, ShouldAlmostEqual, -0.8, 1e-12)
				So(sum.Worst.PlayerID, ShouldEqual, "z")
			})
		})

		Convey("When summarizing nothing", func() {
			sum := roster.Summarize(nil)
			So(sum.Evaluated, ShouldEqual, 0)
			So(sum.Worst, ShouldBeNil)
			So(sum.TierCounts, ShouldHaveLength, len(scoring.Severities()))
			So(roster.WeakLinks(nil), ShouldBeEmpty)
		})
	})
}
