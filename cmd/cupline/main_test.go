package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/cupline/internal/adapters/report"
	service "github.com/okian/cupline/internal/app"
	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/role"
	"github.com/okian/cupline/internal/domain/types"
	"github.com/okian/cupline/pkg/logger"
)

// seasonsFixture holds a two-center championship roster, a roster to evaluate
// and one thin-sample player on each.
const seasonsFixture = `{
  "seasons": [
    {"player_id": "c1", "team_id": "CHI", "season": "2022", "position": "C",
     "games_played": 80, "goals": 30, "assists": 40, "ice_time": 96000, "corsi_for_pct": 54.0},
    {"player_id": "c2", "team_id": "CHI", "season": "2022", "position": "C",
     "games_played": 82, "goals": 25, "assists": 35, "ice_time": 93480, "corsi_for_pct": 52.0},
    {"player_id": "c3", "team_id": "CHI", "season": "2022", "position": "C",
     "games_played": 4, "goals": 1, "assists": 1, "ice_time": 3000},
    {"player_id": "t1", "team_id": "TOR", "season": "2023", "position": "C",
     "games_played": 80, "goals": 20, "assists": 30, "ice_time": 91200, "corsi_for_pct": 50.0},
    {"player_id": "t2", "team_id": "TOR", "season": "2023", "position": "D",
     "games_played": 70, "goals": 5, "assists": 20, "ice_time": 88200},
    {"player_id": "t3", "team_id": "TOR", "season": "2023", "position": "C",
     "games_played": 3, "goals": 0, "assists": 0, "ice_time": 1800}
  ],
  "champions": [{"season": "2022", "team_id": "CHI"}]
}`

func runCLI(ctx context.Context, args ...string) (string, error) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestCLIWorkflow(t *testing.T) {
	t.Setenv("CUPLINE_CONFIG", "")
	dir := t.TempDir()
	seasons := filepath.Join(dir, "seasons.json")
	if err := os.WriteFile(seasons, []byte(seasonsFixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	common := []string{
		"--db", filepath.Join(dir, "stats.db"),
		"--benchmarks", filepath.Join(dir, "benchmarks.yaml"),
		"--no-color",
		"--log-level", "error",
	}
	with := func(args ...string) []string { return append(args, common...) }

	convey.Convey("Given an empty workspace", t, func() {
		ctx := context.Background()

		convey.Convey("When showing benchmarks before any build", func() {
			_, err := runCLI(ctx, with("benchmarks", "show")...)

			convey.Convey("Then it should report benchmarks as unavailable", func() {
				convey.So(errors.Is(err, benchmark.ErrBenchmarkUnavailable), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When importing, building and evaluating", func() {
			out, err := runCLI(ctx, with("import", seasons)...)
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "Imported 6 player seasons and 1 champions")

			out, err = runCLI(ctx, with("benchmarks", "build")...)
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "Built benchmarks from 1 rosters (3 players, 2 qualified)")

			convey.Convey("Then the center benchmark can be shown", func() {
				out, err := runCLI(ctx, with("benchmarks", "show", "1c", "-o", "json")...)
				convey.So(err, convey.ShouldBeNil)

				var entries []types.BenchmarkEntry
				convey.So(json.Unmarshal([]byte(out), &entries), convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 1)
				convey.So(string(entries[0].Role), convey.ShouldEqual, "1C")
				convey.So(entries[0].Benchmark.SampleSize, convey.ShouldEqual, 2)
			})

			convey.Convey("Then a role without a benchmark is not found", func() {
				_, err := runCLI(ctx, with("benchmarks", "show", "1D")...)
				convey.So(errors.Is(err, benchmark.ErrNotFound), convey.ShouldBeTrue)
			})

			convey.Convey("Then the stored roster is scored against the 1C benchmark", func() {
				out, err := runCLI(ctx, with("evaluate", "--team", "TOR", "--season", "2023", "-o", "json")...)
				convey.So(err, convey.ShouldBeNil)

				var rep types.RosterReport
				convey.So(json.Unmarshal([]byte(out), &rep), convey.ShouldBeNil)
				convey.So(rep.EvaluationID, convey.ShouldNotBeEmpty)
				convey.So(rep.Scores, convey.ShouldHaveLength, 1)
				convey.So(rep.Scores[0].PlayerID, convey.ShouldEqual, "t1")
				convey.So(string(rep.Scores[0].BenchmarkRole), convey.ShouldEqual, "1C")
				convey.So(rep.Summary.Evaluated, convey.ShouldEqual, 1)
				convey.So(rep.Summary.Excluded, convey.ShouldEqual, 2)
			})

			convey.Convey("Then an ad-hoc roster file can be evaluated as a table", func() {
				roster := filepath.Join(dir, "roster.json")
				body := `[{"player_id": "x1", "position": "C", "games_played": 60,
				  "goals": 25, "assists": 20, "ice_time": 72000}]`
				convey.So(os.WriteFile(roster, []byte(body), 0o600), convey.ShouldBeNil)

				out, err := runCLI(ctx, with("evaluate", "--input", roster, "--explain")...)
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "x1")
				convey.So(strings.ToLower(out), convey.ShouldContainSubstring, "explanation")
			})

			convey.Convey("Then an unknown team is reported", func() {
				_, err := runCLI(ctx, with("evaluate", "--team", "NOPE", "--season", "2023")...)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "NOPE")
			})
		})
	})
}

func TestCLIValidation(t *testing.T) {
	t.Setenv("CUPLINE_CONFIG", "")

	convey.Convey("Given invalid invocations", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		convey.Convey("When evaluate has neither a roster reference nor an input file", func() {
			_, err := runCLI(ctx, "evaluate", "--team", "TOR")
			convey.So(errors.Is(err, service.ErrInvalidRequest), convey.ShouldBeTrue)
		})

		convey.Convey("When show names an unknown role", func() {
			_, err := runCLI(ctx, "benchmarks", "show", "9C", "--benchmarks", filepath.Join(dir, "b.yaml"))
			convey.So(errors.Is(err, role.ErrUnknownRole), convey.ShouldBeTrue)
		})

		convey.Convey("When the output format is unknown", func() {
			_, err := runCLI(ctx, "benchmarks", "show", "-o", "xml", "--benchmarks", filepath.Join(dir, "b.yaml"))
			convey.So(errors.Is(err, report.ErrUnknownFormat), convey.ShouldBeTrue)
		})

		convey.Convey("When a champion flag is malformed", func() {
			seasons := filepath.Join(dir, "s.json")
			convey.So(os.WriteFile(seasons, []byte(`{"seasons": []}`), 0o600), convey.ShouldBeNil)
			_, err := runCLI(ctx, "import", seasons, "--champion", "2022", "--db", filepath.Join(dir, "s.db"))
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "season=team")
		})
	})
}

func TestRunServer(t *testing.T) {
	convey.Convey("Given a server bound to an ephemeral port", t, func() {
		convey.So(logger.Init(logger.WithWriter(&bytes.Buffer{})), convey.ShouldBeNil)
		srv := &http.Server{
			Addr:              "127.0.0.1:0",
			Handler:           http.NewServeMux(),
			ReadHeaderTimeout: readHeaderTimeout,
		}
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		convey.Convey("When the context is cancelled", func() {
			err := runServer(ctx, srv, logger.Named("test"))

			convey.Convey("Then it should shut down cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})

	convey.Convey("Given the system metrics updater", t, func() {
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
	})
}
