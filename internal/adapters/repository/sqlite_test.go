package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/okian/cupline/internal/adapters/repository"
	"github.com/okian/cupline/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func openSource(t *testing.T) *repository.SQLiteSource {
	t.Helper()
	src, err := repository.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = src.Close() })
	return src
}

func season(id, team, year string, gp int, corsi model.Metric) model.PlayerSeason {
	return model.PlayerSeason{
		PlayerID: id, Name: "Player " + id, TeamID: team, Season: year, Position: "C",
		Goals: 20, Assists: 30, GamesPlayed: gp, IceTime: float64(gp) * 18 * 60,
		CorsiForPct: corsi, SalaryMillions: model.Some(4.5),
	}
}

func TestSQLiteSource(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh SQLite source", t, func() {
		src := openSource(t)

		So(src.UpsertPlayerSeasons(ctx, []model.PlayerSeason{
			season("p2", "COL", "2021-22", 80, model.Some(55.5)),
			season("p1", "COL", "2021-22", 82, model.None()),
			season("p3", "TBL", "2021-22", 70, model.Some(51)),
			season("p4", "TBL", "2020-21", 56, model.Some(52)),
		}), ShouldBeNil)

		Convey("When reading a team roster", func() {
			rows, err := src.Roster(ctx, "COL", "2021-22")

			Convey("Then rows come back ordered by player with nulls preserved", func() {
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 2)
				So(rows[0].PlayerID, ShouldEqual, "p1")
				So(rows[0].CorsiForPct.Valid(), ShouldBeFalse)
				So(rows[1].CorsiForPct, ShouldResemble, model.Some(55.5))
				So(rows[1].SalaryMillions, ShouldResemble, model.Some(4.5))
				So(rows[1].Age.Valid(), ShouldBeFalse)
			})
		})

		Convey("When the team/season pair has no rows", func() {
			_, err := src.Roster(ctx, "EDM", "2021-22")
			So(errors.Is(err, repository.ErrRosterNotFound), ShouldBeTrue)
		})

		Convey("When a row is upserted again", func() {
			updated := season("p1", "COL", "2021-22", 82, model.Some(60))
			updated.Goals = 41
			So(src.UpsertPlayerSeasons(ctx, []model.PlayerSeason{updated}), ShouldBeNil)

			rows, err := src.Roster(ctx, "COL", "2021-22")
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 2)
			So(rows[0].Goals, ShouldEqual, 41)
			So(rows[0].CorsiForPct, ShouldResemble, model.Some(60.0))
		})

		Convey("When a row lacks its key columns", func() {
			err := src.UpsertPlayerSeasons(ctx, []model.PlayerSeason{{PlayerID: "x"}})
			So(errors.Is(err, repository.ErrInvalidPlayerSeason), ShouldBeTrue)
		})

		Convey("When champions are recorded", func() {
			So(src.SetChampion(ctx, "2021-22", "COL"), ShouldBeNil)
			So(src.SetChampion(ctx, "2020-21", "TBL"), ShouldBeNil)

			rosters, err := src.ChampionRosters(ctx)

			Convey("Then only champion rows are grouped per season, oldest first", func() {
				So(err, ShouldBeNil)
				So(len(rosters), ShouldEqual, 2)
				So(rosters[0].Season, ShouldEqual, "2020-21")
				So(rosters[0].TeamID, ShouldEqual, "TBL")
				So(len(rosters[0].Players), ShouldEqual, 1)
				So(rosters[1].TeamID, ShouldEqual, "COL")
				So(len(rosters[1].Players), ShouldEqual, 2)
			})

			Convey("Then re-recording a season replaces its champion", func() {
				So(src.SetChampion(ctx, "2021-22", "TBL"), ShouldBeNil)
				rosters, err := src.ChampionRosters(ctx)
				So(err, ShouldBeNil)
				So(len(rosters), ShouldEqual, 2)
				So(rosters[1].TeamID, ShouldEqual, "TBL")
				So(rosters[1].Players[0].PlayerID, ShouldEqual, "p3")
			})
		})

		Convey("When no champions exist", func() {
			rosters, err := src.ChampionRosters(ctx)
			So(err, ShouldBeNil)
			So(rosters, ShouldBeEmpty)
		})

		Convey("When migrating twice", func() {
			So(src.Migrate(ctx), ShouldBeNil)
		})
	})
}
