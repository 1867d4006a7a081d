package role_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/role"
)

func TestClassify(t *testing.T) {
	Convey("Given the performance rule set", t, func() {
		Convey("Centers step down through the tiers", func() {
			So(role.Classify(model.Center, 0.65, 19), ShouldEqual, model.Role1C)
			So(role.Classify(model.Center, 0.65, 17), ShouldEqual, model.Role2C)
			So(role.Classify(model.Center, 0.40, 15), ShouldEqual, model.Role3C)
			So(role.Classify(model.Center, 0.10, 9), ShouldEqual, model.Role4C)
		})

		Convey("A player exactly on a cutoff gets the higher role", func() {
			So(role.Classify(model.Center, 0.60, 18), ShouldEqual, model.Role1C)
			So(role.Classify(model.Center, 0.45, 16), ShouldEqual, model.Role2C)
			So(role.Classify(model.Wing, 0.60, 16), ShouldEqual, model.RoleTop6Wing)
			So(role.Classify(model.Defenseman, 0.50, 22), ShouldEqual, model.Role1D)
			So(role.Classify(model.Defenseman, 0.20, 14), ShouldEqual, model.Role5D)
		})

		Convey("Just below a cutoff drops a tier", func() {
			So(role.Classify(model.Center, 0.5999, 18), ShouldEqual, model.Role2C)
			So(role.Classify(model.Wing, 0.60, 15.99), ShouldEqual, model.RoleMiddle6Wing)
			So(role.Classify(model.Wing, 0.34, 12), ShouldEqual, model.RoleBottom6Wing)
			So(role.Classify(model.Defenseman, 0.19, 25), ShouldEqual, model.Role6D)
		})

		Convey("Every defense tier is reachable", func() {
			So(role.Classify(model.Defenseman, 0.45, 21), ShouldEqual, model.Role2D)
			So(role.Classify(model.Defenseman, 0.35, 19), ShouldEqual, model.Role3D)
			So(role.Classify(model.Defenseman, 0.26, 17), ShouldEqual, model.Role4D)
		})

		Convey("Goalies split on ice time", func() {
			So(role.Classify(model.Goalie, 0, 55), ShouldEqual, model.RoleStartingGoalie)
			So(role.Classify(model.Goalie, 0, 40), ShouldEqual, model.RoleBackupGoalie)
		})

		Convey("Unknown positions have no role", func() {
			So(role.Classify(model.PositionUnknown, 1.2, 22), ShouldEqual, model.RoleUnknown)
		})
	})

	Convey("Given the salary-aware rule set", t, func() {
		Convey("A cap hit above a tier cutoff qualifies regardless of rates", func() {
			So(role.ClassifyWithSalary(model.Center, 0.1, 10, 8.5), ShouldEqual, model.Role1C)
			So(role.ClassifyWithSalary(model.Center, 0.1, 10, 5.5), ShouldEqual, model.Role2C)
			So(role.ClassifyWithSalary(model.Wing, 0.1, 10, 6.1), ShouldEqual, model.RoleTop6Wing)
			So(role.ClassifyWithSalary(model.Defenseman, 0.1, 10, 4.2), ShouldEqual, model.Role3D)
			So(role.ClassifyWithSalary(model.Goalie, 0, 20, 6), ShouldEqual, model.RoleStartingGoalie)
		})

		Convey("A salary exactly on the cutoff does not qualify", func() {
			So(role.ClassifyWithSalary(model.Center, 0.1, 10, 8.0), ShouldEqual, model.Role2C)
		})

		Convey("Rates still qualify a cheap player", func() {
			So(role.ClassifyWithSalary(model.Center, 0.7, 20, 0.9), ShouldEqual, model.Role1C)
		})
	})
}

func TestClassifiers(t *testing.T) {
	Convey("Given classifier strategies", t, func() {
		stat := model.PlayerStat{
			PlayerID:         "p",
			Position:         model.Center,
			PointsPerGame:    0.2,
			TimeOnIcePerGame: 12,
			SalaryMillions:   9,
		}

		Convey("The performance classifier ignores cap hit", func() {
			c := role.MustNew(role.Performance)
			So(c.Strategy(), ShouldEqual, role.Performance)
			So(c.Classify(stat), ShouldEqual, model.Role4C)
		})

		Convey("The salary classifier uses a real cap hit", func() {
			c := role.MustNew(role.SalaryAware)
			So(c.Strategy(), ShouldEqual, role.SalaryAware)
			So(c.Classify(stat), ShouldEqual, model.Role1C)

			Convey("But not an imputed one", func() {
				imputed := stat
				imputed.SalaryImputed = true
				So(c.Classify(imputed), ShouldEqual, model.Role4C)
			})
		})

		Convey("Strategy names parse with aliases", func() {
			for in, want := range map[string]role.Strategy{
				"performance":  role.Performance,
				" Salary ":     role.SalaryAware,
				"salary_aware": role.SalaryAware,
				"salary-aware": role.SalaryAware,
			} {
				got, err := role.ParseStrategy(in)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, want)
			}

			_, err := role.ParseStrategy("vibes")
			So(errors.Is(err, role.ErrUnknownStrategy), ShouldBeTrue)
			_, err = role.New("vibes")
			So(errors.Is(err, role.ErrUnknownStrategy), ShouldBeTrue)
			So(func() { role.MustNew("vibes") }, ShouldPanic)
		})
	})
}
