package chart_test

import (
	"testing"

	"github.com/okian/competency/internal/domain/aggregate"
	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/chart"
	"github.com/okian/competency/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildRadar(t *testing.T) {
	m := catalog.Managerial()
	tech := catalog.Technical()

	Convey("Given an employee with M1 at 3 and 2", t, func() {
		r := aggregate.Record(model.EmployeeRecord{
			ID:     "1",
			Scores: map[string]float64{"M1_0": 3, "M1_1": 2, "T2_0": 9, "T2_1": 5},
		}, catalog.Defaults())

		Convey("The managerial radar has nine axes", func() {
			radar := chart.BuildRadar(r, m)
			So(radar.Axes, ShouldHaveLength, 9)
			So(radar.Axes[0], ShouldEqual, "Integritas")
			So(radar.Inner.Values[0], ShouldEqual, 3)
			So(radar.Outer.Values[0], ShouldEqual, 5)
			So(radar.Outer.Values[1], ShouldEqual, 0)
			So(radar.RadialMax, ShouldEqual, 6)

			Convey("And the reference ring is closed", func() {
				So(radar.Reference.Values, ShouldHaveLength, 10)
				So(radar.Reference.Values[9], ShouldEqual, 4)
				So(radar.Reference.Dashed, ShouldBeTrue)
				So(radar.ReferenceAxes[9], ShouldEqual, radar.ReferenceAxes[0])
			})
		})

		Convey("The technical radial max grows with the largest total", func() {
			radar := chart.BuildRadar(r, tech)
			So(radar.RadialMax, ShouldEqual, 14)
			So(radar.Reference.Values[0], ShouldEqual, 7)
		})
	})

	Convey("An empty catalog gives an empty radar", t, func() {
		radar := chart.BuildRadar(model.AggregatedRecord{}, catalog.Catalog{Key: "x"})
		So(radar.Axes, ShouldBeEmpty)
		So(radar.Reference.Values, ShouldBeEmpty)
	})
}

func TestBuildItemTable(t *testing.T) {
	Convey("Given an employee with two scored managerial items", t, func() {
		m := catalog.Managerial()
		r := aggregate.Record(model.EmployeeRecord{
			ID:     "1",
			Scores: map[string]float64{"M1_0": 3, "M1_1": 2, "M2_0": 4},
		}, catalog.Set{m})

		tbl := chart.BuildItemTable(r, m)
		So(tbl.Rows, ShouldHaveLength, 9)
		So(tbl.Rows[1].Label, ShouldEqual, "Kerjasama")
		So(tbl.TotalAtLevel, ShouldEqual, 7)
		So(tbl.TotalAboveLevel, ShouldEqual, 2)
		So(tbl.GrandTotal, ShouldEqual, 9)
		So(tbl.GrandTotal, ShouldEqual, tbl.TotalAtLevel+tbl.TotalAboveLevel)
		So(tbl.Label, ShouldEqual, catalog.LabelNotOptimal)
	})
}
