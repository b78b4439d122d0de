package model_test

import (
	"testing"

	"github.com/okian/competency/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEmployeeRecord(t *testing.T) {
	Convey("Given an employee record", t, func() {
		r := model.EmployeeRecord{
			ID:         "199702220701110024",
			Scores:     map[string]float64{"M1_0": 3},
			Attributes: map[string]string{"cat_M": "Optimal"},
		}

		Convey("Then present columns return their value", func() {
			So(r.Value("M1_0"), ShouldEqual, 3)
			So(r.Has("M1_0"), ShouldBeTrue)
		})

		Convey("And missing columns read as zero", func() {
			So(r.Value("M1_1"), ShouldEqual, 0)
			So(r.Has("M1_1"), ShouldBeFalse)
		})

		Convey("And attributes are exposed", func() {
			So(r.Attribute("cat_M"), ShouldEqual, "Optimal")
			So(r.Attribute("missing"), ShouldEqual, "")
		})

		Convey("And a record without maps is still readable", func() {
			var empty model.EmployeeRecord
			So(empty.Value("M1_0"), ShouldEqual, 0)
			So(empty.Attribute("x"), ShouldEqual, "")
		})
	})
}

func TestAggregatedRecord(t *testing.T) {
	Convey("Given an aggregated record", t, func() {
		a := model.AggregatedRecord{
			Categories: []model.CategoryResult{{
				Key: "managerial",
				Items: []model.ItemScore{
					{Code: "M1", AtLevel: 3, AboveLevel: 2, Total: 5},
					{Code: "M2", AtLevel: 1, AboveLevel: 1, Total: 2},
				},
			}},
		}

		Convey("Then categories are found by key", func() {
			c, ok := a.Category("managerial")
			So(ok, ShouldBeTrue)
			So(c.AtLevelTotal(), ShouldEqual, 4)
			So(c.AboveLevelTotal(), ShouldEqual, 3)
		})

		Convey("And unknown keys are reported", func() {
			_, ok := a.Category("technical")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestTable(t *testing.T) {
	Convey("Given a ragged table", t, func() {
		tbl := model.Table{
			Header: []string{"NIP", "Nama Pegawai"},
			Rows:   [][]string{{" 1 ", "Ani"}, {"2"}},
		}

		Convey("Then columns are located by name", func() {
			So(tbl.ColumnIndex("Nama Pegawai"), ShouldEqual, 1)
			So(tbl.ColumnIndex("Level"), ShouldEqual, -1)
		})

		Convey("And cells are trimmed and bounds-checked", func() {
			So(tbl.Cell(0, 0), ShouldEqual, "1")
			So(tbl.Cell(1, 1), ShouldEqual, "")
			So(tbl.Cell(5, 0), ShouldEqual, "")
			So(tbl.Len(), ShouldEqual, 2)
		})
	})
}
