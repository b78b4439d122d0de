package repository

import (
	"context"
	"testing"

	"github.com/okian/competency/internal/adapters/source"
	"github.com/okian/competency/internal/domain/aggregate"
	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseRecordsNegativeScores(t *testing.T) {
	convey.Convey("Given a row with negative raw scores", t, func() {
		tbl := model.Table{
			Header: []string{"NIP", "M1_0", "M1_1", "M2_0", "M2_1"},
			Rows:   [][]string{{"1", "-3", "-2", "4", "1"}},
		}
		records, err := ParseRecords(tbl, model.DefaultColumns())
		convey.So(err, convey.ShouldBeNil)
		convey.So(records, convey.ShouldHaveLength, 1)
		r := records[0]

		convey.Convey("Then the negative cells count as zero", func() {
			convey.So(r.Has("M1_0"), convey.ShouldBeFalse)
			convey.So(r.Attribute("M1_0"), convey.ShouldEqual, "-3")
			convey.So(aggregate.ItemTotal(r, "M1"), convey.ShouldEqual, 0)
		})

		convey.Convey("Then the category total stays non-negative", func() {
			total := aggregate.CategoryTotal(r, catalog.Managerial())
			convey.So(total, convey.ShouldBeGreaterThanOrEqualTo, 0)
			convey.So(total, convey.ShouldEqual, 5)
		})

		convey.Convey("Then the cells are reported as rejected", func() {
			convey.So(RejectedScores(records, catalog.Set{catalog.Managerial()}),
				convey.ShouldResemble, []string{"1/M1_0", "1/M1_1"})
		})
	})

	convey.Convey("Given a store over negative scores", t, func() {
		store := NewDatasetStore(source.Static(model.Table{
			Header: []string{"NIP", "M1_0", "M1_1"},
			Rows:   [][]string{{"1", "-3", "-2"}},
		}))
		snap, err := store.Load(context.Background())
		convey.So(err, convey.ShouldBeNil)

		rows := aggregate.Table(snap.Records, catalog.Defaults())
		convey.So(rows[0].Categories[0].Total, convey.ShouldEqual, 0)
		convey.So(rows[0].Categories[0].Percent, convey.ShouldEqual, 0)
	})
}
