package aggregate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/competency/internal/domain/aggregate"
	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// uniformRecord scores every item of c with the same at/above pair.
func uniformRecord(id string, c catalog.Catalog, at, above float64) model.EmployeeRecord {
	scores := make(map[string]float64)
	for _, it := range c.Items {
		scores[it.AtLevelColumn()] = at
		scores[it.AboveLevelColumn()] = above
	}
	return model.EmployeeRecord{ID: id, Scores: scores}
}

func TestItemTotal(t *testing.T) {
	Convey("Given a record with M1_0=3 and M1_1=2", t, func() {
		r := model.EmployeeRecord{Scores: map[string]float64{"M1_0": 3, "M1_1": 2}}

		Convey("Then the item total is 5", func() {
			So(aggregate.ItemTotal(r, "M1"), ShouldEqual, 5)
		})

		Convey("And swapping the two sides keeps the total", func() {
			swapped := model.EmployeeRecord{Scores: map[string]float64{"M1_0": 2, "M1_1": 3}}
			So(aggregate.ItemTotal(swapped, "M1"), ShouldEqual, aggregate.ItemTotal(r, "M1"))
		})

		Convey("And a missing side counts as zero", func() {
			half := model.EmployeeRecord{Scores: map[string]float64{"M2_0": 4}}
			So(aggregate.ItemTotal(half, "M2"), ShouldEqual, 4)
			So(aggregate.ItemTotal(half, "M3"), ShouldEqual, 0)
		})
	})
}

func TestCategoryTotalAndPercent(t *testing.T) {
	m := catalog.Managerial()

	Convey("Given nine managerial items each scored 3 and 1", t, func() {
		r := uniformRecord("1", m, 3, 1)

		Convey("Then the category total is 36", func() {
			total := aggregate.CategoryTotal(r, m)
			So(total, ShouldEqual, 36)

			Convey("And it equals the sum of item totals M1..M9", func() {
				var sum float64
				for _, code := range m.Codes() {
					sum += aggregate.ItemTotal(r, code)
				}
				So(total, ShouldEqual, sum)
			})

			Convey("And the percent is 36/(9*6)*100", func() {
				pct, err := aggregate.CategoryPercent(total, m, m.MaxItemScore)
				So(err, ShouldBeNil)
				So(pct, ShouldAlmostEqual, 66.7, 0.05)
			})
		})
	})

	Convey("Given a record missing every raw column", t, func() {
		r := model.EmployeeRecord{ID: "2"}

		Convey("Then total and percent are zero without error", func() {
			total := aggregate.CategoryTotal(r, m)
			So(total, ShouldEqual, 0)
			pct, err := aggregate.CategoryPercent(total, m, m.MaxItemScore)
			So(err, ShouldBeNil)
			So(pct, ShouldEqual, 0)
		})
	})

	Convey("Given an empty catalog", t, func() {
		empty := catalog.Catalog{Key: "empty"}
		r := uniformRecord("3", m, 6, 6)

		Convey("Then the total is zero", func() {
			So(aggregate.CategoryTotal(r, empty), ShouldEqual, 0)
		})

		Convey("And the percent reports the divide-by-zero condition", func() {
			_, err := aggregate.CategoryPercent(0, empty, 6)
			So(errors.Is(err, aggregate.ErrEmptyCatalog), ShouldBeTrue)
		})

		Convey("And a zero max score is rejected too", func() {
			_, err := aggregate.CategoryPercent(10, m, 0)
			So(errors.Is(err, aggregate.ErrEmptyCatalog), ShouldBeTrue)
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given thresholds {85: Optimal, 70: Fairly Optimal}", t, func() {
		th := catalog.NewThresholds("Not Optimal",
			catalog.Cut{Min: 85, Label: "Optimal"},
			catalog.Cut{Min: 70, Label: "Fairly Optimal"},
		)

		Convey("Then the boundaries follow the cut points", func() {
			So(aggregate.Classify(85, th), ShouldEqual, "Optimal")
			So(aggregate.Classify(84.9, th), ShouldEqual, "Fairly Optimal")
			So(aggregate.Classify(10, th), ShouldEqual, "Not Optimal")
		})
	})
}

func TestTable(t *testing.T) {
	Convey("Given records and the default catalogs", t, func() {
		set := catalog.Defaults()
		tech := catalog.Technical()
		records := []model.EmployeeRecord{
			uniformRecord("b", tech, 5, 4),
			uniformRecord("a", catalog.Managerial(), 3, 1),
			{ID: "c"},
		}
		before := records[0].Scores["T1_0"]

		rows := aggregate.Table(records, set)

		Convey("Then one row per record is produced in input order", func() {
			So(len(rows), ShouldEqual, 3)
			So(rows[0].ID, ShouldEqual, "b")
			So(rows[1].ID, ShouldEqual, "a")
			So(rows[2].ID, ShouldEqual, "c")
		})

		Convey("And derived fields are attached per catalog", func() {
			tr, ok := rows[0].Category(catalog.KeyTechnical)
			So(ok, ShouldBeTrue)
			So(tr.Total, ShouldEqual, 54)
			So(tr.Percent, ShouldAlmostEqual, 90, 1e-9)
			So(tr.Label, ShouldEqual, catalog.LabelOptimal)
			So(len(tr.Items), ShouldEqual, 6)
			So(tr.Items[0].Total, ShouldEqual, 9)

			mr, ok := rows[1].Category(catalog.KeyManagerial)
			So(ok, ShouldBeTrue)
			So(mr.Total, ShouldEqual, 36)
			So(mr.Label, ShouldEqual, catalog.LabelNotOptimal)
		})

		Convey("And an empty record aggregates to zero", func() {
			for _, c := range rows[2].Categories {
				So(c.Total, ShouldEqual, 0)
				So(c.Percent, ShouldEqual, 0)
				So(c.Total, ShouldBeGreaterThanOrEqualTo, 0)
			}
		})

		Convey("And the input is not modified", func() {
			So(records[0].Scores["T1_0"], ShouldEqual, before)
			So(len(records[0].Scores), ShouldEqual, 12)
		})
	})

	Convey("Given a catalog without items", t, func() {
		set := catalog.Set{{Key: "empty", Thresholds: catalog.DefaultThresholds()}}
		rows := aggregate.Table([]model.EmployeeRecord{{ID: "x"}}, set)

		Convey("Then the category is zero and gets the fallback label", func() {
			c, _ := rows[0].Category("empty")
			So(c.Total, ShouldEqual, 0)
			So(c.Percent, ShouldEqual, 0)
			So(c.Label, ShouldEqual, catalog.LabelNotOptimal)
		})
	})
}

func TestAggregator(t *testing.T) {
	Convey("Given an aggregator over the technical catalog only", t, func() {
		agg := aggregate.New(aggregate.WithCatalogs(catalog.Set{catalog.Technical()}))

		Convey("Then only technical results are produced", func() {
			rows := agg.Table(context.Background(), []model.EmployeeRecord{{ID: "1"}})
			So(len(rows), ShouldEqual, 1)
			So(len(rows[0].Categories), ShouldEqual, 1)
			So(rows[0].Categories[0].Key, ShouldEqual, catalog.KeyTechnical)
		})

		Convey("And the catalogs are exposed as a copy", func() {
			cats := agg.Catalogs()
			cats[0].Key = "changed"
			So(agg.Catalogs()[0].Key, ShouldEqual, catalog.KeyTechnical)
		})
	})

	Convey("Given an aggregator with defaults", t, func() {
		agg := aggregate.New(aggregate.WithCatalogs(nil))

		Convey("Then both default catalogs are used", func() {
			r := agg.Record(model.EmployeeRecord{ID: "1"})
			So(len(r.Categories), ShouldEqual, 2)
		})
	})
}
