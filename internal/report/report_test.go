package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/competency/internal/domain/chart"
	"github.com/okian/competency/internal/domain/stats"
	"github.com/okian/competency/internal/domain/survey"
)

func TestWrite(t *testing.T) {
	Convey("Given a grid", t, func() {
		g := Grid{Title: "Pegawai", Headers: []string{"NIP", "Nama"}, Rows: [][]string{{"1", "Ani"}, {"2", "Budi"}}}
		var buf bytes.Buffer

		Convey("text output draws a bordered table", func() {
			So(Write(&buf, FormatText, g), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "Pegawai")
			So(buf.String(), ShouldContainSubstring, "NIP")
			So(buf.String(), ShouldContainSubstring, "Budi")
			So(buf.String(), ShouldContainSubstring, "│")
		})

		Convey("csv output writes the header then the rows", func() {
			So(Write(&buf, FormatCSV, g), ShouldBeNil)
			So(buf.String(), ShouldEqual, "NIP,Nama\n1,Ani\n2,Budi\n")
		})

		Convey("json output encodes the grids", func() {
			So(Write(&buf, FormatJSON, g), ShouldBeNil)
			var out []Grid
			So(json.Unmarshal(buf.Bytes(), &out), ShouldBeNil)
			So(out, ShouldHaveLength, 1)
			So(out[0].Rows[1][1], ShouldEqual, "Budi")
		})

		Convey("unknown formats are rejected", func() {
			So(errors.Is(Write(&buf, "xml", g), ErrUnknownFormat), ShouldBeTrue)
		})
	})
}

func TestGrids(t *testing.T) {
	Convey("SummaryGrid formats statistics and sorted label counts", t, func() {
		g := SummaryGrid([]stats.CategorySummary{{
			Name:    "Kompetensi Teknis",
			Total:   stats.Summary{Count: 2, Mean: 12.5, Min: 10, Max: 15, StdDev: 3.5355},
			Percent: stats.Summary{Mean: 20.8333},
			Labels:  map[string]int{"Rendah": 1, "Cukup": 1},
		}})
		So(g.Rows, ShouldHaveLength, 1)
		So(g.Rows[0], ShouldResemble, []string{"Kompetensi Teknis", "2", "12.50", "10.00", "15.00", "3.54", "20.83", "Cukup=1, Rendah=1"})
	})

	Convey("ItemGrid appends totals, percent and label rows", t, func() {
		g := ItemGrid(chart.ItemTable{
			Title:           "Kompetensi Manajerial",
			Rows:            []chart.ItemRow{{Code: "M1", Label: "Integritas", AtLevel: 3, AboveLevel: 2, Total: 5}},
			TotalAtLevel:    3,
			TotalAboveLevel: 2,
			GrandTotal:      5,
			Percent:         9.26,
			Label:           "Rendah",
		})
		So(g.Rows, ShouldHaveLength, 4)
		So(g.Rows[0], ShouldResemble, []string{"M1", "Integritas", "3.00", "2.00", "5.00"})
		So(g.Rows[2][4], ShouldEqual, "9.26%")
		So(g.Rows[3][4], ShouldEqual, "Rendah")
	})

	Convey("CountGrid lists answers in order", t, func() {
		g := CountGrid("Minat", []survey.Count{{Label: "Data", Count: 2}, {Label: "Statistik", Count: 1}})
		So(g.Title, ShouldEqual, "Minat")
		So(g.Rows, ShouldResemble, [][]string{{"Data", "2"}, {"Statistik", "1"}})
	})
}
