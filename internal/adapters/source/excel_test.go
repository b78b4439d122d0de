package source

import (
	"testing"

	"github.com/extrame/xls"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeBook struct {
	sheets int
}

func (f fakeBook) NumSheets() int { return f.sheets }

func (f fakeBook) GetSheet(int) *xls.WorkSheet { return nil }

func TestXLSRows(t *testing.T) {
	Convey("A workbook without sheets has no worksheet", t, func() {
		rows, err := xlsRows(fakeBook{})
		So(rows, ShouldBeNil)
		So(err, ShouldEqual, ErrNoWorksheet)
	})

	Convey("A workbook whose first sheet cannot be read has no worksheet", t, func() {
		rows, err := xlsRows(fakeBook{sheets: 1})
		So(rows, ShouldBeNil)
		So(err, ShouldEqual, ErrNoWorksheet)
	})
}
