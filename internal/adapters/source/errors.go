package source

import "errors"

var (
	// ErrEmptySheet is returned when a file has no header row.
	ErrEmptySheet = errors.New("worksheet is empty")
	// ErrNoWorksheet is returned when a workbook holds no sheet at all.
	ErrNoWorksheet = errors.New("no worksheet found")
)
