// Package source reads tabular files (CSV, XLSX, XLS) into raw tables.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/competency/internal/domain/model"
)

// Supported extensions.
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
	ExtXLS  = ".xls"
)

// Reader produces a raw table.
type Reader interface {
	Read(ctx context.Context) (model.Table, error)
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func(ctx context.Context) (model.Table, error)

// Read calls f.
func (f ReaderFunc) Read(ctx context.Context) (model.Table, error) { return f(ctx) }

// Static returns a Reader that always yields t.
func Static(t model.Table) Reader {
	return ReaderFunc(func(context.Context) (model.Table, error) { return t, nil })
}

// FileReader reads a table from a path on every call.
type FileReader struct {
	path string
}

// NewFileReader returns a reader for path.
func NewFileReader(path string) *FileReader {
	return &FileReader{path: path}
}

// Path returns the file path.
func (r *FileReader) Path() string { return r.path }

// Read loads and parses the file. The file is never written.
func (r *FileReader) Read(ctx context.Context) (model.Table, error) {
	if err := ctx.Err(); err != nil {
		return model.Table{}, err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return model.Table{}, fmt.Errorf("read %s: %w", r.path, err)
	}
	t, err := Parse(r.path, data)
	if err != nil {
		return model.Table{}, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return t, nil
}

// Parse picks a decoder from the file extension. Unknown extensions are CSV.
func Parse(name string, data []byte) (model.Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ExtXLSX:
		rows, err = readXLSX(data)
	case ExtXLS:
		rows, err = readXLS(data)
	default:
		rows, err = readCSV(data)
	}
	if err != nil {
		return model.Table{}, err
	}
	return toTable(rows)
}

// toTable trims the header and drops rows whose cells are all blank.
func toTable(rows [][]string) (model.Table, error) {
	if len(rows) == 0 {
		return model.Table{}, ErrEmptySheet
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	if blank(header) {
		return model.Table{}, ErrEmptySheet
	}
	t := model.Table{Header: header, Rows: make([][]string, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
