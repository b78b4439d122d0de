// Package table filters aggregated rows and projects them onto display columns.
package table

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/model"
)

// AllValues disables a filter, as does the empty string.
const AllValues = "Semua"

// Field keys understood by Value besides raw column names.
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldPosition = "position"
	FieldRegion   = "region"
	FieldLevel    = "level"

	SuffixTotal   = ".total"
	SuffixPercent = ".percent"
	SuffixLabel   = ".label"
)

// Filter restricts rows by level and region.
type Filter struct {
	Level  string `json:"level,omitempty"`
	Region string `json:"region,omitempty"`
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != AllValues
}

// Matches reports whether r passes the filter.
func (f Filter) Matches(r model.EmployeeRecord) bool {
	if active(f.Level) && r.Level != strings.TrimSpace(f.Level) {
		return false
	}
	if active(f.Region) && r.Region != strings.TrimSpace(f.Region) {
		return false
	}
	return true
}

// Apply returns the rows passing f, preserving order.
func Apply(rows []model.AggregatedRecord, f Filter) []model.AggregatedRecord {
	out := make([]model.AggregatedRecord, 0, len(rows))
	for _, r := range rows {
		if f.Matches(r.EmployeeRecord) {
			out = append(out, r)
		}
	}
	return out
}

// Options lists the values a filter can take.
type Options struct {
	Levels  []string `json:"levels"`
	Regions []string `json:"regions"`
}

// FilterOptions returns the sorted distinct non-empty levels and regions.
func FilterOptions(rows []model.AggregatedRecord) Options {
	return Options{
		Levels:  distinct(rows, func(r model.AggregatedRecord) string { return r.Level }),
		Regions: distinct(rows, func(r model.AggregatedRecord) string { return r.Region }),
	}
}

func distinct(rows []model.AggregatedRecord, get func(model.AggregatedRecord) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rows {
		v := strings.TrimSpace(get(r))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Column is a display column: a field key and its header.
type Column struct {
	Key    string `json:"key"`
	Header string `json:"header"`
}

// DefaultColumns returns name, region and position followed by the total,
// percent and label of every catalog.
func DefaultColumns(catalogs catalog.Set) []Column {
	cols := []Column{
		{Key: FieldName, Header: "Nama"},
		{Key: FieldRegion, Header: "Wilayah"},
		{Key: FieldPosition, Header: "Jabatan"},
	}
	for _, c := range catalogs {
		name := c.Name
		if name == "" {
			name = c.Key
		}
		cols = append(cols,
			Column{Key: c.Key + SuffixTotal, Header: "Nilai " + name},
			Column{Key: c.Key + SuffixPercent, Header: "Persentase " + name + " (%)"},
			Column{Key: c.Key + SuffixLabel, Header: "Kategori " + name},
		)
	}
	return cols
}

// Value resolves a column key against a row. Unknown keys fall back to the
// raw numeric column, then to the text attribute, then to "".
func Value(r model.AggregatedRecord, key string) any {
	switch key {
	case FieldID:
		return r.ID
	case FieldName:
		return r.Name
	case FieldPosition:
		return r.Position
	case FieldRegion:
		return r.Region
	case FieldLevel:
		return r.Level
	}
	for _, suffix := range []string{SuffixTotal, SuffixPercent, SuffixLabel} {
		catKey, ok := strings.CutSuffix(key, suffix)
		if !ok {
			continue
		}
		c, found := r.Category(catKey)
		if !found {
			break
		}
		switch suffix {
		case SuffixTotal:
			return c.Total
		case SuffixPercent:
			return c.Percent
		default:
			return c.Label
		}
	}
	if r.Has(key) {
		return r.Value(key)
	}
	return r.Attribute(key)
}

// View is a projected, filtered table.
type View struct {
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Shown   int      `json:"shown"`
	Total   int      `json:"total"`
}

// Project filters rows with f and resolves every column for each remaining row.
func Project(rows []model.AggregatedRecord, f Filter, cols []Column) View {
	filtered := Apply(rows, f)
	v := View{
		Columns: append([]Column(nil), cols...),
		Rows:    make([][]any, len(filtered)),
		Shown:   len(filtered),
		Total:   len(rows),
	}
	for i, r := range filtered {
		cells := make([]any, len(cols))
		for j, c := range cols {
			cells[j] = Value(r, c.Key)
		}
		v.Rows[i] = cells
	}
	return v
}

// Headers returns the column headers in order.
func (v View) Headers() []string {
	out := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		out[i] = c.Header
	}
	return out
}

// Strings renders every cell as text. Floats keep up to two decimals.
func (v View) Strings() [][]string {
	out := make([][]string, len(v.Rows))
	for i, row := range v.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = Format(cell)
		}
		out[i] = cells
	}
	return out
}

// Format renders a cell value as text.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(roundTo2(x), 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
