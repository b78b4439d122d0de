// Package survey counts answers of the career-mapping survey.
package survey

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/competency/internal/domain/chart"
	"github.com/okian/competency/internal/domain/model"
)

// DefaultSeparator splits multi-choice answers.
const DefaultSeparator = ","

// Count is how often one answer was given.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Columns returns the survey header, skipping blank names.
func Columns(t model.Table) []string {
	out := make([]string, 0, len(t.Header))
	for _, h := range t.Header {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

// ChoiceCounts splits every cell of column on sep, trims each choice, ignores
// blanks and counts occurrences. Results are ordered by count descending then
// label ascending and truncated to limit when limit is positive.
func ChoiceCounts(t model.Table, column, sep string, limit int) ([]Count, error) {
	idx := t.ColumnIndex(column)
	if strings.TrimSpace(column) == "" || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if sep == "" {
		sep = DefaultSeparator
	}
	counts := make(map[string]int)
	for row := range t.Rows {
		for _, choice := range strings.Split(t.Cell(row, idx), sep) {
			if choice = strings.TrimSpace(choice); choice != "" {
				counts[choice]++
			}
		}
	}
	out := make([]Count, 0, len(counts))
	for label, n := range counts {
		out = append(out, Count{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Bar turns counts into a bar chart titled after the column.
func Bar(column string, counts []Count) chart.Bar {
	b := chart.Bar{
		Title:  column,
		XAxis:  column,
		YAxis:  "Jumlah",
		Points: make([]chart.Point, len(counts)),
	}
	for i, c := range counts {
		b.Points[i] = chart.Point{Label: c.Label, Value: float64(c.Count)}
	}
	return b
}
