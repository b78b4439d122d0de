// Package stats summarizes aggregated category totals.
package stats

import (
	"math"

	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/model"
)

// Summary holds descriptive statistics of a sample.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes count, mean, min, max and the sample standard deviation
// (n-1 denominator, zero when fewer than two values).
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{Count: len(values), Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(len(values))
	if len(values) < 2 {
		return s
	}
	var sq float64
	for _, v := range values {
		d := v - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(len(values)-1))
	return s
}

// CategorySummary summarizes one catalog over a set of rows.
type CategorySummary struct {
	Key     string         `json:"key"`
	Name    string         `json:"name"`
	Total   Summary        `json:"total"`
	Percent Summary        `json:"percent"`
	Labels  map[string]int `json:"labels"`
}

// ByCategory summarizes every catalog in order.
func ByCategory(rows []model.AggregatedRecord, catalogs catalog.Set) []CategorySummary {
	out := make([]CategorySummary, 0, len(catalogs))
	for _, c := range catalogs {
		totals := make([]float64, 0, len(rows))
		percents := make([]float64, 0, len(rows))
		labels := make(map[string]int)
		for _, r := range rows {
			res, ok := r.Category(c.Key)
			if !ok {
				continue
			}
			totals = append(totals, res.Total)
			percents = append(percents, res.Percent)
			labels[res.Label]++
		}
		out = append(out, CategorySummary{
			Key:     c.Key,
			Name:    c.Name,
			Total:   Summarize(totals),
			Percent: Summarize(percents),
			Labels:  labels,
		})
	}
	return out
}
