// Package aggregate computes derived competency fields from raw item scores.
package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/model"
	"github.com/okian/competency/pkg/metrics"
)

// Sentinel kinds for aggregation errors.
var (
	// ErrEmptyCatalog is the divide-by-zero condition of CategoryPercent.
	ErrEmptyCatalog = catalog.ErrEmptyCatalog
)

// ItemTotal returns the at-level plus above-level score of an item.
// Missing raw columns contribute zero.
func ItemTotal(r model.EmployeeRecord, code string) float64 {
	return r.Value(code+catalog.AtLevelSuffix) + r.Value(code+catalog.AboveLevelSuffix)
}

// CategoryTotal sums ItemTotal over every item of c. An empty catalog totals zero.
func CategoryTotal(r model.EmployeeRecord, c catalog.Catalog) float64 {
	var total float64
	for _, it := range c.Items {
		total += ItemTotal(r, it.Code)
	}
	return total
}

// CategoryPercent expresses total as a percentage of len(c) * maxItemScore.
// It returns ErrEmptyCatalog when that denominator is not positive.
func CategoryPercent(total float64, c catalog.Catalog, maxItemScore float64) (float64, error) {
	denom := float64(c.Len()) * maxItemScore
	if denom <= 0 {
		return 0, fmt.Errorf("%w: %q (items=%d, max=%g)", ErrEmptyCatalog, c.Key, c.Len(), maxItemScore)
	}
	return total / denom * 100, nil
}

// Classify maps a percent to a label using t.
func Classify(percent float64, t catalog.Thresholds) string {
	return t.Classify(percent)
}

// Category computes the derived fields of one catalog for one record.
// Catalogs that cannot produce a percent report zero percent.
func Category(r model.EmployeeRecord, c catalog.Catalog) model.CategoryResult {
	res := model.CategoryResult{
		Key:   c.Key,
		Name:  c.Name,
		Items: make([]model.ItemScore, len(c.Items)),
	}
	for i, it := range c.Items {
		at := r.Value(it.AtLevelColumn())
		above := r.Value(it.AboveLevelColumn())
		label := it.Label
		if label == "" {
			label = it.Code
		}
		res.Items[i] = model.ItemScore{
			Code:       it.Code,
			Label:      label,
			AtLevel:    at,
			AboveLevel: above,
			Total:      at + above,
		}
		res.Total += at + above
	}
	if pct, err := CategoryPercent(res.Total, c, c.MaxItemScore); err == nil {
		res.Percent = pct
	}
	res.Label = Classify(res.Percent, c.Thresholds)
	return res
}

// Record attaches every catalog's derived fields to r.
func Record(r model.EmployeeRecord, catalogs catalog.Set) model.AggregatedRecord {
	out := model.AggregatedRecord{
		EmployeeRecord: r,
		Categories:     make([]model.CategoryResult, len(catalogs)),
	}
	for i, c := range catalogs {
		out.Categories[i] = Category(r, c)
	}
	return out
}

// Table aggregates every record, preserving input order. The input is not modified.
func Table(records []model.EmployeeRecord, catalogs catalog.Set) []model.AggregatedRecord {
	out := make([]model.AggregatedRecord, len(records))
	for i, r := range records {
		out[i] = Record(r, catalogs)
	}
	return out
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithCatalogs sets the catalogs to aggregate over.
func WithCatalogs(set catalog.Set) Option {
	return func(a *Aggregator) {
		if len(set) > 0 {
			a.catalogs = append(catalog.Set(nil), set...)
		}
	}
}

// Aggregator binds a catalog set to the aggregation functions and records metrics.
type Aggregator struct {
	catalogs catalog.Set
}

// New creates an Aggregator over the default catalogs unless overridden.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{catalogs: catalog.Defaults()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Catalogs returns the configured catalogs.
func (a *Aggregator) Catalogs() catalog.Set {
	return append(catalog.Set(nil), a.catalogs...)
}

// Record aggregates a single record.
func (a *Aggregator) Record(r model.EmployeeRecord) model.AggregatedRecord {
	return Record(r, a.catalogs)
}

// Table aggregates records and observes aggregation latency.
func (a *Aggregator) Table(_ context.Context, records []model.EmployeeRecord) []model.AggregatedRecord {
	start := time.Now()
	out := Table(records, a.catalogs)
	metrics.RecordAggregationLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordAggregatedRows(len(out))
	return out
}
