package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/competency/internal/adapters/source"
	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/model"
	"github.com/okian/competency/pkg/logger"
	"github.com/okian/competency/pkg/metrics"
)

// DatasetName labels the employee dataset in logs and metrics.
const DatasetName = "employees"

// Snapshot is an immutable view of the employee dataset.
type Snapshot struct {
	Meta
	Columns model.Columns          `json:"columns"`
	Records []model.EmployeeRecord `json:"-"`
	// MissingColumns lists expected score columns absent from the header.
	MissingColumns []string `json:"missing_columns,omitempty"`
}

func (s *Snapshot) meta() Meta { return s.Meta }
func (s *Snapshot) size() int  { return len(s.Records) }

// DatasetStore serves the employee assessment dataset.
type DatasetStore struct {
	*loader[*Snapshot]
}

var _ Store[Snapshot] = (*DatasetStore)(nil)

// NewDatasetStore creates a store reading employee rows from src.
func NewDatasetStore(src source.Reader, opts ...Option) *DatasetStore {
	s := defaultSettings(DatasetName)
	for _, opt := range opts {
		opt(&s)
	}
	d := &DatasetStore{}
	d.loader = newLoader(src, s, d.build)
	return d
}

func (d *DatasetStore) build(ctx context.Context, meta Meta) (*Snapshot, error) {
	t, err := d.src.Read(ctx)
	if err != nil {
		return nil, err
	}
	records, err := ParseRecords(t, d.columns)
	if err != nil {
		return nil, err
	}
	missing := MissingColumns(t, d.catalogs)
	rejected := RejectedScores(records, d.catalogs)
	metrics.UpdateDatasetMissingColumns(d.name, len(missing))
	if len(missing) > 0 || len(rejected) > 0 {
		d.log.Warn(ctx, "score columns missing or invalid, treated as zero",
			logger.String("dataset", d.name),
			logger.Int("missing", len(missing)),
			logger.Any("columns", missing),
			logger.Int("rejected", len(rejected)),
			logger.Any("cells", rejected))
	}
	return &Snapshot{Meta: meta, Columns: d.columns, Records: records, MissingColumns: missing}, nil
}

// Load reads the dataset unless it is already loaded.
func (d *DatasetStore) Load(ctx context.Context) (*Snapshot, error) { return d.load(ctx, false) }

// Reload re-reads the dataset. A failed reload keeps the previous snapshot.
func (d *DatasetStore) Reload(ctx context.Context) (*Snapshot, error) { return d.load(ctx, true) }

// Snapshot returns the current dataset or ErrNotLoaded.
func (d *DatasetStore) Snapshot(ctx context.Context) (*Snapshot, error) { return d.snapshot(ctx) }

// Status describes the last load.
func (d *DatasetStore) Status() Status { return d.status() }

// ParseRecords maps table rows onto employee records. Identity columns fill
// the named fields. Every other non-empty cell becomes a score when it is a
// non-negative number and an attribute otherwise, so it counts as zero.
func ParseRecords(t model.Table, cols model.Columns) ([]model.EmployeeRecord, error) {
	cols = cols.WithDefaults()
	idIdx := t.ColumnIndex(cols.Identifier)
	if idIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingIdentifier, cols.Identifier)
	}
	identity := make(map[string]struct{}, 5)
	for _, name := range cols.Names() {
		identity[name] = struct{}{}
	}
	nameIdx := t.ColumnIndex(cols.Name)
	posIdx := t.ColumnIndex(cols.Position)
	regionIdx := t.ColumnIndex(cols.Region)
	levelIdx := t.ColumnIndex(cols.Level)

	records := make([]model.EmployeeRecord, 0, t.Len())
	for row := range t.Rows {
		r := model.EmployeeRecord{
			ID:         t.Cell(row, idIdx),
			Name:       t.Cell(row, nameIdx),
			Position:   t.Cell(row, posIdx),
			Region:     t.Cell(row, regionIdx),
			Level:      t.Cell(row, levelIdx),
			Scores:     make(map[string]float64),
			Attributes: make(map[string]string),
		}
		for col, header := range t.Header {
			if header == "" {
				continue
			}
			if _, ok := identity[header]; ok {
				continue
			}
			cell := t.Cell(row, col)
			if cell == "" {
				continue
			}
			if v, ok := ParseNumber(cell); ok && v >= 0 {
				r.Scores[header] = v
				continue
			}
			r.Attributes[header] = cell
		}
		records = append(records, r)
	}
	return records, nil
}

// ParseNumber reads a finite decimal that may use a comma as decimal separator.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// RejectedScores lists "identifier/column" for every score cell of set that
// was present but not a non-negative number.
func RejectedScores(records []model.EmployeeRecord, set catalog.Set) []string {
	var out []string
	cols := set.Columns()
	for _, r := range records {
		for _, col := range cols {
			if _, ok := r.Attributes[col]; ok {
				out = append(out, r.ID+"/"+col)
			}
		}
	}
	return out
}

// MissingColumns lists the raw score columns of set absent from the header.
func MissingColumns(t model.Table, set catalog.Set) []string {
	var missing []string
	for _, col := range set.Columns() {
		if t.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	return missing
}
