// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"time"

	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/model"
	"github.com/okian/competency/internal/domain/table"
	"github.com/okian/competency/pkg/metrics"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath is the employee assessment file (CSV, XLSX or XLS).
	DataPath string `koanf:"data_path"`

	// SurveyPath is the optional career-mapping survey export.
	SurveyPath string `koanf:"survey_path"`

	// SuggestionLimit caps identifiers suggested after a failed lookup.
	SuggestionLimit int `koanf:"suggestion_limit"`

	// SurveyChoiceLimit caps bars returned by a survey query.
	SurveyChoiceLimit int `koanf:"survey_choice_limit"`

	// Columns names the identity columns of the dataset.
	Columns ColumnsConfig `koanf:"columns"`

	// Catalogs replaces the built-in catalogs when set.
	Catalogs []CatalogConfig `koanf:"catalogs"`

	// DisplayColumns replaces the default table projection when set.
	DisplayColumns []DisplayColumnConfig `koanf:"display_columns"`

	// Metrics configures the Prometheus collectors.
	Metrics MetricsConfig `koanf:"metrics"`
}

// MetricsConfig configures the metrics manager.
type MetricsConfig struct {
	Enabled         bool              `koanf:"enabled"`
	Namespace       string            `koanf:"namespace"`
	Subsystem       string            `koanf:"subsystem"`
	Prefix          string            `koanf:"prefix"`
	RefreshInterval time.Duration     `koanf:"refresh_interval"`
	Buckets         []float64         `koanf:"buckets"`
	Labels          map[string]string `koanf:"labels"`
}

// Options converts the block into metrics manager options.
func (m MetricsConfig) Options() []metrics.Option {
	return []metrics.Option{
		metrics.WithMetricsEnabled(m.Enabled),
		metrics.WithNamespace(m.Namespace),
		metrics.WithSubsystem(m.Subsystem),
		metrics.WithMetricPrefix(m.Prefix),
		metrics.WithRefreshInterval(m.RefreshInterval),
		metrics.WithHistogramBuckets(m.Buckets),
		metrics.WithCustomLabels(m.Labels),
	}
}

func (m MetricsConfig) validate() error {
	if m.RefreshInterval < 0 {
		return fmt.Errorf("%w: metrics.refresh_interval must not be negative", ErrInvalidConfig)
	}
	for i := 1; i < len(m.Buckets); i++ {
		if m.Buckets[i] <= m.Buckets[i-1] {
			return fmt.Errorf("%w: metrics.buckets must be strictly increasing", ErrInvalidConfig)
		}
	}
	return nil
}

// ColumnsConfig names the identity columns.
type ColumnsConfig struct {
	Identifier string `koanf:"identifier"`
	Name       string `koanf:"name"`
	Position   string `koanf:"position"`
	Region     string `koanf:"region"`
	Level      string `koanf:"level"`
}

// CatalogConfig describes one competency catalog.
type CatalogConfig struct {
	Key           string       `koanf:"key"`
	Name          string       `koanf:"name"`
	MaxItemScore  float64      `koanf:"max_item_score"`
	ReferenceLine float64      `koanf:"reference_line"`
	RadarMax      float64      `koanf:"radar_max"`
	Items         []ItemConfig `koanf:"items"`
	Thresholds    []CutConfig  `koanf:"thresholds"`
	FallbackLabel string       `koanf:"fallback_label"`
}

// ItemConfig is one competency item.
type ItemConfig struct {
	Code  string `koanf:"code"`
	Label string `koanf:"label"`
}

// CutConfig is one classification threshold.
type CutConfig struct {
	Min   float64 `koanf:"min"`
	Label string  `koanf:"label"`
}

// DisplayColumnConfig is one table column.
type DisplayColumnConfig struct {
	Key    string `koanf:"key"`
	Header string `koanf:"header"`
}

// New returns a Config holding the defaults.
func New() *Config {
	cols := model.DefaultColumns()
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		DataPath:          "data/data_kompetensi.csv",
		SuggestionLimit:   5,
		SurveyChoiceLimit: 20,
		Columns: ColumnsConfig{
			Identifier: cols.Identifier,
			Name:       cols.Name,
			Position:   cols.Position,
			Region:     cols.Region,
			Level:      cols.Level,
		},
		Catalogs: FromCatalogs(catalog.Defaults()),
		Metrics: MetricsConfig{
			Enabled:         true,
			Namespace:       "competency",
			Subsystem:       "dashboard",
			RefreshInterval: 10 * time.Second,
		},
	}
}

// FromCatalogs converts domain catalogs to their config form.
func FromCatalogs(set catalog.Set) []CatalogConfig {
	out := make([]CatalogConfig, 0, len(set))
	for _, c := range set {
		cc := CatalogConfig{
			Key:           c.Key,
			Name:          c.Name,
			MaxItemScore:  c.MaxItemScore,
			ReferenceLine: c.ReferenceLine,
			RadarMax:      c.RadarMax,
			FallbackLabel: c.Thresholds.Fallback,
		}
		for _, it := range c.Items {
			cc.Items = append(cc.Items, ItemConfig{Code: it.Code, Label: it.Label})
		}
		for _, cut := range c.Thresholds.Cuts {
			cc.Thresholds = append(cc.Thresholds, CutConfig{Min: cut.Min, Label: cut.Label})
		}
		out = append(out, cc)
	}
	return out
}

// CatalogSet builds and validates the configured catalogs. Catalogs without
// thresholds use the default cut points.
func (c *Config) CatalogSet() (catalog.Set, error) {
	if len(c.Catalogs) == 0 {
		return nil, fmt.Errorf("%w: no catalogs configured", ErrInvalidConfig)
	}
	set := make(catalog.Set, 0, len(c.Catalogs))
	for _, cc := range c.Catalogs {
		cat := catalog.Catalog{
			Key:           cc.Key,
			Name:          cc.Name,
			MaxItemScore:  cc.MaxItemScore,
			ReferenceLine: cc.ReferenceLine,
			RadarMax:      cc.RadarMax,
			Thresholds:    catalog.DefaultThresholds(),
		}
		for _, it := range cc.Items {
			cat.Items = append(cat.Items, catalog.Item{Code: it.Code, Label: it.Label})
		}
		if len(cc.Thresholds) > 0 {
			cuts := make([]catalog.Cut, len(cc.Thresholds))
			for i, cut := range cc.Thresholds {
				cuts[i] = catalog.Cut{Min: cut.Min, Label: cut.Label}
			}
			fallback := cc.FallbackLabel
			if fallback == "" {
				fallback = catalog.LabelNotOptimal
			}
			cat.Thresholds = catalog.NewThresholds(fallback, cuts...)
		}
		set = append(set, cat)
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return set, nil
}

// ColumnNames returns the identity columns with blanks defaulted.
func (c *Config) ColumnNames() model.Columns {
	return model.Columns{
		Identifier: c.Columns.Identifier,
		Name:       c.Columns.Name,
		Position:   c.Columns.Position,
		Region:     c.Columns.Region,
		Level:      c.Columns.Level,
	}.WithDefaults()
}

// TableColumns returns the configured projection or the default one for set.
func (c *Config) TableColumns(set catalog.Set) []table.Column {
	if len(c.DisplayColumns) == 0 {
		return table.DefaultColumns(set)
	}
	cols := make([]table.Column, 0, len(c.DisplayColumns))
	for _, dc := range c.DisplayColumns {
		header := dc.Header
		if header == "" {
			header = dc.Key
		}
		cols = append(cols, table.Column{Key: dc.Key, Header: header})
	}
	return cols
}

// Validate checks the values a service cannot start without.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataPath == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case c.SuggestionLimit < 0:
		return fmt.Errorf("%w: suggestion_limit must not be negative", ErrInvalidConfig)
	case c.SurveyChoiceLimit < 0:
		return fmt.Errorf("%w: survey_choice_limit must not be negative", ErrInvalidConfig)
	}
	if err := c.Metrics.validate(); err != nil {
		return err
	}
	for _, dc := range c.DisplayColumns {
		if dc.Key == "" {
			return fmt.Errorf("%w: display column without key", ErrInvalidConfig)
		}
	}
	if _, err := c.CatalogSet(); err != nil {
		return err
	}
	return nil
}
