package repository

import (
	"time"

	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/model"
	"github.com/okian/competency/pkg/logger"
)

type settings struct {
	name     string
	columns  model.Columns
	catalogs catalog.Set
	clock    func() time.Time
	log      logger.Logger
}

func defaultSettings(name string) settings {
	return settings{
		name:     name,
		columns:  model.DefaultColumns(),
		catalogs: catalog.Defaults(),
		clock:    time.Now,
		log:      logger.Nop(),
	}
}

// Option applies a configuration option to a store.
type Option func(*settings)

// WithName sets the dataset name used in logs and metrics.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithColumns sets the identity column names of the employee dataset.
func WithColumns(cols model.Columns) Option {
	return func(s *settings) {
		s.columns = cols.WithDefaults()
	}
}

// WithCatalogs sets the catalogs whose raw columns the dataset should carry.
func WithCatalogs(set catalog.Set) Option {
	return func(s *settings) {
		if len(set) > 0 {
			s.catalogs = set
		}
	}
}

// WithClock overrides the load timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(log logger.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}
