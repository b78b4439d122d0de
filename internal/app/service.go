// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the report CLI.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/okian/competency/internal/adapters/repository"
	"github.com/okian/competency/internal/domain/aggregate"
	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/chart"
	"github.com/okian/competency/internal/domain/model"
	"github.com/okian/competency/internal/domain/search"
	"github.com/okian/competency/internal/domain/stats"
	"github.com/okian/competency/internal/domain/survey"
	"github.com/okian/competency/internal/domain/table"
	"github.com/okian/competency/pkg/logger"
	"github.com/okian/competency/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Defaults used when no option overrides them.
const (
	DefaultSurveyChoiceLimit = 20
)

// DatasetStore is the employee dataset repository.
type DatasetStore = repository.Store[repository.Snapshot]

// SurveyStore is the survey repository.
type SurveyStore = repository.Store[repository.SurveySnapshot]

// Service implements the dashboard use cases over the loaded datasets.
type Service struct {
	mu sync.RWMutex

	dataset    DatasetStore
	survey     SurveyStore
	aggregator *aggregate.Aggregator
	columns    []table.Column

	suggestionLimit   int
	surveyChoiceLimit int

	// aggregated rows of the current dataset version
	cacheMu      sync.Mutex
	cacheVersion string
	cacheRows    []model.AggregatedRecord

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDatasetStore sets the employee dataset repository.
func WithDatasetStore(store DatasetStore) Option {
	return func(s *Service) { s.dataset = store }
}

// WithSurveyStore sets the survey repository.
func WithSurveyStore(store SurveyStore) Option {
	return func(s *Service) { s.survey = store }
}

// WithCatalogs sets the catalogs used for aggregation.
func WithCatalogs(set catalog.Set) Option {
	return func(s *Service) {
		if len(set) > 0 {
			s.aggregator = aggregate.New(aggregate.WithCatalogs(set))
		}
	}
}

// WithDisplayColumns sets the table projection.
func WithDisplayColumns(cols []table.Column) Option {
	return func(s *Service) {
		if len(cols) > 0 {
			s.columns = append([]table.Column(nil), cols...)
		}
	}
}

// WithSuggestionLimit caps identifiers suggested after a failed lookup.
func WithSuggestionLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.suggestionLimit = n
		}
	}
}

// WithSurveyChoiceLimit caps the bars returned by a survey query.
func WithSurveyChoiceLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.surveyChoiceLimit = n
		}
	}
}

// New constructs a Service. Without WithDatasetStore, Start fails.
func New(opts ...Option) *Service {
	s := &Service{
		aggregator:        aggregate.New(),
		suggestionLimit:   search.DefaultSuggestionLimit,
		surveyChoiceLimit: DefaultSurveyChoiceLimit,
		logger:            logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.columns == nil {
		s.columns = table.DefaultColumns(s.aggregator.Catalogs())
	}
	return s
}

// Start loads the dataset and the survey in parallel. Load failures are
// logged and leave the service running without data; Reload retries.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.dataset == nil {
		return ErrNoDataset
	}
	s.logger.Info(ctx, "starting competency service...")

	if err := s.loadAll(ctx, false); err != nil {
		s.logger.Warn(ctx, "service started without complete data", logger.Error(err))
	}

	s.started = true
	s.logger.Info(ctx, "competency service started",
		logger.Int("catalogs", len(s.aggregator.Catalogs())),
		logger.Bool("dataset_loaded", s.dataset.Status().Loaded))
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "competency service stopped")
}

// loadAll loads both stores concurrently and returns the first error.
func (s *Service) loadAll(ctx context.Context, force bool) error {
	var g errgroup.Group
	g.Go(func() error {
		if force {
			_, err := s.dataset.Reload(ctx)
			return err
		}
		_, err := s.dataset.Load(ctx)
		return err
	})
	if s.survey != nil {
		g.Go(func() error {
			if force {
				_, err := s.survey.Reload(ctx)
				return err
			}
			_, err := s.survey.Load(ctx)
			return err
		})
	}
	return g.Wait()
}

// ReloadResult reports the state of both stores after a reload.
type ReloadResult struct {
	Dataset repository.Status  `json:"dataset"`
	Survey  *repository.Status `json:"survey,omitempty"`
}

// Reload re-reads both sources. Stores whose reload fails keep serving their
// previous snapshot.
func (s *Service) Reload(ctx context.Context) (ReloadResult, error) {
	if s.dataset == nil {
		return ReloadResult{}, ErrNoDataset
	}
	err := s.loadAll(ctx, true)
	res := ReloadResult{Dataset: s.dataset.Status()}
	if s.survey != nil {
		st := s.survey.Status()
		res.Survey = &st
	}
	if err != nil {
		s.logger.Warn(ctx, "reload incomplete", logger.Error(err))
	}
	return res, err
}

// Catalogs returns the configured catalogs.
func (s *Service) Catalogs() catalog.Set {
	return s.aggregator.Catalogs()
}

// rows returns the aggregated rows of the current snapshot, computing them
// once per version.
func (s *Service) rows(ctx context.Context) (*repository.Snapshot, []model.AggregatedRecord, error) {
	if s.dataset == nil {
		return nil, nil, ErrNoDataset
	}
	snap, err := s.dataset.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheVersion != snap.Version {
		s.cacheRows = s.aggregator.Table(ctx, snap.Records)
		s.cacheVersion = snap.Version
	}
	return snap, s.cacheRows, nil
}

// TableResult is the filtered table with its summary cards.
type TableResult struct {
	Version string                  `json:"version"`
	Filter  table.Filter            `json:"filter"`
	Options table.Options           `json:"options"`
	View    table.View              `json:"table"`
	Summary []stats.CategorySummary `json:"summary"`
}

// Table filters the aggregated rows and summarizes every catalog.
func (s *Service) Table(ctx context.Context, f table.Filter) (TableResult, error) {
	snap, rows, err := s.rows(ctx)
	if err != nil {
		return TableResult{}, err
	}
	return TableResult{
		Version: snap.Version,
		Filter:  f,
		Options: table.FilterOptions(rows),
		View:    table.Project(rows, f, s.columns),
		Summary: stats.ByCategory(table.Apply(rows, f), s.aggregator.Catalogs()),
	}, nil
}

// LookupResult is the detail view of an employee or the suggestions when no
// identifier matched.
type LookupResult struct {
	Query       string                  `json:"query"`
	Found       bool                    `json:"found"`
	Matches     []string                `json:"matches"`
	Employee    *model.AggregatedRecord `json:"employee,omitempty"`
	Radars      []chart.Radar           `json:"radars,omitempty"`
	Items       []chart.ItemTable       `json:"items,omitempty"`
	Suggestions []string                `json:"suggestions,omitempty"`
}

// Lookup finds employees whose identifier contains query. The query is
// trimmed first and a blank one fails with ErrEmptyQuery. The first match is
// detailed; without a match, identifiers sharing the query prefix are
// suggested.
func (s *Service) Lookup(ctx context.Context, query string) (LookupResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return LookupResult{}, ErrEmptyQuery
	}
	_, rows, err := s.rows(ctx)
	if err != nil {
		return LookupResult{}, err
	}

	start := time.Now()
	res := search.Lookup(rows, query, s.suggestionLimit)
	out := LookupResult{
		Query:       query,
		Found:       res.Found(),
		Matches:     make([]string, len(res.Matches)),
		Suggestions: res.Suggestions,
	}
	for i, m := range res.Matches {
		out.Matches[i] = m.ID
	}
	if first, ok := res.First(); ok {
		out.Employee = &first
		for _, c := range s.aggregator.Catalogs() {
			out.Radars = append(out.Radars, chart.BuildRadar(first, c))
			out.Items = append(out.Items, chart.BuildItemTable(first, c))
		}
	}
	metrics.RecordLookup(out.Found, float64(time.Since(start).Microseconds())/1000)
	s.logger.Debug(ctx, "lookup",
		logger.String("query", query),
		logger.Bool("found", out.Found),
		logger.Int("matches", len(out.Matches)))
	return out, nil
}

func (s *Service) surveyTable(ctx context.Context) (model.Table, error) {
	if s.survey == nil {
		return model.Table{}, repository.ErrNotLoaded
	}
	snap, err := s.survey.Snapshot(ctx)
	if err != nil {
		return model.Table{}, err
	}
	return snap.Table, nil
}

// SurveyColumns lists the survey columns.
func (s *Service) SurveyColumns(ctx context.Context) ([]string, error) {
	t, err := s.surveyTable(ctx)
	if err != nil {
		return nil, err
	}
	return survey.Columns(t), nil
}

// SurveyResult is the frequency chart of one survey column.
type SurveyResult struct {
	Column string         `json:"column"`
	Counts []survey.Count `json:"counts"`
	Chart  chart.Bar      `json:"chart"`
}

// SurveyChoices counts the answers of column. A non-positive limit uses the
// configured one.
func (s *Service) SurveyChoices(ctx context.Context, column, sep string, limit int) (SurveyResult, error) {
	t, err := s.surveyTable(ctx)
	if err != nil {
		return SurveyResult{}, err
	}
	if limit <= 0 {
		limit = s.surveyChoiceLimit
	}
	counts, err := survey.ChoiceCounts(t, column, sep, limit)
	if err != nil {
		return SurveyResult{}, err
	}
	metrics.RecordSurveyQuery()
	return SurveyResult{Column: column, Counts: counts, Chart: survey.Bar(column, counts)}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[string]any{
		"started":  s.started,
		"catalogs": len(s.aggregator.Catalogs()),
	}
	if s.dataset != nil {
		out["dataset"] = s.dataset.Status()
	}
	if s.survey != nil {
		out["survey"] = s.survey.Status()
	}
	s.cacheMu.Lock()
	out["aggregated_rows"] = len(s.cacheRows)
	s.cacheMu.Unlock()
	return out
}
