package service

import (
	"github.com/okian/competency/internal/adapters/repository"
	"github.com/okian/competency/internal/adapters/source"
	"github.com/okian/competency/internal/config"
	"github.com/okian/competency/pkg/logger"
)

// NewFromConfig builds file-backed stores and a Service from cfg.
// The survey store is attached only when cfg.SurveyPath is set.
func NewFromConfig(cfg *config.Config, log logger.Logger) (*Service, error) {
	set, err := cfg.CatalogSet()
	if err != nil {
		return nil, err
	}

	dataset := repository.NewDatasetStore(
		source.NewFileReader(cfg.DataPath),
		repository.WithColumns(cfg.ColumnNames()),
		repository.WithCatalogs(set),
		repository.WithLogger(log.Named("dataset")),
	)

	opts := []Option{
		WithLogger(log.Named("service")),
		WithDatasetStore(dataset),
		WithCatalogs(set),
		WithDisplayColumns(cfg.TableColumns(set)),
		WithSuggestionLimit(cfg.SuggestionLimit),
		WithSurveyChoiceLimit(cfg.SurveyChoiceLimit),
	}
	if cfg.SurveyPath != "" {
		opts = append(opts, WithSurveyStore(repository.NewSurveyStore(
			source.NewFileReader(cfg.SurveyPath),
			repository.WithLogger(log.Named("survey")),
		)))
	}
	return New(opts...), nil
}
