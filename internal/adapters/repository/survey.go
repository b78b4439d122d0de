package repository

import (
	"context"

	"github.com/okian/competency/internal/adapters/source"
	"github.com/okian/competency/internal/domain/model"
)

// SurveyName labels the survey dataset in logs and metrics.
const SurveyName = "survey"

// SurveySnapshot is an immutable view of the survey export.
type SurveySnapshot struct {
	Meta
	Table model.Table `json:"-"`
}

func (s *SurveySnapshot) meta() Meta { return s.Meta }
func (s *SurveySnapshot) size() int  { return s.Table.Len() }

// SurveyStore serves the raw survey table.
type SurveyStore struct {
	*loader[*SurveySnapshot]
}

var _ Store[SurveySnapshot] = (*SurveyStore)(nil)

// NewSurveyStore creates a store reading the survey from src.
func NewSurveyStore(src source.Reader, opts ...Option) *SurveyStore {
	s := defaultSettings(SurveyName)
	for _, opt := range opts {
		opt(&s)
	}
	st := &SurveyStore{}
	st.loader = newLoader(src, s, st.build)
	return st
}

func (s *SurveyStore) build(ctx context.Context, meta Meta) (*SurveySnapshot, error) {
	t, err := s.src.Read(ctx)
	if err != nil {
		return nil, err
	}
	return &SurveySnapshot{Meta: meta, Table: t}, nil
}

// Load reads the survey unless it is already loaded.
func (s *SurveyStore) Load(ctx context.Context) (*SurveySnapshot, error) { return s.load(ctx, false) }

// Reload re-reads the survey. A failed reload keeps the previous snapshot.
func (s *SurveyStore) Reload(ctx context.Context) (*SurveySnapshot, error) { return s.load(ctx, true) }

// Snapshot returns the current survey or ErrNotLoaded.
func (s *SurveyStore) Snapshot(ctx context.Context) (*SurveySnapshot, error) { return s.snapshot(ctx) }

// Status describes the last load.
func (s *SurveyStore) Status() Status { return s.status() }
