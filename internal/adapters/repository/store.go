// Package repository holds the in-memory dataset snapshots behind explicit
// Load and Reload calls.
package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/competency/internal/adapters/source"
	"github.com/okian/competency/pkg/logger"
	"github.com/okian/competency/pkg/metrics"
)

// Store loads a dataset once and serves immutable snapshots of it.
type Store[S any] interface {
	// Load reads the source unless a snapshot already exists.
	Load(ctx context.Context) (*S, error)
	// Reload always reads the source. On failure the previous snapshot stays.
	Reload(ctx context.Context) (*S, error)
	// Snapshot returns the current snapshot or ErrNotLoaded.
	Snapshot(ctx context.Context) (*S, error)
	// Status describes the last load.
	Status() Status
}

// Meta identifies one published snapshot.
type Meta struct {
	Version  string    `json:"version"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Status reports the state of a store for /stats.
type Status struct {
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	Loaded    bool      `json:"loaded"`
	Version   string    `json:"version,omitempty"`
	LoadedAt  time.Time `json:"loaded_at,omitempty"`
	Records   int       `json:"records"`
	LastError string    `json:"last_error,omitempty"`
}

// snapshotter is the part of a snapshot the shared loader needs.
type snapshotter interface {
	meta() Meta
	size() int
}

// loader serializes reads of one source and publishes immutable snapshots.
// S is a pointer to a snapshot type.
type loader[S snapshotter] struct {
	settings
	src   source.Reader
	build func(ctx context.Context, meta Meta) (S, error)

	loadMu sync.Mutex // one read at a time

	mu      sync.RWMutex
	current S
	loaded  bool
	lastErr string
}

func newLoader[S snapshotter](src source.Reader, s settings, build func(context.Context, Meta) (S, error)) *loader[S] {
	return &loader[S]{settings: s, src: src, build: build}
}

func (l *loader[S]) sourceName() string {
	if named, ok := l.src.(interface{ Path() string }); ok {
		return named.Path()
	}
	return l.name
}

func (l *loader[S]) get() (S, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current, l.loaded
}

func (l *loader[S]) load(ctx context.Context, force bool) (S, error) {
	var zero S
	l.loadMu.Lock()
	defer l.loadMu.Unlock()

	if !force {
		if cur, ok := l.get(); ok {
			return cur, nil
		}
	}
	if l.src == nil {
		return zero, ErrNoSource
	}

	start := time.Now()
	meta := Meta{Version: uuid.NewString(), Source: l.sourceName(), LoadedAt: l.clock()}
	snap, err := l.build(ctx, meta)
	ms := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		l.mu.Lock()
		l.lastErr = err.Error()
		l.mu.Unlock()
		metrics.RecordDatasetLoad(l.name, metrics.ResultFailure, ms)
		metrics.RecordErrorByComponent("repository", l.name)
		l.log.Error(ctx, "dataset load failed",
			logger.String("dataset", l.name),
			logger.String("source", meta.Source),
			logger.Error(err))
		return zero, fmt.Errorf("load %s: %w", l.name, err)
	}

	l.mu.Lock()
	l.current, l.loaded, l.lastErr = snap, true, ""
	l.mu.Unlock()

	metrics.RecordDatasetLoad(l.name, metrics.ResultSuccess, ms)
	metrics.UpdateDatasetRecords(l.name, snap.size())
	l.log.Info(ctx, "dataset loaded",
		logger.String("dataset", l.name),
		logger.String("source", meta.Source),
		logger.String("version", meta.Version),
		logger.Int("records", snap.size()),
		logger.Float64("duration_ms", ms))
	return snap, nil
}

func (l *loader[S]) snapshot(ctx context.Context) (S, error) {
	var zero S
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if cur, ok := l.get(); ok {
		return cur, nil
	}
	return zero, ErrNotLoaded
}

func (l *loader[S]) status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	st := Status{Name: l.name, Source: l.sourceName(), LastError: l.lastErr}
	if l.loaded {
		m := l.current.meta()
		st.Loaded = true
		st.Version = m.Version
		st.LoadedAt = m.LoadedAt
		st.Records = l.current.size()
	}
	return st
}
