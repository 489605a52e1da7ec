// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/logging"
	"github.com/tomtom215/hybridrec/internal/metrics"
	"github.com/tomtom215/hybridrec/internal/recommend/algorithms"
)

// Engine builds snapshots and serves recommendations from the current one.
// It is safe for concurrent use: reads go through an atomically swapped
// snapshot pointer, so a rebuild is never partially visible.
type Engine struct {
	config *Config
	logger zerolog.Logger

	snapshot atomic.Pointer[Snapshot]
	builds   atomic.Int64

	// Random source for cold-start sampling (protected by rngMu)
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.Clone()

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		rng:    rand.New(rand.NewSource(cfg.seed())), //nolint:gosec // math/rand is fine for recommendation sampling
	}, nil
}

// SetRandSource replaces the random source used for cold-start sampling.
func (e *Engine) SetRandSource(src rand.Source) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng = rand.New(src) //nolint:gosec // math/rand is fine for recommendation sampling
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Snapshot returns the current snapshot, or nil if none was published.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Builds returns the number of snapshots built by this engine.
func (e *Engine) Builds() int64 {
	return e.builds.Load()
}

// Publish validates and atomically installs a snapshot.
func (e *Engine) Publish(s *Snapshot) error {
	if err := s.index(); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	e.snapshot.Store(s)
	metrics.UpdateSnapshot(len(s.Items), s.UserCount(), s.DuplicateRows)
	return nil
}

// log returns the engine logger with the run ID from ctx attached.
func (e *Engine) log(ctx context.Context) *zerolog.Logger {
	return logging.WithRunID(ctx, e.logger)
}

// Build derives a new snapshot from table and publishes it.
//
// The feature stage runs first. Content similarity and factorization then
// run in parallel over its output. A failure in either of those two is
// recorded on the snapshot and logged; operations that need the missing
// structure return a KindComputation result. A feature failure publishes
// an empty snapshot and is returned. Build returns the context error if
// ctx is canceled, leaving the previous snapshot in place.
func (e *Engine) Build(ctx context.Context, table *dataset.Table) (*Snapshot, error) {
	start := time.Now()
	log := e.log(ctx)

	snap := &Snapshot{
		Fingerprint: e.config.Fingerprint(),
		BuiltAt:     start,
	}
	if table != nil {
		snap.Digest = table.Digest
	}

	stageStart := time.Now()
	features, err := BuildFeatures(table, e.config.Features)
	metrics.RecordStage(metrics.StageFeatures, time.Since(stageStart), KindOf(err).String())
	if err != nil {
		log.Error().Err(err).Str("stage", metrics.StageFeatures).Msg("Feature stage failed, snapshot left unaugmented")
		snap.FeatureErr = err
		if pubErr := e.Publish(snap); pubErr != nil {
			return nil, pubErr
		}
		e.builds.Add(1)
		return snap, err
	}

	snap.Items = features.Items
	snap.DuplicateRows = features.DuplicateRows
	if features.DuplicateRows > 0 || features.DroppedRows > 0 {
		log.Warn().
			Int("duplicate_rows", features.DuplicateRows).
			Int("dropped_rows", features.DroppedRows).
			Msg("Dataset rows deduplicated by item id")
	}
	log.Info().
		Int("rows", features.Rows).
		Int("items", len(features.Items)).
		Int("interactions", len(features.Interactions)).
		Str("summary_column", features.SummaryColumn).
		Msg("Features built")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t := time.Now()
		sim, err := e.buildSimilarity(gctx, features.Items)
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		snap.Similarity = sim
		if err != nil {
			snap.ContentErr = newError(KindComputation, metrics.StageContent, err)
			log.Error().Err(err).Str("stage", metrics.StageContent).Msg("Content similarity failed, content lookups disabled")
		}
		metrics.RecordStage(metrics.StageContent, time.Since(t), KindOf(snap.ContentErr).String())
		return nil
	})

	g.Go(func() error {
		t := time.Now()
		im := algorithms.NewInteractionMatrix(features.Interactions)
		factors, err := e.factorize(gctx, im)
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		snap.Interactions = im
		snap.Factors = factors
		if err != nil {
			snap.FactorErr = newError(KindComputation, metrics.StageFactorization, err)
			log.Error().Err(err).
				Str("stage", metrics.StageFactorization).
				Int("users", im.Rows()).
				Int("items", im.Cols()).
				Int("components", e.config.Factorization.Components).
				Msg("Factorization failed, collaborative scoring disabled")
		}
		metrics.RecordStage(metrics.StageFactorization, time.Since(t), KindOf(snap.FactorErr).String())
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("Snapshot build canceled")
		return nil, err
	}

	if err := e.Publish(snap); err != nil {
		return nil, err
	}
	e.builds.Add(1)

	log.Info().
		Int("items", len(snap.Items)).
		Int("users", snap.UserCount()).
		Bool("similarity", snap.Similarity != nil).
		Bool("factors", snap.Factors != nil).
		Dur("duration", time.Since(start)).
		Msg("Snapshot published")

	return snap, nil
}

//nolint:gocritic // rangeValCopy is acceptable
func (e *Engine) buildSimilarity(ctx context.Context, items []Item) (*algorithms.SimilarityMatrix, error) {
	docs := make([]string, len(items))
	for i := range items {
		docs[i] = items[i].Metadata
	}
	return algorithms.BuildSimilarity(ctx, docs, algorithms.SimilarityConfig{
		TFIDF: algorithms.TFIDFConfig{
			StopWords:      e.config.Content.StopWords,
			MinTokenLength: e.config.Content.MinTokenLength,
		},
		NumWorkers: e.config.Content.NumWorkers,
	})
}

func (e *Engine) factorize(ctx context.Context, im *algorithms.InteractionMatrix) (*algorithms.Factors, error) {
	if im.Rows() == 0 || im.Cols() == 0 {
		return nil, algorithms.ErrEmptyMatrix
	}
	fc := e.config.Factorization
	svd := algorithms.NewTruncatedSVD(algorithms.SVDConfig{
		Components:      fc.Components,
		Oversamples:     fc.Oversamples,
		PowerIterations: fc.PowerIterations,
		Seed:            e.config.seed(),
		ReduceRank:      fc.ReduceRank,
	})
	factors, err := svd.Factorize(ctx, im.Values())
	if err == nil && factors.Components() < fc.Components {
		e.logger.Warn().
			Int("requested", fc.Components).
			Int("effective", factors.Components()).
			Msg("Factorization rank reduced to fit the interaction matrix")
	}
	return factors, err
}

// current returns the published snapshot or a classified error.
func (e *Engine) current(op string) (*Snapshot, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		return nil, newError(KindDataFormat, op, ErrNoSnapshot)
	}
	if err := snap.ready(op); err != nil {
		return nil, err
	}
	return snap, nil
}

// logFailure logs an operation failure with its kind at the boundary.
func (e *Engine) logFailure(ctx context.Context, op string, err error, key, value string) {
	e.log(ctx).Warn().
		Err(err).
		Str("op", op).
		Str("kind", KindOf(err).String()).
		Str(key, value).
		Msg("Recommendation operation returned no results")
}
