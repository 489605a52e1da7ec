// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrec/internal/config"
	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/logging"
	"github.com/tomtom215/hybridrec/internal/metrics"
	"github.com/tomtom215/hybridrec/internal/recommend"
	"github.com/tomtom215/hybridrec/internal/recommend/storage"
)

// Snapshot cache outcomes.
const (
	CacheDisabled = "disabled"
	CacheHit      = "hit"
	CacheMiss     = "miss"
	CacheError    = "error"
)

// Pipeline wires configuration, dataset, engine, snapshot cache and output.
type Pipeline struct {
	cfg    *config.Config
	logger zerolog.Logger
	engine *recommend.Engine
	reader dataset.Reader
	store  storage.Store
	stdout io.Writer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStdout sets the writer used when no output path is configured.
func WithStdout(w io.Writer) Option {
	return func(p *Pipeline) { p.stdout = w }
}

// WithStore overrides the snapshot store opened from configuration.
func WithStore(s storage.Store) Option {
	return func(p *Pipeline) { p.store = s }
}

// WithReader overrides the dataset reader chosen from the input format.
func WithReader(r dataset.Reader) Option {
	return func(p *Pipeline) { p.reader = r }
}

// New creates a pipeline from a validated configuration.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: nil config")
	}

	p := &Pipeline{
		cfg:    cfg,
		logger: logger.With().Str("component", "pipeline").Logger(),
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	p.engine = engine

	if p.reader == nil {
		reader, err := dataset.NewReader(cfg.InputFormat(), logger)
		if err != nil {
			return nil, err
		}
		p.reader = reader
	}

	if p.store == nil && cfg.Cache.Enabled {
		store, err := storage.Open(cfg.StorageConfig())
		if err != nil {
			return nil, fmt.Errorf("open snapshot cache: %w", err)
		}
		p.store = store
	}

	return p, nil
}

// Engine returns the recommendation engine.
func (p *Pipeline) Engine() *recommend.Engine {
	return p.engine
}

// Close releases the snapshot store.
func (p *Pipeline) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// Prepared describes the snapshot a pipeline is serving from.
type Prepared struct {
	Source string
	Key    string
	Cache  string
	Items  int
	Users  int

	// FeatureErr is set when the dataset could not be augmented. The
	// engine then serves empty DataFormat results.
	FeatureErr error
}

// Prepare loads the dataset and publishes a snapshot, from the cache when
// possible. It fails only when the dataset cannot be read or ctx is
// canceled; stage failures inside the engine are reported on Prepared.
func (p *Pipeline) Prepare(ctx context.Context) (*Prepared, error) {
	log := p.log(ctx)

	start := time.Now()
	table, err := p.reader.Read(ctx, p.cfg.Input.Path)
	if err != nil {
		metrics.RecordStage(metrics.StageLoad, time.Since(start), recommend.KindDataFormat.String())
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	metrics.RecordStage(metrics.StageLoad, time.Since(start), "")

	prep := &Prepared{
		Source: table.Source,
		Key:    storage.Key(table.Digest, p.engine.Config().Fingerprint()),
		Cache:  CacheDisabled,
	}

	if p.store != nil {
		prep.Cache = p.restore(ctx, prep.Key)
	}

	if prep.Cache != CacheHit {
		snap, err := p.engine.Build(ctx, table)
		if snap == nil {
			return nil, fmt.Errorf("build snapshot: %w", err)
		}
		prep.FeatureErr = err
		if p.store != nil && err == nil {
			p.save(ctx, snap)
		}
	}

	snap := p.engine.Snapshot()
	prep.Items = len(snap.Items)
	prep.Users = snap.UserCount()

	log.Info().
		Str("source", prep.Source).
		Str("cache", prep.Cache).
		Int("items", prep.Items).
		Int("users", prep.Users).
		Msg("Snapshot ready")

	return prep, nil
}

// restore publishes the cached snapshot for key and returns the cache outcome.
func (p *Pipeline) restore(ctx context.Context, key string) string {
	log := p.log(ctx)

	state, meta, err := p.store.Load(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		metrics.RecordSnapshotCache(CacheMiss)
		log.Debug().Str("key", key).Msg("Snapshot cache miss")
		return CacheMiss
	case err != nil:
		metrics.RecordSnapshotCache(CacheError)
		log.Warn().Err(err).Str("key", key).Msg("Snapshot cache unreadable, rebuilding")
		return CacheError
	}

	snap, err := recommend.RestoreSnapshot(state)
	if err == nil {
		err = p.engine.Publish(snap)
	}
	if err != nil {
		metrics.RecordSnapshotCache(CacheError)
		log.Warn().Err(err).Str("key", key).Msg("Cached snapshot rejected, rebuilding")
		return CacheError
	}

	metrics.RecordSnapshotCache(CacheHit)
	log.Info().
		Str("key", key).
		Time("built_at", meta.BuiltAt).
		Msg("Snapshot restored from cache")
	return CacheHit
}

// save persists snap and prunes old entries. Failures are logged only.
func (p *Pipeline) save(ctx context.Context, snap *recommend.Snapshot) {
	log := p.log(ctx)

	state, err := snap.State()
	if err != nil {
		log.Warn().Err(err).Msg("Snapshot not cacheable")
		return
	}
	meta, err := p.store.Save(ctx, state)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to cache snapshot")
		return
	}
	removed, err := p.store.Prune(ctx, p.cfg.Cache.Keep)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to prune snapshot cache")
	}
	log.Info().
		Str("key", meta.Key).
		Int64("size_bytes", meta.SizeBytes).
		Int("pruned", removed).
		Msg("Snapshot cached")
}

// Report summarizes a pipeline run.
type Report struct {
	RunID    string
	User     string
	Route    string
	Cache    string
	Items    int
	Users    int
	Records  int
	Similar  map[string]int
	Output   string
	Duration time.Duration

	// Err is the recommendation failure, if any. The output still holds
	// an empty record list in that case.
	Err error
}

// Document is the output of a run with request items.
type Document struct {
	User            string              `json:"user"`
	Route           string              `json:"route"`
	Recommendations any                 `json:"recommendations"`
	Similar         map[string][]string `json:"similar"`
}

// Run executes the full batch job: prepare, recommend, write output and
// export metrics.
func (p *Pipeline) Run(ctx context.Context) (report *Report, err error) {
	start := time.Now()
	if logging.RunIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewRunID(ctx)
	}
	log := p.log(ctx)

	defer func() {
		metrics.RecordPipelineRun(err)
		if exportErr := p.ExportMetrics(); exportErr != nil {
			log.Warn().Err(exportErr).Msg("Failed to export metrics")
		}
	}()

	prep, err := p.Prepare(ctx)
	if err != nil {
		return nil, err
	}

	report = &Report{
		RunID: logging.RunIDFromContext(ctx),
		User:  p.cfg.Request.User,
		Cache: prep.Cache,
		Items: prep.Items,
		Users: prep.Users,
	}

	t := time.Now()
	resp := p.engine.Recommend(ctx, p.cfg.Request.User)
	report.Route = resp.Route.String()
	report.Records = resp.Len()
	report.Err = resp.Err()

	var doc any = resp.Records()
	if len(p.cfg.Request.Items) > 0 {
		similar := make(map[string][]string, len(p.cfg.Request.Items))
		report.Similar = make(map[string]int, len(p.cfg.Request.Items))
		for _, id := range p.cfg.Request.Items {
			res := p.engine.SimilarVideos(ctx, id)
			similar[id] = res.Items
			report.Similar[id] = res.Len()
		}
		doc = Document{
			User:            resp.User,
			Route:           report.Route,
			Recommendations: resp.Records(),
			Similar:         similar,
		}
	}
	metrics.RecordStage(metrics.StageRecommend, time.Since(t), recommend.KindOf(report.Err).String())

	t = time.Now()
	if err := p.Write(doc); err != nil {
		metrics.RecordStage(metrics.StageOutput, time.Since(t), recommend.KindComputation.String())
		return nil, err
	}
	metrics.RecordStage(metrics.StageOutput, time.Since(t), "")
	report.Output = p.cfg.Output.Path
	report.Duration = time.Since(start)

	log.Info().
		Str("user", report.User).
		Str("route", report.Route).
		Int("records", report.Records).
		Str("output", outputName(report.Output)).
		Dur("duration", report.Duration).
		Msg("Pipeline run complete")

	return report, nil
}

// Write serializes v to the configured output path, or to stdout when
// no path is set.
func (p *Pipeline) Write(v any) error {
	if p.cfg.Output.Path == "" {
		if err := recommend.EncodeJSON(p.stdout, v, p.cfg.Output.Indent); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	if err := recommend.WriteJSON(p.cfg.Output.Path, v, p.cfg.Output.Indent); err != nil {
		return fmt.Errorf("write output %s: %w", p.cfg.Output.Path, err)
	}
	return nil
}

// ExportMetrics writes the metrics textfile when enabled.
func (p *Pipeline) ExportMetrics() error {
	if !p.cfg.Metrics.Enabled {
		return nil
	}
	return metrics.WriteTextfile(p.cfg.Metrics.TextfilePath)
}

func (p *Pipeline) log(ctx context.Context) *zerolog.Logger {
	return logging.WithRunID(ctx, p.logger)
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
