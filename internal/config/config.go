// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package config

import (
	"path/filepath"
	"strings"

	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/logging"
	"github.com/tomtom215/hybridrec/internal/recommend"
	"github.com/tomtom215/hybridrec/internal/recommend/storage"
)

// Config holds all application configuration.
type Config struct {
	Input     InputConfig     `koanf:"input"`
	Output    OutputConfig    `koanf:"output"`
	Request   RequestConfig   `koanf:"request"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// InputConfig locates the Unified Dataset snapshot.
type InputConfig struct {
	Path string `koanf:"path" validate:"required"`

	// Format is auto, csv or duckdb. auto picks duckdb for .parquet files.
	Format string `koanf:"format" validate:"oneof=auto csv duckdb"`
}

// OutputConfig controls where recommendations are written.
type OutputConfig struct {
	// Path is the output JSON file. Empty writes to stdout.
	Path   string `koanf:"path"`
	Indent bool   `koanf:"indent"`
}

// RequestConfig names the subject of a pipeline run.
type RequestConfig struct {
	User  string   `koanf:"user"`
	Items []string `koanf:"items"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string        `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string        `koanf:"format" validate:"oneof=json console"`
	Caller bool          `koanf:"caller"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig configures the optional rotating log file.
type LogFileConfig struct {
	Path       string `koanf:"path"`
	MaxSizeMB  int    `koanf:"max_size_mb" validate:"min=1"`
	MaxBackups int    `koanf:"max_backups" validate:"min=0"`
	MaxAgeDays int    `koanf:"max_age_days" validate:"min=0"`
	Compress   bool   `koanf:"compress"`
}

// RecommendConfig holds recommendation engine parameters.
type RecommendConfig struct {
	SummaryColumns []string `koanf:"summary_columns" validate:"min=1,dive,required"`
	Seed           int64    `koanf:"seed"`

	Content       ContentConfig       `koanf:"content"`
	Factorization FactorizationConfig `koanf:"factorization"`
	Collaborative CollaborativeConfig `koanf:"collaborative"`
	ColdStart     ColdStartConfig     `koanf:"cold_start"`
}

// ContentConfig configures TF-IDF similarity.
type ContentConfig struct {
	StopWords      string `koanf:"stop_words" validate:"stopwords"`
	MinTokenLength int    `koanf:"min_token_length" validate:"min=1"`
	TopN           int    `koanf:"top_n" validate:"min=1,max=1000"`
	NumWorkers     int    `koanf:"num_workers" validate:"min=0"`
}

// FactorizationConfig configures the truncated SVD.
type FactorizationConfig struct {
	Components      int  `koanf:"components" validate:"min=1,max=1000"`
	Oversamples     int  `koanf:"oversamples" validate:"min=0"`
	PowerIterations int  `koanf:"power_iterations" validate:"min=0,max=100"`
	ReduceRank      bool `koanf:"reduce_rank"`
}

// CollaborativeConfig configures personalized scoring.
type CollaborativeConfig struct {
	TopN                int     `koanf:"top_n" validate:"min=1,max=1000"`
	CollaborativeWeight float64 `koanf:"collaborative_weight" validate:"gte=0"`
	ContentWeight       float64 `koanf:"content_weight" validate:"gte=0"`
}

// ColdStartConfig configures popularity sampling.
type ColdStartConfig struct {
	PoolSize      int `koanf:"pool_size" validate:"min=1"`
	TopCategories int `koanf:"top_categories" validate:"min=1"`
	SampleSize    int `koanf:"sample_size" validate:"min=1"`
}

// CacheConfig configures snapshot persistence.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Backend string `koanf:"backend" validate:"oneof=file badger"`
	Path    string `koanf:"path" validate:"required_if=Enabled true"`
	Keep    int    `koanf:"keep" validate:"min=1"`
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	Enabled      bool   `koanf:"enabled"`
	TextfilePath string `koanf:"textfile_path" validate:"required_if=Enabled true"`
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	engine := recommend.DefaultConfig()
	logDefaults := logging.DefaultConfig()

	return &Config{
		Input: InputConfig{
			Format: "auto",
		},
		Output: OutputConfig{
			Indent: true,
		},
		Logging: LoggingConfig{
			Level:  logDefaults.Level,
			Format: logDefaults.Format,
			File: LogFileConfig{
				MaxSizeMB:  logDefaults.File.MaxSizeMB,
				MaxBackups: logDefaults.File.MaxBackups,
				MaxAgeDays: logDefaults.File.MaxAgeDays,
				Compress:   logDefaults.File.Compress,
			},
		},
		Recommend: RecommendConfig{
			SummaryColumns: engine.Features.SummaryColumns,
			Seed:           engine.Seed,
			Content: ContentConfig{
				StopWords:      engine.Content.StopWords,
				MinTokenLength: engine.Content.MinTokenLength,
				TopN:           engine.Content.TopN,
				NumWorkers:     engine.Content.NumWorkers,
			},
			Factorization: FactorizationConfig{
				Components:      engine.Factorization.Components,
				Oversamples:     engine.Factorization.Oversamples,
				PowerIterations: engine.Factorization.PowerIterations,
				ReduceRank:      engine.Factorization.ReduceRank,
			},
			Collaborative: CollaborativeConfig{
				TopN:                engine.Collaborative.TopN,
				CollaborativeWeight: engine.Collaborative.Weights.Collaborative,
				ContentWeight:       engine.Collaborative.Weights.Content,
			},
			ColdStart: ColdStartConfig{
				PoolSize:      engine.ColdStart.PoolSize,
				TopCategories: engine.ColdStart.TopCategories,
				SampleSize:    engine.ColdStart.SampleSize,
			},
		},
		Cache: CacheConfig{
			Backend: storage.BackendFile,
			Keep:    5,
		},
	}
}

// InputFormat resolves Input.Format, mapping auto to a reader by extension.
func (c *Config) InputFormat() string {
	if c.Input.Format != "" && c.Input.Format != "auto" {
		return c.Input.Format
	}
	if strings.EqualFold(filepath.Ext(c.Input.Path), ".parquet") {
		return dataset.FormatDuckDB
	}
	return dataset.FormatCSV
}

// EngineConfig converts the recommend section to an engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		Features: recommend.FeatureConfig{
			SummaryColumns: append([]string(nil), r.SummaryColumns...),
		},
		Content: recommend.ContentConfig{
			StopWords:      r.Content.StopWords,
			MinTokenLength: r.Content.MinTokenLength,
			TopN:           r.Content.TopN,
			NumWorkers:     r.Content.NumWorkers,
		},
		Factorization: recommend.FactorizationConfig{
			Components:      r.Factorization.Components,
			Oversamples:     r.Factorization.Oversamples,
			PowerIterations: r.Factorization.PowerIterations,
			ReduceRank:      r.Factorization.ReduceRank,
		},
		Collaborative: recommend.CollaborativeConfig{
			TopN: r.Collaborative.TopN,
			Weights: recommend.HybridWeights{
				Collaborative: r.Collaborative.CollaborativeWeight,
				Content:       r.Collaborative.ContentWeight,
			},
		},
		ColdStart: recommend.ColdStartConfig{
			PoolSize:      r.ColdStart.PoolSize,
			TopCategories: r.ColdStart.TopCategories,
			SampleSize:    r.ColdStart.SampleSize,
		},
		Seed: r.Seed,
	}
}

// LoggerConfig converts the logging section to a logger configuration.
func (c *Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	cfg.File = logging.FileConfig{
		Path:       c.Logging.File.Path,
		MaxSizeMB:  c.Logging.File.MaxSizeMB,
		MaxBackups: c.Logging.File.MaxBackups,
		MaxAgeDays: c.Logging.File.MaxAgeDays,
		Compress:   c.Logging.File.Compress,
	}
	return cfg
}

// StorageConfig converts the cache section to a store configuration.
func (c *Config) StorageConfig() storage.Config {
	return storage.Config{
		Backend: c.Cache.Backend,
		Path:    c.Cache.Path,
	}
}
