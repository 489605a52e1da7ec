// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Features controls how dataset columns map onto items.
	Features FeatureConfig `json:"features"`

	// Content contains parameters for the content similarity engine.
	Content ContentConfig `json:"content"`

	// Factorization contains parameters for the truncated SVD.
	Factorization FactorizationConfig `json:"factorization"`

	// Collaborative contains parameters for known-user scoring.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// ColdStart contains parameters for the popularity recommender.
	ColdStart ColdStartConfig `json:"cold_start"`

	// Seed drives both the factorization start and cold-start sampling.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`
}

// FeatureConfig maps dataset columns.
type FeatureConfig struct {
	// SummaryColumns are candidate names for the summary field; the first
	// present column wins.
	SummaryColumns []string `json:"summary_columns"`
}

// ContentConfig contains parameters for content-based lookups.
type ContentConfig struct {
	// StopWords names the stop-word list ("english" or "none").
	StopWords string `json:"stop_words"`

	// MinTokenLength is the minimum token length in runes.
	MinTokenLength int `json:"min_token_length"`

	// TopN is the number of links returned by a similarity lookup.
	TopN int `json:"top_n"`

	// NumWorkers is the number of similarity workers (0 = GOMAXPROCS).
	NumWorkers int `json:"num_workers"`
}

// FactorizationConfig contains parameters for the truncated SVD.
type FactorizationConfig struct {
	// Components is the latent rank k.
	Components int `json:"components"`

	// Oversamples is the number of extra random projection directions.
	Oversamples int `json:"oversamples"`

	// PowerIterations is the number of subspace iterations.
	PowerIterations int `json:"power_iterations"`

	// ReduceRank lowers k to min(users, items) instead of failing.
	ReduceRank bool `json:"reduce_rank"`
}

// CollaborativeConfig contains parameters for known-user recommendations.
type CollaborativeConfig struct {
	// TopN is the number of items returned.
	TopN int `json:"top_n"`

	// Weights blends collaborative scores with the content boost.
	Weights HybridWeights `json:"weights"`
}

// HybridWeights defines the contribution of each signal to the blend.
type HybridWeights struct {
	Collaborative float64 `json:"collaborative"`
	Content       float64 `json:"content"`
}

// Normalize returns a copy with weights normalized to sum to 1.0.
// All-zero weights fall back to collaborative only.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w HybridWeights) Normalize() HybridWeights {
	sum := w.Collaborative + w.Content
	if sum == 0 {
		return HybridWeights{Collaborative: 1}
	}
	return HybridWeights{
		Collaborative: w.Collaborative / sum,
		Content:       w.Content / sum,
	}
}

// ColdStartConfig contains parameters for the popularity recommender.
type ColdStartConfig struct {
	// PoolSize is the size of each of the four candidate pools.
	PoolSize int `json:"pool_size"`

	// TopCategories is the number of categories considered for the category pool.
	TopCategories int `json:"top_categories"`

	// SampleSize is the number of items sampled from the merged pool.
	SampleSize int `json:"sample_size"`
}

// DefaultSeed is used when Config.Seed is zero.
const DefaultSeed int64 = 42

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Features: FeatureConfig{
			SummaryColumns: []string{"post_summary", "post_summary_x", "summary"},
		},
		Content: ContentConfig{
			StopWords:      "english",
			MinTokenLength: 2,
			TopN:           6,
		},
		Factorization: FactorizationConfig{
			Components:      10,
			Oversamples:     10,
			PowerIterations: 7,
		},
		Collaborative: CollaborativeConfig{
			TopN: 5,
			Weights: HybridWeights{
				Collaborative: 0.7,
				Content:       0.3,
			},
		},
		ColdStart: ColdStartConfig{
			PoolSize:      6,
			TopCategories: 6,
			SampleSize:    5,
		},
		Seed: DefaultSeed,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Features.SummaryColumns) == 0 {
		return fmt.Errorf("features.summary_columns must not be empty")
	}

	switch c.Content.StopWords {
	case "english", "none", "":
	default:
		return fmt.Errorf("content.stop_words must be english or none, got %q", c.Content.StopWords)
	}
	if c.Content.MinTokenLength < 1 {
		return fmt.Errorf("content.min_token_length must be positive, got %d", c.Content.MinTokenLength)
	}
	if c.Content.TopN < 1 {
		return fmt.Errorf("content.top_n must be positive, got %d", c.Content.TopN)
	}
	if c.Content.NumWorkers < 0 {
		return fmt.Errorf("content.num_workers must be non-negative, got %d", c.Content.NumWorkers)
	}

	if c.Factorization.Components < 1 {
		return fmt.Errorf("factorization.components must be positive, got %d", c.Factorization.Components)
	}
	if c.Factorization.Oversamples < 0 {
		return fmt.Errorf("factorization.oversamples must be non-negative, got %d", c.Factorization.Oversamples)
	}
	if c.Factorization.PowerIterations < 0 {
		return fmt.Errorf("factorization.power_iterations must be non-negative, got %d", c.Factorization.PowerIterations)
	}

	if c.Collaborative.TopN < 1 {
		return fmt.Errorf("collaborative.top_n must be positive, got %d", c.Collaborative.TopN)
	}
	if c.Collaborative.Weights.Collaborative < 0 || c.Collaborative.Weights.Content < 0 {
		return fmt.Errorf("collaborative.weights must be non-negative, got %+v", c.Collaborative.Weights)
	}

	if c.ColdStart.PoolSize < 1 {
		return fmt.Errorf("cold_start.pool_size must be positive, got %d", c.ColdStart.PoolSize)
	}
	if c.ColdStart.TopCategories < 1 {
		return fmt.Errorf("cold_start.top_categories must be positive, got %d", c.ColdStart.TopCategories)
	}
	if c.ColdStart.SampleSize < 1 {
		return fmt.Errorf("cold_start.sample_size must be positive, got %d", c.ColdStart.SampleSize)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Features.SummaryColumns = append([]string(nil), c.Features.SummaryColumns...)
	return &clone
}

// seed returns the effective random seed.
func (c *Config) seed() int64 {
	if c.Seed == 0 {
		return DefaultSeed
	}
	return c.Seed
}

// Fingerprint identifies the settings that shape a built snapshot. Two
// configurations with the same fingerprint build identical snapshots from
// the same dataset.
func (c *Config) Fingerprint() string {
	data, err := json.Marshal(struct {
		Features      FeatureConfig       `json:"features"`
		StopWords     string              `json:"stop_words"`
		MinToken      int                 `json:"min_token_length"`
		Factorization FactorizationConfig `json:"factorization"`
		Seed          int64               `json:"seed"`
	}{c.Features, c.Content.StopWords, c.Content.MinTokenLength, c.Factorization, c.seed()})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
