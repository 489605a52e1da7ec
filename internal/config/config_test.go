// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package config

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/hybridrec/internal/recommend"
	"github.com/tomtom215/hybridrec/internal/validation"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Input.Path = "data/unified.csv"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{"defaults with input", func(c *Config) {}, ""},
		{"missing input", func(c *Config) { c.Input.Path = "" }, "input.path is required"},
		{"bad format", func(c *Config) { c.Input.Format = "xlsx" }, "input.format must be one of"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"no summary columns", func(c *Config) { c.Recommend.SummaryColumns = nil }, "recommend.summary_columns"},
		{"blank summary column", func(c *Config) { c.Recommend.SummaryColumns = []string{""} }, "recommend.summary_columns"},
		{"bad stop words", func(c *Config) { c.Recommend.Content.StopWords = "german" }, "recommend.content.stop_words"},
		{"zero components", func(c *Config) { c.Recommend.Factorization.Components = 0 }, "recommend.factorization.components"},
		{"negative weight", func(c *Config) { c.Recommend.Collaborative.ContentWeight = -1 }, "recommend.collaborative.content_weight"},
		{"zero weights", func(c *Config) {
			c.Recommend.Collaborative.CollaborativeWeight = 0
			c.Recommend.Collaborative.ContentWeight = 0
		}, "weights must not both be zero"},
		{"zero sample size", func(c *Config) { c.Recommend.ColdStart.SampleSize = 0 }, "recommend.cold_start.sample_size"},
		{"cache without path", func(c *Config) { c.Cache.Enabled = true }, "cache.path is required"},
		{"cache with path", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.Path = "/tmp/cache"
		}, ""},
		{"bad cache backend", func(c *Config) { c.Cache.Backend = "redis" }, "cache.backend"},
		{"metrics without path", func(c *Config) { c.Metrics.Enabled = true }, "metrics.textfile_path is required"},
		{"cache and metrics collide", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.Path = "/tmp/x"
			c.Metrics.Enabled = true
			c.Metrics.TextfilePath = "/tmp/x"
		}, "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateFieldErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Input.Path = ""
	cfg.Cache.Keep = 0

	var verr *validation.Errors
	if err := cfg.Validate(); !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want *validation.Errors", err)
	}
	var paths []string
	for _, fe := range verr.Fields() {
		paths = append(paths, fe.Path)
	}
	want := []string{"input.path", "cache.keep"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestConfig_EngineConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Recommend.Seed = 7
	cfg.Recommend.Collaborative.ContentWeight = 0.5

	got := cfg.EngineConfig()
	want := recommend.DefaultConfig()
	want.Seed = 7
	want.Collaborative.Weights.Content = 0.5

	if !reflect.DeepEqual(got, want) {
		t.Errorf("EngineConfig() = %+v, want %+v", got, want)
	}

	got.Features.SummaryColumns[0] = "changed"
	if cfg.Recommend.SummaryColumns[0] == "changed" {
		t.Error("EngineConfig() shares the summary column slice")
	}
}

func TestConfig_DefaultsMatchEngine(t *testing.T) {
	if got, want := validConfig().EngineConfig().Fingerprint(), recommend.DefaultConfig().Fingerprint(); got != want {
		t.Errorf("default fingerprint = %s, want engine default %s", got, want)
	}
}

func TestConfig_LoggerConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "console"
	cfg.Logging.File.Path = "/var/log/hybridrec.log"

	got := cfg.LoggerConfig()
	if got.Level != "debug" || got.Format != "console" {
		t.Errorf("LoggerConfig() level/format = %s/%s", got.Level, got.Format)
	}
	if got.File.Path != "/var/log/hybridrec.log" || got.File.MaxSizeMB != 100 {
		t.Errorf("LoggerConfig().File = %+v", got.File)
	}
	if !got.Timestamp {
		t.Error("LoggerConfig() should keep timestamps")
	}
}

func TestConfig_InputFormat(t *testing.T) {
	tests := []struct {
		path, format, want string
	}{
		{"data.csv", "auto", "csv"},
		{"data.parquet", "auto", "duckdb"},
		{"DATA.PARQUET", "", "duckdb"},
		{"data.csv", "duckdb", "duckdb"},
		{"data.parquet", "csv", "csv"},
	}
	for _, tt := range tests {
		cfg := validConfig()
		cfg.Input.Path = tt.path
		cfg.Input.Format = tt.format
		if got := cfg.InputFormat(); got != tt.want {
			t.Errorf("InputFormat(%s, %s) = %s, want %s", tt.path, tt.format, got, tt.want)
		}
	}
}

func TestConfig_StorageConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Backend = "badger"
	cfg.Cache.Path = "/var/lib/hybridrec"

	got := cfg.StorageConfig()
	if got.Backend != "badger" || got.Path != "/var/lib/hybridrec" {
		t.Errorf("StorageConfig() = %+v", got)
	}
}
