// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/hybridrec/config.yaml",
	"/etc/hybridrec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Options controls Load.
type Options struct {
	// Path is an explicit config file. It must exist when set.
	Path string

	// Overrides are koanf paths set after all other layers, typically
	// from command-line flags.
	Overrides map[string]any
}

// Load builds the configuration from defaults, the config file, the
// environment and opts.Overrides, in increasing priority, and validates it.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional unless explicit)
	configPath := opts.Path
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	} else {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables
	// INPUT_PATH -> input.path, CACHE_ENABLED -> cache.enabled
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Layer 4: Explicit overrides (highest priority)
	for path, value := range opts.Overrides {
		if err := k.Set(path, value); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", path, err)
		}
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"request.items",
	"recommend.summary_columns",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
var envMappings = map[string]string{
	// Input and output
	"input_path":    "input.path",
	"dataset_path":  "input.path",
	"input_format":  "input.format",
	"output_path":   "output.path",
	"output_indent": "output.indent",

	// Request
	"request_user":  "request.user",
	"request_items": "request.items",

	// Logging
	"log_level":             "logging.level",
	"log_format":            "logging.format",
	"log_caller":            "logging.caller",
	"log_file":              "logging.file.path",
	"log_file_max_size_mb":  "logging.file.max_size_mb",
	"log_file_max_backups":  "logging.file.max_backups",
	"log_file_max_age_days": "logging.file.max_age_days",
	"log_file_compress":     "logging.file.compress",

	// Engine
	"recommend_seed":                   "recommend.seed",
	"recommend_summary_columns":        "recommend.summary_columns",
	"recommend_stop_words":             "recommend.content.stop_words",
	"recommend_min_token_length":       "recommend.content.min_token_length",
	"recommend_content_top_n":          "recommend.content.top_n",
	"recommend_num_workers":            "recommend.content.num_workers",
	"recommend_components":             "recommend.factorization.components",
	"recommend_oversamples":            "recommend.factorization.oversamples",
	"recommend_power_iterations":       "recommend.factorization.power_iterations",
	"recommend_reduce_rank":            "recommend.factorization.reduce_rank",
	"recommend_top_n":                  "recommend.collaborative.top_n",
	"recommend_collaborative_weight":   "recommend.collaborative.collaborative_weight",
	"recommend_content_weight":         "recommend.collaborative.content_weight",
	"recommend_cold_start_pool_size":   "recommend.cold_start.pool_size",
	"recommend_cold_start_categories":  "recommend.cold_start.top_categories",
	"recommend_cold_start_sample_size": "recommend.cold_start.sample_size",

	// Snapshot cache
	"cache_enabled": "cache.enabled",
	"cache_backend": "cache.backend",
	"cache_path":    "cache.path",
	"cache_keep":    "cache.keep",

	// Metrics
	"metrics_enabled":       "metrics.enabled",
	"metrics_textfile_path": "metrics.textfile_path",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped, so unrelated environment
// variables never pollute the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
