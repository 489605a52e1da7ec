// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Package config provides centralized configuration management for Hybridrec.

Configuration is layered with koanf, each layer overriding the previous:

 1. Defaults: built-in values from defaultConfig
 2. Config file: optional YAML file (--config, CONFIG_PATH, config.yaml,
    /etc/hybridrec/config.yaml)
 3. Environment variables: an explicit allow-list, see envMappings
 4. Overrides: values set by command-line flags

The merged result is validated with go-playground/validator struct tags
(see package validation) plus cross-field checks in Validate.

# Configuration Structure

  - InputConfig: dataset path and reader format
  - OutputConfig: recommendation document path and formatting
  - RequestConfig: the user (and optional items) a run recommends for
  - LoggingConfig: zerolog level and format, optional rotating file
  - RecommendConfig: engine parameters (TF-IDF, SVD, hybrid weights, cold start)
  - CacheConfig: snapshot persistence (file or BadgerDB)
  - MetricsConfig: Prometheus textfile export

# Environment Variables

Input and output:
  - INPUT_PATH (or DATASET_PATH): dataset file
  - INPUT_FORMAT: auto, csv or duckdb (default: auto)
  - OUTPUT_PATH: output JSON file (default: stdout)
  - OUTPUT_INDENT: indent output JSON (default: true)

Request:
  - REQUEST_USER: user identity to recommend for
  - REQUEST_ITEMS: comma-separated item ids for similar-item lookups

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
  - LOG_FILE, LOG_FILE_MAX_SIZE_MB, LOG_FILE_MAX_BACKUPS, LOG_FILE_MAX_AGE_DAYS

Engine:
  - RECOMMEND_SEED, RECOMMEND_SUMMARY_COLUMNS
  - RECOMMEND_STOP_WORDS, RECOMMEND_CONTENT_TOP_N, RECOMMEND_NUM_WORKERS
  - RECOMMEND_COMPONENTS, RECOMMEND_OVERSAMPLES, RECOMMEND_POWER_ITERATIONS, RECOMMEND_REDUCE_RANK
  - RECOMMEND_TOP_N, RECOMMEND_COLLABORATIVE_WEIGHT, RECOMMEND_CONTENT_WEIGHT
  - RECOMMEND_COLD_START_POOL_SIZE, RECOMMEND_COLD_START_SAMPLE_SIZE

Cache and metrics:
  - CACHE_ENABLED, CACHE_BACKEND, CACHE_PATH, CACHE_KEEP
  - METRICS_ENABLED, METRICS_TEXTFILE_PATH
*/
package config
