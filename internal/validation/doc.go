// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package validation checks configuration structs with go-playground/validator.
//
// Field names in errors are koanf paths, so a failure reads
// "cache.keep must be at least 1" rather than naming the Go field. The
// "stopwords" rule accepts the stop-word lists the content vectorizer
// knows.
//
//	type CacheConfig struct {
//	    Backend string `koanf:"backend" validate:"oneof=file badger"`
//	    Keep    int    `koanf:"keep" validate:"min=1"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    return fmt.Errorf("invalid configuration: %w", err)
//	}
package validation
