// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package config

import (
	"fmt"

	"github.com/tomtom215/hybridrec/internal/validation"
)

// Validate checks struct tag constraints, then the cross-field rules tags
// cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if c.Recommend.Collaborative.CollaborativeWeight+c.Recommend.Collaborative.ContentWeight == 0 {
		return fmt.Errorf("recommend.collaborative weights must not both be zero")
	}
	if c.Cache.Enabled && c.Metrics.Enabled && c.Cache.Path == c.Metrics.TextfilePath {
		return fmt.Errorf("cache.path and metrics.textfile_path must differ, both are %q", c.Cache.Path)
	}

	// The engine has its own invariants; surface them at load time.
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}
