// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

// runIDKey is the context key for batch run IDs.
const runIDKey contextKey = "run_id"

// GenerateRunID creates a new unique run ID.
func GenerateRunID() string {
	return uuid.New().String()
}

// ContextWithRunID returns a new context with the given run ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// ContextWithNewRunID returns a context with a newly generated run ID.
//
//	ctx = logging.ContextWithNewRunID(ctx)
func ContextWithNewRunID(ctx context.Context) context.Context {
	return ContextWithRunID(ctx, GenerateRunID())
}

// RunIDFromContext retrieves the run ID from context.
// Returns empty string if not present.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRunID returns l with the run_id from ctx attached.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithRunID(ctx context.Context, l zerolog.Logger) *zerolog.Logger {
	if runID := RunIDFromContext(ctx); runID != "" {
		l = l.With().Str("run_id", runID).Logger()
	}
	return &l
}

// Ctx returns the global logger with the run_id from ctx attached.
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Failed to export metrics")
func Ctx(ctx context.Context) *zerolog.Logger {
	return WithRunID(ctx, Logger())
}
