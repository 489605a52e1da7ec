// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGenerateRunID(t *testing.T) {
	t.Parallel()

	id1 := GenerateRunID()
	id2 := GenerateRunID()

	if len(id1) != 36 {
		t.Errorf("expected 36-character run ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique run IDs")
	}
}

func TestRunIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := RunIDFromContext(ctx); id != "" {
		t.Errorf("expected empty run ID, got %s", id)
	}

	ctx = ContextWithRunID(ctx, "run-123")
	if id := RunIDFromContext(ctx); id != "run-123" {
		t.Errorf("RunIDFromContext() = %q, want %q", id, "run-123")
	}

	ctx = ContextWithNewRunID(context.Background())
	if id := RunIDFromContext(ctx); id == "" {
		t.Error("expected generated run ID")
	}
}

func TestWithRunID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("component", "engine").Logger()

	ctx := ContextWithRunID(context.Background(), "run-123")
	WithRunID(ctx, logger).Warn().Msg("from engine")

	output := buf.String()
	if !strings.Contains(output, `"run_id":"run-123"`) || !strings.Contains(output, `"component":"engine"`) {
		t.Errorf("expected run_id and component in output: %s", output)
	}
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	ctx := ContextWithRunID(context.Background(), "run-456")
	Ctx(ctx).Warn().Msg("context test")

	if !strings.Contains(buf.String(), `"run_id":"run-456"`) {
		t.Errorf("expected run_id in output: %s", buf.String())
	}

	buf.Reset()
	Ctx(context.Background()).Warn().Msg("no run")
	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("unexpected run_id in output: %s", buf.String())
	}
}
