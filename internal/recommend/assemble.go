// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-json"
)

// candidate is a scored item awaiting assembly.
type candidate struct {
	index int // row in Snapshot.Items
	id    string
	score float64
}

// assemble ranks candidates by descending score (ties keep input order,
// NaN last), drops repeated ids and truncates to limit.
func assemble(cands []candidate, limit int) []candidate {
	sort.SliceStable(cands, func(a, b int) bool {
		sa, sb := cands[a].score, cands[b].score
		if math.IsNaN(sa) {
			return false
		}
		if math.IsNaN(sb) {
			return true
		}
		return sa > sb
	})

	out := make([]candidate, 0, min(limit, len(cands)))
	seen := make(map[string]struct{}, limit)
	for _, c := range cands {
		if len(out) == limit {
			break
		}
		if _, dup := seen[c.id]; dup {
			continue
		}
		seen[c.id] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Dedupe keeps the first record for each key, preserving order.
func Dedupe[T any](records []T, key func(T) string) []T {
	out := make([]T, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		k := key(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Truncate returns at most limit records.
func Truncate[T any](records []T, limit int) []T {
	if limit >= 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}

// EncodeJSON writes v as JSON to w.
func EncodeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteJSON writes v as JSON to path. The file is written to a temporary
// sibling and renamed, so readers never observe a partial document.
func WriteJSON(path string, v any, indent bool) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:gosec // output directory is operator-controlled
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()           //nolint:errcheck // already failing
			_ = os.Remove(tmp.Name()) //nolint:errcheck // best-effort cleanup
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = EncodeJSON(bw, v, indent); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync output: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:gosec // output is meant to be world-readable
		return fmt.Errorf("chmod output: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
