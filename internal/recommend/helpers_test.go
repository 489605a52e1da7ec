// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"context"
	"io"
	"testing"

	"github.com/tomtom215/hybridrec/internal/dataset"
	"github.com/tomtom215/hybridrec/internal/logging"
)

var catalogColumns = []string{
	ColumnID, ColumnTitle, "post_summary", ColumnCategoryName, ColumnCategoryDescription,
	ColumnCommentCount, ColumnUpvoteCount, ColumnViewCount, ColumnShareCount,
	ColumnAverageRating, ColumnVideoLink, ColumnUsername,
}

// catalogRows has eight items, four users and one duplicated item row.
var catalogRows = [][]string{
	{"1", "Cats", "cute cats playing", "Animals", "pets", "3", "4", "100", "1", "4.5", "https://v/1", "alice"},
	{"2", "Dogs", "cute dogs playing", "Animals", "pets", "2", "5", "90", "0", "4.0", "https://v/2", "bob"},
	{"3", "Cars", "fast cars racing", "Vehicles", "engines", "8", "1", "300", "2", "3.5", "https://v/3", "alice"},
	{"4", "Trucks", "heavy trucks hauling", "Vehicles", "engines", "0", "0", "40", "0", "", "https://v/4", "carol"},
	{"5", "Pasta", "italian pasta recipe", "Food", "cooking", "12", "9", "150", "4", "4.8", "https://v/5", "bob"},
	{"6", "Pizza", "neapolitan pizza recipe", "Food", "cooking", "1", "1", "60", "0", "4.1", "https://v/6", "carol"},
	{"7", "Guitar", "acoustic guitar lesson", "Music", "instruments", "5", "2", "80", "1", "3.9", "https://v/7", "alice"},
	{"8", "Drums", "drum solo lesson", "Music", "instruments", "0", "3", "20", "0", "4.2", "https://v/8", "dave"},
	{"1.0", "Cats", "cute cats playing", "Animals", "pets", "0", "0", "50", "0", "4.5", "https://v/1", "carol"},
}

func newTable(t *testing.T, columns []string, rows [][]string) *dataset.Table {
	t.Helper()
	table, err := dataset.NewTable(columns, rows)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	table.Digest = "testdigest"
	return table
}

func catalogTable(t *testing.T) *dataset.Table {
	t.Helper()
	return newTable(t, catalogColumns, catalogRows)
}

// testConfig returns defaults sized for the small fixtures.
func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Factorization.Components = 2
	return cfg
}

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	e, err := NewEngine(cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

// builtEngine returns an engine with a snapshot of table published.
func builtEngine(t *testing.T, cfg *Config, table *dataset.Table) *Engine {
	t.Helper()
	e := newTestEngine(t, cfg)
	if _, err := e.Build(context.Background(), table); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return e
}

func ids[T any](records []T, id func(T) string) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = id(r)
	}
	return out
}

func coldIDs(records []ColdStartRecord) []string {
	return ids(records, func(r ColdStartRecord) string { return r.ID })
}

func collabIDs(records []CollaborativeRecord) []string {
	return ids(records, func(r CollaborativeRecord) string { return r.ID })
}
