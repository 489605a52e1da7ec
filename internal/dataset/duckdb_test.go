// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDuckDBReader_ReadCSV(t *testing.T) {
	path := writeFile(t, "unified.csv",
		"id,title,category.name,view_count\n"+
			"1,Cats,Animals,10\n"+
			"2,Dogs,Animals,\n"+
			"3,Cars,Vehicles,7\n")

	table, err := NewDuckDBReader(zerolog.Nop()).Read(context.Background(), path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	if !table.HasColumn("category.name") {
		t.Errorf("Columns() = %v, want category.name", table.Columns())
	}
	if got := table.Value(0, "title"); got != "Cats" {
		t.Errorf("title = %q, want Cats", got)
	}
	if got := table.Value(1, "view_count"); got != "" {
		t.Errorf("NULL view_count = %q, want empty", got)
	}
	if got := table.Value(2, "view_count"); got != "7" {
		t.Errorf("view_count = %q, want 7", got)
	}
	if table.Digest == "" {
		t.Error("expected digest")
	}
}

func TestScanQuery(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/unified.csv", "read_csv_auto('/data/unified.csv'"},
		{"/data/unified.PARQUET", "read_parquet('/data/unified.PARQUET')"},
		{"/data/o'brien.csv", "'/data/o''brien.csv'"},
	}

	for _, tt := range tests {
		if got := scanQuery(tt.path); !strings.Contains(got, tt.want) {
			t.Errorf("scanQuery(%q) = %q, want to contain %q", tt.path, got, tt.want)
		}
	}
}
