// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const sampleCSV = "\ufeffid,title,category.name,view_count\n" +
	"1,Cats,Animals,10\n" +
	"2,\"Dogs, loyal\",Animals,\n" +
	"3,Cars,Vehicles,nan\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseCSV(t *testing.T) {
	table, err := ParseCSV(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}

	if !table.HasColumn("id") {
		t.Error("expected BOM to be stripped from first header")
	}
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	if got := table.Value(1, "title"); got != "Dogs, loyal" {
		t.Errorf("quoted title = %q, want %q", got, "Dogs, loyal")
	}
	if got := table.Value(1, "view_count"); got != "" {
		t.Errorf("empty view_count = %q, want empty", got)
	}
	if got := table.Value(2, "view_count"); got != "" {
		t.Errorf("nan view_count = %q, want empty", got)
	}
}

func TestParseCSV_Errors(t *testing.T) {
	if _, err := ParseCSV(context.Background(), strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ParseCSV(ctx, strings.NewReader(sampleCSV)); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestCSVReader_Read(t *testing.T) {
	path := writeFile(t, "unified.csv", sampleCSV)

	table, err := NewCSVReader(zerolog.Nop()).Read(context.Background(), path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if table.Source != path {
		t.Errorf("Source = %q, want %q", table.Source, path)
	}
	if len(table.Digest) != 64 {
		t.Errorf("Digest = %q, want 64 hex characters", table.Digest)
	}

	again, err := NewCSVReader(zerolog.Nop()).Read(context.Background(), path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if again.Digest != table.Digest {
		t.Error("digest should be stable for unchanged input")
	}
}

func TestCSVReader_MissingFile(t *testing.T) {
	_, err := NewCSVReader(zerolog.Nop()).Read(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{FormatCSV, false},
		{FormatDuckDB, false},
		{"xlsx", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_, err := NewReader(tt.format, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Errorf("NewReader(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}
