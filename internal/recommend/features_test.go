// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildFeatures(t *testing.T) {
	f, err := BuildFeatures(catalogTable(t), DefaultConfig().Features)
	if err != nil {
		t.Fatalf("BuildFeatures() error = %v", err)
	}

	if f.Rows != 9 {
		t.Errorf("Rows = %d, want 9", f.Rows)
	}
	if len(f.Items) != 8 {
		t.Errorf("len(Items) = %d, want 8", len(f.Items))
	}
	if f.DuplicateRows != 1 {
		t.Errorf("DuplicateRows = %d, want 1", f.DuplicateRows)
	}
	if len(f.Interactions) != 9 {
		t.Errorf("len(Interactions) = %d, want 9", len(f.Interactions))
	}
	if f.SummaryColumn != "post_summary" {
		t.Errorf("SummaryColumn = %s, want post_summary", f.SummaryColumn)
	}

	cats := f.Items[0]
	if cats.EngagementScore != 108 {
		t.Errorf("EngagementScore = %v, want 108", cats.EngagementScore)
	}
	if cats.Metadata != "Cats cute cats playing Animals pets" {
		t.Errorf("Metadata = %q", cats.Metadata)
	}
	if !cats.HasRating || cats.AverageRating != 4.5 {
		t.Errorf("rating = %v/%v, want 4.5/true", cats.AverageRating, cats.HasRating)
	}

	trucks := f.Items[3]
	if trucks.HasRating {
		t.Errorf("item 4 should have no rating, got %v", trucks.AverageRating)
	}

	last := f.Interactions[8]
	if last.User != "carol" || last.Item != "1" || last.Weight != 50 {
		t.Errorf("duplicate-row interaction = %+v, want carol/1/50", last)
	}
}

func TestBuildFeatures_SummaryFallback(t *testing.T) {
	columns := append([]string{}, catalogColumns...)
	columns[2] = "post_summary_x"
	f, err := BuildFeatures(newTable(t, columns, catalogRows[:1]), DefaultConfig().Features)
	if err != nil {
		t.Fatalf("BuildFeatures() error = %v", err)
	}
	if f.SummaryColumn != "post_summary_x" || f.Items[0].Summary != "cute cats playing" {
		t.Errorf("summary = %s/%q, want post_summary_x", f.SummaryColumn, f.Items[0].Summary)
	}
}

func TestBuildFeatures_Errors(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		rows    [][]string
		wantErr error
		missing string
	}{
		{
			name:    "no summary column",
			columns: append(append([]string{}, catalogColumns[:2]...), catalogColumns[3:]...),
			rows:    nil,
			wantErr: ErrMissingColumns,
			missing: "post_summary|post_summary_x|summary",
		},
		{
			name:    "missing username",
			columns: catalogColumns[:len(catalogColumns)-1],
			wantErr: ErrMissingColumns,
			missing: ColumnUsername,
		},
		{
			name:    "no rows",
			columns: catalogColumns,
			wantErr: ErrEmptyDataset,
		},
		{
			name:    "only rows without id",
			columns: catalogColumns,
			rows:    [][]string{{"", "Orphan", "x", "C", "d", "1", "1", "1", "1", "1", "l", "u"}},
			wantErr: ErrEmptyDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFeatures(newTable(t, tt.columns, tt.rows), DefaultConfig().Features)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if KindOf(err) != KindDataFormat {
				t.Errorf("KindOf() = %v, want data_format", KindOf(err))
			}
			if tt.missing != "" && !strings.Contains(err.Error(), tt.missing) {
				t.Errorf("error %q does not name %s", err, tt.missing)
			}
		})
	}

	if _, err := BuildFeatures(nil, DefaultConfig().Features); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("BuildFeatures(nil) error = %v, want ErrEmptyDataset", err)
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct{ in, want string }{
		{"12", "12"},
		{"12.0", "12"},
		{" 7 ", "7"},
		{"1.5", "1.5"},
		{"abc.0", "abc.0"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeID(tt.in); got != tt.want {
			t.Errorf("normalizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"3.5", 3.5},
		{"", 0},
		{"n/a", 0},
		{"-4", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"4.5", 4.5, true},
		{"0", 0, true},
		{"", 0, false},
		{"bad", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseRating(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseRating(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
