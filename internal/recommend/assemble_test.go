// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestAssemble(t *testing.T) {
	cands := []candidate{
		{index: 0, id: "a", score: 0.5},
		{index: 1, id: "b", score: math.NaN()},
		{index: 2, id: "c", score: 0.9},
		{index: 3, id: "d", score: 0.5},
		{index: 4, id: "c", score: 0.7},
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 10, []string{"c", "a", "d", "b"}},
		{"truncated", 2, []string{"c", "a"}},
		{"zero", 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]candidate(nil), cands...)
			got := assemble(in, tt.limit)
			ids := make([]string, len(got))
			for i, c := range got {
				ids[i] = c.id
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("assemble() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"x", "y", "x", "z", "y"}, func(s string) string { return s })
	want := []string{"x", "y", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedupe() = %v, want %v", got, want)
	}
}

func TestTruncate(t *testing.T) {
	in := []int{1, 2, 3}
	if got := Truncate(in, 2); len(got) != 2 {
		t.Errorf("Truncate(2) len = %d, want 2", len(got))
	}
	if got := Truncate(in, 5); len(got) != 3 {
		t.Errorf("Truncate(5) len = %d, want 3", len(got))
	}
	if got := Truncate(in, -1); len(got) != 3 {
		t.Errorf("Truncate(-1) len = %d, want 3", len(got))
	}
}

func TestEncodeJSON(t *testing.T) {
	rating := 4.5
	records := []ColdStartRecord{{
		ID:            "1",
		Title:         "Cats",
		CategoryName:  "Animals",
		VideoLink:     "https://v/1",
		ViewCount:     100,
		AverageRating: &rating,
		CommentCount:  3,
	}, {ID: "2"}}

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, records, false); err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	out := buf.String()
	for _, key := range []string{`"id":"1"`, `"category.name":"Animals"`, `"average_rating":4.5`, `"average_rating":null`} {
		if !strings.Contains(out, key) {
			t.Errorf("output %s missing %s", out, key)
		}
	}

	buf.Reset()
	if err := EncodeJSON(&buf, []string{"a"}, true); err != nil {
		t.Fatalf("EncodeJSON(indent) error = %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"a\"") {
		t.Errorf("indented output = %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	records := []CollaborativeRecord{{Username: "alice", ID: "10", Title: "Ten", VideoLink: "https://v/10", EngagementScore: 5}}

	if err := WriteJSON(path, records, true); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var got []CollaborativeRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("round trip = %+v, want %+v", got, records)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the output file", len(entries))
	}
}
