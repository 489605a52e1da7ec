// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/hybridrec/internal/recommend"
)

func testState(digest string) *recommend.SnapshotState {
	return &recommend.SnapshotState{
		Items: []recommend.Item{
			{ID: "10", Title: "Cats", VideoLink: "https://v/10", EngagementScore: 12, HasRating: true, AverageRating: 4.5},
			{ID: "20", Title: "Dogs", VideoLink: "https://v/20", EngagementScore: 7},
		},
		SimilaritySize: 2,
		Similarity:     []float64{1, 0.25, 0.25, 1},
		Users:          []string{"alice"},
		Columns:        []string{"10", "20"},
		Interactions:   [][]float64{{12, 7}},
		UserFactors:    [][]float64{{13.89}},
		ItemFactors:    [][]float64{{0.86, 0.5}},
		Singular:       []float64{13.89},
		FactorErr:      "",
		Digest:         digest,
		Fingerprint:    "0123abcd",
		BuiltAt:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		DuplicateRows:  1,
	}
}

// stores returns every backend rooted in a fresh temp directory.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	out := make(map[string]Store)
	for _, backend := range []string{BackendFile, BackendBadger} {
		s, err := Open(Config{Backend: backend, Path: filepath.Join(t.TempDir(), backend)})
		if err != nil {
			t.Fatalf("Open(%s) error = %v", backend, err)
		}
		t.Cleanup(func() { _ = s.Close() })
		out[backend] = s
	}
	return out
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	for backend, store := range stores(t) {
		t.Run(backend, func(t *testing.T) {
			st := testState("aa11")
			meta, err := store.Save(ctx, st)
			if err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if meta.Key != "aa11-0123abcd" {
				t.Errorf("Key = %s, want aa11-0123abcd", meta.Key)
			}
			if meta.Checksum == "" {
				t.Error("Checksum should not be empty")
			}
			if meta.SizeBytes == 0 {
				t.Error("SizeBytes should not be zero")
			}
			if meta.ItemCount != 2 || meta.UserCount != 1 {
				t.Errorf("counts = (%d, %d), want (2, 1)", meta.ItemCount, meta.UserCount)
			}

			loaded, loadedMeta, err := store.Load(ctx, meta.Key)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if loadedMeta.Checksum != meta.Checksum {
				t.Errorf("Checksum = %s, want %s", loadedMeta.Checksum, meta.Checksum)
			}
			if len(loaded.Items) != 2 || loaded.Items[0].Title != "Cats" {
				t.Errorf("Items = %+v, want Cats first", loaded.Items)
			}
			if !loaded.Items[0].HasRating || loaded.Items[0].AverageRating != 4.5 {
				t.Errorf("rating = %v/%v, want 4.5/true", loaded.Items[0].AverageRating, loaded.Items[0].HasRating)
			}
			if loaded.Similarity[1] != 0.25 {
				t.Errorf("Similarity[1] = %v, want 0.25", loaded.Similarity[1])
			}
			if !loaded.BuiltAt.Equal(st.BuiltAt) {
				t.Errorf("BuiltAt = %v, want %v", loaded.BuiltAt, st.BuiltAt)
			}
			if loaded.DuplicateRows != 1 {
				t.Errorf("DuplicateRows = %d, want 1", loaded.DuplicateRows)
			}

			snap, err := recommend.RestoreSnapshot(loaded)
			if err != nil {
				t.Fatalf("RestoreSnapshot() error = %v", err)
			}
			if snap.Similarity.At(0, 1) != 0.25 {
				t.Errorf("restored similarity = %v, want 0.25", snap.Similarity.At(0, 1))
			}
		})
	}
}

func TestStore_LoadNotFound(t *testing.T) {
	ctx := context.Background()
	for backend, store := range stores(t) {
		t.Run(backend, func(t *testing.T) {
			for _, key := range []string{"missing-key", "", "../escape"} {
				if _, _, err := store.Load(ctx, key); !errors.Is(err, ErrNotFound) {
					t.Errorf("Load(%q) error = %v, want ErrNotFound", key, err)
				}
			}
		})
	}
}

func TestStore_ListAndPrune(t *testing.T) {
	ctx := context.Background()
	for backend, store := range stores(t) {
		t.Run(backend, func(t *testing.T) {
			for _, digest := range []string{"d1", "d2", "d3"} {
				if _, err := store.Save(ctx, testState(digest)); err != nil {
					t.Fatalf("Save(%s) error = %v", digest, err)
				}
				time.Sleep(5 * time.Millisecond)
			}

			list, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(list) != 3 {
				t.Fatalf("len(List()) = %d, want 3", len(list))
			}
			if list[0].Digest != "d3" {
				t.Errorf("newest = %s, want d3", list[0].Digest)
			}

			removed, err := store.Prune(ctx, 2)
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if removed != 1 {
				t.Errorf("Prune() removed = %d, want 1", removed)
			}
			if _, _, err := store.Load(ctx, Key("d1", "0123abcd")); !errors.Is(err, ErrNotFound) {
				t.Errorf("oldest snapshot still loadable, err = %v", err)
			}
			if _, _, err := store.Load(ctx, Key("d3", "0123abcd")); err != nil {
				t.Errorf("newest snapshot Load() error = %v", err)
			}

			removed, err = store.Prune(ctx, 5)
			if err != nil || removed != 0 {
				t.Errorf("Prune(5) = (%d, %v), want (0, nil)", removed, err)
			}
		})
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	for backend, store := range stores(t) {
		t.Run(backend, func(t *testing.T) {
			st := testState("same")
			if _, err := store.Save(ctx, st); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			st.DuplicateRows = 9
			if _, err := store.Save(ctx, st); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			list, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(list) != 1 {
				t.Errorf("len(List()) = %d, want 1", len(list))
			}
			loaded, _, err := store.Load(ctx, Key("same", "0123abcd"))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if loaded.DuplicateRows != 9 {
				t.Errorf("DuplicateRows = %d, want 9", loaded.DuplicateRows)
			}
		})
	}
}

func TestStore_SaveNil(t *testing.T) {
	for backend, store := range stores(t) {
		if _, err := store.Save(context.Background(), nil); err == nil {
			t.Errorf("%s: Save(nil) should fail", backend)
		}
	}
}

func TestFileStore_ChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	sf, err := encodeState(testState("bad"))
	if err != nil {
		t.Fatalf("encodeState() error = %v", err)
	}
	sf.Metadata.Checksum = "deadbeef"
	if _, err := decodeState(sf); err == nil {
		t.Error("decodeState() should fail on checksum mismatch")
	}

	// A file that is not a gob is skipped by List and fails Load.
	path := filepath.Join(dir, "garbage-key"+fileSuffix)
	if err := os.WriteFile(path, []byte("not a gob"), 0o600); err != nil {
		t.Fatal(err)
	}
	list, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("len(List()) = %d, want 0", len(list))
	}
	if _, _, err := store.Load(context.Background(), "garbage-key"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Load(garbage) error = %v, want decode error", err)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"file", Config{Backend: BackendFile, Path: t.TempDir()}, false},
		{"default is file", Config{Path: t.TempDir()}, false},
		{"badger", Config{Backend: BackendBadger, Path: t.TempDir()}, false},
		{"unknown backend", Config{Backend: "redis", Path: t.TempDir()}, true},
		{"empty path", Config{Backend: BackendFile}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if store != nil {
				_ = store.Close()
			}
		})
	}
}

func TestValidKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"abc-123", true},
		{"a_b", true},
		{"", false},
		{"../x", false},
		{"a/b", false},
		{"a b", false},
	}
	for _, tt := range tests {
		if got := validKey(tt.key); got != tt.want {
			t.Errorf("validKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
