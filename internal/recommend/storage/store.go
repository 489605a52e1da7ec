// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tomtom215/hybridrec/internal/recommend"
)

// ErrNotFound is returned when no snapshot is stored under a key.
var ErrNotFound = errors.New("snapshot not found")

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// Metadata describes a stored snapshot.
type Metadata struct {
	// Key is Key(Digest, Fingerprint).
	Key string `json:"key"`

	// Digest is the SHA-256 of the dataset file.
	Digest string `json:"digest"`

	// Fingerprint identifies the engine configuration.
	Fingerprint string `json:"fingerprint"`

	// BuiltAt is when the snapshot was built.
	BuiltAt time.Time `json:"built_at"`

	// SavedAt is when the snapshot was saved.
	SavedAt time.Time `json:"saved_at"`

	// ItemCount is the number of unique items.
	ItemCount int `json:"item_count"`

	// UserCount is the number of users in the interaction matrix.
	UserCount int `json:"user_count"`

	// Checksum is the SHA-256 checksum of the uncompressed state.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed state size in bytes.
	SizeBytes int64 `json:"size_bytes"`
}

// Store persists snapshot states.
type Store interface {
	// Save stores st under Key(st.Digest, st.Fingerprint), replacing any
	// previous entry with that key.
	Save(ctx context.Context, st *recommend.SnapshotState) (*Metadata, error)

	// Load returns the state stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) (*recommend.SnapshotState, *Metadata, error)

	// List returns metadata for all stored snapshots, newest first.
	List(ctx context.Context) ([]Metadata, error)

	// Prune removes all but the keep most recently saved snapshots and
	// returns the number removed.
	Prune(ctx context.Context, keep int) (int, error)

	Close() error
}

// Config selects and configures a Store backend.
type Config struct {
	// Backend is "file" or "badger".
	Backend string

	// Path is the directory holding the store.
	Path string
}

// Open creates the Store selected by cfg.Backend.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStore(cfg.Path)
	case BackendBadger:
		return NewBadgerStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Key returns the cache key for a dataset digest and config fingerprint.
func Key(digest, fingerprint string) string {
	return digest + "-" + fingerprint
}

// validKey reports whether key is safe to use as a file name.
func validKey(key string) bool {
	if key == "" || len(key) > 200 {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// storedFile is the on-disk format for snapshot files.
type storedFile struct {
	Metadata       Metadata
	CompressedData []byte
}

// encodeState serializes, checksums and compresses st.
func encodeState(st *recommend.SnapshotState) (*storedFile, error) {
	if st == nil {
		return nil, errors.New("snapshot state cannot be nil")
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(st); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	meta := Metadata{
		Key:         Key(st.Digest, st.Fingerprint),
		Digest:      st.Digest,
		Fingerprint: st.Fingerprint,
		BuiltAt:     st.BuiltAt,
		SavedAt:     time.Now(),
		ItemCount:   len(st.Items),
		UserCount:   len(st.Users),
		Checksum:    hex.EncodeToString(hash[:]),
		SizeBytes:   int64(compressed.Len()),
	}
	if !validKey(meta.Key) {
		return nil, fmt.Errorf("invalid snapshot key %q", meta.Key)
	}

	return &storedFile{Metadata: meta, CompressedData: compressed.Bytes()}, nil
}

// decodeState decompresses, verifies and deserializes a stored snapshot.
func decodeState(sf *storedFile) (*recommend.SnapshotState, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(rawData)
	checksum := hex.EncodeToString(hash[:])
	if checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, checksum)
	}

	var st recommend.SnapshotState
	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(&st); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &st, nil
}

// sortNewest orders metadata by SavedAt, newest first, then by key.
func sortNewest(list []Metadata) {
	sort.SliceStable(list, func(a, b int) bool {
		if !list[a].SavedAt.Equal(list[b].SavedAt) {
			return list[a].SavedAt.After(list[b].SavedAt)
		}
		return list[a].Key < list[b].Key
	})
}
