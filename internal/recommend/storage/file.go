// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package storage

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tomtom215/hybridrec/internal/recommend"
)

const fileSuffix = ".gob.gz"

// FileStore keeps one gzip-compressed gob file per snapshot in a directory.
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStore creates a file store at the given directory.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, errors.New("storage directory cannot be empty")
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for snapshot storage
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Save implements Store. The file is written to a temporary name and
// renamed into place.
func (s *FileStore) Save(ctx context.Context, st *recommend.SnapshotState) (*Metadata, error) {
	sf, err := encodeState(st)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.baseDir, ".snapshot-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create snapshot file: %w", err)
	}
	tmpName := tmp.Name()

	if err := gob.NewEncoder(tmp).Encode(sf); err != nil {
		_ = tmp.Close()        //nolint:errcheck // already failing
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("write snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("close snapshot file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(sf.Metadata.Key)); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("rename snapshot file: %w", err)
	}

	meta := sf.Metadata
	return &meta, nil
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, key string) (*recommend.SnapshotState, *Metadata, error) {
	if !validKey(key) {
		return nil, nil, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sf, err := s.readFile(s.path(key))
	if err != nil {
		return nil, nil, err
	}
	st, err := decodeState(sf)
	if err != nil {
		return nil, nil, err
	}
	return st, &sf.Metadata, nil
}

// List implements Store. Unreadable files are skipped.
func (s *FileStore) List(ctx context.Context) ([]Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list()
}

// Prune implements Store.
func (s *FileStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.list()
	if err != nil {
		return 0, err
	}
	if len(list) <= keep {
		return 0, nil
	}

	removed := 0
	for _, meta := range list[keep:] {
		if err := os.Remove(s.path(meta.Key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("delete snapshot: %w", err)
		}
		removed++
	}
	return removed, nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) list() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var list []Metadata
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		sf, err := s.readFile(filepath.Join(s.baseDir, name))
		if err != nil {
			continue
		}
		list = append(list, sf.Metadata)
	}
	sortNewest(list)
	return list, nil
}

func (s *FileStore) readFile(path string) (*storedFile, error) {
	f, err := os.Open(path) //nolint:gosec // path is built from a validated key
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open snapshot file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	return &sf, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.baseDir, key+fileSuffix)
}
