// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/hybridrec/internal/recommend"
)

// Key prefixes for namespacing in BadgerDB.
const (
	badgerDataPrefix = "snapshot:"
	badgerMetaPrefix = "snapshot_meta:"
)

// BadgerStore keeps snapshots in a BadgerDB. Compressed state and JSON
// metadata are stored under separate keys so List never reads state.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens a BadgerDB-backed store at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	if path == "" {
		return nil, errors.New("storage directory cannot be empty")
	}
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB internal logs
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for snapshots: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStoreFromDB creates a store from an existing BadgerDB connection.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Save implements Store.
func (s *BadgerStore) Save(ctx context.Context, st *recommend.SnapshotState) (*Metadata, error) {
	sf, err := encodeState(st)
	if err != nil {
		return nil, err
	}
	metaData, err := json.Marshal(sf.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(badgerDataPrefix+sf.Metadata.Key), sf.CompressedData); err != nil {
			return err
		}
		return txn.Set([]byte(badgerMetaPrefix+sf.Metadata.Key), metaData)
	})
	if err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	meta := sf.Metadata
	return &meta, nil
}

// Load implements Store.
func (s *BadgerStore) Load(ctx context.Context, key string) (*recommend.SnapshotState, *Metadata, error) {
	if !validKey(key) {
		return nil, nil, ErrNotFound
	}

	var sf storedFile
	err := s.db.View(func(txn *badger.Txn) error {
		metaItem, err := txn.Get([]byte(badgerMetaPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get metadata: %w", err)
		}
		if err := metaItem.Value(func(val []byte) error {
			return json.Unmarshal(val, &sf.Metadata)
		}); err != nil {
			return fmt.Errorf("unmarshal metadata: %w", err)
		}

		dataItem, err := txn.Get([]byte(badgerDataPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}
		sf.CompressedData, err = dataItem.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	st, err := decodeState(&sf)
	if err != nil {
		return nil, nil, err
	}
	return st, &sf.Metadata, nil
}

// List implements Store. Corrupted metadata entries are skipped.
func (s *BadgerStore) List(ctx context.Context) ([]Metadata, error) {
	var list []Metadata
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerMetaPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var meta Metadata
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &meta)
			}); err != nil {
				continue
			}
			list = append(list, meta)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	sortNewest(list)
	return list, nil
}

// Prune implements Store.
func (s *BadgerStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}

	list, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(list) <= keep {
		return 0, nil
	}

	removed := 0
	for _, meta := range list[keep:] {
		err := s.db.Update(func(txn *badger.Txn) error {
			if err := txn.Delete([]byte(badgerDataPrefix + meta.Key)); err != nil {
				return err
			}
			return txn.Delete([]byte(badgerMetaPrefix + meta.Key))
		})
		if err != nil {
			return removed, fmt.Errorf("delete snapshot: %w", err)
		}
		removed++
	}
	return removed, nil
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
