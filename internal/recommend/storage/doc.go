// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package storage persists built recommendation snapshots so an unchanged
// dataset does not have to be re-vectorized and re-factorized.
//
// # Overview
//
// The storage system provides:
//   - Gob serialization of recommend.SnapshotState
//   - Gzip compression to reduce storage footprint
//   - SHA-256 checksums for data integrity verification
//   - Pruning of old snapshots
//
// Snapshots are keyed by the dataset digest and the configuration
// fingerprint, see Key. Two backends implement Store:
//
//	FileStore:   {dir}/{key}.gob.gz
//	BadgerStore: snapshot:{key} and snapshot_meta:{key} in a BadgerDB
//
// # Usage Example
//
//	store, err := storage.Open(storage.Config{Backend: "file", Path: "/var/lib/hybridrec"})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	key := storage.Key(snap.Digest, snap.Fingerprint)
//	state, _, err := store.Load(ctx, key)
//	if errors.Is(err, storage.ErrNotFound) {
//	    // build and Save
//	}
//
// # Thread Safety
//
// All Store implementations are safe for concurrent use.
package storage
