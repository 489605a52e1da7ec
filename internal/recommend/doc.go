// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

// Package recommend implements the hybrid video recommendation engine.
//
// # Architecture
//
// A build turns a dataset table into an immutable Snapshot:
//
//  1. Features: required columns are checked, rows are deduplicated by
//     item id, engagement scores and metadata blobs are derived.
//  2. Content: metadata blobs are vectorized with TF-IDF and compared
//     pairwise with cosine similarity.
//  3. Factorization: a user x item engagement matrix is decomposed with a
//     seeded truncated SVD.
//
// Stages 2 and 3 run in parallel. The snapshot is published through an
// atomic pointer, so concurrent readers see either the old or the new
// snapshot and never a mix.
//
// # Operations
//
//   - SimilarVideos: media links of the items most similar to an item.
//   - Collaborative: latent-factor top items for a known user.
//   - Hybrid: collaborative scores blended with content similarity to the
//     user's most-engaged item.
//   - ColdStart: a seeded sample of popular items for new users.
//   - Recommend: routes a user to Hybrid or ColdStart.
//
// # Error Handling
//
// Operations return a Result. A failed Result carries an empty item slice
// and an *Error classified as KindDataFormat, KindComputation or
// KindLookup. Failures are logged once, where they are converted.
//
// # Determinism
//
// The factorization and cold-start sampling are driven by Config.Seed.
// Rebuilding from the same dataset and configuration yields bitwise
// identical similarity values and factors.
//
// # Persistence
//
// Snapshot.State and RestoreSnapshot convert a snapshot to and from a
// gob-friendly form for the storage package.
package recommend
