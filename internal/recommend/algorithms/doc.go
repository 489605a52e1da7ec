// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Package algorithms implements the numeric building blocks of the hybrid
recommendation engine.

# Components

  - TFIDFVectorizer: tokenizes metadata text, removes English stop words
    and produces L2-normalized TF-IDF rows with smoothed IDF.
  - SimilarityMatrix: dense item x item cosine similarity, computed by
    chunked workers, symmetric with a unit diagonal.
  - InteractionMatrix: dense user x item engagement pivot with stable
    first-appearance ordering.
  - TruncatedSVD: seeded randomized subspace iteration producing user
    factors (U*Sigma) and item factors (V transposed).

None of the types here know about items or users beyond string keys and
row indices, so the package has no dependency on the engine.

# Determinism

Every computation is a pure function of its input and, for the SVD, its
seed. Re-running on the same input yields bitwise identical output.

# Thread Safety

Built matrices are read-only and safe for concurrent use. Builders are
not safe for concurrent use.
*/
package algorithms
