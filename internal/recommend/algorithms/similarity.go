// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrEmptyCorpus is returned when there are no documents to compare.
var ErrEmptyCorpus = errors.New("empty corpus")

// SimilarityConfig configures similarity matrix construction.
type SimilarityConfig struct {
	TFIDF TFIDFConfig

	// NumWorkers is the number of parallel row workers.
	// Default: GOMAXPROCS
	NumWorkers int
}

// DefaultSimilarityConfig returns the default similarity configuration.
func DefaultSimilarityConfig() SimilarityConfig {
	return SimilarityConfig{
		TFIDF: DefaultTFIDFConfig(),
	}
}

// SimilarityMatrix is a dense, symmetric item x item cosine similarity
// matrix with values in [0, 1] and 1.0 on the diagonal. Read-only once built.
type SimilarityMatrix struct {
	n    int
	data []float64
}

// NewSimilarityMatrixFromData wraps a row-major n x n slice.
func NewSimilarityMatrixFromData(n int, data []float64) (*SimilarityMatrix, error) {
	if n < 0 || len(data) != n*n {
		return nil, fmt.Errorf("similarity data length %d does not match %d x %d", len(data), n, n)
	}
	return &SimilarityMatrix{n: n, data: data}, nil
}

// Len returns the number of items.
func (m *SimilarityMatrix) Len() int {
	return m.n
}

// At returns similarity(i, j).
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Row returns a copy of row i.
func (m *SimilarityMatrix) Row(i int) []float64 {
	row := make([]float64, m.n)
	copy(row, m.data[i*m.n:(i+1)*m.n])
	return row
}

// Data returns the row-major backing slice. Callers must not modify it.
func (m *SimilarityMatrix) Data() []float64 {
	return m.data
}

// BuildSimilarity vectorizes docs with TF-IDF and computes pairwise cosine
// similarity. Rows are distributed across workers; each worker fills the
// upper triangle of its rows and mirrors it, so no cell is written twice.
func BuildSimilarity(ctx context.Context, docs []string, cfg SimilarityConfig) (*SimilarityMatrix, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	vectorizer, err := NewTFIDFVectorizer(cfg.TFIDF)
	if err != nil {
		return nil, err
	}
	rows, err := vectorizer.FitTransform(docs)
	if err != nil {
		return nil, err
	}

	return CosineSimilarity(ctx, rows, cfg.NumWorkers)
}

// CosineSimilarity computes the similarity matrix of L2-normalized rows.
func CosineSimilarity(ctx context.Context, rows []SparseVector, numWorkers int) (*SimilarityMatrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrEmptyCorpus
	}

	m := &SimilarityMatrix{n: n, data: make([]float64, n*n)}
	workers := workerCount(numWorkers, n)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			// Strided assignment balances the shrinking triangle rows.
			for i := w; i < n; i += workers {
				if ContextCancelled(gctx) {
					return gctx.Err()
				}
				m.data[i*n+i] = 1.0
				for j := i + 1; j < n; j++ {
					s := clampUnit(rows[i].Dot(rows[j]))
					m.data[i*n+j] = s
					m.data[j*n+i] = s
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

func clampUnit(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
