// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

var (
	// ErrRankTooLarge is returned when the requested rank exceeds min(rows, cols).
	ErrRankTooLarge = errors.New("degenerate rank")

	// ErrEmptyMatrix is returned when the matrix has no rows or columns.
	ErrEmptyMatrix = errors.New("empty interaction matrix")
)

// SVDConfig configures the truncated factorization.
type SVDConfig struct {
	// Components is the target rank k.
	// Default: 10
	Components int

	// Oversamples is the number of extra random directions sampled.
	// Default: 10
	Oversamples int

	// PowerIterations is the number of subspace power iterations.
	// Default: 7
	PowerIterations int

	// Seed drives the random starting subspace.
	// Default: 42
	Seed int64

	// ReduceRank lowers k to min(rows, cols) instead of failing.
	ReduceRank bool
}

// DefaultSVDConfig returns the default factorization configuration.
func DefaultSVDConfig() SVDConfig {
	return SVDConfig{
		Components:      10,
		Oversamples:     10,
		PowerIterations: 7,
		Seed:            42,
	}
}

// Factors holds the truncated decomposition A ~ UserFactors * ItemFactors.
type Factors struct {
	// User is rows x k and equals U * Sigma.
	User [][]float64

	// Item is k x cols and equals V transposed.
	Item [][]float64

	// Singular holds the k singular values in descending order.
	Singular []float64
}

// Components returns k.
func (f *Factors) Components() int {
	return len(f.Singular)
}

// Scores returns the dot product of user row u with every item column.
func (f *Factors) Scores(u int) []float64 {
	if len(f.Item) == 0 {
		return nil
	}
	cols := len(f.Item[0])
	scores := make([]float64, cols)
	for k, uf := range f.User[u] {
		row := f.Item[k]
		for j := 0; j < cols; j++ {
			scores[j] += uf * row[j]
		}
	}
	return scores
}

// TruncatedSVD computes a rank-k SVD with randomized subspace iteration.
type TruncatedSVD struct {
	config SVDConfig
}

// NewTruncatedSVD creates a factorizer, applying defaults for zero values.
func NewTruncatedSVD(cfg SVDConfig) *TruncatedSVD {
	defaults := DefaultSVDConfig()
	if cfg.Components <= 0 {
		cfg.Components = defaults.Components
	}
	if cfg.Oversamples < 0 {
		cfg.Oversamples = defaults.Oversamples
	}
	if cfg.PowerIterations < 0 {
		cfg.PowerIterations = defaults.PowerIterations
	}
	return &TruncatedSVD{config: cfg}
}

// Factorize decomposes a dense rows x cols matrix.
//
// The range of A is captured by Q = orth(A * Omega) for a seeded Gaussian
// Omega, refined by power iterations. B = Q' * A is small, so its SVD comes
// from a Jacobi eigendecomposition of B * B'. Each item-factor row is
// sign-normalized so its largest-magnitude entry is positive.
func (s *TruncatedSVD) Factorize(ctx context.Context, a [][]float64) (*Factors, error) {
	rows := len(a)
	if rows == 0 || len(a[0]) == 0 {
		return nil, ErrEmptyMatrix
	}
	cols := len(a[0])

	k := s.config.Components
	limit := min(rows, cols)
	if k > limit {
		if !s.config.ReduceRank {
			return nil, fmt.Errorf("%w: k=%d exceeds min(users=%d, items=%d)", ErrRankTooLarge, k, rows, cols)
		}
		k = limit
	}
	l := min(k+s.config.Oversamples, limit)

	rng := rand.New(rand.NewSource(s.config.Seed)) //nolint:gosec // deterministic factorization seed
	omega := newMatrix(cols, l)
	for i := range omega {
		for j := range omega[i] {
			omega[i][j] = rng.NormFloat64()
		}
	}

	q := orthonormalize(mul(a, omega))
	for it := 0; it < s.config.PowerIterations; it++ {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		z := orthonormalize(mulTransA(a, q))
		q = orthonormalize(mul(a, z))
	}

	// B = Q' * A (l x cols)
	b := mulTransA(q, a)
	bt := transpose(b)
	gram := mul(b, bt)

	eigenvalues, eigenvectors := jacobiEigen(gram)
	order := make([]int, len(eigenvalues))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return eigenvalues[order[x]] > eigenvalues[order[y]]
	})

	f := &Factors{
		User:     newMatrix(rows, k),
		Item:     newMatrix(k, cols),
		Singular: make([]float64, k),
	}

	for c := 0; c < k; c++ {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		e := order[c]
		sigma := math.Sqrt(math.Max(eigenvalues[e], 0))
		f.Singular[c] = sigma

		w := make([]float64, l)
		for r := 0; r < l; r++ {
			w[r] = eigenvectors[r][e]
		}

		// v = B' * w / sigma
		v := f.Item[c]
		if sigma > 1e-12 {
			for j := 0; j < cols; j++ {
				v[j] = dot(bt[j], w) / sigma
			}
		}

		sign := 1.0
		if largestMagnitude(v) < 0 {
			sign = -1.0
		}
		for j := range v {
			v[j] *= sign
		}

		// u * sigma = Q * w (sign follows v)
		for r := 0; r < rows; r++ {
			f.User[r][c] = sign * sigma * dot(q[r], w)
		}
	}

	return f, nil
}

// largestMagnitude returns the entry of v with the largest absolute value,
// preferring the earliest on ties.
func largestMagnitude(v []float64) float64 {
	best := 0.0
	for _, x := range v {
		if math.Abs(x) > math.Abs(best) {
			best = x
		}
	}
	return best
}

func newMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	backing := make([]float64, rows*cols)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols]
	}
	return m
}

// mul returns a * b.
func mul(a, b [][]float64) [][]float64 {
	n, inner, p := len(a), len(b), len(b[0])
	out := newMatrix(n, p)
	for i := 0; i < n; i++ {
		row := out[i]
		for k := 0; k < inner; k++ {
			aik := a[i][k]
			if aik == 0 {
				continue
			}
			bk := b[k]
			for j := 0; j < p; j++ {
				row[j] += aik * bk[j]
			}
		}
	}
	return out
}

// mulTransA returns a' * b.
func mulTransA(a, b [][]float64) [][]float64 {
	n, p := len(a[0]), len(b[0])
	out := newMatrix(n, p)
	for k := range a {
		ak, bk := a[k], b[k]
		for i := 0; i < n; i++ {
			aki := ak[i]
			if aki == 0 {
				continue
			}
			row := out[i]
			for j := 0; j < p; j++ {
				row[j] += aki * bk[j]
			}
		}
	}
	return out
}

func transpose(a [][]float64) [][]float64 {
	out := newMatrix(len(a[0]), len(a))
	for i, row := range a {
		for j, x := range row {
			out[j][i] = x
		}
	}
	return out
}

// orthonormalize applies modified Gram-Schmidt to the columns of m in
// place. Columns that collapse to (near) zero are left as zero vectors.
func orthonormalize(m [][]float64) [][]float64 {
	rows, cols := len(m), len(m[0])
	for c := 0; c < cols; c++ {
		for p := 0; p < c; p++ {
			var proj float64
			for r := 0; r < rows; r++ {
				proj += m[r][p] * m[r][c]
			}
			for r := 0; r < rows; r++ {
				m[r][c] -= proj * m[r][p]
			}
		}
		var norm float64
		for r := 0; r < rows; r++ {
			norm += m[r][c] * m[r][c]
		}
		norm = math.Sqrt(norm)
		for r := 0; r < rows; r++ {
			if norm > 1e-10 {
				m[r][c] /= norm
			} else {
				m[r][c] = 0
			}
		}
	}
	return m
}

// jacobiEigen diagonalizes the symmetric matrix s with cyclic Jacobi
// rotations. Returns eigenvalues and the eigenvectors as columns.
func jacobiEigen(s [][]float64) ([]float64, [][]float64) {
	n := len(s)
	a := newMatrix(n, n)
	for i := range s {
		copy(a[i], s[i])
	}
	v := newMatrix(n, n)
	for i := 0; i < n; i++ {
		v[i][i] = 1
	}

	const maxSweeps = 100
	for sweep := 0; sweep < maxSweeps; sweep++ {
		var off float64
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				off += a[p][q] * a[p][q]
			}
		}
		if off < 1e-22 {
			break
		}

		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(a[p][q]) < 1e-300 {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta < 0 {
					t = -t
				}
				c := 1 / math.Sqrt(t*t+1)
				sn := t * c

				for k := 0; k < n; k++ {
					akp, akq := a[k][p], a[k][q]
					a[k][p] = c*akp - sn*akq
					a[k][q] = sn*akp + c*akq
				}
				for k := 0; k < n; k++ {
					apk, aqk := a[p][k], a[q][k]
					a[p][k] = c*apk - sn*aqk
					a[q][k] = sn*apk + c*aqk
				}
				for k := 0; k < n; k++ {
					vkp, vkq := v[k][p], v[k][q]
					v[k][p] = c*vkp - sn*vkq
					v[k][q] = sn*vkp + c*vkq
				}
			}
		}
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = a[i][i]
	}
	return values, v
}
