// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"context"
	"math"
	"runtime"
	"sort"
)

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// NormalizeScores rescales scores in place to [0, 1] using min-max
// normalization. When all scores are equal every score becomes 0.5.
func NormalizeScores(scores []float64) []float64 {
	if len(scores) == 0 {
		return scores
	}

	minScore, maxScore := scores[0], scores[0]
	for _, score := range scores[1:] {
		if score < minScore {
			minScore = score
		}
		if score > maxScore {
			maxScore = score
		}
	}

	rang := maxScore - minScore
	if rang == 0 {
		for i := range scores {
			scores[i] = 0.5
		}
		return scores
	}

	for i, score := range scores {
		scores[i] = (score - minScore) / rang
	}
	return scores
}

// TopK returns the indices of the k highest scores in descending order.
// Ties keep ascending index order. NaN scores rank last.
func TopK(scores []float64, k int) []int {
	if k <= 0 || len(scores) == 0 {
		return nil
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return greater(scores[order[a]], scores[order[b]])
	})

	if k > len(order) {
		k = len(order)
	}
	return order[:k]
}

// greater orders a before b for a descending sort with NaN last.
func greater(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}

// dot returns the inner product of a and b over their common length.
func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// workerCount resolves a configured worker count against the work size.
func workerCount(configured, work int) int {
	if configured <= 0 {
		configured = runtime.GOMAXPROCS(0)
	}
	if configured > work {
		configured = work
	}
	if configured < 1 {
		configured = 1
	}
	return configured
}
