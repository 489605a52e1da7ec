// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"context"
	"fmt"

	"github.com/tomtom215/hybridrec/internal/recommend/algorithms"
)

// Collaborative returns the items with the highest latent-factor score for
// a known user: the dot product of the user's factor row with every item
// factor column. Unknown users are a KindLookup failure.
func (e *Engine) Collaborative(ctx context.Context, user string) Result[CollaborativeRecord] {
	const op = "collaborative"

	res := e.personalized(op, user, false)
	if !res.OK() {
		e.logFailure(ctx, op, res.Err, "user", user)
	}
	return res
}

// Hybrid blends min-max normalized collaborative scores with the content
// similarity of each item to the user's most-engaged item:
//
//	score(i) = w_collab * norm(collab(i)) + w_content * similarity(anchor, i)
//
// Without a similarity matrix, or when the user has no positive
// engagement, the content term is dropped and ranking follows the
// collaborative scores.
func (e *Engine) Hybrid(ctx context.Context, user string) Result[CollaborativeRecord] {
	const op = "hybrid"

	res := e.personalized(op, user, true)
	if !res.OK() {
		e.logFailure(ctx, op, res.Err, "user", user)
	}
	return res
}

func (e *Engine) personalized(op, user string, blend bool) Result[CollaborativeRecord] {
	snap, err := e.current(op)
	if err != nil {
		return fail[CollaborativeRecord](err)
	}

	weights := HybridWeights{Collaborative: 1}
	if blend {
		weights = e.config.Collaborative.Weights.Normalize()
	}
	return snap.personalized(op, user, weights, e.config.Collaborative.TopN)
}

func (s *Snapshot) personalized(op, user string, weights HybridWeights, limit int) Result[CollaborativeRecord] {
	if s.Interactions == nil || s.Factors == nil {
		return fail[CollaborativeRecord](unavailable(op, ErrNoFactors, s.FactorErr))
	}
	u, ok := s.Interactions.UserIndex(user)
	if !ok {
		return fail[CollaborativeRecord](newError(KindLookup, op, fmt.Errorf("%w: %q", ErrUserNotFound, user)))
	}

	scores := s.Factors.Scores(u)
	if weights.Content > 0 {
		s.blendContent(u, scores, weights)
	}

	cands := make([]candidate, len(scores))
	for c, score := range scores {
		row := s.colItem[c]
		cands[c] = candidate{index: row, id: s.Items[row].ID, score: score}
	}

	ranked := assemble(cands, limit)
	records := make([]CollaborativeRecord, len(ranked))
	for i, c := range ranked {
		records[i] = collaborativeRecord(s.Items[c.index])
	}
	return succeed(records)
}

// blendContent rewrites scores in place as the weighted hybrid score. It
// leaves them untouched when there is no content signal for user row u.
func (s *Snapshot) blendContent(u int, scores []float64, weights HybridWeights) {
	if s.Similarity == nil {
		return
	}
	anchorCol, ok := s.Interactions.MostEngaged(u)
	if !ok {
		return
	}
	anchor := s.colItem[anchorCol]

	algorithms.NormalizeScores(scores)
	for c := range scores {
		scores[c] = weights.Collaborative*scores[c] + weights.Content*s.Similarity.At(anchor, s.colItem[c])
	}
}
