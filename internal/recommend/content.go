// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"context"
	"fmt"

	"github.com/tomtom215/hybridrec/internal/metrics"
)

// RouteSimilar labels content lookups in metrics.
const RouteSimilar = "similar"

// SimilarVideos returns the media links of the items most similar to
// itemID, best first. The queried item itself is not excluded and
// normally ranks first with similarity 1.0. Ties keep item order.
func (e *Engine) SimilarVideos(ctx context.Context, itemID string) Result[string] {
	const op = "similar"

	res := e.similarVideos(itemID)
	if !res.OK() {
		e.logFailure(ctx, op, res.Err, "item_id", itemID)
	}
	metrics.RecordRecommendation(RouteSimilar, res.Len())
	return res
}

func (e *Engine) similarVideos(itemID string) Result[string] {
	const op = "similar"

	snap, err := e.current(op)
	if err != nil {
		return fail[string](err)
	}
	return snap.similar(op, itemID, e.config.Content.TopN)
}

func (s *Snapshot) similar(op, itemID string, limit int) Result[string] {
	if s.Similarity == nil {
		return fail[string](unavailable(op, ErrNoSimilarity, s.ContentErr))
	}
	row, ok := s.itemIndex[itemID]
	if !ok {
		return fail[string](newError(KindLookup, op, fmt.Errorf("%w: %q", ErrItemNotFound, itemID)))
	}

	scores := s.Similarity.Row(row)
	cands := make([]candidate, len(scores))
	for j, score := range scores {
		cands[j] = candidate{index: j, id: s.Items[j].ID, score: score}
	}

	ranked := assemble(cands, limit)
	links := make([]string, len(ranked))
	for i, c := range ranked {
		links[i] = s.Items[c.index].VideoLink
	}
	return succeed(links)
}
