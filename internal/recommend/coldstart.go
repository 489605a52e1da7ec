// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/tomtom215/hybridrec/internal/recommend/algorithms"
)

// ColdStart samples popular items for a user with no interaction history.
//
// Four pools are built from the snapshot items: the most viewed items of the
// most viewed categories, the best rated items, the most commented items and
// the most viewed items. Their union, deduplicated by id, is sampled
// uniformly without replacement.
func (e *Engine) ColdStart(ctx context.Context) Result[ColdStartRecord] {
	const op = "cold_start"

	snap, err := e.current(op)
	if err != nil {
		e.logFailure(ctx, op, err, "route", RouteUnknownUser.String())
		return fail[ColdStartRecord](err)
	}

	cfg := e.config.ColdStart
	pool := ColdStartPool(snap.Items, cfg)
	if len(pool) < cfg.SampleSize {
		e.log(ctx).Warn().
			Int("pool", len(pool)).
			Int("sample_size", cfg.SampleSize).
			Msg("Cold-start pool smaller than sample size, returning whole pool")
	}

	e.rngMu.Lock()
	sample := SampleItems(pool, cfg.SampleSize, e.rng)
	e.rngMu.Unlock()

	records := make([]ColdStartRecord, len(sample))
	for i := range sample {
		records[i] = coldStartRecord(sample[i])
	}
	return succeed(records)
}

// ColdStartPool returns the deduplicated union of the four popularity pools,
// in pool order: category, rating, comments, views.
func ColdStartPool(items []Item, cfg ColdStartConfig) []Item {
	views := make([]float64, len(items))
	ratings := make([]float64, len(items))
	comments := make([]float64, len(items))
	for i := range items {
		views[i] = items[i].ViewCount
		comments[i] = items[i].CommentCount
		ratings[i] = math.NaN()
		if items[i].HasRating {
			ratings[i] = items[i].AverageRating
		}
	}

	pools := [][]int{
		categoryPool(items, views, cfg),
		algorithms.TopK(ratings, cfg.PoolSize),
		algorithms.TopK(comments, cfg.PoolSize),
		algorithms.TopK(views, cfg.PoolSize),
	}

	var merged []Item
	for _, pool := range pools {
		for _, i := range pool {
			merged = append(merged, items[i])
		}
	}
	//nolint:gocritic // hugeParam is acceptable for the key func
	return Dedupe(merged, func(it Item) string { return it.ID })
}

// categoryPool ranks categories by summed views, keeps the top ones and
// returns the most viewed items within them. Items without a category are
// never part of this pool.
func categoryPool(items []Item, views []float64, cfg ColdStartConfig) []int {
	totals := make(map[string]float64)
	var order []string
	for i := range items {
		name := items[i].CategoryName
		if name == "" {
			continue
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += views[i]
	}

	sort.SliceStable(order, func(a, b int) bool {
		return totals[order[a]] > totals[order[b]]
	})
	if len(order) > cfg.TopCategories {
		order = order[:cfg.TopCategories]
	}
	top := make(map[string]struct{}, len(order))
	for _, name := range order {
		top[name] = struct{}{}
	}

	var members []int
	for i := range items {
		if _, ok := top[items[i].CategoryName]; ok {
			members = append(members, i)
		}
	}
	memberViews := make([]float64, len(members))
	for k, i := range members {
		memberViews[k] = views[i]
	}

	ranked := algorithms.TopK(memberViews, cfg.PoolSize)
	out := make([]int, len(ranked))
	for k, m := range ranked {
		out[k] = members[m]
	}
	return out
}

// SampleItems draws n distinct items uniformly without replacement. When
// the pool holds n items or fewer, all of them are returned shuffled.
func SampleItems(pool []Item, n int, rng *rand.Rand) []Item {
	perm := rng.Perm(len(pool))
	if n < len(perm) {
		perm = perm[:n]
	}
	out := make([]Item, len(perm))
	for k, i := range perm {
		out[k] = pool[i]
	}
	return out
}
