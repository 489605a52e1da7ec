// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
)

func poolItems() []Item {
	return []Item{
		{ID: "a", CategoryName: "News", ViewCount: 10, CommentCount: 9, AverageRating: 1, HasRating: true},
		{ID: "b", CategoryName: "News", ViewCount: 500, CommentCount: 0},
		{ID: "c", CategoryName: "Sport", ViewCount: 40, CommentCount: 3, AverageRating: 5, HasRating: true},
		{ID: "d", CategoryName: "", ViewCount: 1000, CommentCount: 1, AverageRating: 2, HasRating: true},
		{ID: "e", CategoryName: "Film", ViewCount: 5, CommentCount: 7},
	}
}

func TestColdStartPool(t *testing.T) {
	cfg := ColdStartConfig{PoolSize: 1, TopCategories: 1, SampleSize: 5}

	pool := ColdStartPool(poolItems(), cfg)

	// category pool: News (510 views) -> b
	// rating pool: c (5.0)
	// comment pool: a (9)
	// view pool: d (1000), uncategorized items still count here
	want := []string{"b", "c", "a", "d"}
	got := make([]string, len(pool))
	for i := range pool {
		got[i] = pool[i].ID
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ColdStartPool() = %v, want %v", got, want)
	}
}

func TestColdStartPool_Dedupe(t *testing.T) {
	cfg := ColdStartConfig{PoolSize: 6, TopCategories: 6, SampleSize: 5}
	pool := ColdStartPool(poolItems(), cfg)

	if len(pool) != 5 {
		t.Errorf("len(pool) = %d, want 5", len(pool))
	}
	seen := make(map[string]bool)
	for i := range pool {
		if seen[pool[i].ID] {
			t.Errorf("duplicate id %s in pool", pool[i].ID)
		}
		seen[pool[i].ID] = true
	}
}

func TestSampleItems(t *testing.T) {
	pool := poolItems()

	t.Run("distinct sample of n", func(t *testing.T) {
		got := SampleItems(pool, 3, rand.New(rand.NewSource(1)))
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		seen := make(map[string]bool)
		for i := range got {
			if seen[got[i].ID] {
				t.Errorf("duplicate %s in sample", got[i].ID)
			}
			seen[got[i].ID] = true
		}
	})

	t.Run("small pool returns everything", func(t *testing.T) {
		got := SampleItems(pool[:2], 5, rand.New(rand.NewSource(1)))
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("seeded sampling is deterministic", func(t *testing.T) {
		a := SampleItems(pool, 3, rand.New(rand.NewSource(7)))
		b := SampleItems(pool, 3, rand.New(rand.NewSource(7)))
		if !reflect.DeepEqual(a, b) {
			t.Errorf("samples differ: %v vs %v", a, b)
		}
	})

	t.Run("empty pool", func(t *testing.T) {
		if got := SampleItems(nil, 5, rand.New(rand.NewSource(1))); len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})
}

func TestEngine_ColdStart(t *testing.T) {
	e := builtEngine(t, nil, catalogTable(t))

	res := e.ColdStart(context.Background())
	if !res.OK() {
		t.Fatalf("ColdStart() error = %v", res.Err)
	}
	if res.Len() != 5 {
		t.Fatalf("ColdStart() returned %d records, want 5", res.Len())
	}

	pool := ColdStartPool(e.Snapshot().Items, e.Config().ColdStart)
	members := make(map[string]bool)
	for i := range pool {
		members[pool[i].ID] = true
	}
	seen := make(map[string]bool)
	for _, id := range coldIDs(res.Items) {
		if !members[id] {
			t.Errorf("sampled %s is not in the pool", id)
		}
		if seen[id] {
			t.Errorf("duplicate %s in sample", id)
		}
		seen[id] = true
	}
}

func TestEngine_ColdStartSeeded(t *testing.T) {
	a := builtEngine(t, nil, catalogTable(t))
	b := builtEngine(t, nil, catalogTable(t))

	if got, want := coldIDs(a.ColdStart(context.Background()).Items), coldIDs(b.ColdStart(context.Background()).Items); !reflect.DeepEqual(got, want) {
		t.Errorf("same seed sampled %v and %v", got, want)
	}

	b.SetRandSource(rand.NewSource(42))
	a.SetRandSource(rand.NewSource(42))
	if got, want := coldIDs(a.ColdStart(context.Background()).Items), coldIDs(b.ColdStart(context.Background()).Items); !reflect.DeepEqual(got, want) {
		t.Errorf("reseeded engines sampled %v and %v", got, want)
	}
}

func TestEngine_ColdStartRecordProjection(t *testing.T) {
	e := builtEngine(t, nil, catalogTable(t))

	for _, r := range e.ColdStart(context.Background()).Items {
		item, ok := e.Snapshot().Item(r.ID)
		if !ok {
			t.Fatalf("record %s has no item", r.ID)
		}
		if r.Title != item.Title || r.CategoryName != item.CategoryName || r.ViewCount != item.ViewCount || r.CommentCount != item.CommentCount {
			t.Errorf("record %+v does not match item %+v", r, item)
		}
		if item.HasRating != (r.AverageRating != nil) {
			t.Errorf("record %s rating = %v, item has rating %v", r.ID, r.AverageRating, item.HasRating)
		}
	}
}
