// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/hybridrec/internal/recommend/algorithms"
)

// Snapshot is the immutable set of structures derived from one dataset:
// items, the similarity matrix, the interaction matrix and latent factors.
// A Snapshot is never modified after it is published, so any number of
// goroutines may read it without locking.
type Snapshot struct {
	Items        []Item
	Similarity   *algorithms.SimilarityMatrix
	Interactions *algorithms.InteractionMatrix
	Factors      *algorithms.Factors

	// Stage failures. A nil structure above has its cause here.
	FeatureErr error
	ContentErr error
	FactorErr  error

	// Digest is the dataset digest and Fingerprint the config fingerprint
	// the snapshot was built from.
	Digest        string
	Fingerprint   string
	BuiltAt       time.Time
	DuplicateRows int

	itemIndex map[string]int

	// colItem maps interaction columns to rows of Items.
	colItem []int
}

// index builds the lookup tables. Must be called before publishing.
func (s *Snapshot) index() error {
	s.itemIndex = make(map[string]int, len(s.Items))
	for i := range s.Items {
		if _, dup := s.itemIndex[s.Items[i].ID]; !dup {
			s.itemIndex[s.Items[i].ID] = i
		}
	}

	if s.Similarity != nil && s.Similarity.Len() != len(s.Items) {
		return fmt.Errorf("similarity matrix has %d rows, want %d", s.Similarity.Len(), len(s.Items))
	}

	s.colItem = nil
	if s.Interactions != nil {
		s.colItem = make([]int, s.Interactions.Cols())
		for c, id := range s.Interactions.Items() {
			row, ok := s.itemIndex[id]
			if !ok {
				return fmt.Errorf("interaction column %q has no item", id)
			}
			s.colItem[c] = row
		}
	}

	if s.Factors != nil && s.Interactions != nil {
		if len(s.Factors.User) != s.Interactions.Rows() {
			return fmt.Errorf("user factors have %d rows, want %d", len(s.Factors.User), s.Interactions.Rows())
		}
		if len(s.Factors.Item) > 0 && len(s.Factors.Item[0]) != s.Interactions.Cols() {
			return fmt.Errorf("item factors have %d columns, want %d", len(s.Factors.Item[0]), s.Interactions.Cols())
		}
	}
	return nil
}

// Item returns the item with the given id.
func (s *Snapshot) Item(id string) (Item, bool) {
	i, ok := s.itemIndex[id]
	if !ok {
		return Item{}, false
	}
	return s.Items[i], true
}

// UserCount returns the number of users in the interaction matrix.
func (s *Snapshot) UserCount() int {
	if s.Interactions == nil {
		return 0
	}
	return s.Interactions.Rows()
}

// ready reports whether the feature stage produced items.
func (s *Snapshot) ready(op string) error {
	if s.FeatureErr != nil {
		return newError(KindDataFormat, op, cause(s.FeatureErr))
	}
	if len(s.Items) == 0 {
		return newError(KindDataFormat, op, ErrEmptyDataset)
	}
	return nil
}

// cause strips an *Error wrapper so stage errors can be re-wrapped with a
// new operation name.
func cause(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Err
	}
	return err
}

// unavailable builds the error for a missing structure, keeping the stage
// failure that caused it.
func unavailable(op string, sentinel, stageErr error) error {
	if stageErr == nil {
		return newError(KindComputation, op, sentinel)
	}
	return newError(KindComputation, op, fmt.Errorf("%w: %w", sentinel, cause(stageErr)))
}
