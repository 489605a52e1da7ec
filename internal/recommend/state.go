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

// SnapshotState is the serializable form of a Snapshot. Matrices are kept
// as plain slices so the state can be gob encoded.
type SnapshotState struct {
	Items []Item

	SimilaritySize int
	Similarity     []float64

	Users        []string
	Columns      []string
	Interactions [][]float64

	UserFactors [][]float64
	ItemFactors [][]float64
	Singular    []float64

	ContentErr string
	FactorErr  string

	Digest        string
	Fingerprint   string
	BuiltAt       time.Time
	DuplicateRows int
}

// State returns the serializable form of s. Snapshots whose feature stage
// failed are not worth persisting and return an error.
func (s *Snapshot) State() (*SnapshotState, error) {
	if s.FeatureErr != nil {
		return nil, fmt.Errorf("snapshot has no features: %w", s.FeatureErr)
	}

	st := &SnapshotState{
		Items:         s.Items,
		Digest:        s.Digest,
		Fingerprint:   s.Fingerprint,
		BuiltAt:       s.BuiltAt,
		DuplicateRows: s.DuplicateRows,
	}
	if s.Similarity != nil {
		st.SimilaritySize = s.Similarity.Len()
		st.Similarity = s.Similarity.Data()
	}
	if s.Interactions != nil {
		st.Users = s.Interactions.Users()
		st.Columns = s.Interactions.Items()
		st.Interactions = s.Interactions.Values()
	}
	if s.Factors != nil {
		st.UserFactors = s.Factors.User
		st.ItemFactors = s.Factors.Item
		st.Singular = s.Factors.Singular
	}
	if s.ContentErr != nil {
		st.ContentErr = cause(s.ContentErr).Error()
	}
	if s.FactorErr != nil {
		st.FactorErr = cause(s.FactorErr).Error()
	}
	return st, nil
}

// RestoreSnapshot rebuilds a Snapshot from its serialized state. The
// result is not indexed until it is published.
func RestoreSnapshot(st *SnapshotState) (*Snapshot, error) {
	if st == nil {
		return nil, errors.New("nil snapshot state")
	}

	s := &Snapshot{
		Items:         st.Items,
		Digest:        st.Digest,
		Fingerprint:   st.Fingerprint,
		BuiltAt:       st.BuiltAt,
		DuplicateRows: st.DuplicateRows,
	}

	if st.Similarity != nil {
		sim, err := algorithms.NewSimilarityMatrixFromData(st.SimilaritySize, st.Similarity)
		if err != nil {
			return nil, fmt.Errorf("restore similarity: %w", err)
		}
		s.Similarity = sim
	}
	if st.ContentErr != "" {
		s.ContentErr = newError(KindComputation, "content", errors.New(st.ContentErr))
	}

	if st.Users != nil || st.Columns != nil {
		im, err := algorithms.RestoreInteractionMatrix(st.Users, st.Columns, st.Interactions)
		if err != nil {
			return nil, fmt.Errorf("restore interactions: %w", err)
		}
		s.Interactions = im
	}
	if st.Singular != nil {
		s.Factors = &algorithms.Factors{
			User:     st.UserFactors,
			Item:     st.ItemFactors,
			Singular: st.Singular,
		}
	}
	if st.FactorErr != "" {
		s.FactorErr = newError(KindComputation, "factorization", errors.New(st.FactorErr))
	}

	return s, nil
}
