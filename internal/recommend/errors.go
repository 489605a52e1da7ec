// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures.
type ErrorKind int

const (
	// KindNone means no error.
	KindNone ErrorKind = iota

	// KindDataFormat means a required column is missing or the dataset is unusable.
	KindDataFormat

	// KindComputation means vectorization, similarity or factorization failed.
	KindComputation

	// KindLookup means a requested item or user does not exist.
	KindLookup
)

// String returns the metric-label form of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return ""
	case KindDataFormat:
		return "data_format"
	case KindComputation:
		return "computation"
	case KindLookup:
		return "lookup"
	default:
		return "unknown"
	}
}

// Sentinel causes wrapped by *Error.
var (
	ErrMissingColumns = errors.New("required columns missing")
	ErrEmptyDataset   = errors.New("dataset has no usable rows")
	ErrNoSnapshot     = errors.New("no snapshot has been built")
	ErrNoSimilarity   = errors.New("similarity matrix unavailable")
	ErrNoFactors      = errors.New("latent factors unavailable")
	ErrItemNotFound   = errors.New("item not found")
	ErrUserNotFound   = errors.New("user not found in interaction matrix")
)

// Error is a classified engine failure.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of err, KindNone for nil, and KindComputation
// for errors that are not *Error.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindComputation
}

// Result is the outcome of an engine operation. A failed Result never
// carries items, so callers that only care about "got something or not"
// can ignore Err entirely.
type Result[T any] struct {
	Items []T
	Err   error
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Kind returns the error kind, KindNone on success.
func (r Result[T]) Kind() ErrorKind {
	return KindOf(r.Err)
}

// Len returns the number of items.
func (r Result[T]) Len() int {
	return len(r.Items)
}

func succeed[T any](items []T) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items}
}

func fail[T any](err error) Result[T] {
	return Result[T]{Items: []T{}, Err: err}
}
