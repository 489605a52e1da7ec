// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrEmptyVocabulary is returned when no document yields a usable token.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words or no tokens")

// TFIDFConfig configures the metadata vectorizer.
type TFIDFConfig struct {
	// StopWords names the stop-word list: "english" or "none".
	StopWords string

	// MinTokenLength is the minimum token length in runes.
	// Default: 2
	MinTokenLength int
}

// DefaultTFIDFConfig returns the default vectorizer configuration.
func DefaultTFIDFConfig() TFIDFConfig {
	return TFIDFConfig{
		StopWords:      "english",
		MinTokenLength: 2,
	}
}

// SparseVector is a sparse row with strictly increasing column indices.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Dot returns the inner product of two sparse vectors.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// TFIDFVectorizer converts documents into L2-normalized TF-IDF rows.
//
// Tokens are maximal runs of letters, digits and underscores, lowercased,
// at least MinTokenLength runes long, with stop words removed. Term
// weights are raw counts times the smoothed IDF ln((1+n)/(1+df)) + 1.
// Not safe for concurrent use.
type TFIDFVectorizer struct {
	config    TFIDFConfig
	stopWords map[string]struct{}
	caser     cases.Caser

	vocabulary []string
	idf        []float64
}

// NewTFIDFVectorizer creates a vectorizer.
func NewTFIDFVectorizer(cfg TFIDFConfig) (*TFIDFVectorizer, error) {
	if cfg.MinTokenLength <= 0 {
		cfg.MinTokenLength = 2
	}
	stop, ok := StopWordSet(cfg.StopWords)
	if !ok {
		return nil, fmt.Errorf("unsupported stop-word list %q", cfg.StopWords)
	}
	return &TFIDFVectorizer{
		config:    cfg,
		stopWords: stop,
		caser:     cases.Lower(language.Und),
	}, nil
}

// Vocabulary returns the fitted terms in column order.
func (v *TFIDFVectorizer) Vocabulary() []string {
	out := make([]string, len(v.vocabulary))
	copy(out, v.vocabulary)
	return out
}

// IDF returns the fitted inverse document frequencies in column order.
func (v *TFIDFVectorizer) IDF() []float64 {
	out := make([]float64, len(v.idf))
	copy(out, v.idf)
	return out
}

// Tokenize splits a document into filtered, lowercased tokens.
func (v *TFIDFVectorizer) Tokenize(doc string) []string {
	lower := v.caser.String(doc)

	var tokens []string
	runes := []rune(lower)
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		if end-start >= v.config.MinTokenLength {
			tok := string(runes[start:end])
			if _, stop := v.stopWords[tok]; !stop {
				tokens = append(tokens, tok)
			}
		}
		start = -1
	}

	for i, r := range runes {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(runes))
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// FitTransform learns the vocabulary and IDF from docs and returns one
// L2-normalized row per document. Documents without tokens produce an
// empty row.
func (v *TFIDFVectorizer) FitTransform(docs []string) ([]SparseVector, error) {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)

	for i, doc := range docs {
		tf := make(map[string]int)
		for _, tok := range v.Tokenize(doc) {
			tf[tok]++
		}
		for term := range tf {
			df[term]++
		}
		counts[i] = tf
	}

	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	v.vocabulary = make([]string, 0, len(df))
	for term := range df {
		v.vocabulary = append(v.vocabulary, term)
	}
	sort.Strings(v.vocabulary)

	index := make(map[string]int, len(v.vocabulary))
	v.idf = make([]float64, len(v.vocabulary))
	n := float64(len(docs))
	for col, term := range v.vocabulary {
		index[term] = col
		v.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	rows := make([]SparseVector, len(docs))
	for i, tf := range counts {
		rows[i] = v.weightRow(tf, index)
	}
	return rows, nil
}

func (v *TFIDFVectorizer) weightRow(tf map[string]int, index map[string]int) SparseVector {
	if len(tf) == 0 {
		return SparseVector{}
	}

	cols := make([]int, 0, len(tf))
	for term := range tf {
		cols = append(cols, index[term])
	}
	sort.Ints(cols)

	values := make([]float64, len(cols))
	var norm float64
	for k, col := range cols {
		w := float64(tf[v.vocabulary[col]]) * v.idf[col]
		values[k] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for k := range values {
			values[k] /= norm
		}
	}
	return SparseVector{Indices: cols, Values: values}
}
