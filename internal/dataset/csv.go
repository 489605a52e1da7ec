// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// CSVReader reads comma-separated snapshots with a header row.
type CSVReader struct {
	logger zerolog.Logger
}

// NewCSVReader creates a CSV reader.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCSVReader(logger zerolog.Logger) *CSVReader {
	return &CSVReader{
		logger: logger.With().Str("component", "dataset").Str("reader", "csv").Logger(),
	}
}

// Read parses the file at path.
func (r *CSVReader) Read(ctx context.Context, path string) (*Table, error) {
	start := time.Now()

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	table, err := ParseCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	digest, err := FileDigest(path)
	if err != nil {
		return nil, err
	}
	table.Source = path
	table.Digest = digest

	r.logger.Info().
		Str("path", path).
		Int("rows", table.Len()).
		Int("columns", len(table.columns)).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")

	return table, nil
}

// ParseCSV parses CSV data with a header row into a Table.
func ParseCSV(ctx context.Context, src io.Reader) (*Table, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		if len(rows)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", len(rows)+1, err)
		}
		rows = append(rows, record)
	}

	return NewTable(header, rows)
}
