// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the duckdb driver
	"github.com/rs/zerolog"
)

// DuckDBReader loads CSV or Parquet snapshots through an in-memory DuckDB.
type DuckDBReader struct {
	logger zerolog.Logger
}

// NewDuckDBReader creates a DuckDB-backed reader.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewDuckDBReader(logger zerolog.Logger) *DuckDBReader {
	return &DuckDBReader{
		logger: logger.With().Str("component", "dataset").Str("reader", "duckdb").Logger(),
	}
}

// Read loads the file at path. Files ending in .parquet use read_parquet,
// everything else read_csv_auto with every column read as VARCHAR.
func (r *DuckDBReader) Read(ctx context.Context, path string) (*Table, error) {
	start := time.Now()

	// Disable auto-install/auto-load so a restricted network cannot hang the run.
	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer func() { _ = conn.Close() }() //nolint:errcheck // in-memory database

	rows, err := conn.QueryContext(ctx, scanQuery(path))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // error surfaced by rows.Err

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var records [][]string
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(records)+1, err)
		}
		record := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				record[i] = v.String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	table, err := NewTable(columns, records)
	if err != nil {
		return nil, err
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
		Int("columns", len(columns)).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")

	return table, nil
}

// scanQuery builds the table-function query for path.
func scanQuery(path string) string {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return "SELECT * FROM read_parquet(" + quoted + ")"
	}
	return "SELECT * FROM read_csv_auto(" + quoted + ", header = true, all_varchar = true)"
}
