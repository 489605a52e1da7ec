// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Supported input formats.
const (
	FormatCSV    = "csv"
	FormatDuckDB = "duckdb"
)

// Reader loads a Unified Dataset snapshot.
type Reader interface {
	Read(ctx context.Context, path string) (*Table, error)
}

// NewReader returns the reader for format.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewReader(format string, logger zerolog.Logger) (Reader, error) {
	switch format {
	case FormatCSV, "":
		return NewCSVReader(logger), nil
	case FormatDuckDB:
		return NewDuckDBReader(logger), nil
	default:
		return nil, fmt.Errorf("unsupported input format %q (want %s or %s)", format, FormatCSV, FormatDuckDB)
	}
}

// FileDigest returns the hex SHA-256 of the file at path.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
