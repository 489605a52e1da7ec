// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Package dataset loads the Unified Dataset snapshot the recommender runs on.

The snapshot is a single table produced by the upstream preprocessing
job: one row per (item, user context) with columns such as id, title,
post_summary, category.name, view_count and username. Two readers are
provided:

  - CSVReader parses the file with encoding/csv.
  - DuckDBReader loads CSV or Parquet through DuckDB's read_csv_auto and
    read_parquet table functions.

Both return a *Table of string cells. Missing-value markers ("", "NaN",
"NULL", "None", ...) are normalized to the empty string; numeric coercion
happens later in the feature stage. Every table carries the SHA-256 digest
of its source file so derived artifacts can be cached per snapshot.

Column names are a contract with the preprocessing job. Use
Table.MissingColumns to fail clearly when that contract is broken.
*/
package dataset
