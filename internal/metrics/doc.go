// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

/*
Package metrics provides Prometheus instrumentation for the batch pipeline.

# Overview

The package records:
  - Per-stage durations and failures (load, features, content,
    factorization, recommend, output)
  - Snapshot sizes (items, users, dropped duplicate rows)
  - Snapshot cache hits and misses
  - Recommendation requests per route and empty results

# Export

The recommender runs as a batch job, so there is no scrape endpoint.
WriteTextfile dumps the default registry for the node exporter textfile
collector:

	metrics.WriteTextfile("/var/lib/node_exporter/textfile/hybridrec.prom")

# Available Metrics

	hybridrec_stage_duration_seconds{stage}
	hybridrec_stage_failures_total{stage,kind}
	hybridrec_pipeline_runs_total{status}
	hybridrec_snapshot_items
	hybridrec_snapshot_users
	hybridrec_snapshot_duplicate_rows
	hybridrec_snapshot_cache_total{result}
	hybridrec_recommendations_total{route}
	hybridrec_recommendations_empty_total{route}
*/
package metrics
