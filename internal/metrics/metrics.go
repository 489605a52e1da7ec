// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stages.
const (
	StageLoad          = "load"
	StageFeatures      = "features"
	StageContent       = "content"
	StageFactorization = "factorization"
	StageRecommend     = "recommend"
	StageOutput        = "output"
)

var (
	// Pipeline Metrics
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hybridrec_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		},
		[]string{"stage"},
	)

	StageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hybridrec_stage_failures_total",
			Help: "Total number of pipeline stage failures by error kind",
		},
		[]string{"stage", "kind"}, // kind: "data_format", "computation", "lookup"
	)

	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hybridrec_pipeline_runs_total",
			Help: "Total number of batch pipeline runs",
		},
		[]string{"status"}, // "success", "failure"
	)

	// Snapshot Metrics
	SnapshotItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hybridrec_snapshot_items",
			Help: "Number of unique items in the current snapshot",
		},
	)

	SnapshotUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hybridrec_snapshot_users",
			Help: "Number of users in the interaction matrix of the current snapshot",
		},
	)

	SnapshotDuplicateRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hybridrec_snapshot_duplicate_rows",
			Help: "Rows dropped from the current snapshot because their item id repeated",
		},
	)

	SnapshotCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hybridrec_snapshot_cache_total",
			Help: "Snapshot cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	// Recommendation Metrics
	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hybridrec_recommendations_total",
			Help: "Total number of recommendation requests by route",
		},
		[]string{"route"}, // "known_user", "unknown_user", "similar"
	)

	RecommendationsEmpty = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hybridrec_recommendations_empty_total",
			Help: "Recommendation requests that returned an empty result",
		},
		[]string{"route"},
	)
)

// RecordStage records a stage duration and, when kind is not empty, a failure.
func RecordStage(stage string, duration time.Duration, kind string) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if kind != "" {
		StageFailures.WithLabelValues(stage, kind).Inc()
	}
}

// RecordPipelineRun records the outcome of a batch run.
func RecordPipelineRun(err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	PipelineRuns.WithLabelValues(status).Inc()
}

// RecordRecommendation records a served request and whether it was empty.
func RecordRecommendation(route string, count int) {
	Recommendations.WithLabelValues(route).Inc()
	if count == 0 {
		RecommendationsEmpty.WithLabelValues(route).Inc()
	}
}

// UpdateSnapshot sets the snapshot size gauges.
func UpdateSnapshot(items, users, duplicates int) {
	SnapshotItems.Set(float64(items))
	SnapshotUsers.Set(float64(users))
	SnapshotDuplicateRows.Set(float64(duplicates))
}

// RecordSnapshotCache records a cache lookup result.
func RecordSnapshotCache(result string) {
	SnapshotCache.WithLabelValues(result).Inc()
}

// WriteTextfile writes all registered metrics to path in the Prometheus
// text format, for collection by the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
