// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

// Package metrics exposes Prometheus collectors for the HTTP API and the
// recommendation engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "researchradar_api_requests_total",
		Help: "Total API requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "researchradar_api_request_duration_seconds",
		Help:    "API request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "researchradar_api_active_requests",
		Help: "Number of API requests currently in flight.",
	})

	batchesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "researchradar_batches_generated_total",
		Help: "Recommendation batches generated, by outcome.",
	}, []string{"outcome"})

	batchGenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "researchradar_batch_generation_duration_seconds",
		Help:    "End-to-end batch generation latency.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	candidatesScored = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "researchradar_candidates_scored",
		Help:    "Candidates scored per generation run.",
		Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000},
	})

	scoringMode = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "researchradar_scoring_mode_total",
		Help: "Candidates scored per ensemble mode.",
	}, []string{"mode"})

	feedbackRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "researchradar_feedback_total",
		Help: "Feedback records appended, by kind.",
	}, []string{"kind"})

	similarityTableItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "researchradar_similarity_table_items",
		Help: "Items covered by the loaded collaborative similarity table.",
	})
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(method, path, status).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		activeRequests.Inc()
	} else {
		activeRequests.Dec()
	}
}

// RecordBatchGeneration records one generation run.
// outcome is "ok", "empty" or "error".
func RecordBatchGeneration(outcome string, candidates int, duration time.Duration) {
	batchesGenerated.WithLabelValues(outcome).Inc()
	batchGenerationDuration.Observe(duration.Seconds())
	candidatesScored.Observe(float64(candidates))
}

// RecordScoringMode counts one scored candidate per ensemble mode.
func RecordScoringMode(mode string) {
	scoringMode.WithLabelValues(mode).Inc()
}

// RecordFeedback counts one appended feedback record.
func RecordFeedback(liked bool) {
	kind := "dislike"
	if liked {
		kind = "like"
	}
	feedbackRecorded.WithLabelValues(kind).Inc()
}

// SetSimilarityTableItems reports the loaded similarity table size.
func SetSimilarityTableItems(n int) {
	similarityTableItems.Set(float64(n))
}
