// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

// Package recommend implements the hybrid recommendation engine.
//
// The engine ranks a project's unseen resource candidates by blending two
// signals:
//
//   - Content: feature-set overlap (Jaccard) between the project's effective
//     profile and each candidate, with a configurable penalty for overlap
//     with disliked features.
//   - Collaborative: a normalized liked-neighbor sum over a precomputed
//     item-item similarity table, when the candidate is covered by it.
//
// A switching ensemble selects the scoring mode per candidate: content-only
// until the project has feedback and the candidate has collaborative
// coverage, blended (alpha*content + (1-alpha)*cf) afterwards.
//
// Batch generation is a pipeline: filter already-shown items, score the
// survivors in parallel, stable-sort descending, truncate to the batch
// size, assign dense ranks, and atomically replace the project's staged
// batch while recording impressions.
package recommend
