// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package recommend

// Mode is the per-candidate scoring mode chosen by the switching ensemble.
type Mode string

const (
	// ModeContentOnly scores on feature overlap alone.
	ModeContentOnly Mode = "content_only"

	// ModeBlended mixes content and collaborative signals.
	ModeBlended Mode = "blended"
)

// SelectMode is the switching predicate: blended scoring requires both
// collaborative coverage for the candidate and enough project feedback.
// Pure function.
func SelectMode(cfCovered bool, feedbackCount, minFeedback int) Mode {
	if cfCovered && feedbackCount >= minFeedback {
		return ModeBlended
	}
	return ModeContentOnly
}

// Blend combines content and collaborative scores:
//
//	alpha*content + (1-alpha)*cf
//
// clamped to [0,1].
func Blend(content, cf, alpha float64) float64 {
	score := alpha*content + (1-alpha)*cf
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
