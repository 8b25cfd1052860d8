// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package recommend

import "testing"

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name          string
		cfCovered     bool
		feedbackCount int
		minFeedback   int
		want          Mode
	}{
		{"cold start", false, 0, 1, ModeContentOnly},
		{"feedback but no coverage", false, 5, 1, ModeContentOnly},
		{"coverage but no feedback", true, 0, 1, ModeContentOnly},
		{"coverage and feedback", true, 1, 1, ModeBlended},
		{"coverage and plenty feedback", true, 10, 1, ModeBlended},
		{"higher threshold not met", true, 2, 3, ModeContentOnly},
		{"zero threshold", true, 0, 0, ModeBlended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectMode(tt.cfCovered, tt.feedbackCount, tt.minFeedback)
			if got != tt.want {
				t.Errorf("SelectMode(%v, %d, %d) = %v, want %v", tt.cfCovered, tt.feedbackCount, tt.minFeedback, got, tt.want)
			}
		})
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		content, cf, alpha, want float64
	}{
		{1, 0, 0.3, 0.3},
		{0, 1, 0.3, 0.7},
		{1, 1, 0.3, 1},
		{0, 0, 0.3, 0},
		{0.5, 0.5, 0.3, 0.5},
		{1, 0, 1, 1},
		{1, 0, 0, 0},
	}

	for _, tt := range tests {
		if got := Blend(tt.content, tt.cf, tt.alpha); !almostEqual(got, tt.want) {
			t.Errorf("Blend(%g, %g, %g) = %g, want %g", tt.content, tt.cf, tt.alpha, got, tt.want)
		}
	}
}

func TestBlendClamps(t *testing.T) {
	if got := Blend(2, 2, 0.5); got != 1 {
		t.Errorf("Blend should clamp to 1, got %g", got)
	}
	if got := Blend(-1, -1, 0.5); got != 0 {
		t.Errorf("Blend should clamp to 0, got %g", got)
	}
}

func TestContentScorePenalize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CategoryWeights = nil // flat variant for arithmetic clarity

	pos := set("tok:a", "tok:b")
	neg := set("tok:c", "tok:d")
	cand := set("tok:a", "tok:c")

	// jPos = 1/3, jNeg = 1/3, score = 1/3 - 0.5*1/3 = 1/6
	got := ContentScore(pos, neg, cand, &cfg)
	if !almostEqual(got, 1.0/6.0) {
		t.Errorf("ContentScore = %g, want %g", got, 1.0/6.0)
	}
}

func TestContentScorePenaltyFloorsAtZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CategoryWeights = nil
	cfg.DislikeLambda = 1.0

	pos := set("tok:x")
	neg := set("tok:a", "tok:b")
	cand := set("tok:a", "tok:b")

	if got := ContentScore(pos, neg, cand, &cfg); got != 0 {
		t.Errorf("ContentScore = %g, want 0 floor", got)
	}
}

func TestContentScoreSuppressIgnoresNegative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CategoryWeights = nil
	cfg.DislikePolicy = DislikeSuppress

	pos := set("tok:a", "tok:b")
	neg := set("tok:a", "tok:b")
	cand := set("tok:a", "tok:b")

	if got := ContentScore(pos, neg, cand, &cfg); !almostEqual(got, 1) {
		t.Errorf("ContentScore suppress = %g, want 1", got)
	}
}
