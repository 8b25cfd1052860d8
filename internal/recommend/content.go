// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package recommend

import "github.com/researchradar/researchradar/internal/features"

// ContentScore computes the content-side score of a candidate against a
// profile. Positive overlap rewards, negative overlap penalizes according
// to the dislike policy:
//
//	penalize: max(0, J(pos, cand) - lambda*J(neg, cand))
//	suppress: J(pos, cand), the negative set is ignored
//
// The result is in [0,1]. Pure function.
func ContentScore(pos, neg, cand features.Set, cfg *Config) float64 {
	jPos := WeightedJaccard(pos, cand, cfg.CategoryWeights)

	if cfg.DislikePolicy == DislikeSuppress || len(neg) == 0 {
		return jPos
	}

	jNeg := WeightedJaccard(neg, cand, cfg.CategoryWeights)
	score := jPos - cfg.DislikeLambda*jNeg
	if score < 0 {
		return 0
	}
	return score
}
