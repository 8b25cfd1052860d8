// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package recommend

import "github.com/researchradar/researchradar/internal/features"

// Jaccard computes |A∩B| / |A∪B| over flat feature sets.
// Two empty sets score 0, not 1: no evidence of similarity is not
// perfect similarity. O(min(|A|,|B|)) intersection walk.
func Jaccard(a, b features.Set) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	inter := 0
	for t := range small {
		if large.Has(t) {
			inter++
		}
	}

	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// WeightedJaccard computes a per-category weighted Jaccard: each category
// present in either set contributes its own Jaccard scaled by its weight,
// and the result is normalized by the total weight of present categories.
// Categories absent from the weight map contribute nothing. Falls back to
// the flat variant when weights is empty.
func WeightedJaccard(a, b features.Set, weights map[string]float64) float64 {
	if len(weights) == 0 {
		return Jaccard(a, b)
	}
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	aCats := a.ByCategory()
	bCats := b.ByCategory()

	present := make(map[string]struct{}, len(aCats)+len(bCats))
	for cat := range aCats {
		present[cat] = struct{}{}
	}
	for cat := range bCats {
		present[cat] = struct{}{}
	}

	var sum, total float64
	for cat := range present {
		w, ok := weights[cat]
		if !ok || w == 0 {
			continue
		}
		sum += w * Jaccard(aCats[cat], bCats[cat])
		total += w
	}

	if total == 0 {
		return 0
	}
	return sum / total
}
