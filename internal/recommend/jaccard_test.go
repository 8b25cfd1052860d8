// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package recommend

import (
	"math"
	"testing"

	"github.com/researchradar/researchradar/internal/features"
)

func set(tokens ...string) features.Set {
	return features.SetFromTokens(tokens)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestJaccardSymmetry(t *testing.T) {
	a := set("tok:graph", "tok:neural", "dur:m")
	b := set("tok:graph", "dur:l", "pop:mid")

	if got, want := Jaccard(a, b), Jaccard(b, a); !almostEqual(got, want) {
		t.Errorf("Jaccard not symmetric: %g vs %g", got, want)
	}
}

func TestJaccardSelfSimilarity(t *testing.T) {
	a := set("tok:graph", "tok:neural", "dur:m")

	if got := Jaccard(a, a); !almostEqual(got, 1) {
		t.Errorf("Jaccard(a,a) = %g, want 1", got)
	}
}

func TestJaccardEmptyPolicy(t *testing.T) {
	if got := Jaccard(set(), set()); got != 0 {
		t.Errorf("Jaccard(empty, empty) = %g, want 0", got)
	}
	if got := Jaccard(set("tok:a"), set()); got != 0 {
		t.Errorf("Jaccard(a, empty) = %g, want 0", got)
	}
}

func TestJaccardKnownValues(t *testing.T) {
	a := set("tok:a", "tok:b", "tok:c")
	b := set("tok:b", "tok:c", "tok:d")

	// intersection 2, union 4
	if got := Jaccard(a, b); !almostEqual(got, 0.5) {
		t.Errorf("Jaccard = %g, want 0.5", got)
	}
}

func TestJaccardDisjoint(t *testing.T) {
	if got := Jaccard(set("tok:a"), set("tok:b")); got != 0 {
		t.Errorf("Jaccard(disjoint) = %g, want 0", got)
	}
}

func TestWeightedJaccardFallsBackToFlat(t *testing.T) {
	a := set("tok:a", "tok:b")
	b := set("tok:b", "tok:c")

	if got, want := WeightedJaccard(a, b, nil), Jaccard(a, b); !almostEqual(got, want) {
		t.Errorf("WeightedJaccard(nil weights) = %g, want flat %g", got, want)
	}
}

func TestWeightedJaccardSymmetry(t *testing.T) {
	weights := map[string]float64{"tok": 0.3, "emb": 0.4, "dur": 0.1}
	a := set("tok:a", "emb:c1", "dur:s")
	b := set("tok:a", "emb:c2", "dur:s")

	if got, want := WeightedJaccard(a, b, weights), WeightedJaccard(b, a, weights); !almostEqual(got, want) {
		t.Errorf("WeightedJaccard not symmetric: %g vs %g", got, want)
	}
}

func TestWeightedJaccardSelfSimilarity(t *testing.T) {
	weights := DefaultConfig().CategoryWeights
	a := set("tok:a", "emb:c1", "dur:s", "fresh:1y", "pop:low", "type:video")

	if got := WeightedJaccard(a, a, weights); !almostEqual(got, 1) {
		t.Errorf("WeightedJaccard(a,a) = %g, want 1", got)
	}
}

func TestWeightedJaccardPerCategory(t *testing.T) {
	weights := map[string]float64{"tok": 0.75, "dur": 0.25}

	// tok matches fully, dur not at all
	a := set("tok:a", "dur:s")
	b := set("tok:a", "dur:l")

	// (0.75*1 + 0.25*0) / (0.75+0.25) = 0.75
	if got := WeightedJaccard(a, b, weights); !almostEqual(got, 0.75) {
		t.Errorf("WeightedJaccard = %g, want 0.75", got)
	}
}

func TestWeightedJaccardIgnoresUnweightedCategories(t *testing.T) {
	weights := map[string]float64{"tok": 1.0}

	a := set("tok:a", "xyz:1")
	b := set("tok:a", "xyz:2")

	if got := WeightedJaccard(a, b, weights); !almostEqual(got, 1) {
		t.Errorf("WeightedJaccard = %g, want 1 (xyz unweighted)", got)
	}
}
