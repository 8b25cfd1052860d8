// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package recommend

import (
	"sync"
	"testing"
)

func TestSimilarityProviderEmptyTableHasNoCoverage(t *testing.T) {
	p := NewSimilarityProvider()

	if _, ok := p.Predict("video:abc", []string{"video:xyz"}); ok {
		t.Errorf("Predict on empty table should report no coverage")
	}
}

func TestSimilarityProviderPredict(t *testing.T) {
	p := NewSimilarityProvider()
	p.Replace(SimilarityTable{
		"video:a": {"video:b": 0.6, "video:c": 0.4},
	})

	// liked neighbor b: 0.6 / (0.6+0.4) = 0.6
	score, ok := p.Predict("video:a", []string{"video:b"})
	if !ok {
		t.Fatalf("Predict should report coverage")
	}
	if !almostEqual(score, 0.6) {
		t.Errorf("Predict = %g, want 0.6", score)
	}
}

func TestSimilarityProviderNoLikedNeighborsScoresZeroWithCoverage(t *testing.T) {
	p := NewSimilarityProvider()
	p.Replace(SimilarityTable{
		"video:a": {"video:b": 0.5},
	})

	score, ok := p.Predict("video:a", []string{"video:unrelated"})
	if !ok {
		t.Fatalf("Predict should report coverage for a known item")
	}
	if score != 0 {
		t.Errorf("Predict = %g, want 0", score)
	}
}

func TestSimilarityProviderUnknownItemNotCovered(t *testing.T) {
	p := NewSimilarityProvider()
	p.Replace(SimilarityTable{
		"video:a": {"video:b": 0.5},
	})

	if _, ok := p.Predict("video:unknown", []string{"video:b"}); ok {
		t.Errorf("Predict for unknown item should report no coverage")
	}
}

func TestSimilarityProviderReplaceSwapsAtomically(t *testing.T) {
	p := NewSimilarityProvider()
	p.Replace(SimilarityTable{"video:a": {"video:b": 1}})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.Predict("video:a", []string{"video:b"})
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				p.Replace(SimilarityTable{"video:a": {"video:b": 0.5}})
			}
		}()
	}
	wg.Wait()

	items, _ := p.Stats()
	if items != 1 {
		t.Errorf("Stats items = %d, want 1", items)
	}
}

func TestSimilarityProviderNilReplace(t *testing.T) {
	p := NewSimilarityProvider()
	p.Replace(nil)

	if _, ok := p.Predict("video:a", nil); ok {
		t.Errorf("Predict after nil Replace should report no coverage")
	}
}
