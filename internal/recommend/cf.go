// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package recommend

import (
	"sync"
	"time"
)

// SimilarityTable maps item keys to their neighbors and similarity scores.
// Scores are expected in [0,1].
type SimilarityTable map[string]map[string]float64

// SimilarityProvider serves collaborative predictions from an in-memory
// item-item similarity table. The table is refreshed out-of-band via
// Replace; reads and swaps are safe for concurrent use.
type SimilarityProvider struct {
	mu       sync.RWMutex
	table    SimilarityTable
	loadedAt time.Time
}

// NewSimilarityProvider returns a provider with an empty table. Until the
// first Replace, every Predict reports no coverage.
func NewSimilarityProvider() *SimilarityProvider {
	return &SimilarityProvider{table: SimilarityTable{}}
}

// Replace swaps in a freshly loaded table.
func (p *SimilarityProvider) Replace(table SimilarityTable) {
	if table == nil {
		table = SimilarityTable{}
	}
	p.mu.Lock()
	p.table = table
	p.loadedAt = time.Now()
	p.mu.Unlock()
}

// Lookup returns the neighbor map for the item key.
// ok is false when the table has no entry for the key.
func (p *SimilarityProvider) Lookup(itemKey string) (map[string]float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	neighbors, ok := p.table[itemKey]
	return neighbors, ok
}

// Predict returns the normalized liked-neighbor sum for the item key:
// the similarity mass of liked neighbors divided by the item's total
// neighbor mass. ok is false when the item is absent from the table or
// has no neighbor mass; absence of coverage is never reported as zero.
func (p *SimilarityProvider) Predict(itemKey string, likedKeys []string) (float64, bool) {
	neighbors, ok := p.Lookup(itemKey)
	if !ok || len(neighbors) == 0 {
		return 0, false
	}

	var total float64
	for _, sim := range neighbors {
		total += sim
	}
	if total <= 0 {
		return 0, false
	}

	var liked float64
	for _, key := range likedKeys {
		if sim, ok := neighbors[key]; ok {
			liked += sim
		}
	}

	score := liked / total
	if score > 1 {
		score = 1
	}
	return score, true
}

// Stats reports the table size and load time for introspection endpoints.
func (p *SimilarityProvider) Stats() (items int, loadedAt time.Time) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.table), p.loadedAt
}
