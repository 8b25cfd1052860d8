// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

// Package feedback folds the append-only feedback log into a project's
// effective positive and negative feature sets.
//
// The log is never rewritten: a like followed by a dislike simply appends
// a newer record, and only the latest record per (item_type, item_id)
// target is active. Folding over active records means a toggled like
// leaves the positive set exactly as if the like never happened.
package feedback

import (
	"sort"

	"github.com/researchradar/researchradar/internal/features"
	"github.com/researchradar/researchradar/internal/models"
)

// Target identifies the subject of a feedback record.
type Target struct {
	ItemType string
	ItemID   string
}

// Active reduces the log to the latest record per target. Recency is
// decided by CreatedAt with FeedbackID as the tie-break, so the result is
// independent of input order. The returned slice is sorted by target for
// determinism.
func Active(records []models.FeedbackRecord) []models.FeedbackRecord {
	latest := make(map[Target]models.FeedbackRecord, len(records))
	for _, rec := range records {
		key := Target{ItemType: rec.ItemType, ItemID: rec.ItemID}
		cur, ok := latest[key]
		if !ok || newer(rec, cur) {
			latest[key] = rec
		}
	}

	out := make([]models.FeedbackRecord, 0, len(latest))
	for _, rec := range latest {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemType != out[j].ItemType {
			return out[i].ItemType < out[j].ItemType
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out
}

func newer(a, b models.FeedbackRecord) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.FeedbackID > b.FeedbackID
}

// FeatureLookup returns the immutable feature set of an item.
type FeatureLookup func(itemType, itemID string) features.Set

// Sets folds active feedback records into the effective scoring sets:
//
//	positive = base profile ∪ features of currently-liked items
//	negative = union of currently-disliked items' features
//
// A dislike never adds tokens to the positive set. base is not mutated.
func Sets(base features.Set, active []models.FeedbackRecord, lookup FeatureLookup) (pos, neg features.Set) {
	pos = base.Clone()
	neg = make(features.Set)

	for _, rec := range active {
		feats := lookup(rec.ItemType, rec.ItemID)
		if feats == nil {
			continue
		}
		if rec.Liked {
			for t := range feats {
				pos.Add(t)
			}
		} else {
			for t := range feats {
				neg.Add(t)
			}
		}
	}
	return pos, neg
}

// LikedKeys returns the similarity-table keys ("<item_type>:<external_id>")
// of currently-liked items, using the supplied external-ID lookup.
func LikedKeys(active []models.FeedbackRecord, externalID func(itemType, itemID string) (string, bool)) []string {
	var keys []string
	for _, rec := range active {
		if !rec.Liked {
			continue
		}
		ext, ok := externalID(rec.ItemType, rec.ItemID)
		if !ok {
			continue
		}
		keys = append(keys, rec.ItemType+":"+ext)
	}
	return keys
}
