// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/researchradar/researchradar/internal/feedback"
	"github.com/researchradar/researchradar/internal/features"
	"github.com/researchradar/researchradar/internal/models"
	"github.com/researchradar/researchradar/internal/recommend"
)

// Profile implements recommend.DataProvider. It folds the project's
// feedback log over the base profile features to produce the effective
// positive/negative sets and the liked similarity keys.
func (db *DB) Profile(ctx context.Context, projectID string) (recommend.Profile, error) {
	if _, err := db.GetProject(ctx, projectID); err != nil {
		return recommend.Profile{}, err
	}

	base, err := db.ProjectFeatures(ctx, projectID)
	if err != nil {
		return recommend.Profile{}, err
	}

	log, err := db.FeedbackLog(ctx, projectID)
	if err != nil {
		return recommend.Profile{}, err
	}
	active := feedback.Active(log)

	featCache := make(map[string]features.Set)
	extCache := make(map[string]string)
	for _, rec := range active {
		if _, ok := featCache[rec.ItemID]; ok {
			continue
		}
		item, err := db.GetItem(ctx, rec.ItemID)
		if err != nil {
			continue // feedback for a since-deleted item is inert
		}
		feats, err := db.ItemFeatures(ctx, rec.ItemID)
		if err != nil {
			return recommend.Profile{}, err
		}
		featCache[rec.ItemID] = feats
		extCache[rec.ItemID] = item.ExternalID
	}

	pos, neg := feedback.Sets(base, active, func(_, itemID string) features.Set {
		return featCache[itemID]
	})

	likedKeys := feedback.LikedKeys(active, func(_, itemID string) (string, bool) {
		ext, ok := extCache[itemID]
		return ext, ok
	})

	return recommend.Profile{
		ProjectID:     projectID,
		Positive:      pos,
		Negative:      neg,
		LikedKeys:     likedKeys,
		FeedbackCount: len(active),
	}, nil
}

// UnseenCandidates implements recommend.DataProvider. The impression
// ledger is applied as an SQL anti-join so shown items never reach the
// scorer.
func (db *DB) UnseenCandidates(ctx context.Context, projectID string) ([]recommend.Candidate, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT i.item_id, i.item_type, i.external_id, i.title, COALESCE(i.url, '')
		 FROM items i
		 WHERE i.project_id = ?
		   AND NOT EXISTS (
		     SELECT 1 FROM impressions imp
		     WHERE imp.project_id = i.project_id
		       AND imp.item_type = i.item_type
		       AND imp.item_id = i.item_id)
		 ORDER BY i.ingested_at, i.item_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query unseen candidates: %w", err)
	}
	defer rows.Close()

	var cands []recommend.Candidate
	for rows.Next() {
		var c recommend.Candidate
		var externalID string
		if err := rows.Scan(&c.ItemID, &c.ItemType, &externalID, &c.Title, &c.URL); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		c.Key = c.ItemType + ":" + externalID
		cands = append(cands, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range cands {
		feats, err := db.ItemFeatures(ctx, cands[i].ItemID)
		if err != nil {
			return nil, err
		}
		cands[i].Features = feats
	}
	return cands, nil
}

// ProfileSummary reports the project's effective feature sets grouped by
// category, for the API layer.
func (db *DB) ProfileSummary(ctx context.Context, projectID string) (models.ProfileSummary, error) {
	profile, err := db.Profile(ctx, projectID)
	if err != nil {
		return models.ProfileSummary{}, err
	}

	return models.ProfileSummary{
		ProjectID:     projectID,
		Positive:      groupByCategory(profile.Positive),
		Negative:      groupByCategory(profile.Negative),
		FeedbackCount: profile.FeedbackCount,
	}, nil
}

func groupByCategory(set features.Set) map[string][]string {
	out := make(map[string][]string)
	for token := range set {
		cat := ""
		if i := strings.IndexByte(token, ':'); i > 0 {
			cat = token[:i]
		}
		out[cat] = append(out[cat], token)
	}
	for cat := range out {
		sort.Strings(out[cat])
	}
	return out
}
