// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/researchradar/researchradar/internal/models"
	"github.com/researchradar/researchradar/internal/recommend"
)

// StageBatch atomically replaces the project's staged batch: the previous
// rows are deleted, the new entries inserted with their dense ranks, and
// impressions recorded, all in one transaction. An empty entries slice
// clears the batch. Implements recommend.Stager.
func (db *DB) StageBatch(ctx context.Context, projectID string, entries []recommend.ScoredCandidate) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin stage batch: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM staged_recs WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clear staged batch: %w", err)
	}

	now := time.Now().UTC()
	for _, e := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO staged_recs (project_id, item_id, item_type, score, rank_position, staged_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			projectID, e.ItemID, e.ItemType, e.Score, e.Rank, now)
		if err != nil {
			return fmt.Errorf("insert staged rec: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO impressions (project_id, item_type, item_id, shown_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT DO NOTHING`,
			projectID, e.ItemType, e.ItemID, now)
		if err != nil {
			return fmt.Errorf("record staged impression: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit stage batch: %w", err)
	}
	return nil
}

// StagedBatch returns the project's current staged batch ordered by rank.
func (db *DB) StagedBatch(ctx context.Context, projectID string) ([]models.Recommendation, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT s.project_id, s.item_id, s.item_type, i.title, COALESCE(i.url, ''), s.score, s.rank_position, s.staged_at
		 FROM staged_recs s
		 JOIN items i ON i.item_id = s.item_id
		 WHERE s.project_id = ?
		 ORDER BY s.rank_position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query staged batch: %w", err)
	}
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		var r models.Recommendation
		if err := rows.Scan(&r.ProjectID, &r.ItemID, &r.ItemType, &r.Title, &r.URL, &r.Score, &r.RankPosition, &r.StagedAt); err != nil {
			return nil, fmt.Errorf("scan staged rec: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
