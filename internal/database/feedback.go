// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/researchradar/researchradar/internal/models"
)

// AppendFeedback adds a record to the append-only feedback log. The log is
// never rewritten; toggles append newer records.
func (db *DB) AppendFeedback(ctx context.Context, projectID, itemType, itemID string, liked bool) (models.FeedbackRecord, error) {
	rec := models.FeedbackRecord{
		FeedbackID: uuid.NewString(),
		ProjectID:  projectID,
		ItemType:   itemType,
		ItemID:     itemID,
		Liked:      liked,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO feedback (feedback_id, project_id, item_type, item_id, liked, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.FeedbackID, rec.ProjectID, rec.ItemType, rec.ItemID, rec.Liked, rec.CreatedAt)
	if err != nil {
		return models.FeedbackRecord{}, fmt.Errorf("append feedback: %w", err)
	}
	return rec, nil
}

// FeedbackLog returns all feedback records for a project in append order.
func (db *DB) FeedbackLog(ctx context.Context, projectID string) ([]models.FeedbackRecord, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT feedback_id, project_id, item_type, item_id, liked, created_at
		 FROM feedback WHERE project_id = ?
		 ORDER BY created_at, feedback_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query feedback log: %w", err)
	}
	defer rows.Close()

	var records []models.FeedbackRecord
	for rows.Next() {
		var rec models.FeedbackRecord
		if err := rows.Scan(&rec.FeedbackID, &rec.ProjectID, &rec.ItemType, &rec.ItemID, &rec.Liked, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
