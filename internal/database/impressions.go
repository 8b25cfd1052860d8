// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package database

import (
	"context"
	"fmt"
	"time"
)

// RecordShown marks an item as shown. The primary key turns duplicate
// inserts into no-ops, so racing writers converge on one row.
func (db *DB) RecordShown(ctx context.Context, projectID, itemType, itemID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO impressions (project_id, item_type, item_id, shown_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		projectID, itemType, itemID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record impression: %w", err)
	}
	return nil
}

// HasBeenShown reports whether the item has ever been shown to the project.
func (db *DB) HasBeenShown(ctx context.Context, projectID, itemType, itemID string) (bool, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM impressions
		 WHERE project_id = ? AND item_type = ? AND item_id = ?`,
		projectID, itemType, itemID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query impression: %w", err)
	}
	return n > 0, nil
}

// CountImpressions returns the size of a project's impression ledger.
func (db *DB) CountImpressions(ctx context.Context, projectID string) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM impressions WHERE project_id = ?`, projectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count impressions: %w", err)
	}
	return n, nil
}
