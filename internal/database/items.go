// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/researchradar/researchradar/internal/features"
	"github.com/researchradar/researchradar/internal/models"
)

// IngestItem inserts a candidate and its extracted features. Re-ingesting
// the same (project, item_type, external_id) is a no-op that returns the
// existing row, so feature sets stay immutable after first ingestion.
func (db *DB) IngestItem(ctx context.Context, item models.Item, feats []features.Feature) (models.Item, bool, error) {
	existing, err := db.itemByExternalID(ctx, item.ProjectID, item.ItemType, item.ExternalID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, false, err
	}

	item.ItemID = uuid.NewString()
	item.IngestedAt = time.Now().UTC()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return models.Item{}, false, fmt.Errorf("begin ingest: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (item_id, project_id, item_type, external_id, title, summary, url,
		                    duration_seconds, published_at, views, likes, authors, ingested_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ItemID, item.ProjectID, item.ItemType, item.ExternalID, item.Title, item.Summary, item.URL,
		item.DurationSeconds, item.PublishedAt, item.Views, item.Likes, item.Authors, item.IngestedAt)
	if err != nil {
		return models.Item{}, false, fmt.Errorf("insert item: %w", err)
	}

	for _, f := range feats {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO item_features (item_id, category, token)
			 VALUES (?, ?, ?)
			 ON CONFLICT DO NOTHING`,
			item.ItemID, f.Category, f.Token)
		if err != nil {
			return models.Item{}, false, fmt.Errorf("insert item feature %s: %w", f.Token, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Item{}, false, fmt.Errorf("commit ingest: %w", err)
	}
	return item, true, nil
}

func (db *DB) itemByExternalID(ctx context.Context, projectID, itemType, externalID string) (models.Item, error) {
	var item models.Item
	err := db.conn.QueryRowContext(ctx,
		`SELECT item_id, project_id, item_type, external_id, title, summary, url,
		        duration_seconds, published_at, views, likes, authors, ingested_at
		 FROM items WHERE project_id = ? AND item_type = ? AND external_id = ?`,
		projectID, itemType, externalID).
		Scan(&item.ItemID, &item.ProjectID, &item.ItemType, &item.ExternalID, &item.Title,
			&item.Summary, &item.URL, &item.DurationSeconds, &item.PublishedAt,
			&item.Views, &item.Likes, &item.Authors, &item.IngestedAt)
	return item, err
}

// GetItem returns an item by ID.
func (db *DB) GetItem(ctx context.Context, itemID string) (models.Item, error) {
	var item models.Item
	err := db.conn.QueryRowContext(ctx,
		`SELECT item_id, project_id, item_type, external_id, title, summary, url,
		        duration_seconds, published_at, views, likes, authors, ingested_at
		 FROM items WHERE item_id = ?`, itemID).
		Scan(&item.ItemID, &item.ProjectID, &item.ItemType, &item.ExternalID, &item.Title,
			&item.Summary, &item.URL, &item.DurationSeconds, &item.PublishedAt,
			&item.Views, &item.Likes, &item.Authors, &item.IngestedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, fmt.Errorf("item %s: %w", itemID, sql.ErrNoRows)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("query item %s: %w", itemID, err)
	}
	return item, nil
}

// ItemFeatures returns an item's immutable feature set.
func (db *DB) ItemFeatures(ctx context.Context, itemID string) (features.Set, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT token FROM item_features WHERE item_id = ?`, itemID)
	if err != nil {
		return nil, fmt.Errorf("query item features: %w", err)
	}
	defer rows.Close()

	set := make(features.Set)
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan item feature: %w", err)
		}
		set.Add(token)
	}
	return set, rows.Err()
}

// CountItems returns the number of candidates ingested for a project.
func (db *DB) CountItems(ctx context.Context, projectID string) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE project_id = ?`, projectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}
