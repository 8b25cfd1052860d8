// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package database

import (
	"context"
	"fmt"
)

// schemaStatements create the tables in dependency order. DuckDB executes
// them idempotently via IF NOT EXISTS.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		project_id  VARCHAR PRIMARY KEY,
		external_id VARCHAR,
		topic       VARCHAR NOT NULL,
		objective   VARCHAR,
		guidelines  VARCHAR,
		created_at  TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_features (
		project_id VARCHAR NOT NULL,
		category   VARCHAR NOT NULL,
		token      VARCHAR NOT NULL,
		UNIQUE (project_id, category, token)
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		item_id          VARCHAR PRIMARY KEY,
		project_id       VARCHAR NOT NULL,
		item_type        VARCHAR NOT NULL,
		external_id      VARCHAR NOT NULL,
		title            VARCHAR NOT NULL,
		summary          VARCHAR,
		url              VARCHAR,
		duration_seconds BIGINT,
		published_at     TIMESTAMP,
		views            BIGINT,
		likes            BIGINT,
		authors          VARCHAR,
		ingested_at      TIMESTAMP NOT NULL,
		UNIQUE (project_id, item_type, external_id)
	)`,

	`CREATE TABLE IF NOT EXISTS item_features (
		item_id  VARCHAR NOT NULL,
		category VARCHAR NOT NULL,
		token    VARCHAR NOT NULL,
		UNIQUE (item_id, category, token)
	)`,

	`CREATE TABLE IF NOT EXISTS impressions (
		project_id VARCHAR NOT NULL,
		item_type  VARCHAR NOT NULL,
		item_id    VARCHAR NOT NULL,
		shown_at   TIMESTAMP NOT NULL,
		PRIMARY KEY (project_id, item_type, item_id)
	)`,

	`CREATE TABLE IF NOT EXISTS staged_recs (
		project_id    VARCHAR NOT NULL,
		item_id       VARCHAR NOT NULL,
		item_type     VARCHAR NOT NULL,
		score         DOUBLE NOT NULL,
		rank_position INTEGER NOT NULL,
		staged_at     TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS feedback (
		feedback_id VARCHAR PRIMARY KEY,
		project_id  VARCHAR NOT NULL,
		item_type   VARCHAR NOT NULL,
		item_id     VARCHAR NOT NULL,
		liked       BOOLEAN NOT NULL,
		created_at  TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS cf_similarity (
		item_key     VARCHAR NOT NULL,
		neighbor_key VARCHAR NOT NULL,
		score        DOUBLE NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_items_project ON items (project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_item_features_item ON item_features (item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_project ON feedback (project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_staged_project ON staged_recs (project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cf_item ON cf_similarity (item_key)`,
}

// initSchema creates all tables and indexes.
func (db *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
