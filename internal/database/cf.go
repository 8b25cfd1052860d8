// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package database

import (
	"context"
	"fmt"

	"github.com/researchradar/researchradar/internal/recommend"
)

// LoadSimilarityTable reads the cf_similarity table into memory. The table
// is refreshed out-of-band by the offline pipeline; this service only ever
// reads it.
func (db *DB) LoadSimilarityTable(ctx context.Context) (recommend.SimilarityTable, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT item_key, neighbor_key, score FROM cf_similarity`)
	if err != nil {
		return nil, fmt.Errorf("query cf_similarity: %w", err)
	}
	defer rows.Close()

	table := make(recommend.SimilarityTable)
	for rows.Next() {
		var itemKey, neighborKey string
		var score float64
		if err := rows.Scan(&itemKey, &neighborKey, &score); err != nil {
			return nil, fmt.Errorf("scan cf_similarity row: %w", err)
		}
		neighbors, ok := table[itemKey]
		if !ok {
			neighbors = make(map[string]float64)
			table[itemKey] = neighbors
		}
		neighbors[neighborKey] = score
	}
	return table, rows.Err()
}

// ReplaceSimilarityTable swaps the cf_similarity rows. Used by tests and
// bulk loaders.
func (db *DB) ReplaceSimilarityTable(ctx context.Context, table recommend.SimilarityTable) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace cf_similarity: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM cf_similarity`); err != nil {
		return fmt.Errorf("clear cf_similarity: %w", err)
	}

	for itemKey, neighbors := range table {
		for neighborKey, score := range neighbors {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO cf_similarity (item_key, neighbor_key, score) VALUES (?, ?, ?)`,
				itemKey, neighborKey, score)
			if err != nil {
				return fmt.Errorf("insert cf_similarity row: %w", err)
			}
		}
	}
	return tx.Commit()
}
