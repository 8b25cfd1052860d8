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
	"github.com/researchradar/researchradar/internal/recommend"
)

// CreateProject inserts a project and its base profile features.
func (db *DB) CreateProject(ctx context.Context, topic, objective, guidelines, externalID string, profileFeats []features.Feature) (models.Project, error) {
	project := models.Project{
		ProjectID:  uuid.NewString(),
		ExternalID: externalID,
		Topic:      topic,
		Objective:  objective,
		Guidelines: guidelines,
		CreatedAt:  time.Now().UTC(),
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return models.Project{}, fmt.Errorf("begin create project: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx,
		`INSERT INTO projects (project_id, external_id, topic, objective, guidelines, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		project.ProjectID, project.ExternalID, project.Topic, project.Objective, project.Guidelines, project.CreatedAt)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}

	if err := insertProjectFeatures(ctx, tx, project.ProjectID, profileFeats); err != nil {
		return models.Project{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Project{}, fmt.Errorf("commit create project: %w", err)
	}

	db.logger.Info().Str("project_id", project.ProjectID).Str("topic", topic).Msg("project created")
	return project, nil
}

func insertProjectFeatures(ctx context.Context, tx *sql.Tx, projectID string, feats []features.Feature) error {
	for _, f := range feats {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO project_features (project_id, category, token)
			 VALUES (?, ?, ?)
			 ON CONFLICT DO NOTHING`,
			projectID, f.Category, f.Token)
		if err != nil {
			return fmt.Errorf("insert project feature %s: %w", f.Token, err)
		}
	}
	return nil
}

// GetProject returns a project by ID.
// Returns recommend.ErrProjectNotFound for unknown IDs.
func (db *DB) GetProject(ctx context.Context, projectID string) (models.Project, error) {
	var p models.Project
	err := db.conn.QueryRowContext(ctx,
		`SELECT project_id, external_id, topic, objective, guidelines, created_at
		 FROM projects WHERE project_id = ?`, projectID).
		Scan(&p.ProjectID, &p.ExternalID, &p.Topic, &p.Objective, &p.Guidelines, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, recommend.ErrProjectNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("query project %s: %w", projectID, err)
	}
	return p, nil
}

// DeleteProject removes a project and all dependent rows.
func (db *DB) DeleteProject(ctx context.Context, projectID string) error {
	if _, err := db.GetProject(ctx, projectID); err != nil {
		return err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete project: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	statements := []string{
		`DELETE FROM item_features WHERE item_id IN (SELECT item_id FROM items WHERE project_id = ?)`,
		`DELETE FROM items WHERE project_id = ?`,
		`DELETE FROM project_features WHERE project_id = ?`,
		`DELETE FROM impressions WHERE project_id = ?`,
		`DELETE FROM staged_recs WHERE project_id = ?`,
		`DELETE FROM feedback WHERE project_id = ?`,
		`DELETE FROM projects WHERE project_id = ?`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, projectID); err != nil {
			return fmt.Errorf("delete project cascade: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete project: %w", err)
	}

	db.logger.Info().Str("project_id", projectID).Msg("project deleted")
	return nil
}

// ProjectFeatures returns the project's base profile feature set.
func (db *DB) ProjectFeatures(ctx context.Context, projectID string) (features.Set, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT token FROM project_features WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query project features: %w", err)
	}
	defer rows.Close()

	set := make(features.Set)
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan project feature: %w", err)
		}
		set.Add(token)
	}
	return set, rows.Err()
}

// ReplaceProjectFeatures recomputes the base profile features, replacing
// the previous rows. Used when the profile text changes.
func (db *DB) ReplaceProjectFeatures(ctx context.Context, projectID string, feats []features.Feature) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace project features: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_features WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clear project features: %w", err)
	}
	if err := insertProjectFeatures(ctx, tx, projectID, feats); err != nil {
		return err
	}
	return tx.Commit()
}
