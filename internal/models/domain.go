// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

// Package models defines the shared data structures for ResearchRadar:
// research projects, ingested resource candidates, staged recommendations,
// feedback records, and the standard API response envelope.
package models

import "time"

// Item types for ingested research resources.
const (
	ItemTypeVideo = "video"
	ItemTypePaper = "paper"
)

// Project is a research project whose profile drives recommendations.
type Project struct {
	ProjectID  string    `json:"project_id"`
	ExternalID string    `json:"external_id,omitempty"`
	Topic      string    `json:"topic"`
	Objective  string    `json:"objective,omitempty"`
	Guidelines string    `json:"guidelines,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Item is an ingested resource candidate (video or paper) tied to a project.
type Item struct {
	ItemID          string     `json:"item_id"`
	ProjectID       string     `json:"project_id"`
	ItemType        string     `json:"item_type"`
	ExternalID      string     `json:"external_id"`
	Title           string     `json:"title"`
	Summary         string     `json:"summary,omitempty"`
	URL             string     `json:"url,omitempty"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	Views           *int64     `json:"views,omitempty"`
	Likes           *int64     `json:"likes,omitempty"`
	Authors         string     `json:"authors,omitempty"`
	IngestedAt      time.Time  `json:"ingested_at"`
}

// FeatureRow is one (category, token) pair attached to an item or project.
type FeatureRow struct {
	Category string `json:"category"`
	Token    string `json:"token"`
}

// Recommendation is one staged entry of a project's current batch.
type Recommendation struct {
	ProjectID    string    `json:"project_id"`
	ItemID       string    `json:"item_id"`
	ItemType     string    `json:"item_type"`
	Title        string    `json:"title"`
	URL          string    `json:"url,omitempty"`
	Score        float64   `json:"score"`
	RankPosition int       `json:"rank_position"`
	StagedAt     time.Time `json:"staged_at"`
}

// FeedbackRecord is one append-only entry in the feedback log. The active
// record for a (project, item_type, item_id) target is the latest one.
type FeedbackRecord struct {
	FeedbackID string    `json:"feedback_id"`
	ProjectID  string    `json:"project_id"`
	ItemType   string    `json:"item_type"`
	ItemID     string    `json:"item_id"`
	Liked      bool      `json:"liked"`
	CreatedAt  time.Time `json:"created_at"`
}

// Impression marks an item as having been shown to a project.
type Impression struct {
	ProjectID string    `json:"project_id"`
	ItemType  string    `json:"item_type"`
	ItemID    string    `json:"item_id"`
	ShownAt   time.Time `json:"shown_at"`
}

// ProfileSummary reports a project's effective feature sets after folding
// the feedback log, grouped by category.
type ProfileSummary struct {
	ProjectID     string              `json:"project_id"`
	Positive      map[string][]string `json:"positive"`
	Negative      map[string][]string `json:"negative"`
	FeedbackCount int                 `json:"feedback_count"`
}
