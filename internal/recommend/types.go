// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/researchradar/researchradar/internal/features"
)

// Sentinel errors surfaced to the API layer.
var (
	// ErrNoCandidates indicates the project has no unseen candidates left.
	ErrNoCandidates = errors.New("no unseen candidates available")

	// ErrProjectNotFound indicates the project does not exist.
	ErrProjectNotFound = errors.New("project not found")
)

// Candidate is one unseen resource eligible for ranking.
type Candidate struct {
	ItemID   string
	ItemType string
	Title    string
	URL      string

	// Key identifies the item in the collaborative similarity table,
	// "<item_type>:<external_id>".
	Key string

	// Features is the candidate's immutable feature set.
	Features features.Set
}

// Profile is a project's effective scoring state after folding feedback.
type Profile struct {
	ProjectID string

	// Positive is the base profile united with liked items' features.
	Positive features.Set

	// Negative is the union of disliked items' features.
	Negative features.Set

	// LikedKeys are the similarity-table keys of currently-liked items.
	LikedKeys []string

	// FeedbackCount is the number of active feedback records.
	FeedbackCount int
}

// ScoredCandidate is a candidate with its final score and dense rank.
type ScoredCandidate struct {
	Candidate
	Score float64
	Rank  int
	Mode  Mode
}

// Batch is the result of one generation run.
type Batch struct {
	ProjectID   string
	Entries     []ScoredCandidate
	GeneratedAt time.Time
}

// DataProvider supplies the engine with project and candidate state.
// Implemented by the database layer.
type DataProvider interface {
	// Profile returns the project's effective scoring profile.
	// Returns ErrProjectNotFound for unknown projects.
	Profile(ctx context.Context, projectID string) (Profile, error)

	// UnseenCandidates returns the project's candidates that have never
	// been shown, with features attached.
	UnseenCandidates(ctx context.Context, projectID string) ([]Candidate, error)
}

// Stager atomically replaces a project's staged batch.
// Implemented by the database layer.
type Stager interface {
	// StageBatch replaces the staged batch and records impressions for the
	// entries in a single transaction. An empty entries slice clears the
	// project's batch.
	StageBatch(ctx context.Context, projectID string, entries []ScoredCandidate) error
}

// CFProvider exposes the collaborative similarity signal.
type CFProvider interface {
	// Predict returns the normalized liked-neighbor score for the item key.
	// ok is false when the table has no coverage for the key.
	Predict(itemKey string, likedKeys []string) (score float64, ok bool)
}
