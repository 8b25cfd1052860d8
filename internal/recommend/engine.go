// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Engine generates recommendation batches for projects.
type Engine struct {
	provider DataProvider
	stager   Stager
	cf       CFProvider
	config   Config
	logger   zerolog.Logger

	// stageMu serializes staging per project. Different projects never
	// contend; concurrent runs for the same project are ordered and the
	// later writer wins.
	stageMu sync.Map // projectID -> *sync.Mutex
}

// NewEngine creates an engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(provider DataProvider, stager Stager, cf CFProvider, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &Engine{
		provider: provider,
		stager:   stager,
		cf:       cf,
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Generate builds and stages a fresh batch for the project. k <= 0 uses the
// configured TopK. On an empty candidate pool the staged batch is cleared
// and ErrNoCandidates is returned alongside an empty batch.
func (e *Engine) Generate(ctx context.Context, projectID string, k int) (Batch, error) {
	start := time.Now()
	if k <= 0 {
		k = e.config.TopK
	}

	profile, err := e.provider.Profile(ctx, projectID)
	if err != nil {
		return Batch{}, fmt.Errorf("loading profile for %s: %w", projectID, err)
	}

	candidates, err := e.provider.UnseenCandidates(ctx, projectID)
	if err != nil {
		return Batch{}, fmt.Errorf("loading candidates for %s: %w", projectID, err)
	}

	scored := e.scoreCandidates(&profile, candidates)
	scored = rankBatch(scored, k)

	if err := ctx.Err(); err != nil {
		return Batch{}, err
	}

	if err := e.stage(ctx, projectID, scored); err != nil {
		return Batch{}, fmt.Errorf("staging batch for %s: %w", projectID, err)
	}

	batch := Batch{
		ProjectID:   projectID,
		Entries:     scored,
		GeneratedAt: time.Now().UTC(),
	}

	e.logger.Info().
		Str("project_id", projectID).
		Int("candidates", len(candidates)).
		Int("staged", len(scored)).
		Dur("duration", time.Since(start)).
		Msg("batch generated")

	if len(scored) == 0 {
		return batch, ErrNoCandidates
	}
	return batch, nil
}

// scoreCandidates scores all candidates in parallel. Each goroutine writes
// only its own slot; profile and config are read-only during the fan-out.
func (e *Engine) scoreCandidates(profile *Profile, candidates []Candidate) []ScoredCandidate {
	scored := make([]ScoredCandidate, len(candidates))
	var wg sync.WaitGroup

	for i := range candidates {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			scored[idx] = e.scoreOne(profile, candidates[idx])
		}(i)
	}

	wg.Wait()
	return scored
}

// scoreOne scores a single candidate: content score, then the switching
// ensemble decides whether the collaborative signal joins in.
func (e *Engine) scoreOne(profile *Profile, cand Candidate) ScoredCandidate {
	content := ContentScore(profile.Positive, profile.Negative, cand.Features, &e.config)

	cfScore, covered := e.cf.Predict(cand.Key, profile.LikedKeys)
	mode := SelectMode(covered, profile.FeedbackCount, e.config.MinFeedback)

	score := content
	if mode == ModeBlended {
		score = Blend(content, cfScore, e.config.Alpha)
	}

	return ScoredCandidate{
		Candidate: cand,
		Score:     score,
		Mode:      mode,
	}
}

// rankBatch orders candidates by score descending with item ID as the
// deterministic tie-break, truncates to k, and assigns dense ranks 1..N.
func rankBatch(scored []ScoredCandidate, k int) []ScoredCandidate {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ItemID < scored[j].ItemID
	})

	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

// stage replaces the project's staged batch under the per-project lock.
func (e *Engine) stage(ctx context.Context, projectID string, scored []ScoredCandidate) error {
	muIface, _ := e.stageMu.LoadOrStore(projectID, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	return e.stager.StageBatch(ctx, projectID, scored)
}
