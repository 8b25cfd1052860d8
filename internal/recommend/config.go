// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package recommend

import "fmt"

// Dislike policies.
const (
	// DislikePenalize subtracts lambda-weighted negative overlap from the
	// content score: max(0, J+ - lambda*J-).
	DislikePenalize = "penalize"

	// DislikeSuppress ignores the negative set in scoring; a dislike only
	// cancels the item's own like.
	DislikeSuppress = "suppress"
)

// Config holds engine parameters.
type Config struct {
	// TopK is the number of entries staged per batch.
	TopK int

	// Alpha is the content share of the blended score, in [0,1].
	Alpha float64

	// DislikeLambda scales the negative-overlap penalty, in [0,1].
	DislikeLambda float64

	// DislikePolicy is DislikePenalize or DislikeSuppress.
	DislikePolicy string

	// MinFeedback is the feedback count required before the collaborative
	// signal participates.
	MinFeedback int

	// CategoryWeights enables the weighted per-category Jaccard variant
	// when non-empty. Weights are normalized over the categories present
	// in a given comparison.
	CategoryWeights map[string]float64
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		TopK:          15,
		Alpha:         0.3,
		DislikeLambda: 0.5,
		DislikePolicy: DislikePenalize,
		MinFeedback:   1,
		CategoryWeights: map[string]float64{
			"emb":   0.40,
			"tok":   0.30,
			"dur":   0.10,
			"fresh": 0.10,
			"pop":   0.05,
			"type":  0.05,
		},
	}
}

// Validate checks parameter ranges.
func (c *Config) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in [0,1], got %g", c.Alpha)
	}
	if c.DislikeLambda < 0 || c.DislikeLambda > 1 {
		return fmt.Errorf("dislike_lambda must be in [0,1], got %g", c.DislikeLambda)
	}
	switch c.DislikePolicy {
	case DislikePenalize, DislikeSuppress:
	default:
		return fmt.Errorf("dislike_policy must be %q or %q, got %q", DislikePenalize, DislikeSuppress, c.DislikePolicy)
	}
	if c.MinFeedback < 0 {
		return fmt.Errorf("min_feedback must be >= 0, got %d", c.MinFeedback)
	}
	for cat, w := range c.CategoryWeights {
		if w < 0 {
			return fmt.Errorf("category weight %q must be >= 0, got %g", cat, w)
		}
	}
	return nil
}
