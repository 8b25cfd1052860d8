// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/researchradar/researchradar/internal/metrics"
	"github.com/researchradar/researchradar/internal/recommend"
)

// SimilarityLoader loads the item-item similarity table from storage.
// Satisfied by *database.DB.
type SimilarityLoader interface {
	LoadSimilarityTable(ctx context.Context) (recommend.SimilarityTable, error)
}

// SimilarityService periodically reloads the collaborative similarity
// table into the in-memory provider. The table is produced out of band;
// this service only keeps the serving copy fresh. A failed reload keeps
// the previous table, so the engine degrades to stale similarities
// rather than losing the collaborative signal entirely.
type SimilarityService struct {
	loader   SimilarityLoader
	provider *recommend.SimilarityProvider
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSimilarityService creates the reload service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSimilarityService(loader SimilarityLoader, provider *recommend.SimilarityProvider, interval time.Duration, logger zerolog.Logger) *SimilarityService {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &SimilarityService{
		loader:   loader,
		provider: provider,
		interval: interval,
		logger:   logger.With().Str("service", "similarity").Logger(),
		name:     "similarity-reload",
	}
}

// Serve implements suture.Service: an initial load, then reloads on a
// fixed interval until the context is canceled.
func (s *SimilarityService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("similarity reload service starting")

	if err := s.reload(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("initial similarity load failed (will retry on schedule)")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("similarity reload service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.reload(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("similarity reload failed")
			}
		}
	}
}

func (s *SimilarityService) reload(ctx context.Context) error {
	loadCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	start := time.Now()
	table, err := s.loader.LoadSimilarityTable(loadCtx)
	if err != nil {
		return err
	}

	s.provider.Replace(table)
	metrics.SetSimilarityTableItems(len(table))

	s.logger.Info().
		Int("items", len(table)).
		Dur("duration", time.Since(start)).
		Msg("similarity table reloaded")
	return nil
}

// String identifies the service in suture logs.
func (s *SimilarityService) String() string {
	return s.name
}
