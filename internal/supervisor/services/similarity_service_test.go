// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/researchradar/researchradar/internal/recommend"
)

// mockLoader implements SimilarityLoader.
type mockLoader struct {
	table recommend.SimilarityTable
	err   error
	calls atomic.Int32
}

func (m *mockLoader) LoadSimilarityTable(_ context.Context) (recommend.SimilarityTable, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.table, nil
}

func TestSimilarityServiceInitialLoad(t *testing.T) {
	loader := &mockLoader{table: recommend.SimilarityTable{
		"video:a": {"video:b": 0.8},
	}}
	provider := recommend.NewSimilarityProvider()
	svc := NewSimilarityService(loader, provider, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for {
		if items, _ := provider.Stats(); items == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("table was not loaded")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop")
	}
}

func TestSimilarityServicePeriodicReload(t *testing.T) {
	loader := &mockLoader{table: recommend.SimilarityTable{}}
	provider := recommend.NewSimilarityProvider()
	svc := NewSimilarityService(loader, provider, 20*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	svc.Serve(ctx) //nolint:errcheck

	if loader.calls.Load() < 3 {
		t.Errorf("loader calls = %d, want >= 3", loader.calls.Load())
	}
}

func TestSimilarityServiceLoadFailureKeepsOldTable(t *testing.T) {
	provider := recommend.NewSimilarityProvider()
	provider.Replace(recommend.SimilarityTable{"video:a": {"video:b": 0.5}})

	loader := &mockLoader{err: errors.New("storage unavailable")}
	svc := NewSimilarityService(loader, provider, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	svc.Serve(ctx) //nolint:errcheck

	if items, _ := provider.Stats(); items != 1 {
		t.Errorf("table items = %d, want 1 (previous table kept)", items)
	}
}

func TestSimilarityServiceDefaultsInterval(t *testing.T) {
	svc := NewSimilarityService(&mockLoader{}, recommend.NewSimilarityProvider(), 0, zerolog.Nop())
	if svc.interval != 15*time.Minute {
		t.Errorf("interval = %v, want 15m", svc.interval)
	}
}
