// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package embedding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/researchradar/researchradar/internal/config"
)

func testConfig(url string) *config.EmbeddingConfig {
	return &config.EmbeddingConfig{
		Enabled:           true,
		URL:               url,
		Timeout:           time.Second,
		RequestsPerSecond: 100,
		BreakerThreshold:  3,
		BreakerCooldown:   time.Second,
	}
}

func TestClusterTokensSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/clusters" {
			t.Errorf("path = %s, want /v1/clusters", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"clusters":["c12","c7"]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	tokens, err := c.ClusterTokens(context.Background(), "graph neural networks")
	if err != nil {
		t.Fatalf("ClusterTokens failed: %v", err)
	}
	if len(tokens) != 2 || tokens[0] != "c12" {
		t.Errorf("tokens = %v, want [c12 c7]", tokens)
	}
}

func TestClusterTokensDegradesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	tokens, err := c.ClusterTokens(context.Background(), "anything")
	if err != nil {
		t.Fatalf("ClusterTokens should degrade, not fail: %v", err)
	}
	if tokens != nil {
		t.Errorf("tokens = %v, want nil on degrade", tokens)
	}
}

func TestClusterTokensEmptyText(t *testing.T) {
	c := NewClient(testConfig("http://unreachable.invalid"))
	tokens, err := c.ClusterTokens(context.Background(), "")
	if err != nil || tokens != nil {
		t.Errorf("empty text = (%v, %v), want (nil, nil) without any request", tokens, err)
	}
}

func TestClusterTokensBreakerOpensAfterFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	for i := 0; i < 6; i++ {
		c.ClusterTokens(context.Background(), "text") //nolint:errcheck
	}

	// Threshold is 3 consecutive failures; later calls short-circuit.
	if hits > 3 {
		t.Errorf("server hits = %d, want <= 3 once breaker opens", hits)
	}
}

func TestDisabledProvider(t *testing.T) {
	var p Provider = Disabled{}
	tokens, err := p.ClusterTokens(context.Background(), "text")
	if err != nil || tokens != nil {
		t.Errorf("Disabled = (%v, %v), want (nil, nil)", tokens, err)
	}
}
