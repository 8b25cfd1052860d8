// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

// Package embedding assigns embedding-cluster tokens to text via an
// external sidecar service.
//
// The provider degrades gracefully: when the sidecar is disabled,
// unreachable, rate-limited, or the circuit is open, ClusterTokens returns
// an empty slice and the caller simply omits the emb feature category.
package embedding

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/researchradar/researchradar/internal/config"
	"github.com/researchradar/researchradar/internal/logging"
	"github.com/rs/zerolog"
)

// Provider returns cluster tokens for a piece of text.
type Provider interface {
	ClusterTokens(ctx context.Context, text string) ([]string, error)
}

// Disabled is a Provider that always returns no tokens.
type Disabled struct{}

// ClusterTokens implements Provider.
func (Disabled) ClusterTokens(context.Context, string) ([]string, error) {
	return nil, nil
}

// Client calls the embedding sidecar over HTTP, guarded by a circuit
// breaker and a client-side rate limit.
type Client struct {
	url     string
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]string]
	logger  zerolog.Logger
}

// NewClient creates a sidecar client from configuration.
func NewClient(cfg *config.EmbeddingConfig) *Client {
	logger := logging.With().Str("component", "embedding").Logger()

	cb := gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:        "embedding-sidecar",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &Client{
		url:     cfg.URL,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cb:      cb,
		logger:  logger,
	}
}

type clusterRequest struct {
	Text string `json:"text"`
}

type clusterResponse struct {
	Clusters []string `json:"clusters"`
}

// ClusterTokens implements Provider. Failures are logged and reported as
// an empty result so feature extraction can omit the category.
func (c *Client) ClusterTokens(ctx context.Context, text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	tokens, err := c.cb.Execute(func() ([]string, error) {
		return c.fetch(ctx, text)
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("cluster lookup failed, omitting emb features")
		return nil, nil
	}
	return tokens, nil
}

func (c *Client) fetch(ctx context.Context, text string) ([]string, error) {
	body, err := json.Marshal(clusterRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal cluster request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/v1/clusters", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build cluster request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cluster request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
		return nil, fmt.Errorf("cluster request returned %d", resp.StatusCode)
	}

	var out clusterResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode cluster response: %w", err)
	}
	return out.Clusters, nil
}
