// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

// Package config provides layered configuration loading for ResearchRadar.
//
// Configuration is resolved in three layers, each overriding the previous:
//
//  1. Struct defaults (defaultConfig)
//  2. YAML config file (CONFIG_PATH env var or DefaultConfigPaths)
//  3. Environment variables (e.g. HTTP_PORT, DUCKDB_PATH, RECOMMEND_TOP_K)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the ResearchRadar server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Events    EventsConfig    `koanf:"events"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_PORT: Listen port (default: 8484)
//   - HTTP_TIMEOUT: Request timeout (default: 30s)
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	Timeout           time.Duration `koanf:"timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// DatabaseConfig holds DuckDB settings.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path (default: /data/researchradar.duckdb)
//   - DUCKDB_MAX_MEMORY: Memory limit passed to DuckDB (default: 2GB)
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads is the DuckDB thread count. 0 means use runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// RecommendConfig holds recommendation engine settings.
//
// The engine blends a feature-overlap content score with a collaborative
// signal when one is available for the candidate:
//
//	final = Alpha*content + (1-Alpha)*collaborative
//
// Candidates without a collaborative signal are scored on content alone.
type RecommendConfig struct {
	Enabled bool `koanf:"enabled"`

	// TopK is the number of recommendations promoted per batch.
	TopK int `koanf:"top_k"`

	// MaxK caps client-requested batch sizes.
	MaxK int `koanf:"max_k"`

	// Alpha is the content-score share in the blended score, in [0,1].
	Alpha float64 `koanf:"alpha"`

	// DislikeLambda scales the negative-overlap penalty, in [0,1].
	DislikeLambda float64 `koanf:"dislike_lambda"`

	// DislikePolicy selects how disliked-feature overlap is applied:
	// "penalize" subtracts DislikeLambda-weighted overlap from the score,
	// "suppress" drops candidates whose negative overlap exceeds positive.
	DislikePolicy string `koanf:"dislike_policy"`

	// MinFeedback is the number of feedback records a project needs before
	// the collaborative signal participates in scoring.
	MinFeedback int `koanf:"min_feedback"`

	// KeywordLimit is the number of salient title tokens kept per item.
	KeywordLimit int `koanf:"keyword_limit"`

	// ClusterTokenLimit is the number of embedding cluster tags kept per item.
	ClusterTokenLimit int `koanf:"cluster_token_limit"`

	// CFReloadInterval is how often the similarity table is reloaded.
	CFReloadInterval time.Duration `koanf:"cf_reload_interval"`

	// CategoryWeights maps feature category prefixes to weights used by the
	// weighted overlap variant. Empty means the flat (unweighted) variant.
	CategoryWeights map[string]float64 `koanf:"category_weights"`
}

// EmbeddingConfig holds settings for the optional embedding sidecar that
// assigns cluster tokens to items. When disabled, or when the sidecar is
// unreachable, items simply carry no cluster features.
type EmbeddingConfig struct {
	Enabled           bool          `koanf:"enabled"`
	URL               string        `koanf:"url"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	BreakerThreshold  uint32        `koanf:"breaker_threshold"`
	BreakerCooldown   time.Duration `koanf:"breaker_cooldown"`
}

// EventsConfig holds settings for the in-process event bus.
type EventsConfig struct {
	BufferSize int `koanf:"buffer_size"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Default returns a Config with all default values, without consulting
// the config file or environment.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config with all default values. These are applied
// first, then overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8484,
			Timeout:           30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Database: DatabaseConfig{
			Path:      "/data/researchradar.duckdb",
			MaxMemory: "2GB",
			Threads:   0,
		},
		Recommend: RecommendConfig{
			Enabled:           true,
			TopK:              15,
			MaxK:              100,
			Alpha:             0.3,
			DislikeLambda:     0.5,
			DislikePolicy:     "penalize",
			MinFeedback:       1,
			KeywordLimit:      8,
			ClusterTokenLimit: 2,
			CFReloadInterval:  15 * time.Minute,
			CategoryWeights: map[string]float64{
				"emb":   0.40,
				"tok":   0.30,
				"dur":   0.10,
				"fresh": 0.10,
				"pop":   0.05,
				"type":  0.05,
			},
		},
		Embedding: EmbeddingConfig{
			Enabled:           false,
			URL:               "",
			Timeout:           5 * time.Second,
			RequestsPerSecond: 10,
			BreakerThreshold:  5,
			BreakerCooldown:   30 * time.Second,
		},
		Events: EventsConfig{
			BufferSize: 64,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks that the loaded configuration is internally consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateEmbedding(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	if !c.Server.RateLimitDisabled && c.Server.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive when rate limiting is enabled, got %d", c.Server.RateLimitRequests)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH must not be empty")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database threads must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if !r.Enabled {
		return nil
	}
	if r.TopK <= 0 {
		return fmt.Errorf("RECOMMEND_TOP_K must be positive, got %d", r.TopK)
	}
	if r.MaxK < r.TopK {
		return fmt.Errorf("RECOMMEND_MAX_K (%d) must be >= RECOMMEND_TOP_K (%d)", r.MaxK, r.TopK)
	}
	if r.Alpha < 0 || r.Alpha > 1 {
		return fmt.Errorf("RECOMMEND_ALPHA must be in [0,1], got %g", r.Alpha)
	}
	if r.DislikeLambda < 0 || r.DislikeLambda > 1 {
		return fmt.Errorf("RECOMMEND_DISLIKE_LAMBDA must be in [0,1], got %g", r.DislikeLambda)
	}
	switch r.DislikePolicy {
	case "penalize", "suppress":
	default:
		return fmt.Errorf("RECOMMEND_DISLIKE_POLICY must be 'penalize' or 'suppress', got %q", r.DislikePolicy)
	}
	if r.MinFeedback < 0 {
		return fmt.Errorf("RECOMMEND_MIN_FEEDBACK must be >= 0, got %d", r.MinFeedback)
	}
	if r.KeywordLimit <= 0 {
		return fmt.Errorf("RECOMMEND_KEYWORD_LIMIT must be positive, got %d", r.KeywordLimit)
	}
	if r.ClusterTokenLimit < 0 {
		return fmt.Errorf("RECOMMEND_CLUSTER_TOKEN_LIMIT must be >= 0, got %d", r.ClusterTokenLimit)
	}
	for category, weight := range r.CategoryWeights {
		if weight < 0 {
			return fmt.Errorf("category weight for %q must be >= 0, got %g", category, weight)
		}
	}
	return nil
}

func (c *Config) validateEmbedding() error {
	if !c.Embedding.Enabled {
		return nil
	}
	if c.Embedding.URL == "" {
		return fmt.Errorf("EMBEDDING_URL is required when EMBEDDING_ENABLED=true")
	}
	if c.Embedding.Timeout <= 0 {
		return fmt.Errorf("EMBEDDING_TIMEOUT must be positive, got %s", c.Embedding.Timeout)
	}
	if c.Embedding.RequestsPerSecond <= 0 {
		return fmt.Errorf("EMBEDDING_REQUESTS_PER_SECOND must be positive, got %g", c.Embedding.RequestsPerSecond)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got %q", c.Logging.Format)
	}
	return nil
}
