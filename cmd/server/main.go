// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

// Package main is the entry point for the ResearchRadar server.
//
// ResearchRadar recommends research resources (videos and papers) to
// projects by combining feature-overlap content scoring with a
// collaborative similarity signal. The server exposes a REST API for
// project management, candidate ingestion, batch generation, and
// feedback.
//
// # Startup order
//
//  1. Configuration: defaults, config.yaml, environment variables (koanf v2)
//  2. Logging: zerolog, configured via LOG_LEVEL / LOG_FORMAT
//  3. Database: DuckDB file at DUCKDB_PATH with the full schema
//  4. Recommendation engine and similarity provider
//  5. Event bus: in-process watermill Pub/Sub for audit events
//  6. Supervisor tree: similarity reload, event audit, HTTP server
//
// # Configuration
//
// Settings are layered (highest priority wins): environment variables,
// config file, built-in defaults. Common variables:
//
//	HTTP_HOST / HTTP_PORT        listen address (default 0.0.0.0:8484)
//	DUCKDB_PATH                  database file (default /data/researchradar.duckdb)
//	RECOMMEND_TOP_K              batch size (default 15)
//	RECOMMEND_ALPHA              content share of the blended score (default 0.3)
//	EMBEDDING_ENABLED            enable the cluster-token sidecar (default false)
//
// # Signal handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server stops
// accepting connections, in-flight requests drain within the shutdown
// timeout, then background services and the database close.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/researchradar/researchradar/internal/api"
	"github.com/researchradar/researchradar/internal/config"
	"github.com/researchradar/researchradar/internal/database"
	"github.com/researchradar/researchradar/internal/embedding"
	"github.com/researchradar/researchradar/internal/events"
	"github.com/researchradar/researchradar/internal/logging"
	"github.com/researchradar/researchradar/internal/recommend"
	"github.com/researchradar/researchradar/internal/supervisor"
	"github.com/researchradar/researchradar/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Bool("recommend_enabled", cfg.Recommend.Enabled).
		Bool("embedding_enabled", cfg.Embedding.Enabled).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	engineCfg := recommend.Config{
		TopK:            cfg.Recommend.TopK,
		Alpha:           cfg.Recommend.Alpha,
		DislikeLambda:   cfg.Recommend.DislikeLambda,
		DislikePolicy:   cfg.Recommend.DislikePolicy,
		MinFeedback:     cfg.Recommend.MinFeedback,
		CategoryWeights: cfg.Recommend.CategoryWeights,
	}

	cf := recommend.NewSimilarityProvider()
	engine, err := recommend.NewEngine(db, db, cf, engineCfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	var embedder embedding.Provider = embedding.Disabled{}
	if cfg.Embedding.Enabled {
		embedder = embedding.NewClient(&cfg.Embedding)
		logging.Info().Str("url", cfg.Embedding.URL).Msg("Embedding sidecar enabled")
	}

	bus := events.NewBus(cfg.Events.BufferSize)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewTree(slogLogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	handler := api.NewHandler(db, engine, cf, bus, embedder, cfg, logging.Logger())

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.NewRouter(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Data layer: keep the collaborative similarity table fresh.
	tree.AddDataService(services.NewSimilarityService(db, cf, cfg.Recommend.CFReloadInterval, logging.Logger()))

	// Messaging layer: durable audit trail of bus events.
	tree.AddMessagingService(services.NewAuditService(bus, logging.Logger()))

	// API layer.
	tree.AddAPIService(services.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error during shutdown")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	logging.Info().Msg("Shutdown complete")
}
