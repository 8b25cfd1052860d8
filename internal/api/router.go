// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/researchradar/researchradar/internal/middleware"
)

// NewRouter builds the HTTP routing tree. Request IDs, panic recovery,
// and CORS apply globally; rate limiting and Prometheus instrumentation
// apply to the versioned API group only, so /healthz and /metrics stay
// cheap for probes and scrapers.
func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	if len(h.cfg.Server.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.cfg.Server.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"ETag", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if !h.cfg.Server.RateLimitDisabled {
			r.Use(httprate.LimitByIP(h.cfg.Server.RateLimitRequests, h.cfg.Server.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Post("/projects", h.CreateProject)
		r.Route("/projects/{projectID}", func(r chi.Router) {
			r.Get("/", h.GetProject)
			r.Delete("/", h.DeleteProject)
			r.Post("/candidates", h.IngestCandidates)
			r.Post("/recommendations", h.GenerateRecommendations)
			r.Get("/recommendations", h.GetRecommendations)
			r.Post("/feedback", h.PostFeedback)
		})

		r.Get("/recommendations/status", h.Status)
		r.Get("/recommendations/config", h.EngineConfig)
	})

	return r
}
