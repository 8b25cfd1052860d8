// ResearchRadar - Research Resource Recommendation Engine
// Copyright 2026 ResearchRadar contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/researchradar/researchradar

// Package api exposes the HTTP surface of ResearchRadar: project
// management, candidate ingestion, recommendation generation and
// retrieval, feedback recording, and engine introspection.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/researchradar/researchradar/internal/config"
	"github.com/researchradar/researchradar/internal/database"
	"github.com/researchradar/researchradar/internal/embedding"
	"github.com/researchradar/researchradar/internal/events"
	"github.com/researchradar/researchradar/internal/features"
	"github.com/researchradar/researchradar/internal/metrics"
	"github.com/researchradar/researchradar/internal/models"
	"github.com/researchradar/researchradar/internal/recommend"
	"github.com/rs/zerolog"
)

// Handler carries the dependencies of all API endpoints.
type Handler struct {
	db       *database.DB
	engine   *recommend.Engine
	cf       *recommend.SimilarityProvider
	bus      *events.Bus
	embedder embedding.Provider
	cfg      *config.Config
	logger   zerolog.Logger
	started  time.Time
}

// NewHandler creates the API handler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(db *database.DB, engine *recommend.Engine, cf *recommend.SimilarityProvider, bus *events.Bus, embedder embedding.Provider, cfg *config.Config, logger zerolog.Logger) *Handler {
	if embedder == nil {
		embedder = embedding.Disabled{}
	}
	return &Handler{
		db:       db,
		engine:   engine,
		cf:       cf,
		bus:      bus,
		embedder: embedder,
		cfg:      cfg,
		logger:   logger.With().Str("component", "api").Logger(),
		started:  time.Now(),
	}
}

func (h *Handler) extractionOptions() features.Options {
	return features.Options{
		KeywordLimit:      h.cfg.Recommend.KeywordLimit,
		ClusterTokenLimit: h.cfg.Recommend.ClusterTokenLimit,
	}
}

// CreateProjectRequest is the body of POST /api/v1/projects.
type CreateProjectRequest struct {
	Topic      string `json:"topic" validate:"required,min=1,max=500"`
	Objective  string `json:"objective" validate:"max=2000"`
	Guidelines string `json:"guidelines" validate:"max=5000"`
	ExternalID string `json:"external_id" validate:"max=100"`
}

// CreateProject handles POST /api/v1/projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	clusters, _ := h.embedder.ClusterTokens(r.Context(), req.Topic+" "+req.Objective) //nolint:errcheck // degraded lookup omits the category
	profileFeats := features.ExtractProfile(req.Topic, req.Objective, req.Guidelines, clusters, h.extractionOptions())

	start := time.Now()
	project, err := h.db.CreateProject(r.Context(), req.Topic, req.Objective, req.Guidelines, req.ExternalID, profileFeats)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create project", err)
		return
	}

	respondSuccess(w, http.StatusCreated, project, time.Since(start))
}

// GetProject handles GET /api/v1/projects/{projectID}. The response pairs
// the project row with its effective feature-set summary.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	start := time.Now()
	project, err := h.db.GetProject(r.Context(), projectID)
	if err != nil {
		h.respondProjectError(w, err)
		return
	}

	summary, err := h.db.ProfileSummary(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load profile", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"project": project,
		"profile": summary,
	}, time.Since(start))
}

// DeleteProject handles DELETE /api/v1/projects/{projectID}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	start := time.Now()
	if err := h.db.DeleteProject(r.Context(), projectID); err != nil {
		h.respondProjectError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"project_id": projectID, "deleted": "true"}, time.Since(start))
}

// CandidateInput is one raw resource in an ingestion request.
type CandidateInput struct {
	ItemType        string     `json:"item_type" validate:"required,oneof=video paper"`
	ExternalID      string     `json:"external_id" validate:"required,max=200"`
	Title           string     `json:"title" validate:"required,min=1,max=1000"`
	Summary         string     `json:"summary" validate:"max=10000"`
	URL             string     `json:"url" validate:"omitempty,url"`
	DurationSeconds *int64     `json:"duration_seconds"`
	PublishedAt     *time.Time `json:"published_at"`
	Views           *int64     `json:"views"`
	Likes           *int64     `json:"likes"`
	Authors         string     `json:"authors" validate:"max=2000"`
}

// IngestCandidatesRequest is the body of POST .../candidates.
type IngestCandidatesRequest struct {
	Items []CandidateInput `json:"items" validate:"required,min=1,max=500,dive"`
}

// IngestCandidatesResponse reports ingestion counts.
type IngestCandidatesResponse struct {
	Ingested   int `json:"ingested"`
	Duplicates int `json:"duplicates"`
}

// IngestCandidates handles POST /api/v1/projects/{projectID}/candidates.
// Re-submitting an already-known (item_type, external_id) is a no-op.
func (h *Handler) IngestCandidates(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	if _, err := h.db.GetProject(r.Context(), projectID); err != nil {
		h.respondProjectError(w, err)
		return
	}

	var req IngestCandidatesRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	now := time.Now().UTC()
	var resp IngestCandidatesResponse

	for i := range req.Items {
		in := &req.Items[i]

		clusters, _ := h.embedder.ClusterTokens(r.Context(), in.Title+" "+in.Summary) //nolint:errcheck // degraded lookup omits the category
		feats := features.Extract(features.Input{
			ItemType:        in.ItemType,
			Title:           in.Title,
			Summary:         in.Summary,
			DurationSeconds: in.DurationSeconds,
			PublishedAt:     in.PublishedAt,
			Views:           in.Views,
			ClusterTokens:   clusters,
		}, now, h.extractionOptions())

		_, created, err := h.db.IngestItem(r.Context(), models.Item{
			ProjectID:       projectID,
			ItemType:        in.ItemType,
			ExternalID:      in.ExternalID,
			Title:           in.Title,
			Summary:         in.Summary,
			URL:             in.URL,
			DurationSeconds: in.DurationSeconds,
			PublishedAt:     in.PublishedAt,
			Views:           in.Views,
			Likes:           in.Likes,
			Authors:         in.Authors,
		}, feats)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to ingest candidate", err)
			return
		}
		if created {
			resp.Ingested++
		} else {
			resp.Duplicates++
		}
	}

	respondSuccess(w, http.StatusOK, resp, time.Since(start))
}

// GenerateRequest is the optional body of POST .../recommendations.
type GenerateRequest struct {
	K int `json:"k" validate:"min=0"`
}

// GenerateBatchResponse is the payload of a generation run.
type GenerateBatchResponse struct {
	ProjectID       string                  `json:"project_id"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Message         string                  `json:"message,omitempty"`
}

// GenerateRecommendations handles POST .../recommendations: filter, score,
// stage, and return the fresh batch. Without new feedback or candidates
// the operation is idempotent.
func (h *Handler) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var req GenerateRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", err)
			return
		}
	}
	if req.K > h.cfg.Recommend.MaxK {
		req.K = h.cfg.Recommend.MaxK
	}

	start := time.Now()
	batch, err := h.engine.Generate(r.Context(), projectID, req.K)

	switch {
	case errors.Is(err, recommend.ErrProjectNotFound):
		metrics.RecordBatchGeneration("error", 0, time.Since(start))
		respondError(w, http.StatusNotFound, "NOT_FOUND", "project not found", nil)
		return
	case errors.Is(err, recommend.ErrNoCandidates):
		metrics.RecordBatchGeneration("empty", 0, time.Since(start))
		h.publishStaged(projectID, 0)
		respondSuccess(w, http.StatusOK, GenerateBatchResponse{
			ProjectID:       projectID,
			Recommendations: []models.Recommendation{},
			Message:         "no new recommendations",
		}, time.Since(start))
		return
	case err != nil:
		metrics.RecordBatchGeneration("error", 0, time.Since(start))
		respondError(w, http.StatusInternalServerError, "ENGINE_ERROR", "failed to generate recommendations", err)
		return
	}

	for _, e := range batch.Entries {
		metrics.RecordScoringMode(string(e.Mode))
	}
	metrics.RecordBatchGeneration("ok", len(batch.Entries), time.Since(start))
	h.publishStaged(projectID, len(batch.Entries))

	staged, err := h.db.StagedBatch(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to read staged batch", err)
		return
	}

	respondSuccess(w, http.StatusOK, GenerateBatchResponse{
		ProjectID:       projectID,
		Recommendations: staged,
	}, time.Since(start))
}

// GetRecommendations handles GET .../recommendations: the current staged
// batch in rank order.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	if _, err := h.db.GetProject(r.Context(), projectID); err != nil {
		h.respondProjectError(w, err)
		return
	}

	start := time.Now()
	staged, err := h.db.StagedBatch(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to read staged batch", err)
		return
	}
	if staged == nil {
		staged = []models.Recommendation{}
	}

	respondSuccess(w, http.StatusOK, GenerateBatchResponse{
		ProjectID:       projectID,
		Recommendations: staged,
	}, time.Since(start))
}

// FeedbackRequest is the body of POST .../feedback.
type FeedbackRequest struct {
	ItemID string `json:"item_id" validate:"required,max=100"`
	Liked  *bool  `json:"liked" validate:"required"`
}

// PostFeedback handles POST /api/v1/projects/{projectID}/feedback. The
// response carries the updated feature-set summary so clients can show
// the effect of the feedback immediately.
func (h *Handler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	if _, err := h.db.GetProject(r.Context(), projectID); err != nil {
		h.respondProjectError(w, err)
		return
	}

	var req FeedbackRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	item, err := h.db.GetItem(r.Context(), req.ItemID)
	if err != nil || item.ProjectID != projectID {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "item not found in project", nil)
		return
	}

	start := time.Now()
	rec, err := h.db.AppendFeedback(r.Context(), projectID, item.ItemType, item.ItemID, *req.Liked)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to record feedback", err)
		return
	}

	metrics.RecordFeedback(rec.Liked)
	if h.bus != nil {
		if err := h.bus.PublishFeedback(events.FeedbackRecorded{
			ProjectID:  projectID,
			ItemType:   rec.ItemType,
			ItemID:     rec.ItemID,
			Liked:      rec.Liked,
			RecordedAt: rec.CreatedAt,
		}); err != nil {
			h.logger.Warn().Err(err).Msg("failed to publish feedback event")
		}
	}

	summary, err := h.db.ProfileSummary(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load profile", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"feedback": rec,
		"profile":  summary,
	}, time.Since(start))
}

// Status handles GET /api/v1/recommendations/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	items, loadedAt := h.cf.Stats()

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"enabled":                h.cfg.Recommend.Enabled,
		"uptime_seconds":         int(time.Since(h.started).Seconds()),
		"similarity_table_items": items,
		"similarity_loaded_at":   loadedAt,
	}, 0)
}

// EngineConfig handles GET /api/v1/recommendations/config.
func (h *Handler) EngineConfig(w http.ResponseWriter, r *http.Request) {
	cfg := h.engine.Config()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"top_k":            cfg.TopK,
		"alpha":            cfg.Alpha,
		"dislike_lambda":   cfg.DislikeLambda,
		"dislike_policy":   cfg.DislikePolicy,
		"min_feedback":     cfg.MinFeedback,
		"category_weights": cfg.CategoryWeights,
	}, 0)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"status": "healthy"}, 0)
}

func (h *Handler) respondProjectError(w http.ResponseWriter, err error) {
	if errors.Is(err, recommend.ErrProjectNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "project not found", nil)
		return
	}
	respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "database query failed", err)
}

func (h *Handler) publishStaged(projectID string, size int) {
	if h.bus == nil {
		return
	}
	if err := h.bus.PublishBatchStaged(events.BatchStaged{
		ProjectID: projectID,
		Size:      size,
		StagedAt:  time.Now().UTC(),
	}); err != nil {
		h.logger.Warn().Err(err).Msg("failed to publish batch event")
	}
}
