// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// DefaultQueryTimeout bounds one recommendation or featured request.
const DefaultQueryTimeout = 30 * time.Second

// QueryService is the query interface the handlers serve.
type QueryService interface {
	ListTitles() []string
	GetRecommendations(ctx context.Context, title string, count int) (*recommend.RecommendationResponse, error)
	GetFeatured(ctx context.Context, ids []int) []recommend.EnrichedResult
}

// FeaturedSource supplies the current showcase. It returns nil until the
// first sample has been taken.
type FeaturedSource interface {
	Featured() []recommend.EnrichedResult
}

// HealthInfo describes the loaded catalog and enrichment state.
type HealthInfo struct {
	CatalogItems    int    `json:"catalog_items"`
	ArtifactVersion int    `json:"artifact_version"`
	VocabularySize  int    `json:"vocabulary_size,omitempty"`
	BreakerState    string `json:"breaker_state,omitempty"`
}

// Handler serves the query API.
type Handler struct {
	svc          QueryService
	featured     FeaturedSource
	health       func() HealthInfo
	perf         *middleware.PerformanceMonitor
	queryTimeout time.Duration
	startTime    time.Time
	logger       *zerolog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithFeaturedSource serves /featured without ids from src.
func WithFeaturedSource(src FeaturedSource) HandlerOption {
	return func(h *Handler) { h.featured = src }
}

// WithHealthInfo reports catalog details on /health/ready.
func WithHealthInfo(fn func() HealthInfo) HandlerOption {
	return func(h *Handler) { h.health = fn }
}

// WithPerformanceMonitor serves /stats/performance from pm.
func WithPerformanceMonitor(pm *middleware.PerformanceMonitor) HandlerOption {
	return func(h *Handler) { h.perf = pm }
}

// WithQueryTimeout overrides DefaultQueryTimeout.
func WithQueryTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.queryTimeout = d
		}
	}
}

// WithLogger attaches logger to every request context. Without it request
// logs go to the global logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(logger zerolog.Logger) HandlerOption {
	return func(h *Handler) {
		l := logger.With().Str("component", "api").Logger()
		h.logger = &l
	}
}

// NewHandler creates the handler set. svc may be nil while artifacts load;
// query endpoints then answer 503.
func NewHandler(svc QueryService, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:          svc,
		queryTimeout: DefaultQueryTimeout,
		startTime:    time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ready() bool { return h.svc != nil }

// Titles lists every catalog title.
//
// @Summary List titles
// @Description Returns every movie title in catalog order. These are the valid values of the title parameter.
// @Tags Recommendations
// @Produce json
// @Success 200 {object} APIResponse{data=[]string} "Titles"
// @Failure 503 {object} APIResponse "Catalog not loaded"
// @Router /api/v1/titles [get]
func (h *Handler) Titles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		rw.ServiceUnavailable("Catalog not loaded")
		return
	}
	titles := h.svc.ListTitles()
	rw.SuccessWithCount(titles, len(titles))
}

// Recommendations returns enriched neighbors of a title.
//
// @Summary Recommend similar movies
// @Description Ranks the catalog by content similarity to title and returns up to count movies that have a poster.
// @Tags Recommendations
// @Produce json
// @Param title query string true "Exact catalog title"
// @Param count query int false "Number of results" default(5)
// @Success 200 {object} APIResponse{data=recommend.RecommendationResponse} "Recommendations; insufficient is set when no candidate had a poster"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 404 {object} APIResponse "Movie not found in the dataset."
// @Failure 503 {object} APIResponse "Catalog not loaded or query timed out"
// @Router /api/v1/recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		rw.ServiceUnavailable("Catalog not loaded")
		return
	}

	req, err := parseRecommendationsRequest(r.URL.Query())
	if err != nil {
		writeParamError(rw, err)
		return
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.queryTimeout)
	defer cancel()

	resp, err := h.svc.GetRecommendations(ctx, req.Title, req.Count)
	if err != nil {
		h.writeQueryError(rw, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("title", req.Title).
		Int("results", len(resp.Results)).
		Bool("insufficient", resp.Insufficient).
		Msg("Recommendations served")

	rw.SuccessWithCount(resp, len(resp.Results))
}

// Featured returns the showcase.
//
// @Summary Featured movies
// @Description Without ids, returns the current sampled showcase. With ids, enriches those catalog ids in order and keeps the ones with a poster.
// @Tags Recommendations
// @Produce json
// @Param ids query string false "Comma-separated TMDb ids"
// @Success 200 {object} APIResponse{data=[]recommend.EnrichedResult} "Featured movies"
// @Failure 400 {object} APIResponse "Invalid ids"
// @Failure 503 {object} APIResponse "Catalog not loaded"
// @Router /api/v1/featured [get]
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		rw.ServiceUnavailable("Catalog not loaded")
		return
	}

	req, err := parseFeaturedRequest(r.URL.Query())
	if err != nil {
		writeParamError(rw, err)
		return
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	if len(req.IDs) == 0 && h.featured != nil {
		if snapshot := h.featured.Featured(); snapshot != nil {
			rw.SuccessWithCount(snapshot, len(snapshot))
			return
		}
	}
	if len(req.IDs) == 0 {
		rw.SuccessWithCount([]recommend.EnrichedResult{}, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.queryTimeout)
	defer cancel()

	results := h.svc.GetFeatured(ctx, req.IDs)
	rw.SuccessWithCount(results, len(results))
}

// Performance returns per-route latency statistics.
//
// @Summary Request latency statistics
// @Tags Observability
// @Produce json
// @Success 200 {object} APIResponse{data=[]middleware.EndpointStats} "Latency window"
// @Router /api/v1/stats/performance [get]
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.perf == nil {
		rw.Success([]middleware.EndpointStats{})
		return
	}
	rw.Success(h.perf.Stats())
}

func (h *Handler) writeQueryError(rw *ResponseWriter, r *http.Request, err error) {
	var nf *recommend.ItemNotFoundError
	switch {
	case errors.As(err, &nf):
		rw.ErrorWithDetails(http.StatusNotFound, ErrCodeNotFound, nf.UserMessage(),
			map[string]interface{}{"title": nf.Title})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		rw.ServiceUnavailable("Query timed out")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Recommendation query failed")
		rw.InternalError("Recommendation query failed")
	}
}

func writeParamError(rw *ResponseWriter, err error) {
	var pe *paramError
	if errors.As(err, &pe) {
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidationFailed, pe.Error(), pe.details())
		return
	}
	rw.BadRequest(err.Error())
}
