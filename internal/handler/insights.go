package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/ml"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/service"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"go.uber.org/zap"
)

// InsightHandler serves recommendations, trends, search and event scoring.
type InsightHandler struct {
	svc *service.InsightService
	log *zap.Logger
}

// NewInsightHandler constructs an InsightHandler.
func NewInsightHandler(svc *service.InsightService, log *zap.Logger) *InsightHandler {
	return &InsightHandler{svc: svc, log: log}
}

// Recommendations handles GET /api/ml/recommendations
func (h *InsightHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", ml.DefaultRecommendations)
	recs, err := h.svc.Recommend(r.Context(), ClaimsFrom(r.Context()), limit)
	if err != nil {
		serverError(w, h.log, "failed to build recommendations", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"recommendations": recs,
		"message":         "Personalized recommendations based on your interests",
	})
}

// Trending handles GET /api/ml/trending?days=
func (h *InsightHandler) Trending(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", ml.DefaultTrendingDays)
	if days <= 0 {
		days = ml.DefaultTrendingDays
	}
	trending, err := h.svc.Trending(r.Context(), days)
	if err != nil {
		serverError(w, h.log, "failed to load trending categories", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"trending":    trending,
		"period_days": days,
	})
}

// Search handles GET /api/ml/search?q=&limit=&category=&date=
func (h *InsightHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	results, err := h.svc.Search(r.Context(), service.SearchQuery{
		Query:    query,
		Category: q.Get("category"),
		Date:     q.Get("date"),
		Limit:    queryInt(r, "limit", ml.DefaultSearchLimit),
	})
	if err != nil {
		if !validationError(w, err) {
			serverError(w, h.log, "failed to search events", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"query":   query,
		"count":   len(results),
	})
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (model.EventDraft, bool) {
	var d model.EventDraft
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return d, false
	}
	return d, true
}

// PredictPopularity handles POST /api/ml/predict-popularity
func (h *InsightHandler) PredictPopularity(w http.ResponseWriter, r *http.Request) {
	if d, ok := decodeDraft(w, r); ok {
		writeJSON(w, http.StatusOK, h.svc.PredictPopularity(d))
	}
}

// EnhanceDescription handles POST /api/ml/enhance-description
func (h *InsightHandler) EnhanceDescription(w http.ResponseWriter, r *http.Request) {
	if d, ok := decodeDraft(w, r); ok {
		writeJSON(w, http.StatusOK, h.svc.AnalyzeDescription(d))
	}
}

// PredictSuccess handles POST /api/ml/predict-success
func (h *InsightHandler) PredictSuccess(w http.ResponseWriter, r *http.Request) {
	if d, ok := decodeDraft(w, r); ok {
		writeJSON(w, http.StatusOK, h.svc.PredictSuccess(d))
	}
}
