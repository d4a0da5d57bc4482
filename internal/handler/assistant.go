package handler

import (
	"errors"
	"net/http"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/repository"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/service"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AssistantHandler serves the event request assistant.
type AssistantHandler struct {
	svc *service.RequestService
	log *zap.Logger
}

// NewAssistantHandler constructs an AssistantHandler.
func NewAssistantHandler(svc *service.RequestService, log *zap.Logger) *AssistantHandler {
	return &AssistantHandler{svc: svc, log: log}
}

// Submit handles POST /api/assistant/request
// Open to everyone; a valid token attributes the request to its user.
func (h *AssistantHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequestPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sub, err := h.svc.Submit(r.Context(), ClaimsFrom(r.Context()), req.Request)
	if err != nil {
		if !validationError(w, err) {
			serverError(w, h.log, "failed to submit request", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// List handles GET /api/assistant/requests?status=&days=
func (h *AssistantHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = "all"
	}
	requests, err := h.svc.List(r.Context(), model.RequestFilter{
		Status: status,
		Days:   queryInt(r, "days", 0),
	})
	if err != nil {
		serverError(w, h.log, "failed to list requests", err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// Recent handles GET /api/assistant/requests/recent
func (h *AssistantHandler) Recent(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.Recent(r.Context())
	if err != nil {
		serverError(w, h.log, "failed to list recent requests", err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// Get handles GET /api/assistant/requests/{id}
func (h *AssistantHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Request not found")
			return
		}
		serverError(w, h.log, "failed to get request", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// Respond handles POST /api/assistant/requests/{id}/respond
func (h *AssistantHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req model.RespondRequestPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	err := h.svc.Respond(r.Context(), ClaimsFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Request not found")
		case validationError(w, err):
		default:
			serverError(w, h.log, "failed to respond to request", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Response submitted successfully"})
}

// Stats handles GET /api/assistant/stats
func (h *AssistantHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		serverError(w, h.log, "failed to load request stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
