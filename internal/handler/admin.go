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

// AdminHandler manages the banned word list.
type AdminHandler struct {
	svc *service.ModerationService
	log *zap.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(svc *service.ModerationService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: log}
}

// ListBannedWords handles GET /api/admin/banned-words
func (h *AdminHandler) ListBannedWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.svc.List(r.Context())
	if err != nil {
		serverError(w, h.log, "failed to list banned words", err)
		return
	}
	writeJSON(w, http.StatusOK, words)
}

// AddBannedWord handles POST /api/admin/banned-words
func (h *AdminHandler) AddBannedWord(w http.ResponseWriter, r *http.Request) {
	var req model.BannedWordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	word, err := h.svc.Add(r.Context(), ClaimsFrom(r.Context()), req)
	if err != nil {
		if !validationError(w, err) {
			serverError(w, h.log, "failed to add banned word", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      word.ID,
		"word":    word.Word,
		"message": "Banned word added successfully",
	})
}

// RemoveBannedWord handles DELETE /api/admin/banned-words/{id}
func (h *AdminHandler) RemoveBannedWord(w http.ResponseWriter, r *http.Request) {
	word, err := h.svc.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Banned word not found")
			return
		}
		serverError(w, h.log, "failed to remove banned word", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Banned word removed successfully",
		"word":    word,
	})
}
