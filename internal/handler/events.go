package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/repository"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/service"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EventHandler holds the HTTP handlers for events and registrations.
type EventHandler struct {
	svc *service.EventService
	log *zap.Logger
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: log}
}

// eventFilter reads the listing query parameters shared by the event,
// calendar and ICS endpoints.
func eventFilter(r *http.Request) model.EventFilter {
	q := r.URL.Query()
	return model.EventFilter{
		Category:    q.Get("category"),
		Search:      strings.TrimSpace(q.Get("search")),
		ShowExpired: q.Get("show_expired") == "true",
		From:        q.Get("from"),
		To:          q.Get("to"),
	}
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.List(r.Context(), eventFilter(r))
	if err != nil {
		serverError(w, h.log, "failed to list events", err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.Create(r.Context(), ClaimsFrom(r.Context()), req)
	if err != nil {
		var banned *service.BannedContentError
		switch {
		case errors.As(err, &banned):
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":                "Cannot create event: This event goes against our rules",
				"details":              "The content contains inappropriate language and cannot be published.",
				"banned_word_detected": banned.Word,
				"violates_rules":       true,
			})
		case validationError(w, err):
		default:
			serverError(w, h.log, "failed to create event", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      event.ID,
		"message": "Event created successfully",
	})
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		serverError(w, h.log, "failed to get event", err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /api/events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	removed, err := h.svc.Delete(r.Context(), ClaimsFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrForbidden):
			writeError(w, http.StatusForbidden, "Unauthorized: Only event creator or admin can delete events")
		default:
			serverError(w, h.log, "failed to delete event", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":               "Event deleted successfully",
		"registrations_deleted": removed,
	})
}

// ExpireEvent handles POST /api/events/{id}/expire
// The body's is_expired defaults to true.
func (h *EventHandler) ExpireEvent(w http.ResponseWriter, r *http.Request) {
	var req model.ExpireRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	expired := req.IsExpired == nil || *req.IsExpired

	err := h.svc.SetExpired(r.Context(), ClaimsFrom(r.Context()), chi.URLParam(r, "id"), expired)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrForbidden):
			writeError(w, http.StatusForbidden, "Unauthorized: Only event creator or admin can mark events as expired")
		default:
			serverError(w, h.log, "failed to update event", err)
		}
		return
	}

	state := "active"
	if expired {
		state = "expired"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Event marked as " + state + " successfully",
		"is_expired": expired,
	})
}

func (h *EventHandler) writeRegistrationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Event not found")
	case errors.Is(err, repository.ErrAlreadyRegistered):
		writeError(w, http.StatusBadRequest, "Already registered")
	case errors.Is(err, service.ErrPasswordRequired):
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error":             "Event password required",
			"requires_password": true,
		})
	case errors.Is(err, service.ErrIncorrectPassword):
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error":             "Incorrect event password",
			"requires_password": true,
		})
	default:
		serverError(w, h.log, "failed to register", err)
	}
}

// Register handles POST /api/events/{id}/register
// Performs a concurrency-safe registration for the specified event.
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	count, err := h.svc.Register(r.Context(), ClaimsFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeRegistrationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":         "Registered successfully",
		"count":           count,
		"congratulations": true,
	})
}

// MarkRegistered handles POST /api/events/{id}/mark-registered
// Records a registration made through the event's external form.
func (h *EventHandler) MarkRegistered(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.MarkRegistered(r.Context(), ClaimsFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeRegistrationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Marked as registered",
		"count":   count,
	})
}

// RegistrationCount handles GET /api/events/{id}/registrations
func (h *EventHandler) RegistrationCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.RegistrationCount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		serverError(w, h.log, "failed to count registrations", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// VerifyPassword handles POST /api/events/{id}/verify-password
func (h *EventHandler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	valid, locked, err := h.svc.VerifyPassword(r.Context(), chi.URLParam(r, "id"), req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		serverError(w, h.log, "failed to verify password", err)
		return
	}

	switch {
	case !locked:
		writeJSON(w, http.StatusOK, map[string]any{"valid": true, "message": "Event is not locked"})
	case valid:
		writeJSON(w, http.StatusOK, map[string]any{"valid": true, "message": "Password correct"})
	default:
		writeJSON(w, http.StatusForbidden, map[string]any{"valid": false, "error": "Incorrect password"})
	}
}

// Stats handles GET /api/stats
func (h *EventHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		serverError(w, h.log, "failed to load stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
