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

// AuthHandler serves sign-up, login and the current user.
type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSecretKey):
			writeError(w, http.StatusForbidden, "Invalid secret key for this role")
		case validationError(w, err):
		default:
			serverError(w, h.log, "failed to register user", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
		case validationError(w, err):
		default:
			serverError(w, h.log, "failed to log in", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Me(r.Context(), ClaimsFrom(r.Context()))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		serverError(w, h.log, "failed to load user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UserHandler serves profile pages.
type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(svc *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// Profile handles GET /api/users/{id}/profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Profile(r.Context(), ClaimsFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			writeError(w, http.StatusForbidden, "Unauthorized")
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			serverError(w, h.log, "failed to load profile", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Events handles GET /api/users/{id}/events
func (h *UserHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.Events(r.Context(), ClaimsFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			writeError(w, http.StatusForbidden, "Unauthorized")
			return
		}
		serverError(w, h.log, "failed to load user events", err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
