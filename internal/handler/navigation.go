package handler

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/calendar"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/location"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/repository"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/service"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NavigationHandler serves the venue catalog, directions and calendar views.
type NavigationHandler struct {
	events *service.EventService
	loc    *time.Location
	now    func() time.Time
	log    *zap.Logger
}

// NewNavigationHandler constructs a NavigationHandler. Calendar dates are
// interpreted in loc.
func NewNavigationHandler(events *service.EventService, loc *time.Location, log *zap.Logger) *NavigationHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &NavigationHandler{events: events, loc: loc, now: time.Now, log: log}
}

func viewOf(l model.Location) model.LocationView {
	return model.LocationView{
		Location:      l,
		MapURL:        location.MapURL(l),
		DirectionsURL: location.DirectionsURL(l, ""),
	}
}

// ListLocations handles GET /api/locations?q=&category=
func (h *NavigationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	var locs []model.Location
	switch q := r.URL.Query(); {
	case strings.TrimSpace(q.Get("q")) != "":
		locs = location.Search(q.Get("q"))
	case q.Get("category") != "":
		locs = location.ByCategory(q.Get("category"))
	default:
		locs = location.All()
	}

	out := make([]model.LocationView, 0, len(locs))
	for _, l := range locs {
		out = append(out, viewOf(l))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetLocation handles GET /api/locations/{id}
func (h *NavigationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	l, ok := location.ByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Location not found")
		return
	}
	view := viewOf(l)
	if origin := r.URL.Query().Get("origin"); origin != "" {
		view.DirectionsURL = location.DirectionsURL(l, origin)
	}
	writeJSON(w, http.StatusOK, view)
}

// EventDirections handles GET /api/events/{id}/directions?origin=
func (h *NavigationHandler) EventDirections(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		serverError(w, h.log, "failed to get event", err)
		return
	}
	url := location.EventDirectionsURL(*event, r.URL.Query().Get("origin"))
	if url == "" {
		writeError(w, http.StatusNotFound, "Event has no location")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"directions_url": url})
}

// Calendar handles GET /api/calendar?year=&month=&category=
// Year and month default to the current month.
func (h *NavigationHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	now := h.now().In(h.loc)
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	f := eventFilter(r)
	f.From, f.To = calendar.MonthRange(year, time.Month(month))
	events, err := h.events.List(r.Context(), f)
	if err != nil {
		serverError(w, h.log, "failed to list events", err)
		return
	}

	colors := make(map[string]string)
	for _, e := range events {
		colors[e.Category] = calendar.CategoryColor(e.Category)
	}
	days := calendar.GroupByDate(events)
	if days == nil {
		days = []model.CalendarDay{}
	}
	writeJSON(w, http.StatusOK, model.CalendarMonth{
		MonthGrid: calendar.Month(year, time.Month(month), events),
		Days:      days,
		Colors:    colors,
	})
}

// ICS handles GET /api/calendar.ics
// Accepts the same filters as the event listing.
func (h *NavigationHandler) ICS(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context(), eventFilter(r))
	if err != nil {
		serverError(w, h.log, "failed to list events", err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="campus-events.ics"`)
	if err := calendar.WriteICS(w, "Campus Events", events, h.loc, h.now()); err != nil {
		h.log.Warn("write ics feed", zap.Error(err))
	}
}

// ─── Health check ─────────────────────────────────────────────────────────────

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports database connectivity.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	ts := time.Now().Format(time.RFC3339)
	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     err.Error(),
			"timestamp": ts,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": ts,
	})
}

// ─── Frontend ─────────────────────────────────────────────────────────────────

// SPA serves a built single-page app from dir. Paths that name an existing
// file are served as-is; everything else gets index.html so client-side
// routes work on reload.
func SPA(dir string) http.HandlerFunc {
	if dir == "" {
		return func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Frontend build not found. Run the dev server or build the frontend.", http.StatusNotFound)
		}
	}
	root := os.DirFS(dir)
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if name != "" {
			if info, err := fs.Stat(root, name); err == nil && !info.IsDir() {
				http.ServeFileFS(w, r, root, name)
				return
			}
		}
		http.ServeFileFS(w, r, root, "index.html")
	}
}
