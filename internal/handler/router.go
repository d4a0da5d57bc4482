package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/metrics"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Router bundles everything NewRouter mounts.
type Router struct {
	Auth        *Authenticator
	RateLimiter *RateLimiter
	CORSOrigins []string
	StaticDir   string
	Log         *zap.Logger

	Health     *HealthHandler
	Events     *EventHandler
	Accounts   *AuthHandler
	Users      *UserHandler
	Assistant  *AssistantHandler
	Insights   *InsightHandler
	Admin      *AdminHandler
	Navigation *NavigationHandler
}

// NewRouter builds the chi router with the global middleware stack.
func NewRouter(d Router) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(d.Log))           // structured access log
	r.Use(CORS(d.CORSOrigins))
	r.Use(metrics.Middleware)

	r.Get("/health", d.Health.HealthCheck)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(d.RateLimiter.Middleware)
		authed := d.Auth.Required

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.Accounts.Register)
			r.Post("/login", d.Accounts.Login)
			r.With(authed).Get("/me", d.Accounts.Me)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", d.Events.ListEvents)
			r.With(authed).Post("/", d.Events.CreateEvent)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", d.Events.GetEvent)
				r.With(authed).Delete("/", d.Events.DeleteEvent)
				r.With(authed).Post("/expire", d.Events.ExpireEvent)
				r.With(authed).Post("/register", d.Events.Register)
				r.With(authed).Post("/mark-registered", d.Events.MarkRegistered)
				r.Get("/registrations", d.Events.RegistrationCount)
				r.Post("/verify-password", d.Events.VerifyPassword)
				r.Get("/directions", d.Navigation.EventDirections)
			})
		})
		r.Get("/stats", d.Events.Stats)

		r.Route("/users/{id}", func(r chi.Router) {
			r.Use(authed)
			r.Get("/events", d.Users.Events)
			r.Get("/profile", d.Users.Profile)
		})

		r.Route("/assistant", func(r chi.Router) {
			r.With(d.Auth.Optional).Post("/request", d.Assistant.Submit)
			r.Get("/requests/recent", d.Assistant.Recent)
			r.With(d.Auth.RequireRole(model.Role.CanTriage)).Get("/requests", d.Assistant.List)
			r.With(authed).Get("/requests/{id}", d.Assistant.Get)
			r.With(d.Auth.RequireRole(model.Role.CanTriage)).Post("/requests/{id}/respond", d.Assistant.Respond)
			r.With(d.Auth.RequireRole(model.Role.CanTriage)).Get("/stats", d.Assistant.Stats)
		})

		r.Route("/ml", func(r chi.Router) {
			r.With(authed).Get("/recommendations", d.Insights.Recommendations)
			r.With(authed).Post("/predict-popularity", d.Insights.PredictPopularity)
			r.With(authed).Post("/predict-success", d.Insights.PredictSuccess)
			r.With(authed).Post("/enhance-description", d.Insights.EnhanceDescription)
			r.Get("/trending", d.Insights.Trending)
			r.Get("/search", d.Insights.Search)
		})

		r.Route("/admin/banned-words", func(r chi.Router) {
			r.Use(d.Auth.RequireRole(model.Role.IsAdminTier))
			r.Get("/", d.Admin.ListBannedWords)
			r.Post("/", d.Admin.AddBannedWord)
			r.Delete("/{id}", d.Admin.RemoveBannedWord)
		})

		r.Get("/locations", d.Navigation.ListLocations)
		r.Get("/locations/{id}", d.Navigation.GetLocation)
		r.Get("/calendar", d.Navigation.Calendar)
		r.Get("/calendar.ics", d.Navigation.ICS)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "Not found")
		})
	})

	// Everything outside /api is the single-page frontend.
	r.Handle("/*", SPA(d.StaticDir))

	return r
}
