package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/auth"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/cache"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/service"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	t      *testing.T
	db     *memDB
	tokens *auth.TokenIssuer
	router http.Handler
}

type envOptions struct {
	pingErr   error
	perMinute int
	staticDir string
}

func newEnv(t *testing.T, opts ...func(*envOptions)) *testEnv {
	t.Helper()
	o := envOptions{}
	for _, fn := range opts {
		fn(&o)
	}

	log := zap.NewNop()
	db := newMemDB()
	events, regs, users, requests, words := memEvents{db}, memRegs{db}, memUsers{db}, memRequests{db}, memWords{db}
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	clock := service.NewClock(time.UTC)
	noCache := (*cache.Cache)(nil)

	eventSvc := service.NewEventService(events, regs, words, noCache, time.Minute, log)
	secrets := map[string]string{"faculty": "fac-key", "ksac_member": "ksac-key", "society_president": "pres-key", "admin": "admin-key"}

	router := NewRouter(Router{
		Auth:        NewAuthenticator(tokens),
		RateLimiter: NewRateLimiter(o.perMinute, log),
		CORSOrigins: []string{"http://localhost:5173", "https://*.azurestaticapps.net"},
		StaticDir:   o.staticDir,
		Log:         log,

		Health:     NewHealthHandler(fakePinger{err: o.pingErr}),
		Events:     NewEventHandler(eventSvc, log),
		Accounts:   NewAuthHandler(service.NewAuthService(users, tokens, []string{"kiit.ac.in"}, secrets, log), log),
		Users:      NewUserHandler(service.NewUserService(users, regs, clock), log),
		Assistant:  NewAssistantHandler(service.NewRequestService(requests, clock, log), log),
		Insights:   NewInsightHandler(service.NewInsightService(events, regs, requests, noCache, time.Minute, clock, log), log),
		Admin:      NewAdminHandler(service.NewModerationService(words, log), log),
		Navigation: NewNavigationHandler(eventSvc, time.UTC, log),
	})
	return &testEnv{t: t, db: db, tokens: tokens, router: router}
}

// do sends a request and decodes a JSON response body into out when non-nil.
func (e *testEnv) do(method, path, token string, body any, out any) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

// signup registers an account and returns its token and id.
func (e *testEnv) signup(email string, role model.Role, key string) (string, string) {
	e.t.Helper()
	var resp model.AuthResponse
	rec := e.do(http.MethodPost, "/api/auth/register", "", model.SignupRequest{
		Email: email, Password: "hunter22", Role: role, SecretKey: key, SocietyName: "Coding Club",
	}, &resp)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return resp.Token, resp.User.ID
}

func (e *testEnv) createEvent(token string, req model.CreateEventRequest) string {
	e.t.Helper()
	var out map[string]string
	rec := e.do(http.MethodPost, "/api/events", token, req, &out)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return out["id"]
}

func sampleEvent(title, category, date string) model.CreateEventRequest {
	return model.CreateEventRequest{
		Title: title, Description: "A campus event", Category: category,
		Date: date, Time: "18:00", Venue: "KIIT Main Auditorium",
	}
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Error
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestHealthCheck(t *testing.T) {
	var body map[string]string
	rec := newEnv(t).do(http.MethodGet, "/health", "", nil, &body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.NotEmpty(t, body["timestamp"])

	down := newEnv(t, func(o *envOptions) { o.pingErr = errors.New("connection refused") })
	rec = down.do(http.MethodGet, "/health", "", nil, &body)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "connection refused", body["error"])
}

func TestAuthFlow(t *testing.T) {
	env := newEnv(t)
	token, id := env.signup("Priya@kiit.ac.in", "", "")

	var me model.User
	rec := env.do(http.MethodGet, "/api/auth/me", token, nil, &me)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, me.ID)
	assert.Equal(t, "priya@kiit.ac.in", me.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	var login model.AuthResponse
	rec = env.do(http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: "priya@kiit.ac.in", Password: "hunter22"}, &login)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", login.Message)

	rec = env.do(http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: "priya@kiit.ac.in", Password: "nope-nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", errorOf(t, rec))

	rec = env.do(http.MethodPost, "/api/auth/register", "", model.SignupRequest{Email: "priya@kiit.ac.in", Password: "hunter22"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", errorOf(t, rec))

	rec = env.do(http.MethodPost, "/api/auth/register", "", model.SignupRequest{Email: "x@kiit.ac.in", Password: "hunter22", Role: model.RoleAdmin, SecretKey: "guess"}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid secret key for this role", errorOf(t, rec))
}

func TestAuthRequired(t *testing.T) {
	env := newEnv(t)

	rec := env.do(http.MethodGet, "/api/auth/me", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", errorOf(t, rec))

	rec = env.do(http.MethodGet, "/api/auth/me", "not-a-jwt", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", errorOf(t, rec))
}

func TestCreateEvent(t *testing.T) {
	env := newEnv(t)
	token, _ := env.signup("organiser@kiit.ac.in", "", "")

	rec := env.do(http.MethodPost, "/api/events", "", sampleEvent("Hack", "technical", "2030-01-10"), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	missing := sampleEvent("Hack", "technical", "2030-01-10")
	missing.Venue = ""
	rec = env.do(http.MethodPost, "/api/events", token, missing, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: venue", errorOf(t, rec))

	id := env.createEvent(token, sampleEvent("Hack", "technical", "2030-01-10"))
	var got model.Event
	rec = env.do(http.MethodGet, "/api/events/"+id, "", nil, &got)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hack", got.Title)
	assert.Equal(t, "18:00", got.Time)

	rec = env.do(http.MethodGet, "/api/events/does-not-exist", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Event not found", errorOf(t, rec))
}

func TestCreateEvent_BannedWord(t *testing.T) {
	env := newEnv(t)
	admin, _ := env.signup("admin@kiit.ac.in", model.RoleAdmin, "admin-key")
	student, _ := env.signup("s@kiit.ac.in", "", "")

	rec := env.do(http.MethodPost, "/api/admin/banned-words", admin, model.BannedWordRequest{Word: "Spam"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	ev := sampleEvent("Free spamalot giveaway", "cultural", "2030-02-01")
	var body map[string]any
	rec = env.do(http.MethodPost, "/api/events", student, ev, &body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, true, body["violates_rules"])
	assert.Equal(t, "spam", body["banned_word_detected"])
	assert.Equal(t, "Cannot create event: This event goes against our rules", body["error"])
}

func TestListEvents_Filters(t *testing.T) {
	env := newEnv(t)
	token, _ := env.signup("o@kiit.ac.in", "", "")

	var empty []model.Event
	rec := env.do(http.MethodGet, "/api/events", "", nil, nil)
	assert.Equal(t, "[]\n", rec.Body.String())

	env.createEvent(token, sampleEvent("Robotics", "technical", "2030-03-02"))
	env.createEvent(token, sampleEvent("Dance night", "cultural", "2030-03-01"))

	env.do(http.MethodGet, "/api/events?category=technical", "", nil, &empty)
	require.Len(t, empty, 1)
	assert.Equal(t, "Robotics", empty[0].Title)

	var all []model.Event
	env.do(http.MethodGet, "/api/events?category=all", "", nil, &all)
	require.Len(t, all, 2)
	assert.Equal(t, "Dance night", all[0].Title)

	var found []model.Event
	env.do(http.MethodGet, "/api/events?search=DANCE", "", nil, &found)
	assert.Len(t, found, 1)
}

func TestRegisterForEvent(t *testing.T) {
	env := newEnv(t)
	owner, _ := env.signup("o@kiit.ac.in", "", "")
	student, _ := env.signup("s@kiit.ac.in", "", "")

	req := sampleEvent("Secret gig", "cultural", "2030-04-01")
	req.EventPassword = "open-sesame"
	id := env.createEvent(owner, req)

	var body map[string]any
	rec := env.do(http.MethodPost, "/api/events/"+id+"/register", student, model.RegisterRequest{}, &body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Event password required", body["error"])
	assert.Equal(t, true, body["requires_password"])

	rec = env.do(http.MethodPost, "/api/events/"+id+"/register", student, model.RegisterRequest{EventPassword: "wrong"}, &body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Incorrect event password", body["error"])

	rec = env.do(http.MethodPost, "/api/events/"+id+"/register", student, model.RegisterRequest{EventPassword: "open-sesame"}, &body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Registered successfully", body["message"])
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, true, body["congratulations"])

	rec = env.do(http.MethodPost, "/api/events/"+id+"/register", student, model.RegisterRequest{EventPassword: "open-sesame"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Already registered", errorOf(t, rec))

	var count map[string]int
	env.do(http.MethodGet, "/api/events/"+id+"/registrations", "", nil, &count)
	assert.Equal(t, 1, count["count"])

	rec = env.do(http.MethodPost, "/api/events/"+id+"/mark-registered", owner, nil, &body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.EqualValues(t, 2, body["count"])
	assert.Equal(t, "external_o@kiit.ac.in", env.db.regs[1].UserEmail)
}

func TestVerifyPassword(t *testing.T) {
	env := newEnv(t)
	owner, _ := env.signup("o@kiit.ac.in", "", "")
	open := env.createEvent(owner, sampleEvent("Open", "sports", "2030-05-01"))
	req := sampleEvent("Locked", "sports", "2030-05-02")
	req.EventPassword = "pw"
	locked := env.createEvent(owner, req)

	var body map[string]any
	rec := env.do(http.MethodPost, "/api/events/"+open+"/verify-password", "", model.VerifyPasswordRequest{}, &body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Event is not locked", body["message"])

	rec = env.do(http.MethodPost, "/api/events/"+locked+"/verify-password", "", model.VerifyPasswordRequest{Password: "bad"}, &body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, false, body["valid"])

	rec = env.do(http.MethodPost, "/api/events/"+locked+"/verify-password", "", model.VerifyPasswordRequest{Password: "pw"}, &body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Password correct", body["message"])
}

func TestDeleteAndExpireEvent(t *testing.T) {
	env := newEnv(t)
	owner, _ := env.signup("o@kiit.ac.in", "", "")
	other, _ := env.signup("x@kiit.ac.in", "", "")
	id := env.createEvent(owner, sampleEvent("Quiz", "academic", "2030-06-01"))

	rec := env.do(http.MethodDelete, "/api/events/"+id, other, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized: Only event creator or admin can delete events", errorOf(t, rec))

	rec = env.do(http.MethodPost, "/api/events/"+id+"/expire", other, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]any
	rec = env.do(http.MethodPost, "/api/events/"+id+"/expire", owner, nil, &body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Event marked as expired successfully", body["message"])
	assert.Equal(t, true, body["is_expired"])

	var listed []model.Event
	env.do(http.MethodGet, "/api/events", "", nil, &listed)
	assert.Empty(t, listed)
	env.do(http.MethodGet, "/api/events?show_expired=true", "", nil, &listed)
	assert.Len(t, listed, 1)

	rec = env.do(http.MethodPost, "/api/events/"+id+"/expire", owner, map[string]bool{"is_expired": false}, &body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Event marked as active successfully", body["message"])

	rec = env.do(http.MethodDelete, "/api/events/"+id, owner, nil, &body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Event deleted successfully", body["message"])
	assert.EqualValues(t, 0, body["registrations_deleted"])
}

func TestUserProfile(t *testing.T) {
	env := newEnv(t)
	token, id := env.signup("s@kiit.ac.in", "", "")
	other, _ := env.signup("x@kiit.ac.in", "", "")
	faculty, _ := env.signup("f@kiit.ac.in", model.RoleFaculty, "fac-key")

	var profile model.Profile
	rec := env.do(http.MethodGet, "/api/users/"+id+"/profile", token, nil, &profile)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s@kiit.ac.in", profile.User.Email)

	rec = env.do(http.MethodGet, "/api/users/"+id+"/profile", other, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized", errorOf(t, rec))

	var events model.UserEvents
	rec = env.do(http.MethodGet, "/api/users/"+id+"/events", faculty, nil, &events)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, events.Total)
	assert.Contains(t, rec.Body.String(), `"upcoming":[]`)
}

func TestAssistantRequests(t *testing.T) {
	env := newEnv(t)
	student, _ := env.signup("s@kiit.ac.in", "", "")
	president, _ := env.signup("p@kiit.ac.in", model.RoleSocietyPresident, "pres-key")

	var sub model.Submission
	rec := env.do(http.MethodPost, "/api/assistant/request", "", model.SubmitRequestPayload{Request: "We need a football tournament"}, &sub)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "sports", sub.Category)

	rec = env.do(http.MethodPost, "/api/assistant/request", "", model.SubmitRequestPayload{Request: " "}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Request text is required", errorOf(t, rec))

	rec = env.do(http.MethodGet, "/api/assistant/requests", student, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Insufficient permissions", errorOf(t, rec))

	var list []model.EventRequest
	rec = env.do(http.MethodGet, "/api/assistant/requests?status=pending", president, nil, &list)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, list, 1)
	assert.Equal(t, "anonymous", list[0].UserEmail)

	rec = env.do(http.MethodPost, "/api/assistant/requests/"+sub.ID+"/respond", president, model.RespondRequestPayload{Response: "Booked the ground"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.EventRequest
	env.do(http.MethodGet, "/api/assistant/requests/"+sub.ID, student, nil, &got)
	assert.Equal(t, model.StatusResponded, got.Status)

	rec = env.do(http.MethodGet, "/api/assistant/requests/missing", student, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Request not found", errorOf(t, rec))

	var recent []model.EventRequest
	rec = env.do(http.MethodGet, "/api/assistant/requests/recent", "", nil, &recent)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, recent, 1)

	var stats model.RequestStats
	env.do(http.MethodGet, "/api/assistant/stats", president, nil, &stats)
	assert.Equal(t, 1, stats.TotalRequests)
	assert.Equal(t, 0, stats.PendingRequests)
}

func TestRoleGates(t *testing.T) {
	env := newEnv(t)
	president, _ := env.signup("p@kiit.ac.in", model.RoleSocietyPresident, "pres-key")
	faculty, _ := env.signup("f@kiit.ac.in", model.RoleFaculty, "fac-key")

	rec := env.do(http.MethodGet, "/api/assistant/stats", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/api/assistant/stats", president, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(http.MethodGet, "/api/admin/banned-words", president, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodGet, "/api/assistant/stats", faculty, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(http.MethodGet, "/api/admin/banned-words", faculty, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBannedWordAdmin(t *testing.T) {
	env := newEnv(t)
	student, _ := env.signup("s@kiit.ac.in", "", "")
	admin, _ := env.signup("k@kiit.ac.in", model.RoleKSACMember, "ksac-key")

	rec := env.do(http.MethodGet, "/api/admin/banned-words", student, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var added map[string]string
	rec = env.do(http.MethodPost, "/api/admin/banned-words", admin, model.BannedWordRequest{Word: " Scam ", Reason: "fraud"}, &added)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "scam", added["word"])

	rec = env.do(http.MethodPost, "/api/admin/banned-words", admin, model.BannedWordRequest{Word: "scam"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Word already banned", errorOf(t, rec))

	var words []model.BannedWord
	env.do(http.MethodGet, "/api/admin/banned-words", admin, nil, &words)
	require.Len(t, words, 1)
	require.NotNil(t, words[0].AddedByEmail)
	assert.Equal(t, "k@kiit.ac.in", *words[0].AddedByEmail)

	var removed map[string]string
	rec = env.do(http.MethodDelete, "/api/admin/banned-words/"+added["id"], admin, nil, &removed)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "scam", removed["word"])

	rec = env.do(http.MethodDelete, "/api/admin/banned-words/"+added["id"], admin, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Banned word not found", errorOf(t, rec))
}

func TestInsightEndpoints(t *testing.T) {
	env := newEnv(t)
	token, _ := env.signup("s@kiit.ac.in", "", "")
	env.createEvent(token, sampleEvent("Robotics expo", "technical", "2030-07-01"))

	rec := env.do(http.MethodGet, "/api/ml/search", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Search query required", errorOf(t, rec))

	var search struct {
		Results []map[string]any `json:"results"`
		Query   string           `json:"query"`
		Count   int              `json:"count"`
	}
	rec = env.do(http.MethodGet, "/api/ml/search?q=robotics", "", nil, &search)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, search.Count)
	assert.Equal(t, "keyword", search.Results[0]["match_type"])

	var trending map[string]any
	rec = env.do(http.MethodGet, "/api/ml/trending?days=7", "", nil, &trending)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 7, trending["period_days"])

	rec = env.do(http.MethodGet, "/api/ml/recommendations", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var recs map[string]any
	rec = env.do(http.MethodGet, "/api/ml/recommendations", token, nil, &recs)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, recs["recommendations"], 1)

	draft := model.EventDraft{Title: "Tech talk", Category: "technical", Date: "2030-07-06", Venue: "Auditorium"}
	var pop map[string]any
	rec = env.do(http.MethodPost, "/api/ml/predict-popularity", token, draft, &pop)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, pop, "popularity_score")

	var success map[string]any
	rec = env.do(http.MethodPost, "/api/ml/predict-success", token, draft, &success)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, success, "success_score")

	var desc map[string]any
	rec = env.do(http.MethodPost, "/api/ml/enhance-description", token, draft, &desc)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "F", desc["grade"])
}

func TestStats(t *testing.T) {
	env := newEnv(t)
	token, _ := env.signup("s@kiit.ac.in", "", "")
	id := env.createEvent(token, sampleEvent("Cricket", "sports", "2030-08-01"))
	env.do(http.MethodPost, "/api/events/"+id+"/register", token, nil, nil)

	var stats model.Stats
	rec := env.do(http.MethodGet, "/api/stats", "", nil, &stats)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stats.TotalEvents)
	assert.Equal(t, 1, stats.TotalRegistrations)
	assert.Equal(t, map[string]int{"sports": 1}, stats.CategoryStats)
}

func TestLocations(t *testing.T) {
	env := newEnv(t)

	var all []map[string]any
	rec := env.do(http.MethodGet, "/api/locations", "", nil, &all)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, all, 13)

	var one map[string]any
	rec = env.do(http.MethodGet, "/api/locations/kiit_library", "", nil, &one)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "KIIT Central Library", one["name"])
	assert.Equal(t, "https://www.google.com/maps?q=20.352,85.8175", one["map_url"])

	rec = env.do(http.MethodGet, "/api/locations/nowhere", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalendar(t *testing.T) {
	env := newEnv(t)
	token, _ := env.signup("s@kiit.ac.in", "", "")
	env.createEvent(token, sampleEvent("A", "technical", "2030-09-05"))
	env.createEvent(token, sampleEvent("B", "sports", "2030-09-05"))
	env.createEvent(token, sampleEvent("C", "sports", "2030-10-01"))

	var cal struct {
		Title  string            `json:"title"`
		Cells  []json.RawMessage `json:"cells"`
		Days   []map[string]any  `json:"days"`
		Colors map[string]string `json:"colors"`
	}
	rec := env.do(http.MethodGet, "/api/calendar?year=2030&month=9", "", nil, &cal)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "September 2030", cal.Title)
	// September 1st 2030 is a Sunday.
	assert.Len(t, cal.Cells, 30)
	require.Len(t, cal.Days, 1)
	assert.Equal(t, "2030-09-05", cal.Days[0]["date"])
	assert.Equal(t, map[string]string{"technical": "blue", "sports": "green"}, cal.Colors)

	rec = env.do(http.MethodGet, "/api/calendar?month=13", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/calendar.ics?category=sports", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/calendar"))
	assert.Equal(t, 2, strings.Count(rec.Body.String(), "BEGIN:VEVENT"))
}

func TestSPAFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	env := newEnv(t, func(o *envOptions) { o.staticDir = dir })

	rec := env.do(http.MethodGet, "/app.js", "", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = env.do(http.MethodGet, "/events/some-client-route", "", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>app</html>", rec.Body.String())

	rec = env.do(http.MethodGet, "/api/nope", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", errorOf(t, rec))
}

func TestSPAWithoutBuild(t *testing.T) {
	rec := newEnv(t).do(http.MethodGet, "/", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	env := newEnv(t, func(o *envOptions) { o.perMinute = 2 })
	for i := 0; i < 2; i++ {
		rec := env.do(http.MethodGet, "/api/locations", "", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := env.do(http.MethodGet, "/api/locations", "", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// /health sits outside the limited group.
	rec = env.do(http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	env := newEnv(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "https://campus.azurestaticapps.net")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://campus.azurestaticapps.net", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))

	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiterPrune(t *testing.T) {
	rl := NewRateLimiter(10, zap.NewNop())
	start := time.Now()
	rl.get("1.2.3.4", start)
	rl.get("5.6.7.8", start.Add(9*time.Minute))

	rl.Prune(start.Add(11 * time.Minute))
	assert.NotContains(t, rl.limiters, "1.2.3.4")
	assert.Contains(t, rl.limiters, "5.6.7.8")
}
