package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

// ─── Auth ─────────────────────────────────────────────────────────────────────

// Signup creates an account and stores the returned token on the client.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Login signs in and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	req := model.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Logout forgets the stored token.
func (c *Client) Logout() { c.SetToken("") }

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ─── Events ───────────────────────────────────────────────────────────────────

// EventQuery filters ListEvents. A Category of "" or "all" lists every category.
type EventQuery struct {
	Category    string
	Search      string
	ShowExpired bool
	From        string
	To          string
}

func (q EventQuery) values() url.Values {
	v := url.Values{}
	if q.Category != "" && q.Category != "all" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.ShowExpired {
		v.Set("show_expired", "true")
	}
	if q.From != "" {
		v.Set("from", q.From)
	}
	if q.To != "" {
		v.Set("to", q.To)
	}
	return v
}

// ListEvents lists events ordered by date and time.
func (c *Client) ListEvents(ctx context.Context, q EventQuery) ([]model.Event, error) {
	var events []model.Event
	err := c.do(ctx, http.MethodGet, "/events", q.values(), nil, &events)
	return events, err
}

// GetEvent fetches one event.
func (c *Client) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	if err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id), nil, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEvent publishes an event and returns its id.
func (c *Client) CreateEvent(ctx context.Context, req model.CreateEventRequest) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/events", nil, req, &resp)
	return resp.ID, err
}

// DeleteEvent removes an event and returns how many registrations went with it.
func (c *Client) DeleteEvent(ctx context.Context, id string) (int64, error) {
	var resp struct {
		Removed int64 `json:"registrations_deleted"`
	}
	err := c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(id), nil, nil, &resp)
	return resp.Removed, err
}

// SetExpired marks an event expired or active again.
func (c *Client) SetExpired(ctx context.Context, id string, expired bool) error {
	return c.do(ctx, http.MethodPost, "/events/"+url.PathEscape(id)+"/expire", nil,
		model.ExpireRequest{IsExpired: &expired}, nil)
}

// Registration is the outcome of a successful registration.
type Registration struct {
	Message         string `json:"message"`
	Count           int    `json:"count"`
	Congratulations bool   `json:"congratulations"`
}

// Register signs the caller up for an event. Locked events need the event
// password; a missing or wrong one fails with an *APIError whose
// RequiresPassword is set.
func (c *Client) Register(ctx context.Context, id string, req model.RegisterRequest) (*Registration, error) {
	var r Registration
	if err := c.do(ctx, http.MethodPost, "/events/"+url.PathEscape(id)+"/register", nil, req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// MarkRegistered records a registration made through the event's external
// form and returns the new count.
func (c *Client) MarkRegistered(ctx context.Context, id string) (int, error) {
	var r Registration
	err := c.do(ctx, http.MethodPost, "/events/"+url.PathEscape(id)+"/mark-registered", nil, nil, &r)
	return r.Count, err
}

// RegistrationCount returns how many people registered for an event.
func (c *Client) RegistrationCount(ctx context.Context, id string) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id)+"/registrations", nil, nil, &resp)
	return resp.Count, err
}

// VerifyPassword checks an event password without registering. Unlocked
// events accept any password.
func (c *Client) VerifyPassword(ctx context.Context, id, password string) (bool, error) {
	var resp struct {
		Valid bool `json:"valid"`
	}
	err := c.do(ctx, http.MethodPost, "/events/"+url.PathEscape(id)+"/verify-password", nil,
		model.VerifyPasswordRequest{Password: password}, &resp)
	if IsStatus(err, http.StatusForbidden) {
		return false, nil
	}
	return resp.Valid, err
}

// Stats returns event and registration totals.
func (c *Client) Stats(ctx context.Context) (*model.Stats, error) {
	var s model.Stats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ─── Users ────────────────────────────────────────────────────────────────────

// Profile returns a user's profile and registration summary.
func (c *Client) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/profile", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UserEvents returns a user's registrations split into upcoming and past.
func (c *Client) UserEvents(ctx context.Context, userID string) (*model.UserEvents, error) {
	var ue model.UserEvents
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/events", nil, nil, &ue); err != nil {
		return nil, err
	}
	return &ue, nil
}

// ─── Assistant ────────────────────────────────────────────────────────────────

// SubmitRequest sends a free-text event request. It works signed out.
func (c *Client) SubmitRequest(ctx context.Context, text string) (*model.Submission, error) {
	var s model.Submission
	if err := c.do(ctx, http.MethodPost, "/assistant/request", nil, model.SubmitRequestPayload{Request: text}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListRequests lists event requests for triage. An empty status means all;
// days <= 0 applies no age limit.
func (c *Client) ListRequests(ctx context.Context, status string, days int) ([]model.EventRequest, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out []model.EventRequest
	err := c.do(ctx, http.MethodGet, "/assistant/requests", q, nil, &out)
	return out, err
}

// RecentRequests lists requests from the last 20 days.
func (c *Client) RecentRequests(ctx context.Context) ([]model.EventRequest, error) {
	var out []model.EventRequest
	err := c.do(ctx, http.MethodGet, "/assistant/requests/recent", nil, nil, &out)
	return out, err
}

// GetRequest fetches one event request.
func (c *Client) GetRequest(ctx context.Context, id string) (*model.EventRequest, error) {
	var r model.EventRequest
	if err := c.do(ctx, http.MethodGet, "/assistant/requests/"+url.PathEscape(id), nil, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// RespondToRequest answers an event request. An empty status means responded.
func (c *Client) RespondToRequest(ctx context.Context, id, response, status string) error {
	return c.do(ctx, http.MethodPost, "/assistant/requests/"+url.PathEscape(id)+"/respond", nil,
		model.RespondRequestPayload{Response: response, Status: status}, nil)
}

// RequestStats summarises event requests.
func (c *Client) RequestStats(ctx context.Context) (*model.RequestStats, error) {
	var s model.RequestStats
	if err := c.do(ctx, http.MethodGet, "/assistant/stats", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ─── Insights ─────────────────────────────────────────────────────────────────

// Recommendations returns upcoming events ranked for the signed-in user.
func (c *Client) Recommendations(ctx context.Context, limit int) ([]model.Recommendation, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Recommendations []model.Recommendation `json:"recommendations"`
	}
	err := c.do(ctx, http.MethodGet, "/ml/recommendations", q, nil, &resp)
	return resp.Recommendations, err
}

// Trending ranks categories by recent demand. days <= 0 uses the server default.
func (c *Client) Trending(ctx context.Context, days int) ([]model.TrendingCategory, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var resp struct {
		Trending []model.TrendingCategory `json:"trending"`
	}
	err := c.do(ctx, http.MethodGet, "/ml/trending", q, nil, &resp)
	return resp.Trending, err
}

// SearchQuery narrows a keyword search. Empty fields are not sent; a zero
// Limit uses the server default.
type SearchQuery struct {
	Query    string
	Category string
	Date     string
	Limit    int
}

// Search runs a keyword search over events.
func (c *Client) Search(ctx context.Context, sq SearchQuery) ([]model.SearchResult, error) {
	q := url.Values{"q": {sq.Query}}
	if sq.Category != "" {
		q.Set("category", sq.Category)
	}
	if sq.Date != "" {
		q.Set("date", sq.Date)
	}
	if sq.Limit > 0 {
		q.Set("limit", strconv.Itoa(sq.Limit))
	}
	var resp struct {
		Results []model.SearchResult `json:"results"`
	}
	err := c.do(ctx, http.MethodGet, "/ml/search", q, nil, &resp)
	return resp.Results, err
}

// PredictPopularity scores a draft event.
func (c *Client) PredictPopularity(ctx context.Context, d model.EventDraft) (*model.Popularity, error) {
	var p model.Popularity
	if err := c.do(ctx, http.MethodPost, "/ml/predict-popularity", nil, d, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// EnhanceDescription grades a draft's description and suggests fixes.
func (c *Client) EnhanceDescription(ctx context.Context, d model.EventDraft) (*model.DescriptionAnalysis, error) {
	var a model.DescriptionAnalysis
	if err := c.do(ctx, http.MethodPost, "/ml/enhance-description", nil, d, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// PredictSuccess predicts how well a draft event will do.
func (c *Client) PredictSuccess(ctx context.Context, d model.EventDraft) (*model.SuccessPrediction, error) {
	var p model.SuccessPrediction
	if err := c.do(ctx, http.MethodPost, "/ml/predict-success", nil, d, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ─── Moderation ───────────────────────────────────────────────────────────────

// BannedWords lists the banned word list, newest first.
func (c *Client) BannedWords(ctx context.Context) ([]model.BannedWord, error) {
	var out []model.BannedWord
	err := c.do(ctx, http.MethodGet, "/admin/banned-words", nil, nil, &out)
	return out, err
}

// AddBannedWord bans a word and returns its id and normalised form.
func (c *Client) AddBannedWord(ctx context.Context, word, reason string) (*model.BannedWord, error) {
	var w model.BannedWord
	err := c.do(ctx, http.MethodPost, "/admin/banned-words", nil, model.BannedWordRequest{Word: word, Reason: reason}, &w)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// RemoveBannedWord unbans a word by id and returns the word.
func (c *Client) RemoveBannedWord(ctx context.Context, id string) (string, error) {
	var resp struct {
		Word string `json:"word"`
	}
	err := c.do(ctx, http.MethodDelete, "/admin/banned-words/"+url.PathEscape(id), nil, nil, &resp)
	return resp.Word, err
}

// ─── Navigation ───────────────────────────────────────────────────────────────

// Locations lists campus venues, optionally filtered by a search term or a
// category. The search term wins when both are set.
func (c *Client) Locations(ctx context.Context, search, category string) ([]model.LocationView, error) {
	q := url.Values{}
	if search != "" {
		q.Set("q", search)
	}
	if category != "" {
		q.Set("category", category)
	}
	var out []model.LocationView
	err := c.do(ctx, http.MethodGet, "/locations", q, nil, &out)
	return out, err
}

// Location fetches one venue. A non-empty origin is used as the start point
// of the directions link.
func (c *Client) Location(ctx context.Context, id, origin string) (*model.LocationView, error) {
	q := url.Values{}
	if origin != "" {
		q.Set("origin", origin)
	}
	var l model.LocationView
	if err := c.do(ctx, http.MethodGet, "/locations/"+url.PathEscape(id), q, nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// EventDirections returns a directions link to an event's venue.
func (c *Client) EventDirections(ctx context.Context, eventID, origin string) (string, error) {
	q := url.Values{}
	if origin != "" {
		q.Set("origin", origin)
	}
	var resp struct {
		URL string `json:"directions_url"`
	}
	err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(eventID)+"/directions", q, nil, &resp)
	return resp.URL, err
}

// Calendar fetches one month of events. A zero year or month means the
// server's current one.
func (c *Client) Calendar(ctx context.Context, year, month int, category string) (*model.CalendarMonth, error) {
	q := url.Values{}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	if month > 0 {
		q.Set("month", strconv.Itoa(month))
	}
	if category != "" && category != "all" {
		q.Set("category", category)
	}
	var m model.CalendarMonth
	if err := c.do(ctx, http.MethodGet, "/calendar", q, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// CalendarFeed downloads the iCalendar feed for the events matching q.
func (c *Client) CalendarFeed(ctx context.Context, q EventQuery) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, "/calendar.ics", q.values(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
