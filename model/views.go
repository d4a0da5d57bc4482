package model

// ─── Accounts ─────────────────────────────────────────────────────────────────

// ProfileStats summarises a user's registrations.
type ProfileStats struct {
	TotalRegistrations int `json:"total_registrations"`
	UpcomingEvents     int `json:"upcoming_events"`
	PastEvents         int `json:"past_events"`
}

// Profile is a user with their registration summary.
type Profile struct {
	User  User         `json:"user"`
	Stats ProfileStats `json:"stats"`
}

// UserEvents splits a user's registrations around the current time.
type UserEvents struct {
	Upcoming []RegisteredEvent `json:"upcoming"`
	Past     []RegisteredEvent `json:"past"`
	Total    int               `json:"total"`
}

// Submission is the assistant's reply to a new request.
type Submission struct {
	ID           string  `json:"id"`
	Request      string  `json:"request"`
	Category     string  `json:"category"`
	Sentiment    string  `json:"sentiment"`
	AutoResponse string  `json:"auto_response"`
	SocietyName  *string `json:"society_name"`
	Message      string  `json:"message"`
}

// ─── Insights ─────────────────────────────────────────────────────────────────

// Recommendation is an upcoming event scored against a user's interests.
type Recommendation struct {
	Event
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// TrendingCategory ranks a category by recent demand and supply.
type TrendingCategory struct {
	Category     string `json:"category"`
	RequestCount int    `json:"request_count"`
	EventCount   int    `json:"event_count"`
	TrendScore   int    `json:"trend_score"`
	Trend        string `json:"trend"`
}

// SearchResult is an event with its keyword similarity to the query.
type SearchResult struct {
	Event
	SimilarityScore float64 `json:"similarity_score"`
	MatchType       string  `json:"match_type"`
}

// Popularity is a rough audience estimate for a draft event.
type Popularity struct {
	Score                  float64 `json:"popularity_score"`
	PredictedRegistrations int     `json:"predicted_registrations"`
	Confidence             string  `json:"confidence"`
}

// DescriptionAnalysis grades an event description and suggests fixes.
type DescriptionAnalysis struct {
	Score               int      `json:"score"`
	Grade               string   `json:"grade"`
	Suggestions         []string `json:"suggestions"`
	Strengths           []string `json:"strengths"`
	MissingElements     []string `json:"missing_elements"`
	EnhancedDescription *string  `json:"enhanced_description"`
	Length              int      `json:"length"`
	SentenceCount       int      `json:"sentence_count"`
}

// ComponentScores are the per-feature scores behind a success prediction, on
// a 0-100 scale.
type ComponentScores struct {
	Category    float64 `json:"category"`
	Timing      float64 `json:"timing"`
	Description float64 `json:"description"`
	Organizer   float64 `json:"organizer"`
	Venue       float64 `json:"venue"`
	EventType   float64 `json:"event_type"`
}

// SuccessPrediction is the overall outlook for a draft event.
type SuccessPrediction struct {
	SuccessScore           float64         `json:"success_score"`
	Level                  string          `json:"level"`
	Color                  string          `json:"color"`
	PredictedRegistrations int             `json:"predicted_registrations"`
	ComponentScores        ComponentScores `json:"component_scores"`
	Recommendations        []string        `json:"recommendations"`
}

// ─── Navigation ───────────────────────────────────────────────────────────────

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is a named campus place events can be held at.
type Location struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
}

// LocationView is a location with its map links.
type LocationView struct {
	Location
	MapURL        string `json:"map_url"`
	DirectionsURL string `json:"directions_url"`
}

// CalendarDay is a single date and the events on it.
type CalendarDay struct {
	Date   string  `json:"date"`
	Events []Event `json:"events"`
}

// CalendarCell is one square of the month grid. Leading cells before the 1st
// have an empty Date and no events.
type CalendarCell struct {
	Date   string  `json:"date,omitempty"`
	Day    int     `json:"day,omitempty"`
	Events []Event `json:"events"`
}

// MonthGrid is a Sunday-first month view.
type MonthGrid struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Title string         `json:"title"`
	Cells []CalendarCell `json:"cells"`
}

// CalendarMonth is a month grid with its events grouped by date and the
// badge color of each category shown.
type CalendarMonth struct {
	MonthGrid
	Days   []CalendarDay     `json:"days"`
	Colors map[string]string `json:"colors"`
}
