package ml

import (
	"strconv"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

const (
	weightCategory    = 0.25
	weightTiming      = 0.20
	weightDescription = 0.20
	weightOrganizer   = 0.15
	weightVenue       = 0.10
	weightEventType   = 0.10
)

var (
	successCategoryScores = map[string]float64{
		"technical": 0.85,
		"cultural":  0.80,
		"sports":    0.75,
		"academic":  0.70,
		"general":   0.65,
	}

	eventTypeScores = map[string]float64{
		"hackathon":   0.90,
		"workshop":    0.85,
		"seminar":     0.80,
		"competition": 0.85,
		"festival":    0.85,
		"conference":  0.75,
		"lecture":     0.70,
		"meetup":      0.75,
	}

	eventTypeKeywords = []struct {
		kind     string
		keywords []string
	}{
		{"hackathon", []string{"hackathon", "hack", "coding competition"}},
		{"workshop", []string{"workshop", "hands-on", "practical"}},
		{"seminar", []string{"seminar", "talk", "presentation"}},
		{"competition", []string{"competition", "contest", "tournament"}},
		{"festival", []string{"festival", "fest", "celebration"}},
		{"conference", []string{"conference", "summit", "convention"}},
		{"lecture", []string{"lecture", "guest lecture", "keynote"}},
		{"meetup", []string{"meetup", "networking", "social"}},
	}

	baseRegistrations = map[string]int{
		"technical": 50,
		"cultural":  80,
		"sports":    60,
		"academic":  40,
		"general":   30,
	}

	popularSocieties = []string{
		"coding", "tech", "technical", "cs", "computer",
		"cultural", "dance", "music", "drama",
		"sports", "cricket", "football",
	}
	goodVenues = []string{"auditorium", "hall", "stadium", "ground", "center", "centre"}
)

// PredictSuccess combines six weighted features into a 0-100 score. When desc
// is non-nil its score is used for the description feature, otherwise the
// description's length stands in for quality.
func PredictSuccess(d model.EventDraft, desc *model.DescriptionAnalysis, now time.Time) model.SuccessPrediction {
	category := strings.ToLower(d.Category)
	if category == "" {
		category = "general"
	}

	catScore, ok := successCategoryScores[category]
	if !ok {
		catScore = 0.65
	}
	timing := timingScore(d.Date, d.Time, now)

	var descScore float64
	switch {
	case desc != nil:
		descScore = float64(desc.Score) / 100
	case d.Description != "":
		descScore = min(float64(len([]rune(d.Description)))/200, 1)
	default:
		descScore = 0.3
	}

	organizer := organizerScore(d.Society)
	venue := venueScore(d.Venue)
	typeScore, ok := eventTypeScores[detectEventType(d.Title, d.Description)]
	if !ok {
		typeScore = 0.75
	}

	score := 100 * (catScore*weightCategory +
		timing*weightTiming +
		descScore*weightDescription +
		organizer*weightOrganizer +
		venue*weightVenue +
		typeScore*weightEventType)

	p := model.SuccessPrediction{
		SuccessScore:           round1(score),
		PredictedRegistrations: predictRegistrations(score, category),
		ComponentScores: model.ComponentScores{
			Category:    round1(catScore * 100),
			Timing:      round1(timing * 100),
			Description: round1(descScore * 100),
			Organizer:   round1(organizer * 100),
			Venue:       round1(venue * 100),
			EventType:   round1(typeScore * 100),
		},
	}
	switch {
	case score >= 85:
		p.Level, p.Color = "Excellent", "green"
	case score >= 75:
		p.Level, p.Color = "Very Good", "blue"
	case score >= 65:
		p.Level, p.Color = "Good", "yellow"
	case score >= 55:
		p.Level, p.Color = "Fair", "orange"
	default:
		p.Level, p.Color = "Needs Improvement", "red"
	}

	recs := []string{}
	if timing < 0.6 {
		recs = append(recs, "Consider scheduling on a weekend or Friday for better attendance")
	}
	if descScore < 0.7 {
		recs = append(recs, "Improve event description with more details about what, when, where, and why")
	}
	if organizer < 0.7 {
		recs = append(recs, "Mention the organizing society/club to build trust")
	}
	if venue < 0.7 {
		recs = append(recs, "Specify a clear venue location")
	}
	if score < 70 {
		recs = append(recs, "Overall: Consider improving timing, description quality, or event type to increase success probability")
	}
	if len(recs) > 3 {
		recs = recs[:3]
	}
	p.Recommendations = recs
	return p
}

func timingScore(date, clock string, now time.Time) float64 {
	if strings.TrimSpace(date) == "" {
		return 0.5
	}
	d, ok := parseDate(date)
	if !ok {
		return 0.5
	}
	days, _ := daysAway(date, now)

	score := 0.5
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		score += 0.2
	case time.Friday:
		score += 0.1
	}

	switch {
	case days >= 7 && days <= 30:
		score += 0.2
	case days >= 3 && days < 7:
		score += 0.1
	case days < 3:
		score -= 0.1
	case days > 60:
		score -= 0.1
	}

	if clock != "" {
		if hour, err := strconv.Atoi(strings.TrimSpace(strings.SplitN(clock, ":", 2)[0])); err == nil {
			switch {
			case hour >= 10 && hour <= 18:
				score += 0.1
			case hour < 9 || hour > 20:
				score -= 0.1
			}
		}
	}
	return clamp(score, 0, 1)
}

func organizerScore(society string) float64 {
	if society == "" {
		return 0.6
	}
	if containsAny(strings.ToLower(society), popularSocieties) {
		return 0.8
	}
	if len([]rune(society)) > 3 {
		return 0.7
	}
	return 0.6
}

func venueScore(venue string) float64 {
	if venue == "" {
		return 0.5
	}
	if containsAny(strings.ToLower(venue), goodVenues) {
		return 0.8
	}
	if len([]rune(venue)) > 5 {
		return 0.7
	}
	return 0.5
}

func detectEventType(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, t := range eventTypeKeywords {
		if containsAny(text, t.keywords) {
			return t.kind
		}
	}
	return "general"
}

func predictRegistrations(score float64, category string) int {
	base, ok := baseRegistrations[category]
	if !ok {
		base = 30
	}
	return max(10, int(float64(base)*score/70))
}
