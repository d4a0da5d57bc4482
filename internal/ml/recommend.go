package ml

import (
	"math"
	"sort"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

// DefaultRecommendations is the number of recommendations returned when the
// caller asks for none.
const DefaultRecommendations = 5

// Recommend scores upcoming events for a user. requested counts the user's
// event requests per detected category; registered holds event ids the user
// already signed up for, which are skipped. Events keep their input order
// among equal scores.
func Recommend(events []model.Event, requested map[string]int, registered map[string]bool, now time.Time, limit int) []model.Recommendation {
	if limit <= 0 {
		limit = DefaultRecommendations
	}
	out := make([]model.Recommendation, 0, len(events))
	for _, e := range events {
		if registered[e.ID] {
			continue
		}
		var score float64
		if n := requested[e.Category]; n > 0 {
			score += 2 + 0.5*float64(n)
		}
		if days, ok := daysAway(e.Date, now); ok {
			switch {
			case days <= 7:
				score++
			case days <= 30:
				score += 0.5
			}
		}
		out = append(out, model.Recommendation{
			Event:      e,
			Score:      score,
			Confidence: math.Min(score/3, 1),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
