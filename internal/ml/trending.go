package ml

import (
	"sort"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

// DefaultTrendingDays is the request window used when none is given.
const DefaultTrendingDays = 30

// Trending merges per-category request counts from the window with upcoming
// event counts. Requests count double. Ties are broken by category name.
func Trending(requests, events map[string]int) []model.TrendingCategory {
	seen := make(map[string]bool, len(requests)+len(events))
	var out []model.TrendingCategory
	add := func(category string) {
		if seen[category] {
			return
		}
		seen[category] = true
		t := model.TrendingCategory{
			Category:     category,
			RequestCount: requests[category],
			EventCount:   events[category],
		}
		t.TrendScore = 2*t.RequestCount + t.EventCount
		switch {
		case t.TrendScore > 10:
			t.Trend = "hot"
		case t.TrendScore > 5:
			t.Trend = "rising"
		default:
			t.Trend = "stable"
		}
		out = append(out, t)
	}
	for c := range requests {
		add(c)
	}
	for c := range events {
		add(c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TrendScore != out[j].TrendScore {
			return out[i].TrendScore > out[j].TrendScore
		}
		return out[i].Category < out[j].Category
	})
	return out
}
