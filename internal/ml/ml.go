// Package ml holds the heuristic scorers behind the smart features:
// recommendations, popularity and success prediction, trending categories,
// keyword search and description analysis. Every scorer is deterministic for
// a fixed clock; none of them touch storage.
package ml

import (
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// daysAway returns whole days from now until midnight of date, rounded down,
// so an event earlier today is -1 days away.
func daysAway(date string, now time.Time) (int, bool) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), now.Location())
	if err != nil {
		return 0, false
	}
	return int(math.Floor(d.Sub(now).Hours() / 24)), true
}

func parseDate(date string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(date))
	return d, err == nil
}

func isWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
