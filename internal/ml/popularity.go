package ml

import (
	"math"
	"unicode/utf8"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

var popularityWeights = map[string]float64{
	"technical": 0.9,
	"cultural":  0.85,
	"sports":    0.8,
	"academic":  0.7,
	"general":   0.6,
}

// PredictPopularity weighs category, weekday, description length and whether
// a society is named.
func PredictPopularity(d model.EventDraft) model.Popularity {
	w, ok := popularityWeights[d.Category]
	if !ok {
		w = 0.6
	}
	if date, ok := parseDate(d.Date); ok && isWeekend(date) {
		w += 0.1
	}
	switch n := utf8.RuneCountInString(d.Description); {
	case n > 200:
		w += 0.05
	case n > 100:
		w += 0.03
	}
	if d.Society != "" {
		w += 0.05
	}

	score := math.Min(w*100, 100)
	p := model.Popularity{
		Score:                  round1(score),
		PredictedRegistrations: int(score * 2),
		Confidence:             "low",
	}
	switch {
	case score > 70:
		p.Confidence = "high"
	case score > 50:
		p.Confidence = "medium"
	}
	return p
}
