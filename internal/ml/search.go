package ml

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

// DefaultSearchLimit caps search results when the caller gives no limit.
const DefaultSearchLimit = 10

var wordRe = regexp.MustCompile(`\w+`)

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range wordRe.FindAllString(s, -1) {
		set[w] = true
	}
	return set
}

// Search scores events by the share of query words found in the event's
// title, description, category and venue. The whole query appearing verbatim
// adds 0.3 and the event's category appearing in the query adds 0.2; scores
// are capped at 1.
func Search(query string, events []model.Event, limit int) []model.SearchResult {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := strings.ToLower(query)
	qWords := wordSet(q)

	out := make([]model.SearchResult, 0, len(events))
	for _, e := range events {
		text := strings.ToLower(strings.Join([]string{e.Title, e.Description, e.Category, e.Venue}, " "))
		tWords := wordSet(text)

		var score float64
		if len(qWords) > 0 {
			hits := 0
			for w := range qWords {
				if tWords[w] {
					hits++
				}
			}
			score = float64(hits) / float64(len(qWords))
		}
		if q != "" && strings.Contains(text, q) {
			score += 0.3
		}
		if c := strings.ToLower(e.Category); c != "" && strings.Contains(q, c) {
			score += 0.2
		}
		out = append(out, model.SearchResult{
			Event:           e,
			SimilarityScore: math.Min(score, 1),
			MatchType:       "keyword",
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SimilarityScore > out[j].SimilarityScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
