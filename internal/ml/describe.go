package ml

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

const (
	minDescLength     = 50
	optimalDescLength = 150
	maxDescLength     = 500
	maxSuggestions    = 5
)

type descElement struct {
	name       string
	keywords   []string
	penalty    int
	suggestion string
}

var descElements = []descElement{
	{"what", []string{"what", "about", "event", "activity", "workshop", "seminar"}, 20,
		"Mention what the event is about"},
	{"when", []string{"when", "date", "time", "schedule", "duration"}, 15,
		"Include when the event takes place (date/time)"},
	{"where", []string{"where", "venue", "location", "place", "address"}, 15,
		"Mention where the event will be held (venue/location)"},
	{"who", []string{"who", "organizer", "society", "club", "committee", "speaker"}, 10,
		"Include who is organizing or speaking at the event"},
	{"why", []string{"why", "benefit", "learn", "gain", "skill", "opportunity"}, 10,
		"Explain why attendees should come (benefits, learning outcomes)"},
}

var (
	engagementWords = []string{"join", "participate", "learn", "explore", "discover", "experience", "connect", "network"}
	sentenceSplit   = regexp.MustCompile(`[.!?]+`)
)

// AnalyzeDescription scores desc out of 100. title, category, date and venue
// are only used to suppress redundant suggestions and to build the enhanced
// description.
func AnalyzeDescription(desc, title, category, date, venue string) model.DescriptionAnalysis {
	if desc == "" {
		missing := make([]string, 0, len(descElements))
		for _, el := range descElements {
			missing = append(missing, el.name)
		}
		return model.DescriptionAnalysis{
			Grade:           "F",
			Suggestions:     []string{"Add a description to help attendees understand your event"},
			Strengths:       []string{},
			MissingElements: missing,
		}
	}

	lower := strings.ToLower(desc)
	score := 100
	suggestions := []string{}
	strengths := []string{}
	missing := []string{}

	length := utf8.RuneCountInString(desc)
	switch {
	case length < minDescLength:
		score -= 30
		suggestions = append(suggestions, fmt.Sprintf("Description is too short (%d chars). Aim for at least %d characters to provide enough information.", length, minDescLength))
	case length < optimalDescLength:
		score -= 10
		suggestions = append(suggestions, fmt.Sprintf("Description could be more detailed (%d chars). Consider adding more information (aim for %d+ characters).", length, optimalDescLength))
	case length > maxDescLength:
		score -= 15
		suggestions = append(suggestions, fmt.Sprintf("Description is quite long (%d chars). Consider making it more concise while keeping key information.", length))
	default:
		strengths = append(strengths, fmt.Sprintf("Good description length (%d characters)", length))
	}

	for _, el := range descElements {
		if containsAny(lower, el.keywords) {
			strengths = append(strengths, fmt.Sprintf("Good: Includes %s information", el.name))
			continue
		}
		missing = append(missing, el.name)
		score -= el.penalty
		if (el.name == "when" && date != "") || (el.name == "where" && venue != "") {
			continue
		}
		suggestions = append(suggestions, el.suggestion)
	}

	if containsAny(lower, engagementWords) {
		strengths = append(strengths, "Includes engaging language")
	} else {
		score -= 5
		suggestions = append(suggestions, "Add engaging action words (e.g., 'join', 'learn', 'explore') to encourage participation")
	}

	if !strings.Contains(lower, "register") && !strings.Contains(lower, "registration") {
		score -= 5
		suggestions = append(suggestions, "Mention how to register or get more information")
	}

	sentences := countSentences(desc)
	switch {
	case sentences < 2:
		score -= 10
		suggestions = append(suggestions, "Break description into multiple sentences for better readability")
	case sentences > 8:
		score -= 5
		suggestions = append(suggestions, "Consider breaking long description into shorter paragraphs")
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return model.DescriptionAnalysis{
		Score:               int(clamp(float64(score), 0, 100)),
		Grade:               grade(score),
		Suggestions:         suggestions,
		Strengths:           strengths,
		MissingElements:     missing,
		EnhancedDescription: enhanceDescription(desc, title, category, date, venue, missing),
		Length:              length,
		SentenceCount:       sentences,
	}
}

func countSentences(desc string) int {
	n := 0
	for _, s := range sentenceSplit.Split(desc, -1) {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

func grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	}
	return "F"
}

func enhanceDescription(desc, title, category, date, venue string, missing []string) *string {
	isMissing := make(map[string]bool, len(missing))
	for _, m := range missing {
		isMissing[m] = true
	}

	var parts []string
	if d := strings.TrimSpace(desc); d != "" {
		parts = append(parts, d)
	}

	var additions []string
	if isMissing["what"] && title != "" {
		kind := category
		if kind == "" {
			kind = "event"
		}
		additions = append(additions, fmt.Sprintf("This %s is about %s.", kind, strings.ToLower(title)))
	}
	if isMissing["when"] && date != "" {
		additions = append(additions, fmt.Sprintf("The event will take place on %s.", date))
	}
	if isMissing["where"] && venue != "" {
		additions = append(additions, fmt.Sprintf("Location: %s.", venue))
	}
	if isMissing["why"] {
		additions = append(additions, "Don't miss this opportunity to learn, network, and grow!")
	}
	if len(additions) > 0 {
		parts = append(parts, strings.Join(additions, " "))
	}
	if !strings.Contains(strings.ToLower(desc), "register") {
		parts = append(parts, "Register now to secure your spot!")
	}

	enhanced := strings.Join(parts, " ")
	if float64(utf8.RuneCountInString(enhanced)) <= float64(utf8.RuneCountInString(desc))*1.2 && len(missing) == 0 {
		return nil
	}
	if r := []rune(enhanced); len(r) > maxDescLength {
		enhanced = string(r[:maxDescLength])
	}
	return &enhanced
}
