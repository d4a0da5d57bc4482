// Package assistant triages free-text event requests: it detects a category
// and sentiment, pulls out the kind of event and the society asking for it,
// and drafts an automatic reply.
package assistant

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Categories the assistant can detect, in tie-break order.
const (
	CategoryTechnical = "technical"
	CategoryCultural  = "cultural"
	CategorySports    = "sports"
	CategoryAcademic  = "academic"
	CategoryGeneral   = "general"
)

// Sentiments.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// SocietyFollowUp is appended to the reply when no society was recognised.
const SocietyFollowUp = " Could you please mention which society or club you're representing? This helps us route your request to the right team!"

type categoryKeywords struct {
	category string
	keywords []string
}

var categoryTable = []categoryKeywords{
	{CategoryTechnical, []string{
		"hackathon", "coding", "programming", "tech", "software", "ai", "ml", "data science",
		"cyber security", "web development", "app development", "coding competition", "tech talk",
	}},
	{CategoryCultural, []string{
		"music", "dance", "singing", "drama", "theater", "art", "painting", "cultural", "festival",
		"cultural fest", "music festival", "dance competition", "talent show", "cultural event",
	}},
	{CategorySports, []string{
		"sports", "cricket", "football", "basketball", "volleyball", "badminton", "tennis", "athletics",
		"tournament", "sports meet", "competition", "match", "game",
	}},
	{CategoryAcademic, []string{
		"seminar", "workshop", "lecture", "conference", "research", "paper presentation", "academic",
		"guest lecture", "symposium", "panel discussion", "academic event",
	}},
}

var responseTemplates = map[string]string{
	CategoryTechnical: "Thank you for your interest in technical events! We've noted your request for a %s event. Our technical societies are always planning exciting hackathons, coding competitions, and tech talks. We'll keep you updated when similar events are scheduled!",
	CategoryCultural:  "Great to hear you're interested in cultural events! We've received your request for a %s event. Our cultural committee organizes various festivals, competitions, and performances throughout the year. Stay tuned for upcoming cultural events!",
	CategorySports:    "Thanks for your sports event request! We've noted your interest in %s. Our sports department regularly organizes tournaments and competitions. We'll notify you when similar sports events are announced!",
	CategoryAcademic:  "Thank you for your academic event request! We've recorded your interest in %s. Our academic departments frequently host seminars, workshops, and conferences. You'll be notified about upcoming academic events!",
	CategoryGeneral:   "Thank you for your event request! We've received your message about %s and forwarded it to the relevant committee. Our event organizers will review your request and consider it for future planning. Stay tuned for updates!",
}

var (
	positiveWords = []string{"want", "need", "hope", "wish", "excited", "looking forward", "interested", "love", "like"}
	negativeWords = []string{"disappointed", "sad", "frustrated", "angry", "hate", "dislike"}

	eventTypePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:want|need|looking for|interested in|hope for|wish for)\s+(?:(?:a|an|the)\s+)?([^.!?]+)`),
		regexp.MustCompile(`([a-z]+(?:\s+[a-z]+)?)\s+(?:event|competition|festival|workshop|seminar)`),
	}
	fillerWords = regexp.MustCompile(`\b(?:a|an|the|for|in|on|at|to|of)\b`)

	societyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:from|by|for|with)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:society|club|committee)`),
		regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:society|club|committee|association)`),
		regexp.MustCompile(`(?:society|club|committee)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	}
	commonSocieties = []string{
		"coding club", "tech society", "cultural committee", "sports committee",
		"dance club", "music society", "drama club", "art society", "photography club",
		"debate society", "literary club", "robotics club", "ai club", "cyber security club",
	}

	titleCaser = cases.Title(language.English)
)

// Analysis is the assistant's reading of a request.
type Analysis struct {
	Category     string  `json:"category"`
	Sentiment    string  `json:"sentiment"`
	EventType    string  `json:"event_type_extracted"`
	SocietyName  *string `json:"society_name"`
	AutoResponse string  `json:"auto_response"`
}

// Analyze runs every detector over text.
func Analyze(text string) Analysis {
	category := DetectCategory(text)
	a := Analysis{
		Category:  category,
		Sentiment: DetectSentiment(text),
		EventType: ExtractEventType(text),
	}
	if s := ExtractSociety(text); s != "" {
		a.SocietyName = &s
	}
	a.AutoResponse = Respond(category, a.EventType)
	if a.SocietyName == nil {
		a.AutoResponse += SocietyFollowUp
	}
	return a
}

// DetectCategory counts keyword hits per category. The highest count wins and
// ties go to the category listed first; no hits at all means general.
func DetectCategory(text string) string {
	lower := strings.ToLower(text)
	best, bestScore := CategoryGeneral, 0
	for _, c := range categoryTable {
		if score := countHits(lower, c.keywords); score > bestScore {
			best, bestScore = c.category, score
		}
	}
	return best
}

// DetectSentiment compares positive and negative keyword hits.
func DetectSentiment(text string) string {
	lower := strings.ToLower(text)
	pos, neg := countHits(lower, positiveWords), countHits(lower, negativeWords)
	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	}
	return SentimentNeutral
}

func countHits(lower string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			n++
		}
	}
	return n
}

// ExtractEventType finds the phrase naming the requested event. When no
// pattern yields something longer than three characters the first five words
// are used.
func ExtractEventType(text string) string {
	lower := strings.ToLower(text)
	for _, re := range eventTypePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		phrase := strings.Join(strings.Fields(fillerWords.ReplaceAllString(m[1], "")), " ")
		if len(phrase) > 3 {
			return phrase
		}
	}
	words := strings.Fields(text)
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.ToLower(strings.Join(words, " "))
}

// ExtractSociety returns the society named in text, or "".
func ExtractSociety(text string) string {
	for _, re := range societyPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if s := strings.TrimSpace(m[1]); len(s) > 2 {
				return s
			}
		}
	}
	lower := strings.ToLower(text)
	for _, s := range commonSocieties {
		if strings.Contains(lower, s) {
			return titleCaser.String(s)
		}
	}
	return ""
}

// Respond fills the category's reply template with eventType.
func Respond(category, eventType string) string {
	if len(eventType) < 3 {
		eventType = "this type of event"
	}
	tmpl, ok := responseTemplates[category]
	if !ok {
		tmpl = responseTemplates[CategoryGeneral]
	}
	return strings.Replace(tmpl, "%s", eventType, 1)
}
