// Package moderation screens event text against the banned word list.
package moderation

import "strings"

// Match returns the first banned word found in text, or "" when the text is
// clean. Words are compared lower-cased and trimmed; blank entries are
// skipped. A word matches anywhere in the text, including inside a longer
// word, so "spam" is caught in both "spam fest" and "spamalot".
func Match(text string, words []string) string {
	if text == "" || len(words) == 0 {
		return ""
	}
	lower := strings.ToLower(text)
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if strings.Contains(lower, w) {
			return w
		}
	}
	return ""
}

// Normalize prepares a word for storage.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// EventText joins the event fields that are screened on creation.
func EventText(title, description, society, venue string) string {
	return strings.Join([]string{title, description, society, venue}, " ")
}
