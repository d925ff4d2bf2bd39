package conversation

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	bookingKeywords = []string{"book", "appointment", "schedule", "service"}
	confirmWords    = []string{"yes", "confirm", "correct", "book"}
	denyWords       = []string{"no", "change", "wrong"}
)

// minAddressLen is the length an address must exceed to be accepted.
const minAddressLen = 10

// dateLayout renders relative dates as "Monday, January 02".
const dateLayout = "Monday, January 02"

func containsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func wantsBooking(text string) bool {
	return containsAny(text, bookingKeywords)
}

// extractName pulls a first name out of an introduction. "my name is X",
// "I'm X" and "I am X" are recognised; anything else yields the first word.
func extractName(text string) (string, bool) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return "", false
	}

	candidate := words[0]
	if i, ok := findPhrase(words, "my", "name", "is"); ok {
		if i+3 < len(words) {
			candidate = words[i+3]
		}
	} else if i, ok := findPhrase(words, "i'm"); ok && i+1 < len(words) {
		candidate = words[i+1]
	} else if i, ok := findPhrase(words, "i", "am"); ok && i+2 < len(words) {
		candidate = words[i+2]
	}

	if trimmed := trimPunct(candidate); trimmed != "" {
		candidate = trimmed
	}
	return cases.Title(language.English).String(candidate), true
}

// findPhrase returns the index of the first run of words equal to phrase,
// ignoring case and surrounding punctuation.
func findPhrase(words []string, phrase ...string) (int, bool) {
	for i := 0; i+len(phrase) <= len(words); i++ {
		matched := true
		for j, p := range phrase {
			if !strings.EqualFold(trimPunct(words[i+j]), p) {
				matched = false
				break
			}
		}
		if matched {
			return i, true
		}
	}
	return 0, false
}

func trimPunct(s string) string {
	return strings.Trim(s, ".,!?;:\"")
}

// extractDate resolves "tomorrow" and "today" against now and passes any
// other non-empty answer through unchanged.
func extractDate(text string, now time.Time) (string, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1).Format(dateLayout), true
	case strings.Contains(lower, "today"):
		return now.Format(dateLayout), true
	}
	trimmed := strings.TrimSpace(text)
	return trimmed, trimmed != ""
}

// extractTime maps parts of the day to a default slot and passes any other
// non-empty answer through unchanged.
func extractTime(text string) (string, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "morning"), strings.Contains(lower, "am"):
		return "10 AM", true
	case strings.Contains(lower, "afternoon"), strings.Contains(lower, "pm"):
		return "2 PM", true
	case strings.Contains(lower, "evening"):
		return "6 PM", true
	}
	trimmed := strings.TrimSpace(text)
	return trimmed, trimmed != ""
}

func extractAddress(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	return trimmed, utf8.RuneCountInString(trimmed) > minAddressLen
}

type answer int

const (
	answerUnclear answer = iota
	answerYes
	answerNo
)

// classifyConfirmation checks affirmative words before negative ones.
func classifyConfirmation(text string) answer {
	switch {
	case containsAny(text, confirmWords):
		return answerYes
	case containsAny(text, denyWords):
		return answerNo
	default:
		return answerUnclear
	}
}
