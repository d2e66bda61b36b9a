// Package supportbot - Rule-based support assistant answering questions
// about crop diseases and application usage from a built-in knowledge base.
package supportbot

import (
	"strings"
	"unicode"
)

// entry is one disease topic: trigger keywords plus the canned answer.
type entry struct {
	keywords []string
	info     string
}

var greetings = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"}

var thanks = []string{"thank", "thanks", "thx", "appreciate"}

// appTopics maps application-usage topics to their trigger phrases. Checked
// before the disease knowledge base.
var appTopics = []struct {
	key      string
	keywords []string
}{
	{key: "how to use", keywords: []string{"how to use", "how do i use", "usage", "guide", "tutorial", "help me use"}},
	{key: "good image", keywords: []string{"good image", "photo tip", "capture", "take photo", "image quality", "picture"}},
	{key: "supported diseases", keywords: []string{"what disease", "which disease", "supported", "detect", "identify", "list of disease"}},
	{key: "about project", keywords: []string{"what is this", "about this app", "this project", "this application", "this system"}},
}

// Reply returns the best-matching response for a user message. Matching is
// deterministic: greetings and thanks first, then app-usage topics, then
// the disease knowledge base scored by total matched-keyword length (longer
// keywords outweigh shorter ones), then generic treatment/prevention
// answers, and finally the default help text.
func Reply(input string) string {
	lower := strings.ToLower(input)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	// Greetings match whole words only: "hi" must not fire inside "this".
	for _, greet := range greetings {
		if matchesPhrase(lower, words, greet) {
			return greetingResponse
		}
	}
	for _, term := range thanks {
		if strings.Contains(lower, term) {
			return thanksResponse
		}
	}

	for _, topic := range appTopics {
		for _, kw := range topic.keywords {
			if matchesPhrase(lower, words, kw) {
				return appKnowledge[topic.key]
			}
		}
	}

	var bestInfo string
	bestScore := 0
	for _, e := range knowledgeBase {
		score := 0
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				score += len(kw)
			}
		}
		if score > bestScore {
			bestScore = score
			bestInfo = e.info
		}
	}
	if bestInfo != "" {
		return bestInfo
	}

	if strings.Contains(lower, "treat") || strings.Contains(lower, "cure") || strings.Contains(lower, "remedy") {
		return treatmentPrompt
	}
	if strings.Contains(lower, "prevent") || strings.Contains(lower, "avoid") {
		return preventionTips
	}
	if strings.Contains(lower, "rice") &&
		(strings.Contains(lower, "disease") || strings.Contains(lower, "problem")) {
		return riceDiseaseList
	}

	return defaultResponse
}

// matchesPhrase reports whether the phrase occurs in the message. Single
// words must match a whole token; multi-word phrases match as substrings.
func matchesPhrase(lower string, words []string, phrase string) bool {
	if strings.Contains(phrase, " ") {
		return strings.Contains(lower, phrase)
	}
	for _, w := range words {
		if w == phrase {
			return true
		}
	}
	return false
}
