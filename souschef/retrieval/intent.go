package retrieval

import "strings"

// IntentType distinguishes free-form requests from category requests.
type IntentType string

const (
	IntentGeneral  IntentType = "general"
	IntentCategory IntentType = "category"
)

// SpecificRequest marks popularity or alternative asks. Independent of the
// intent type; a category query can still ask for the popular ones.
type SpecificRequest string

const (
	RequestNone        SpecificRequest = ""
	RequestPopular     SpecificRequest = "popular"
	RequestAlternative SpecificRequest = "alternative"
)

// QueryIntent is the structured classification of one chat message.
// Created fresh per turn, never persisted.
type QueryIntent struct {
	Type     IntentType
	Category Category
	Specific SpecificRequest
}

var popularMarkers = []string{"popular", "best", "top"}

var alternativeMarkers = []string{"new", "another", "different"}

// Classify derives a QueryIntent from a message. Pure and deterministic:
// no I/O, no randomness. Category keywords are scanned in a fixed order
// and the first hit wins; the specific-request scan is independent of the
// category scan.
func Classify(message string) QueryIntent {
	lower := strings.ToLower(message)

	intent := QueryIntent{Type: IntentGeneral}

	for _, c := range categoryOrder {
		if strings.Contains(lower, string(c)) {
			intent.Type = IntentCategory
			intent.Category = c
			break
		}
	}

	if containsAny(lower, popularMarkers) {
		intent.Specific = RequestPopular
	} else if containsAny(lower, alternativeMarkers) {
		intent.Specific = RequestAlternative
	}

	return intent
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
