package retrieval

import (
	"regexp"
	"strings"
)

const maxSmartKeywords = 3

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// SmartKeywords extracts up to three search keywords from a query.
//
// Compound culinary terms win outright: a query containing "ice cream" is
// searched as the single phrase rather than two unrelated tokens. Without
// a compound hit the query is tokenized into alphabetic words of at least
// three characters, stop words are dropped, and the first three survivors
// are kept in query order.
func SmartKeywords(query string) []string {
	lower := strings.ToLower(strings.TrimSpace(query))

	for _, compound := range compoundTerms {
		if strings.Contains(lower, compound) {
			return []string{compound}
		}
	}

	var keywords []string
	for _, word := range wordPattern.FindAllString(lower, -1) {
		if _, stop := stopWords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == maxSmartKeywords {
			break
		}
	}
	return keywords
}
