package retrieval

import (
	"strings"

	radix "github.com/armon/go-radix"
)

// Category is a meal category recognized by the classifier.
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategoryDessert   Category = "dessert"
	CategorySnack     Category = "snack"
)

// categoryOrder fixes the scan order during classification; the first
// keyword found wins.
var categoryOrder = []Category{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategoryDessert,
	CategorySnack,
}

// categoryKeywords expands a category into the patterns matched against
// recipe titles and descriptions.
var categoryKeywords = map[Category][]string{
	CategoryBreakfast: {"breakfast", "pancake", "eggs", "omelette", "cereal"},
	CategoryLunch:     {"lunch", "sandwich", "salad", "soup"},
	CategoryDinner:    {"dinner", "pasta", "chicken", "beef", "fish", "main"},
	CategoryDessert:   {"dessert", "cake", "cookie", "chocolate", "sweet"},
	CategorySnack:     {"snack", "appetizer"},
}

// CategoryKeywords returns the expansion table entry for a category. An
// unknown category expands to itself.
func CategoryKeywords(c Category) []string {
	if kws, ok := categoryKeywords[c]; ok {
		return kws
	}
	return []string{string(c)}
}

// compoundTerms are multi-word culinary phrases treated as a single search
// keyword when extracting smart keywords from a query.
var compoundTerms = []string{
	"mashed potatoes",
	"chicken breast",
	"ice cream",
	"olive oil",
	"baking powder",
	"vanilla extract",
}

// foodTerms is the literal food vocabulary used for follow-up context carry
// and for prompt context references. Multi-word phrases come first in
// specificity; matching always prefers the longest phrase at a position.
var foodTerms = []string{
	"mashed potatoes",
	"chicken breast",
	"chocolate cake",
	"ice cream",
	"olive oil",
	"chicken",
	"pasta",
	"cake",
	"cookie",
	"pancake",
	"omelette",
	"sandwich",
	"salad",
	"soup",
	"pizza",
	"beef",
	"fish",
	"rice",
	"potatoes",
	"potato",
	"chocolate",
	"dessert",
	"bread",
	"eggs",
	"cheese",
	"garlic",
	"tomato",
}

// stopWords are dropped when extracting smart keywords.
var stopWords = map[string]struct{}{
	"recipe": {}, "recipes": {}, "want": {}, "need": {}, "looking": {},
	"find": {}, "show": {}, "give": {}, "new": {}, "another": {},
	"different": {}, "make": {}, "cook": {}, "prepare": {}, "i": {},
	"me": {}, "can": {}, "you": {}, "for": {}, "a": {}, "an": {},
	"the": {}, "and": {}, "or": {}, "how": {}, "what": {},
}

// Vocabulary matches known food phrases inside free text. Phrases are kept
// in a radix tree so that at any position the longest (most specific)
// phrase is preferred, and matches are only accepted on word boundaries.
type Vocabulary struct {
	tree *radix.Tree
}

// NewVocabulary builds the matcher over the fixed food-term table.
func NewVocabulary() *Vocabulary {
	t := radix.New()
	for _, term := range foodTerms {
		t.Insert(term, struct{}{})
	}
	return &Vocabulary{tree: t}
}

// FirstMatch scans text left to right and returns the first vocabulary
// phrase found. When several phrases start at the same position the
// longest one wins ("mashed potatoes" over "potato").
func (v *Vocabulary) FirstMatch(text string) (string, bool) {
	lower := strings.ToLower(text)
	for i := 0; i < len(lower); i++ {
		if !isWordStart(lower, i) {
			continue
		}
		if term, ok := v.matchAt(lower, i); ok {
			return term, true
		}
	}
	return "", false
}

// Matches reports whether the text contains any vocabulary phrase.
func (v *Vocabulary) Matches(text string) bool {
	_, ok := v.FirstMatch(text)
	return ok
}

// matchAt returns the longest phrase starting at offset i that ends on a
// word boundary.
func (v *Vocabulary) matchAt(lower string, i int) (string, bool) {
	rest := lower[i:]
	var best string
	v.tree.WalkPath(rest, func(key string, _ interface{}) bool {
		if endsOnBoundary(lower, i+len(key)) {
			best = key
		}
		return false
	})
	return best, best != ""
}

func isWordStart(s string, i int) bool {
	if !isLetter(s[i]) {
		return false
	}
	return i == 0 || !isLetter(s[i-1])
}

func endsOnBoundary(s string, end int) bool {
	return end >= len(s) || !isLetter(s[end])
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
