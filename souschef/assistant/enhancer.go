package assistant

import (
	"strings"

	"github.com/rs/zerolog"

	ports "github.com/hearthware/souschef/souschef/assistant/ports"
	"github.com/hearthware/souschef/souschef/retrieval"
)

// followUpMarkers signal that the message refers back to an earlier
// exchange. Substring, case-insensitive.
var followUpMarkers = []string{"new", "another", "different", "other"}

// Enhancer rewrites follow-up queries using recent conversation context.
// This is a heuristic carry step, not semantic resolution: it only helps
// when a prior turn literally contained a vocabulary term.
type Enhancer struct {
	store  ports.ConversationStore
	vocab  *retrieval.Vocabulary
	window int
	logger zerolog.Logger
}

// NewEnhancer creates an enhancer scanning the last window history entries.
func NewEnhancer(store ports.ConversationStore, vocab *retrieval.Vocabulary, window int, logger zerolog.Logger) *Enhancer {
	if window <= 0 {
		window = 2
	}
	return &Enhancer{
		store:  store,
		vocab:  vocab,
		window: window,
		logger: logger.With().Str("component", "enhancer").Logger(),
	}
}

// Enhance returns the message unchanged unless it carries a follow-up
// marker. For follow-ups it scans the most recent history entries, newest
// first; the first entry whose text contains a food term has that term
// appended to the message.
func (e *Enhancer) Enhance(userID, message string) string {
	lower := strings.ToLower(message)
	followUp := false
	for _, marker := range followUpMarkers {
		if strings.Contains(lower, marker) {
			followUp = true
			break
		}
	}
	if !followUp {
		return message
	}

	history := e.store.Recent(userID, e.window)
	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		text := entry.UserMessage + " " + entry.AIResponse
		if term, ok := e.vocab.FirstMatch(text); ok {
			enhanced := message + " " + term
			e.logger.Debug().Str("user_id", userID).Str("term", term).Msg("query enhanced with context")
			return enhanced
		}
	}
	return message
}
