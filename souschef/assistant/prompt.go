package assistant

import (
	"fmt"
	"strings"

	ports "github.com/hearthware/souschef/souschef/assistant/ports"
	"github.com/hearthware/souschef/souschef/retrieval"
)

const systemDirective = `You are a helpful cooking assistant with access to a recipe database.

Rules:
- ALWAYS reference recipes from the database when they match the user's request
- If user asks for "new recipe" or "another recipe", give them something related to previous discussion
- Keep responses concise and practical
- Focus on the recipes provided in the database`

const noRecipesMarker = "No relevant recipes found in the database."

const (
	defaultDescriptionLimit = 80
	defaultIngredientLimit  = 120
)

// Composer assembles a bounded prompt from the system directive, a single
// optional context line, the current request, and the candidate block.
type Composer struct {
	vocab            *retrieval.Vocabulary
	descriptionLimit int
	ingredientLimit  int
}

// NewComposer creates a composer with the given field truncation limits;
// zero limits fall back to the defaults.
func NewComposer(vocab *retrieval.Vocabulary, descriptionLimit, ingredientLimit int) *Composer {
	if descriptionLimit <= 0 {
		descriptionLimit = defaultDescriptionLimit
	}
	if ingredientLimit <= 0 {
		ingredientLimit = defaultIngredientLimit
	}
	return &Composer{
		vocab:            vocab,
		descriptionLimit: descriptionLimit,
		ingredientLimit:  ingredientLimit,
	}
}

// Compose renders the prompt for one turn. The context reference is drawn
// only from the single most recent history entry, and only when that
// entry's user message contains a known food term. An empty candidate set
// renders an explicit marker so the recipes section is never silently
// missing.
func (c *Composer) Compose(message string, candidates []ports.RecipeCandidate, history []ports.ConversationEntry) ports.Prompt {
	var b strings.Builder

	if len(history) > 0 {
		last := history[len(history)-1]
		if c.vocab.Matches(last.UserMessage) {
			fmt.Fprintf(&b, "Previous request: %s\n\n", last.UserMessage)
		}
	}

	fmt.Fprintf(&b, "Current request: %s\n\n", message)
	fmt.Fprintf(&b, "Available recipes:\n%s\n\n", c.renderCandidates(candidates))
	b.WriteString("Provide a helpful response using the recipes above. If they match what the user wants, recommend them specifically.")

	return ports.Prompt{
		System: systemDirective,
		User:   b.String(),
	}
}

func (c *Composer) renderCandidates(candidates []ports.RecipeCandidate) string {
	if len(candidates) == 0 {
		return noRecipesMarker
	}

	blocks := make([]string, 0, len(candidates))
	for _, r := range candidates {
		blocks = append(blocks, fmt.Sprintf("Recipe: %s\nBy: %s\nDescription: %s\nIngredients: %s",
			r.Title,
			r.AuthorName,
			truncate(r.Description, c.descriptionLimit),
			truncate(r.Ingredients, c.ingredientLimit),
		))
	}
	return strings.Join(blocks, "\n\n")
}

// truncate bounds s to limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
