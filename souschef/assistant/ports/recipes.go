package assistantports

import "context"

// RecipeCandidate is a read-only projection of a stored recipe.
type RecipeCandidate struct {
	ID           int64
	Title        string
	Description  string
	Ingredients  string
	Instructions string
	AuthorName   string
	LikesCount   int
}

// RecipeSource exposes the ranked, limited search primitives the retrieval
// cascade is built on. Every method caps its result at limit and orders by
// likes count descending; ties fall back to the store's natural order.
type RecipeSource interface {
	// SearchTitle substring-matches query against recipe titles.
	SearchTitle(ctx context.Context, query string, limit int) ([]RecipeCandidate, error)
	// SearchIngredients substring-matches query against ingredient text.
	SearchIngredients(ctx context.Context, query string, limit int) ([]RecipeCandidate, error)
	// SearchCategoryKeywords matches any keyword against title or
	// description (OR semantics across keywords).
	SearchCategoryKeywords(ctx context.Context, keywords []string, limit int) ([]RecipeCandidate, error)
	// SearchKeywordsAll requires every keyword to match title or
	// ingredients (AND semantics).
	SearchKeywordsAll(ctx context.Context, keywords []string, limit int) ([]RecipeCandidate, error)
	// MostLiked returns the globally most-liked recipes.
	MostLiked(ctx context.Context, limit int) ([]RecipeCandidate, error)
}
